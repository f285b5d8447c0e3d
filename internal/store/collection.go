package store

import (
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/common"
)

// Collection names a stored table.
type Collection string

const (
	Profiles Collection = "profiles"
	Tasks    Collection = "tasks"
)

func (c Collection) Valid() bool {
	_, ok := collectionKeys[c]
	return ok
}

var collectionKeys = map[Collection]string{
	Profiles: common.StorageKeyProfiles,
	Tasks:    common.StorageKeyTasks,
}

func (c Collection) storageKey() string {
	return collectionKeys[c]
}

func fmtUnknown(name string) error {
	return fmt.Errorf("%w: %s", common.ErrUnknownCollection, name)
}
