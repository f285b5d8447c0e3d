package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/models"
)

// readJSON loads key into a value of type T. An absent key yields the zero
// value. Faults are logged and returned wrapped in common.ErrStorage;
// read-only callers ignore them and work with the zero value.
func readJSON[T any](ctx context.Context, s *Store, key string) (T, error) {
	var out T
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Error(ctx, "storage read failed", "key", key, "error", err)
		return out, fmt.Errorf("%w: read %s: %w", common.ErrStorage, key, err)
	}
	if b == nil {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		s.logger.Error(ctx, "stored value is corrupt", "key", key, "error", err)
		var zero T
		return zero, fmt.Errorf("%w: decode %s: %w", common.ErrStorage, key, err)
	}
	return out, nil
}

func (s *Store) readRecords(ctx context.Context, c Collection) ([]Record, error) {
	rs, err := readJSON[[]Record](ctx, s, c.storageKey())
	if rs == nil {
		rs = []Record{}
	}
	return rs, err
}

func (s *Store) readUsers(ctx context.Context) ([]models.User, error) {
	us, err := readJSON[[]models.User](ctx, s, common.StorageKeyUsers)
	if us == nil {
		us = []models.User{}
	}
	return us, err
}

func (s *Store) readSession(ctx context.Context) (*models.Session, error) {
	return readJSON[*models.Session](ctx, s, common.StorageKeySession)
}

// write stores every value in one atomic call. Failures are logged and
// returned wrapped in common.ErrStorage.
func (s *Store) write(ctx context.Context, values map[string]any) error {
	encoded := make(map[string][]byte, len(values))
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			s.logger.Error(ctx, "encode value failed", "key", k, "error", err)
			return fmt.Errorf("%w: encode %s: %w", common.ErrStorage, k, err)
		}
		encoded[k] = b
	}

	var err error
	if len(encoded) == 1 {
		for k, b := range encoded {
			err = s.repo.Set(ctx, k, b)
		}
	} else {
		err = s.repo.SetMany(ctx, encoded)
	}
	if err != nil {
		keys := slices.Sorted(maps.Keys(encoded))
		s.logger.Error(ctx, "storage write failed", "keys", keys, "error", err)
		return fmt.Errorf("%w: write: %w", common.ErrStorage, err)
	}
	return nil
}

func (s *Store) remove(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		if err := s.repo.Delete(ctx, k); err != nil {
			s.logger.Error(ctx, "storage delete failed", "key", k, "error", err)
			return fmt.Errorf("%w: delete %s: %w", common.ErrStorage, k, err)
		}
	}
	return nil
}
