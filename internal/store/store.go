// Package store emulates the hosted backend client TaskHub was written
// against: chainable query builders over the profiles and tasks
// collections, an authentication subsystem with change notifications and
// lazy repair of stored data, all persisted in a kv.Repository.
//
// Every operation waits a fixed latency, then runs its whole
// read-modify-write under a store-wide mutex. Listeners are called after
// the mutex is released, so they may use the store themselves.
package store

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/kv"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/dmitrijs2005/taskhub/internal/models"
	"github.com/google/uuid"
)

const (
	DefaultLatency  = 50 * time.Millisecond
	DefaultTokenTTL = 7 * 24 * time.Hour
)

var defaultTokenSecret = []byte("taskhub-local-secret")

type Store struct {
	repo   kv.Repository
	logger logging.Logger

	mu sync.Mutex

	latency        time.Duration
	now            func() time.Time
	newID          func() string
	tokenSecret    []byte
	tokenTTL       time.Duration
	masterPassword string

	listeners *registry
}

type Option func(*Store)

// WithLatency sets the simulated delay before each operation.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces time.Now for timestamps and token issue times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator used for new records.
func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

func WithTokenSecret(secret []byte) Option {
	return func(s *Store) { s.tokenSecret = secret }
}

// WithTokenTTL sets the session lifetime. Zero issues tokens without expiry.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Store) { s.tokenTTL = ttl }
}

// WithMasterPassword sets the password of the seeded administrator.
func WithMasterPassword(p string) Option {
	return func(s *Store) { s.masterPassword = p }
}

func New(repo kv.Repository, opts ...Option) *Store {
	s := &Store{
		repo:           repo,
		logger:         logging.Discard(),
		latency:        DefaultLatency,
		now:            time.Now,
		newID:          uuid.NewString,
		tokenSecret:    defaultTokenSecret,
		tokenTTL:       DefaultTokenTTL,
		masterPassword: common.DefaultMasterPassword,
		listeners:      newRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store")
	return s
}

// TokenSecret returns the key session tokens are signed with.
func (s *Store) TokenSecret() []byte {
	return s.tokenSecret
}

// Auth returns the authentication subsystem.
func (s *Store) Auth() *Auth {
	return &Auth{s: s}
}

// From returns the table for a collection. It panics on an unknown
// collection: that is a programming error, not a runtime condition.
func (s *Store) From(c Collection) *Table {
	if !c.Valid() {
		panic("store: " + common.ErrUnknownCollection.Error() + " " + string(c))
	}
	return &Table{s: s, c: c}
}

// Lookup is From for names that come from outside the program.
func (s *Store) Lookup(name string) (*Table, error) {
	c := Collection(name)
	if !c.Valid() {
		return nil, fmtUnknown(name)
	}
	return &Table{s: s, c: c}, nil
}

// delay simulates the round trip. It is deliberately not cancellable so
// that a started operation always completes.
func (s *Store) delay() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

func (s *Store) timestamp() string {
	return models.FormatTimestamp(s.now())
}
