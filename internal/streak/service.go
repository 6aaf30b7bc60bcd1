package streak

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the group streak engine: day completion, recalculation,
// at-risk detection, insurance and the proactive sweep.
//
// All mutations of a group's streak record go through a per-group mutex, so
// a check-in recalculation and an insurance application for the same group
// never interleave even when requests run concurrently.
type Service struct {
	store    Store
	notifier Notifier
	clock    Clock
	log      *zap.SugaredLogger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

type Option func(*Service)

// WithClock pins the engine's calendar, used by tests.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Service) { s.log = l }
}

func New(store Store, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		clock:    systemClock{},
		log:      zap.NewNop().Sugar(),
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lockGroup returns the mutex serializing writes to one group's record.
// Locks are never released from the map; group counts are small.
func (s *Service) lockGroup(groupID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lk, ok := s.locks[groupID]
	if !ok {
		lk = &sync.Mutex{}
		s.locks[groupID] = lk
	}
	return lk
}

// Today exposes the engine's clock so callers resolve "today" consistently
// with recalculation.
func (s *Service) Today() Day {
	return s.clock.Today()
}
