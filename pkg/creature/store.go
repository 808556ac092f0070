package creature

import (
	"sync"
	"time"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/entities"
	"Macho-AI-Backend/pkg/engine"
)

// DefaultEatingDuration is how long the eating animation flag stays up after
// a meal is applied.
const DefaultEatingDuration = 2 * time.Second

// Store owns the one live CreatureState. Every mutation goes through the
// mutex, so exactly one writer exists at any time; the feed queue upstream
// guarantees records arrive one at a time.
type Store struct {
	mu             sync.Mutex
	state          entities.CreatureState
	targets        entities.DailyMacros
	eatingDuration time.Duration

	// eatGen invalidates pending eating-clear timers when the state is
	// replaced wholesale by a reset or a snapshot restore.
	eatGen uint64
}

func NewStore(targets entities.DailyMacros) *Store {
	return &Store{
		state:          entities.NewCreatureState(),
		targets:        targets,
		eatingDuration: DefaultEatingDuration,
	}
}

func (s *Store) Targets() entities.DailyMacros {
	return s.targets
}

// State returns a deep copy of the current state.
func (s *Store) State() entities.CreatureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Apply runs one engine transition and schedules the eating-flag clear.
func (s *Store) Apply(analysis domain.FoodAnalysis, now time.Time) (entities.CreatureState, []engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, events := engine.Transition(s.state, analysis, s.targets, now)
	s.state = next

	if next.IsEating {
		s.eatGen++
		gen := s.eatGen
		time.AfterFunc(s.eatingDuration, func() {
			s.clearEating(gen)
		})
	}
	return next.Clone(), events
}

// clearEating is idempotent and a stale generation is a no-op, so a timer
// left over from before a reset or restore cannot patch the new state.
func (s *Store) clearEating(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.eatGen {
		return
	}
	s.state.IsEating = false
}

// Reset replaces the state wholesale with the baseline.
func (s *Store) Reset() entities.CreatureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eatGen++
	s.state = entities.NewCreatureState()
	return s.state.Clone()
}

// Restore replaces the state wholesale with a decoded snapshot.
func (s *Store) Restore(state entities.CreatureState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eatGen++
	s.state = state.Clone()
}
