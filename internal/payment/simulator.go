package payment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Simulator stands in for the real payment provider in development. A
// configurable share of captures is refused so checkout failure paths
// stay exercised.
type Simulator struct {
	failureRate float64

	mu      sync.Mutex
	rng     *rand.Rand
	intents map[string]int64
}

// NewSimulator builds a simulator refusing roughly failureRate of
// captures (0 never fails, 1 always fails).
func NewSimulator(failureRate float64) *Simulator {
	return &Simulator{
		failureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		intents:     make(map[string]int64),
	}
}

func (s *Simulator) CreateIntent(_ context.Context, amountMinorUnits int64, currency string) (string, error) {
	if amountMinorUnits <= 0 {
		return "", fmt.Errorf("invalid amount %d %s", amountMinorUnits, currency)
	}
	id := "PI-" + uuid.NewString()
	s.mu.Lock()
	s.intents[id] = amountMinorUnits
	s.mu.Unlock()
	return id, nil
}

func (s *Simulator) Capture(_ context.Context, intentID string) (CaptureResult, error) {
	s.mu.Lock()
	_, known := s.intents[intentID]
	refused := s.rng.Float64() < s.failureRate
	s.mu.Unlock()

	if !known {
		return CaptureResult{}, fmt.Errorf("unknown payment intent %s", intentID)
	}

	result := CaptureResult{ID: "TXN-" + uuid.NewString(), Status: StatusCompleted}
	if refused {
		result.Status = StatusFailed
	}
	return result, nil
}
