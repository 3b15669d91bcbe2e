package services

import (
	"context"

	"dinehall/utils"
)

// SagaStep is one forward action with its compensating undo. The store
// exposes no multi-table transactions to this layer, so multi-step writes
// are coordinated as explicit compensation sequences instead.
type SagaStep struct {
	Name string
	Run  func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Saga runs steps in order. On failure the undo actions of every completed
// step run in reverse on a non-cancellable context: compensation must
// finish even when the caller is tearing down its own context.
type Saga struct {
	steps []SagaStep
}

func (s *Saga) Add(step SagaStep) {
	s.steps = append(s.steps, step)
}

func (s *Saga) Run(ctx context.Context) error {
	var done []SagaStep
	for _, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			s.compensate(ctx, done)
			return utils.PartialFailure("step "+step.Name+" failed", err)
		}
		done = append(done, step)
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context, done []SagaStep) {
	undoCtx := context.WithoutCancel(ctx)
	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.Undo == nil {
			continue
		}
		if err := step.Undo(undoCtx); err != nil {
			utils.ErrorLogger.Printf("saga: undo of %s failed: %v", step.Name, err)
		}
	}
}
