package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"dinehall/utils"
)

func TestSagaRunsStepsInOrder(t *testing.T) {
	utils.InitLogger()
	var trace []string

	var saga Saga
	saga.Add(SagaStep{
		Name: "first",
		Run: func(ctx context.Context) error {
			trace = append(trace, "first")
			return nil
		},
		Undo: func(ctx context.Context) error {
			trace = append(trace, "undo-first")
			return nil
		},
	})
	saga.Add(SagaStep{
		Name: "second",
		Run: func(ctx context.Context) error {
			trace = append(trace, "second")
			return nil
		},
	})

	assert.NoError(t, saga.Run(context.Background()))
	assert.Equal(t, []string{"first", "second"}, trace)
}

func TestSagaCompensatesInReverseOrder(t *testing.T) {
	utils.InitLogger()
	var trace []string

	var saga Saga
	saga.Add(SagaStep{
		Name: "first",
		Run:  func(ctx context.Context) error { trace = append(trace, "first"); return nil },
		Undo: func(ctx context.Context) error { trace = append(trace, "undo-first"); return nil },
	})
	saga.Add(SagaStep{
		Name: "second",
		Run:  func(ctx context.Context) error { trace = append(trace, "second"); return nil },
		Undo: func(ctx context.Context) error { trace = append(trace, "undo-second"); return nil },
	})
	saga.Add(SagaStep{
		Name: "third",
		Run:  func(ctx context.Context) error { return errors.New("boom") },
		Undo: func(ctx context.Context) error { trace = append(trace, "undo-third"); return nil },
	})

	err := saga.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, utils.KindPartialFailure, utils.KindOf(err))
	assert.Contains(t, err.Error(), "third")

	// The failing step is not compensated; completed steps are, newest first.
	assert.Equal(t, []string{"first", "second", "undo-second", "undo-first"}, trace)
}

func TestSagaSkipsNilUndo(t *testing.T) {
	utils.InitLogger()
	var undone bool

	var saga Saga
	saga.Add(SagaStep{
		Name: "first",
		Run:  func(ctx context.Context) error { return nil },
		Undo: func(ctx context.Context) error { undone = true; return nil },
	})
	saga.Add(SagaStep{
		Name: "second",
		Run:  func(ctx context.Context) error { return nil },
	})
	saga.Add(SagaStep{
		Name: "third",
		Run:  func(ctx context.Context) error { return errors.New("boom") },
	})

	assert.Error(t, saga.Run(context.Background()))
	assert.True(t, undone)
}

func TestSagaCompensationSurvivesCanceledContext(t *testing.T) {
	utils.InitLogger()
	ctx, cancel := context.WithCancel(context.Background())

	var undoErr error
	var saga Saga
	saga.Add(SagaStep{
		Name: "insert",
		Run:  func(ctx context.Context) error { return nil },
		Undo: func(ctx context.Context) error {
			undoErr = ctx.Err()
			return nil
		},
	})
	saga.Add(SagaStep{
		Name: "fail",
		Run: func(ctx context.Context) error {
			cancel()
			return errors.New("caller went away")
		},
	})

	err := saga.Run(ctx)
	assert.Error(t, err)
	// The undo ran on a context detached from the caller's cancellation.
	assert.NoError(t, undoErr)
}
