package service

import (
	"context"
	"fmt"
	"sync"
)

type Task[T any] struct {
	ID  string
	Run func(ctx context.Context) (T, error)
}

// Outcome is the settled result of one Task: either Value or Err.
type Outcome[T any] struct {
	Value T
	Err   error
}

type taskResult[T any] struct {
	ID      string
	Outcome Outcome[T]
}

// SettleAll runs every task concurrently and waits for all of them, no
// matter how many fail. A panicking task settles as an error. The result
// holds one Outcome per task ID.
func SettleAll[T any](ctx context.Context, tasks []Task[T]) map[string]Outcome[T] {
	resultCh := make(chan taskResult[T], len(tasks))

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task Task[T]) {
			defer wg.Done()
			resultCh <- taskResult[T]{
				ID:      task.ID,
				Outcome: runTask(ctx, task),
			}
		}(task)
	}

	wg.Wait()
	close(resultCh)

	out := make(map[string]Outcome[T], len(tasks))
	for res := range resultCh {
		out[res.ID] = res.Outcome
	}
	return out
}

func runTask[T any](ctx context.Context, task Task[T]) (outcome Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome[T]{Err: fmt.Errorf("task %s panicked: %v", task.ID, r)}
		}
	}()
	value, err := task.Run(ctx)
	return Outcome[T]{Value: value, Err: err}
}
