package async

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes multiple tasks concurrently and waits for all of
// them to finish. The first error is returned, wrapped with the name of
// the task that produced it. Once a task fails, the context passed to
// the remaining tasks is canceled.
//
// A limit greater than zero bounds how many tasks run at the same time;
// zero or negative means unbounded.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "clab-srl-leaf1", Func: check("clab-srl-leaf1")},
//	    {Name: "clab-srl-leaf2", Func: check("clab-srl-leaf2")},
//	}
//	if err := RunParallel(ctx, tasks, 8); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, task := range tasks {
		g.Go(func() error {
			if err := task.Func(ctx); err != nil {
				return fmt.Errorf("%s: %w", task.Name, err)
			}
			return nil
		})
	}

	return g.Wait()
}
