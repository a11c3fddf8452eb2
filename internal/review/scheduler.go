package review

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// schedule runs the planned tasks and collects one result per started task.
// With no bound every task launches immediately; with a bound of N at most N
// tasks are ever in flight. After shutdown is requested no unstarted task
// starts; in-flight tasks run to their own terminal state and are never
// force-killed. Returns the results plus the count of never-started tasks.
func schedule(ctx context.Context, tasks []Task, maxParallel *int, flag *ShutdownFlag, env workerEnv) ([]WorkerResult, int) {
	total := len(tasks)
	if total == 0 {
		return nil, 0
	}

	if maxParallel == nil {
		env.Logger.Info("running workers with unlimited parallelism", zap.Int("tasks", total))
		return scheduleUnbounded(ctx, tasks, env), 0
	}

	n := *maxParallel
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	env.Logger.Info("running workers with bounded parallelism",
		zap.Int("tasks", total), zap.Int("max_parallel", n))
	return scheduleBounded(ctx, tasks, n, flag, env)
}

func scheduleUnbounded(ctx context.Context, tasks []Task, env workerEnv) []WorkerResult {
	results := make([]WorkerResult, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task Task) {
			defer wg.Done()
			results[i] = runWorker(ctx, strconv.Itoa(i), task, env)
		}(i, task)
	}
	wg.Wait()
	return results
}

// scheduleBounded runs n runner goroutines pulling from a shared cursor.
// Each runner re-checks the shutdown flag before claiming the next task, so
// no task starts after shutdown and at most n are in flight at any instant.
func scheduleBounded(ctx context.Context, tasks []Task, n int, flag *ShutdownFlag, env workerEnv) ([]WorkerResult, int) {
	var (
		mu      sync.Mutex
		next    int
		results []WorkerResult
		wg      sync.WaitGroup
	)

	for r := 0; r < n; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				if next >= len(tasks) || flag.Raised() {
					mu.Unlock()
					return
				}
				i := next
				next++
				mu.Unlock()

				result := runWorker(ctx, strconv.Itoa(i), tasks[i], env)

				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	neverStarted := len(tasks) - next
	if neverStarted > 0 {
		env.Logger.Warn("shutdown requested, tasks never started",
			zap.Int("never_started", neverStarted))
	}
	return results, neverStarted
}
