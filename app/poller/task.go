package poller

import (
	"context"
	"errors"
	"time"

	"github.com/umputun/admax/app/api"
)

// TaskFetcher returns status of a remote task
type TaskFetcher interface {
	GetTask(ctx context.Context, taskID string) (api.Task, error)
}

// WaitTask polls the task until SUCCESS, FAILURE or REVOKED.
// Failed and revoked tasks are returned with *TaskError after polling stopped.
func WaitTask(ctx context.Context, m *Manager[api.Task], fetcher TaskFetcher, taskID string, interval time.Duration) (api.Task, error) {
	opts := Options[api.Task]{
		Interval:      interval,
		IsFinished:    api.Task.Terminal,
		NeedInterrupt: api.Task.Failed,
	}
	task, err := m.Poll(ctx, taskID, func(ctx context.Context) (api.Task, error) {
		return fetcher.GetTask(ctx, taskID)
	}, opts)
	if errors.Is(err, ErrInterrupted) {
		return task, &TaskError{TaskID: taskID, Status: string(task.Status), Message: task.Error}
	}
	return task, err
}
