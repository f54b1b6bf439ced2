package executor

import (
	"context"
	"fmt"

	"github.com/albashop/alba/db"
)

// JobExecutor routes a claimed job to the code that can run it.
type JobExecutor interface {
	Execute(ctx context.Context, job db.Job) error
}

// JobHandler processes a specific type of job
type JobHandler interface {
	Handle(ctx context.Context, job db.Job) error
}

// DefaultExecutor dispatches jobs by type over a static registry.
type DefaultExecutor struct {
	registry map[string]JobHandler
}

// NewExecutor creates an executor with the given handlers
func NewExecutor(handlers map[string]JobHandler) *DefaultExecutor {
	return &DefaultExecutor{
		registry: handlers,
	}
}

// Execute implements the JobExecutor interface
func (e *DefaultExecutor) Execute(ctx context.Context, job db.Job) error {
	handler, exists := e.registry[job.JobType]
	if !exists {
		return fmt.Errorf("no handler registered for job type: %s", job.JobType)
	}

	return handler.Handle(ctx, job)
}
