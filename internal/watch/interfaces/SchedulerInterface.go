package interfaces

import "context"

type SchedulerInterface interface {
	Init() error
	Stop()
	Restore(ctx context.Context) error
	Refresh(ctx context.Context) error
}
