package observe

import (
	"context"

	"github.com/ducka/go-kayak-rx/instrumentation"
	"github.com/ducka/go-kayak-rx/scheduler"
)

// Context is handed to producers and operations for each activation. It is cancelled when the
// activation is torn down.
type Context struct {
	context.Context
	Activity  string
	Scheduler scheduler.Scheduler
	Logger    instrumentation.Logger
	Measurer  instrumentation.Measurer
}

func NewContext(ctx context.Context, activity string) Context {
	return Context{
		Context:   ctx,
		Activity:  activity,
		Scheduler: scheduler.Default(),
		Logger:    instrumentation.Logging(),
		Measurer:  instrumentation.Metrics(),
	}
}
