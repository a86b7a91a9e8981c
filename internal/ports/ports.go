package ports

import (
	"context"

	"websmith/pkg/websmith"
)

// BrowserManager owns the lifecycle of whatever the Driver talks to.
type BrowserManager interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	IsReady() bool
	Driver(ctx context.Context) (websmith.Driver, error)
}

type MetricsRecorder interface {
	websmith.Observer
	ObserveStep(action string, err error)
	ObserveScenario(err error)
	WriteTextfile(path string) error
}
