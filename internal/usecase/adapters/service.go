package adapters

import (
	"context"

	"websmith/internal/entity"
	"websmith/pkg/websmith"
)

type BrowserService interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	IsReady() bool
	Driver(ctx context.Context) (websmith.Driver, error)
}

// Attachment is a session kept open across interactive steps.
type Attachment interface {
	Session() *websmith.Session
	Driver() websmith.Driver
	Close() error
}

type ScenarioService interface {
	Run(ctx context.Context, scn *entity.Scenario) (*entity.Run, error)
	Attach(ctx context.Context) (Attachment, error)
	ExecuteStep(ctx context.Context, a Attachment, step entity.Step) (string, error)
}
