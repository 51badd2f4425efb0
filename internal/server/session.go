package server

import (
	"context"

	"github.com/preston-bernstein/winprob-viewer/internal/session"
)

// Session defines the lifecycle the server drives on the viewer session.
type Session interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() session.Status
}
