// Package module defines the lifecycle shared by status sources.
package module

import (
	"context"

	"github.com/phinze/niceview/internal/event"
)

// Module is a status source. Modules post events to the bus from their own
// goroutines and never touch widgets directly.
type Module interface {
	// ID returns a short unique name used in logs.
	ID() string

	// Init starts the module. ctx is cancelled when the coordinator stops.
	Init(ctx context.Context, bus *event.Bus) error

	// Stop releases the module's resources.
	Stop() error
}

// BaseModule holds the state every module needs. Embed it and call its Init
// from the embedding type's Init.
type BaseModule struct {
	id  string
	ctx context.Context
	bus *event.Bus
}

// NewBaseModule creates a BaseModule with the given id.
func NewBaseModule(id string) BaseModule {
	return BaseModule{id: id}
}

// ID returns the module identifier.
func (b *BaseModule) ID() string {
	return b.id
}

// Init stores the context and bus.
func (b *BaseModule) Init(ctx context.Context, bus *event.Bus) error {
	b.ctx = ctx
	b.bus = bus
	return nil
}

// Stop is a no-op.
func (b *BaseModule) Stop() error {
	return nil
}

// Context returns the context passed to Init, or context.Background before
// Init.
func (b *BaseModule) Context() context.Context {
	if b.ctx == nil {
		return context.Background()
	}
	return b.ctx
}

// Post sends e to the bus. Events posted before Init are dropped.
func (b *BaseModule) Post(e event.Event) bool {
	if b.bus == nil {
		return false
	}
	return b.bus.Post(e)
}
