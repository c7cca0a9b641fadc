package system

import (
	"context"

	"github.com/dungeons/server/internal/core/event"
	coresys "github.com/dungeons/server/internal/core/system"
	"github.com/dungeons/server/internal/handler"
	"github.com/dungeons/server/internal/net"
	"github.com/dungeons/server/internal/world"
	"go.uber.org/zap"
)

// EventSource feeds the loop. *net.Server implements it.
type EventSource interface {
	Events() <-chan net.Event
	Errors() <-chan error
}

// LoopOptions wires a Loop. Spectators and Bus are optional.
type LoopOptions struct {
	World      *world.State
	Bus        *event.Bus
	Source     EventSource
	Spectators Broadcaster
	Log        *zap.Logger
}

// Loop is the single goroutine that owns the world. Each network event runs
// one step to completion: input, broadcast, then event delivery.
type Loop struct {
	src    EventSource
	runner *coresys.Runner
	input  *InputSystem
	store  *SessionStore
	err    error
	log    *zap.Logger
}

func NewLoop(opts LoopOptions) *Loop {
	if opts.World == nil || opts.Source == nil {
		panic("system: NewLoop needs a world and an event source")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	l := &Loop{
		src:    opts.Source,
		runner: coresys.NewRunner(),
		store:  NewSessionStore(),
		log:    log,
	}

	registry := handler.NewDispatcher(opts.World, log)
	l.input = NewInputSystem(opts.World, registry, l.store, l.fail, log)

	l.runner.Register(l.input)
	l.runner.Register(NewOutputSystem(opts.World, l.store, opts.Spectators, l.fail, log))
	l.runner.Register(NewPersistenceSystem(opts.Bus))
	return l
}

func (l *Loop) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

// Step processes one event to completion.
func (l *Loop) Step(ev net.Event) {
	l.input.Push(ev)
	l.runner.Step()
}

// Sessions returns the number of sessions bound to a player.
func (l *Loop) Sessions() int {
	return l.store.Len()
}

// Run processes events until ctx is done or a transport failure occurs.
// A clean stop returns nil.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-l.src.Errors():
			return err
		case ev := <-l.src.Events():
			l.Step(ev)
			if l.err != nil {
				return l.err
			}
		}
	}
}
