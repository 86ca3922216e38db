// Package reactor runs the event loop that ties the virtual gamepad, the
// physical device and the console together.
package reactor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bnema/gammapad/internal/console"
	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/logger"
	"github.com/bnema/gammapad/internal/scheduler"
	"github.com/bnema/gammapad/internal/uinput"
)

// Source delivers batches of events read from one descriptor.
type Source interface {
	ReadEvents() ([]input.Event, error)
}

// Forwarder delivers physical events to the virtual gamepad.
type Forwarder interface {
	Forward(ev input.Event) error
}

// Feedback services force feedback traffic from the virtual gamepad.
type Feedback interface {
	HandleRequest(ev input.Event)
	HandlePlayback(ev input.Event)
}

// Pointer is the virtual mouse.
type Pointer interface {
	Move(dx, dy int32) error
	Button(code uint16, pressed bool) error
	Scroll(delta int32, horizontal bool) error
}

// Options wires the reactor. Gamepad, Feedback and Scheduler are required.
type Options struct {
	Gamepad   Source
	Feedback  Feedback
	Scheduler *scheduler.Scheduler

	Physical  Source
	Forwarder Forwarder
	Console   io.Reader
	Mouse     Pointer

	Clock           clock.Clock
	PollInterval    time.Duration
	DefaultDuration time.Duration

	// Help is called for the console help command.
	Help func()
}

// Reactor owns the scheduler and force feedback state. Everything it owns is
// touched only from the goroutine running Run.
type Reactor struct {
	opts Options
}

// ErrNoGamepad is returned when the reactor has no virtual gamepad to serve.
var ErrNoGamepad = errors.New("reactor requires a gamepad source")

func New(opts Options) (*Reactor, error) {
	if opts.Gamepad == nil {
		return nil, ErrNoGamepad
	}
	if opts.Feedback == nil || opts.Scheduler == nil {
		return nil, fmt.Errorf("reactor requires feedback and scheduler")
	}
	if opts.Physical != nil && opts.Forwarder == nil {
		return nil, fmt.Errorf("reactor requires a forwarder for the physical source")
	}
	if opts.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid poll interval %s", opts.PollInterval)
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = 3 * time.Second
	}
	if opts.Help == nil {
		opts.Help = func() {}
	}
	return &Reactor{opts: opts}, nil
}

type batch struct {
	events []input.Event
	err    error
}

// Run processes events until ctx is cancelled or the console asks to exit.
func (r *Reactor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gamepad := r.pumpSource(ctx, r.opts.Gamepad)
	var physical <-chan batch
	if r.opts.Physical != nil {
		physical = r.pumpSource(ctx, r.opts.Physical)
	}
	var lines <-chan string
	if r.opts.Console != nil {
		lines = pumpLines(ctx, r.opts.Console)
	}

	ticker := r.opts.Clock.Ticker(r.opts.PollInterval)
	defer ticker.Stop()

	logger.Debug("Reactor started", "poll", r.opts.PollInterval)
	for {
		if err := r.opts.Scheduler.Sweep(); err != nil {
			logger.Warn("Failed to release synthetic event", "error", err)
		}

		select {
		case <-ctx.Done():
			logger.Debug("Reactor stopping")
			return nil

		case b, ok := <-gamepad:
			if !ok {
				gamepad = nil
				continue
			}
			if b.err != nil {
				logSourceError("gamepad", b.err)
				continue
			}
			for _, ev := range b.events {
				r.handleGamepad(ev)
			}

		case b, ok := <-physical:
			if !ok {
				physical = nil
				continue
			}
			if b.err != nil {
				logSourceError("physical", b.err)
				continue
			}
			for _, ev := range b.events {
				if err := r.opts.Forwarder.Forward(ev); err != nil {
					logger.Warn("Failed to forward event", "event", ev, "error", err)
				}
			}

		case line, ok := <-lines:
			if !ok {
				logger.Debug("Console closed")
				lines = nil
				continue
			}
			if r.handleLine(line) {
				logger.Info("Exit requested from console")
				return nil
			}

		case <-ticker.C:
		}
	}
}

func (r *Reactor) handleGamepad(ev input.Event) {
	switch ev.Type {
	case input.EvUinput:
		r.opts.Feedback.HandleRequest(ev)
	case input.EvFF:
		r.opts.Feedback.HandlePlayback(ev)
	}
}

// handleLine executes one console line and reports whether it was exit.
func (r *Reactor) handleLine(line string) bool {
	cmd, ok := console.Parse(line, r.opts.DefaultDuration)
	if !ok {
		return false
	}

	var err error
	switch cmd.Op {
	case console.OpExit:
		return true
	case console.OpHelp:
		r.opts.Help()
	case console.OpPress, console.OpPush:
		_, err = r.opts.Scheduler.Schedule(cmd.Kind, cmd.Code, cmd.Value, cmd.Duration)
	case console.OpMove, console.OpClick, console.OpScroll:
		err = r.mouse(cmd)
	}
	if err != nil {
		logger.Warn("Console command failed", "line", line, "error", err)
	}
	return false
}

func (r *Reactor) mouse(cmd console.Command) error {
	m := r.opts.Mouse
	if m == nil {
		logger.Warn("No virtual mouse available")
		return nil
	}
	switch cmd.Op {
	case console.OpMove:
		return m.Move(cmd.DX, cmd.DY)
	case console.OpClick:
		if err := m.Button(cmd.Code, true); err != nil {
			return err
		}
		return m.Button(cmd.Code, false)
	case console.OpScroll:
		return m.Scroll(cmd.Value, cmd.Horizontal)
	}
	return nil
}

func logSourceError(name string, err error) {
	switch {
	case isClosed(err):
		logger.Debug("Source closed", "source", name)
	case isTerminal(err):
		logger.Warn("Source stopped", "source", name, "error", err)
	default:
		logger.Warn("Read failed", "source", name, "error", err)
	}
}

func isClosed(err error) bool {
	return errors.Is(err, uinput.ErrClosed) || errors.Is(err, os.ErrClosed) || errors.Is(err, io.EOF)
}

// isTerminal reports whether a source can never be read again.
func isTerminal(err error) bool {
	return isClosed(err) || errors.Is(err, syscall.ENODEV)
}

// pumpSource reads src until it fails for good. Other read errors are
// delivered and reading resumes after one poll interval. A terminal error is
// the last batch before the channel closes.
func (r *Reactor) pumpSource(ctx context.Context, src Source) <-chan batch {
	ch := make(chan batch)
	go func() {
		defer close(ch)
		for {
			events, err := src.ReadEvents()
			if err == nil && len(events) == 0 {
				continue
			}
			select {
			case ch <- batch{events: events, err: err}:
			case <-ctx.Done():
				return
			}
			if err == nil {
				continue
			}
			if isTerminal(err) {
				return
			}
			select {
			case <-r.opts.Clock.After(r.opts.PollInterval):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func pumpLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Warn("Console read failed", "error", err)
		}
	}()
	return ch
}
