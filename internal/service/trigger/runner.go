package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/dispatch"
)

var (
	ErrAlreadyStarted = errors.New("dispatch trigger already started")
	ErrInvalidSpec    = errors.New("invalid dispatch cron spec")
)

type Dispatcher interface {
	Run(ctx context.Context, now time.Time, runID string) (*dispatch.Response, error)
}

// Runner owns the in-process dispatch timer. A process registers it once;
// Start on a running Runner returns ErrAlreadyStarted.
type Runner struct {
	dispatcher Dispatcher
	spec       string
	loc        *time.Location
	parser     cron.Parser

	mu      sync.Mutex
	c       *cron.Cron
	cancel  context.CancelFunc
	started bool
}

func NewRunner(dispatcher Dispatcher, spec string, loc *time.Location) (*Runner, error) {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSpec, spec, err)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Runner{
		dispatcher: dispatcher,
		spec:       spec,
		loc:        loc,
		parser:     parser,
	}, nil
}

func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}

	logger := cronLogger{}
	c := cron.New(
		cron.WithParser(r.parser),
		cron.WithLocation(r.loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if _, err := c.AddFunc(r.spec, func() { r.tick(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("register dispatch job: %w", err)
	}

	c.Start()
	r.c = c
	r.cancel = cancel
	r.started = true

	slog.InfoContext(ctx, "dispatch trigger started",
		slog.String("spec", r.spec),
		slog.String("timezone", r.loc.String()),
	)
	return nil
}

// Stop halts the timer and waits for an in-flight run until ctx expires.
// The Runner can be started again afterwards.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return nil
	}

	done := r.c.Stop()
	r.started = false

	select {
	case <-done.Done():
		r.cancel()
		slog.InfoContext(ctx, "dispatch trigger stopped")
		return nil
	case <-ctx.Done():
		r.cancel()
		return fmt.Errorf("wait for running dispatch: %w", ctx.Err())
	}
}

func (r *Runner) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

func (r *Runner) tick(ctx context.Context) {
	resp, err := r.dispatcher.Run(ctx, time.Now().In(r.loc), "")
	if err != nil {
		slog.WarnContext(ctx, "scheduled dispatch run failed",
			slog.String("error", err.Error()),
		)
		return
	}

	slog.DebugContext(ctx, "scheduled dispatch run finished",
		slog.String("run_id", resp.RunID),
		slog.String("status", resp.Status.String()),
		slog.Int("sent", resp.SentCount),
	)
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
