package report

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/roster/errors"
	"github.com/kbukum/roster/logger"
	"github.com/kbukum/roster/observability"
	"github.com/kbukum/roster/roster"
)

// Option configures a report run.
type Option func(*writer)

// WithLogger sets the logger used for per-section debug lines.
func WithLogger(l *logger.Logger) Option {
	return func(w *writer) { w.log = l }
}

type writer struct {
	out     io.Writer
	log     *logger.Logger
	rc      *observability.RunContext
	started bool
}

// Run writes every report section for r to w, in order. The first header
// is written without a leading blank line; every later header gets one.
// Absent optional values leave only their header. Section spans and
// metrics use the observability.RunContext carried by ctx, if any.
func Run(ctx context.Context, w io.Writer, r roster.Roster, opts ...Option) error {
	rw := &writer{out: w}
	for _, opt := range opts {
		opt(rw)
	}
	if rw.rc == nil {
		rw.rc = observability.RunContextFromContext(ctx)
	}
	if rw.rc == nil {
		rw.rc = observability.NewRunContext("roster", "", nil)
	}
	if rw.log == nil {
		rw.log = logger.WithComponent("report")
	}

	for _, s := range sections {
		if err := rw.section(ctx, s, r); err != nil {
			return err
		}
	}
	return nil
}

func (rw *writer) section(ctx context.Context, s section, r roster.Roster) error {
	started := time.Now()
	ctx, span := rw.rc.StartSection(ctx, s.name)

	items := 0
	blocks, err := s.build(ctx, r)
	if err != nil {
		err = buildError(s.name, err)
	} else {
		items, err = rw.write(blocks)
		if err != nil {
			err = errors.OutputFailed(s.name, err)
		}
	}

	rw.rc.EndSection(ctx, span, s.name, items, started, err)

	log := rw.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldSection, s.name))
	fields := logger.MergeWithDuration(logger.Fields(logger.FieldItems, items), time.Since(started))
	if err != nil {
		if rw.rc.Metrics != nil {
			rw.rc.Metrics.RecordError(ctx, string(errors.Wrap(err).Code), "report")
		}
		log.Error("section failed", logger.MergeWithError(fields, err))
		return err
	}
	log.Debug("section written", fields)
	return nil
}

// write prints blocks and returns the number of value lines written.
func (rw *writer) write(blocks []block) (int, error) {
	items := 0
	for _, b := range blocks {
		if rw.started {
			if _, err := fmt.Fprintln(rw.out); err != nil {
				return items, err
			}
		}
		rw.started = true
		if _, err := fmt.Fprintln(rw.out, b.header); err != nil {
			return items, err
		}
		for _, line := range b.lines {
			if _, err := fmt.Fprintln(rw.out, line); err != nil {
				return items, err
			}
			items++
		}
	}
	return items, nil
}

func buildError(name string, err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Canceled(err).WithDetail("section", name)
	}
	return errors.Wrap(err).WithDetail("section", name)
}
