// Package pipeline sequences the per-line conversion: classify, build the
// request, fetch from the calculator, decode, format. Processing is strictly
// sequential and order-preserving; one line's failure never aborts the batch
// unless fail-fast is explicitly configured.
package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/alexKleider/declination/internal/domain"
	"github.com/alexKleider/declination/internal/observability"
)

// Fetcher retrieves the raw calculator response for one request. The
// transport mechanism behind it is an internal, swappable detail.
type Fetcher interface {
	Fetch(ctx context.Context, req domain.Request) (string, error)
}

// Stage names a pipeline stage for diagnostics and metrics.
type Stage string

const (
	StageBuild  Stage = "conversion"
	StageFetch  Stage = "lookup"
	StageDecode Stage = "decode"
)

// Options configures presentation and failure policy. Both are explicit
// values threaded into the driver — there is no package-level state.
type Options struct {
	// Header prefixes the output with the column-label line.
	Header bool
	// FailFast stops the batch on the first lookup or decode failure.
	// Per-line data-quality errors (malformed lines, bad numerics) are
	// always recovered locally.
	FailFast bool
}

// Pipeline drives the per-line conversion loop.
type Pipeline struct {
	fetcher Fetcher
	logger  *slog.Logger
	metrics *observability.Metrics
	opts    Options
	ready   atomic.Bool
}

// New creates a Pipeline with the given fetcher, observability, and options.
func New(f Fetcher, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		fetcher: f,
		logger:  logger,
		metrics: metrics,
		opts:    opts,
	}
}

// CheckReadiness returns nil once the pipeline has produced at least one
// report line, or an error describing why it is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any lines yet")
	}
	return nil
}

// Run consumes lines from r and writes output lines to w, in input order.
// The caller owns opening and closing both ends. The returned error is nil
// unless reading/writing fails, the context is cancelled, or fail-fast is
// set and a remote lookup or decode fails.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	p.metrics.BatchRunning.Set(1)
	defer p.metrics.BatchRunning.Set(0)

	out := bufio.NewWriter(w)

	if p.opts.Header {
		if err := writeLine(out, domain.HeaderLine); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		lines, err := p.ProcessLine(ctx, scanner.Text())
		if err != nil {
			// Fail-fast: flush what was produced before stopping.
			_ = out.Flush()
			return err
		}
		for _, line := range lines {
			if err := writeLine(out, line); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return out.Flush()
}

// ProcessLine converts one raw input line into its output lines: a single
// line for data, comments, and blanks; a diagnostic marker followed by the
// verbatim original for anything that failed. A non-nil error is returned
// only under the fail-fast policy.
func (p *Pipeline) ProcessLine(ctx context.Context, raw string) ([]string, error) {
	p.metrics.LinesRead.Inc()

	c := domain.ClassifyLine(raw, domain.MinFields)
	switch c.Kind {
	case domain.LineBlank, domain.LineComment:
		p.metrics.LinesEchoed.Inc()
		return []string{c.Raw}, nil
	case domain.LineMalformed:
		p.metrics.MalformedLines.Inc()
		p.logger.Warn("malformed input line", "line", raw)
		return []string{domain.MalformedMarker, c.Raw}, nil
	}

	req, err := domain.BuildRequest(c.Fields)
	if err != nil {
		// Data-quality errors are always local to the line.
		return p.reportFailure(StageBuild, raw, err), nil
	}

	rawResponse, err := p.fetcher.Fetch(ctx, req)
	if err != nil {
		return p.failLine(StageFetch, raw, err)
	}

	rep, err := domain.DecodeReport(rawResponse)
	if err != nil {
		return p.failLine(StageDecode, raw, err)
	}

	p.metrics.LinesFormatted.Inc()
	p.ready.Store(true)
	return []string{domain.FormatLine(req, rep)}, nil
}

// failLine handles a lookup or decode failure per the configured policy.
func (p *Pipeline) failLine(stage Stage, raw string, err error) ([]string, error) {
	if p.opts.FailFast {
		p.metrics.LineErrors.WithLabelValues(string(stage)).Inc()
		return nil, fmt.Errorf("%s failed on line %q: %w", stage, raw, err)
	}
	return p.reportFailure(stage, raw, err), nil
}

// reportFailure surfaces a per-line failure in the output itself so it is
// never silently dropped, and keeps the batch going.
func (p *Pipeline) reportFailure(stage Stage, raw string, err error) []string {
	p.metrics.LineErrors.WithLabelValues(string(stage)).Inc()
	p.logger.Warn("line failed", "stage", stage, "error", err, "line", raw)
	return []string{
		fmt.Sprintf("#! %s error for the following line: %v", stage, err),
		raw,
	}
}

func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
