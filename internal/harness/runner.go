package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const waitPollInterval = 250 * time.Millisecond

// Options tunes a run without reaching for globals.
type Options struct {
	// EchoJSON prints the pretty-printed body of successful query steps.
	EchoJSON bool
	// Stdout receives step progress. Defaults to os.Stdout.
	Stdout io.Writer
}

// Runner executes a plan strictly in order, one blocking call at a time,
// and stops at the first failed step. Steps are never retried.
type Runner struct {
	api    API
	opts   Options
	logger zerolog.Logger
}

func New(api API, opts Options, logger zerolog.Logger) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Runner{
		api:    api,
		opts:   opts,
		logger: logger.With().Str("component", "runner").Logger(),
	}
}

// Run walks the steps and returns the results of every step that
// executed. The error names the first failed step; steps after it are
// never attempted.
func (r *Runner) Run(ctx context.Context, steps []Step) ([]Result, error) {
	results := make([]Result, 0, len(steps))
	for i, step := range steps {
		fmt.Fprintf(r.opts.Stdout, "[%d/%d] %s... ", i+1, len(steps), step.Name)

		start := time.Now()
		out := step.Run(ctx)
		res := Result{
			Index:    i + 1,
			Name:     step.Name,
			Passed:   out.Err == nil,
			Detail:   out.Detail,
			Body:     out.Body,
			Err:      out.Err,
			Duration: time.Since(start),
		}
		results = append(results, res)

		if out.Err != nil {
			fmt.Fprintln(r.opts.Stdout, "FAILED")
			fmt.Fprintf(r.opts.Stdout, "  %v\n", out.Err)
			if len(out.Body) > 0 {
				fmt.Fprintf(r.opts.Stdout, "  response: %s\n", bytes.TrimSpace(out.Body))
			}
			r.logger.Error().Err(out.Err).Str("step", step.Name).Msg("step failed")
			return results, fmt.Errorf("step %q: %w", step.Name, out.Err)
		}

		fmt.Fprintln(r.opts.Stdout, "ok")
		if out.Detail != "" {
			fmt.Fprintf(r.opts.Stdout, "  %s\n", out.Detail)
		}
		if r.opts.EchoJSON && step.Echo {
			r.echo(out.Body)
		}
		r.logger.Debug().Str("step", step.Name).Dur("took", res.Duration).Msg("step passed")
	}
	return results, nil
}

// echo pretty-prints a JSON body, degrading to the raw text when the
// body does not indent cleanly.
func (r *Runner) echo(body []byte) {
	if len(bytes.TrimSpace(body)) == 0 {
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "  ", "  "); err != nil {
		fmt.Fprintf(r.opts.Stdout, "  %s\n", bytes.TrimSpace(body))
		return
	}
	fmt.Fprintf(r.opts.Stdout, "  %s\n", buf.String())
}

// WaitReady polls the health route until it answers healthy or the
// window elapses. Zero disables the wait. This only absorbs cold starts
// before a run; the steps themselves never retry.
func (r *Runner) WaitReady(ctx context.Context, window time.Duration) error {
	if window <= 0 {
		return nil
	}
	deadline := time.Now().Add(window)
	healthy := r.api.Profile().HealthValue
	for {
		resp, _, err := r.api.Health(ctx)
		if err == nil && resp.Status == healthy {
			return nil
		}
		if err == nil {
			err = fmt.Errorf("status %q, want %q", resp.Status, healthy)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("service not ready after %s: %w", window, err)
		}
		r.logger.Debug().Err(err).Msg("not ready yet")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitPollInterval):
		}
	}
}
