//go:build integration
// +build integration

package integration

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mealmax/smoke-harness/internal/harness"
)

func TestHealthEndpoint(t *testing.T) {
	client := newClient(t)

	health, raw, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health check request failed: %v", err)
	}
	if health.Status != "healthy" {
		t.Fatalf("unexpected health status %q (body: %s)", health.Status, raw)
	}
}

func TestDBCheckEndpoint(t *testing.T) {
	client := newClient(t)

	db, raw, err := client.DBCheck(context.Background())
	if err != nil {
		t.Fatalf("db check request failed: %v", err)
	}
	if db.DatabaseStatus != "healthy" {
		t.Fatalf("unexpected database status %q (body: %s)", db.DatabaseStatus, raw)
	}
}

// TestFullSmokePlan runs the complete plan against a live deployment.
// It mutates the deployment's catalog; point it at scratch environments
// only.
func TestFullSmokePlan(t *testing.T) {
	client := newClient(t)
	runner := harness.New(client, harness.Options{Stdout: io.Discard}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if window := os.Getenv("SMOKE_WAIT_READY"); window != "" {
		d, err := time.ParseDuration(window)
		if err != nil {
			t.Fatalf("parse SMOKE_WAIT_READY: %v", err)
		}
		if err := runner.WaitReady(ctx, d); err != nil {
			t.Fatalf("service never became ready: %v", err)
		}
	}

	steps, err := harness.BuildPlan(client, harness.DefaultScenarios())
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}

	results, err := runner.Run(ctx, steps)
	if err != nil {
		t.Fatalf("smoke run failed after %d steps: %v", len(results), err)
	}
	if len(results) != len(steps) {
		t.Fatalf("executed %d of %d steps", len(results), len(steps))
	}

	last := results[len(results)-1]
	if last.Name != "battle" || last.Detail == "" {
		t.Fatalf("battle step finished without naming a winner: %+v", last)
	}
}
