package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration for a smoke run.
type App struct {
	Name string `env:"APP_NAME" envDefault:"mealmax-smoke"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	// BaseURL is the deployed Meal Max API root, including any path prefix.
	BaseURL     string        `env:"SMOKE_BASE_URL" envDefault:"http://localhost:5000/api"`
	EchoJSON    bool          `env:"SMOKE_ECHO_JSON" envDefault:"false"`
	HTTPTimeout time.Duration `env:"SMOKE_HTTP_TIMEOUT" envDefault:"5s"`

	// WaitReady bounds the optional pre-flight health poll. Zero disables it;
	// the run itself never retries a step.
	WaitReady time.Duration `env:"SMOKE_WAIT_READY" envDefault:"0s"`

	Profile     string `env:"SMOKE_PROFILE" envDefault:"classic"`
	ProfileFile string `env:"SMOKE_PROFILE_FILE" envDefault:""`
	ReportPath  string `env:"SMOKE_REPORT" envDefault:""`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
