//go:build integration
// +build integration

package integration

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/mealmax/smoke-harness/internal/config"
	"github.com/mealmax/smoke-harness/internal/mealapi"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// newClient builds a Meal Max client against the deployment under test.
// SMOKE_BASE_URL points at the API root, SMOKE_PROFILE picks the
// endpoint contract.
func newClient(t *testing.T) *mealapi.Client {
	t.Helper()

	baseURL := envOrDefault("SMOKE_BASE_URL", "http://localhost:5000/api")
	profileName := envOrDefault("SMOKE_PROFILE", "classic")

	profile, err := config.ResolveProfile(profileName, os.Getenv("SMOKE_PROFILE_FILE"))
	if err != nil {
		t.Fatalf("resolve profile: %v", err)
	}
	return mealapi.NewClient(baseURL, profile, &http.Client{Timeout: 10 * time.Second})
}
