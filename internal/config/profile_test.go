package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinProfilesDiverge(t *testing.T) {
	classic, err := ResolveProfile("classic", "")
	require.NoError(t, err)
	board, err := ResolveProfile("leaderboard", "")
	require.NoError(t, err)

	assert.Equal(t, "/get-all-meals", classic.ListMeals.Path)
	assert.Equal(t, "/get-leaderboard", board.ListMeals.Path)

	assert.False(t, classic.NameQuery)
	assert.True(t, board.NameQuery)

	assert.Equal(t, "DELETE", classic.ClearCombatants.Method)
	assert.Equal(t, "POST", board.ClearCombatants.Method)

	assert.Equal(t, "GET", classic.Battle.Method)
	assert.Equal(t, "POST", board.Battle.Method)
	assert.False(t, classic.WinnerOnly)
	assert.True(t, board.WinnerOnly)

	// Shared contract.
	for _, p := range []Profile{classic, board} {
		assert.Equal(t, "healthy", p.HealthValue)
		assert.Equal(t, "success", p.SuccessValue)
		assert.Equal(t, "/health", p.Health.Path)
		require.NoError(t, p.validate())
	}
}

func TestResolveProfileUnknownName(t *testing.T) {
	_, err := ResolveProfile("staging", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown profile "staging"`)
	assert.Contains(t, err.Error(), "classic")
	assert.Contains(t, err.Error(), "leaderboard")
}

func TestParseProfileOverridesClassicDefaults(t *testing.T) {
	p, err := ParseProfile([]byte(`
name = "staging"
winner_only = true

[battle]
method = "POST"
path = "/battle"

[list_meals]
method = "GET"
path = "/meals"
`))
	require.NoError(t, err)

	assert.Equal(t, "staging", p.Name)
	assert.Equal(t, Route{Method: "POST", Path: "/battle"}, p.Battle)
	assert.Equal(t, Route{Method: "GET", Path: "/meals"}, p.ListMeals)
	assert.True(t, p.WinnerOnly)
	// Untouched routes keep classic defaults.
	assert.Equal(t, Route{Method: "GET", Path: "/health"}, p.Health)
	assert.Equal(t, Route{Method: "DELETE", Path: "/delete-meal/{id}"}, p.DeleteMeal)
}

func TestParseProfileRejectsBadRoutes(t *testing.T) {
	cases := []struct {
		name string
		toml string
		want string
	}{
		{
			name: "bad method",
			toml: "[battle]\nmethod = \"FIGHT\"\npath = \"/battle\"",
			want: "unsupported method",
		},
		{
			name: "relative path",
			toml: "[health]\nmethod = \"GET\"\npath = \"health\"",
			want: "must start with /",
		},
		{
			name: "missing id segment",
			toml: "[delete_meal]\nmethod = \"DELETE\"\npath = \"/delete-meal\"",
			want: "{id}",
		},
		{
			name: "missing name segment",
			toml: "[meal_by_name]\nmethod = \"GET\"\npath = \"/by-name\"",
			want: "{name}",
		},
		{
			name: "not toml",
			toml: "{\"battle\": true}",
			want: "parsing profile",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tc.toml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"filed\"\n"), 0o600))

	p, err := LoadProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, "filed", p.Name)

	_, err = LoadProfileFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading profile")
}
