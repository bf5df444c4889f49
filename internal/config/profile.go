package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Route names one API operation's HTTP surface.
type Route struct {
	Method string `toml:"method"`
	Path   string `toml:"path"`
}

// Profile captures a deployment variant's endpoint contract: where each
// operation lives and how its responses signal success. Known deployments
// disagree on the list route, the by-name addressing mode, the
// clear-combatants verb, and the battle verb, so the contract is data,
// not code.
type Profile struct {
	Name string `toml:"name"`

	Health          Route `toml:"health"`
	DBCheck         Route `toml:"db_check"`
	ClearMeals      Route `toml:"clear_meals"`
	CreateMeal      Route `toml:"create_meal"`
	DeleteMeal      Route `toml:"delete_meal"`
	ListMeals       Route `toml:"list_meals"`
	MealByID        Route `toml:"meal_by_id"`
	MealByName      Route `toml:"meal_by_name"`
	ClearCombatants Route `toml:"clear_combatants"`
	PrepCombatant   Route `toml:"prep_combatant"`
	Combatants      Route `toml:"combatants"`
	Battle          Route `toml:"battle"`

	// NameQuery addresses meal-by-name lookups with query parameters
	// instead of a {name} path segment.
	NameQuery bool `toml:"name_query"`

	// WinnerOnly judges the battle step on winner presence alone, for
	// deployments whose battle response carries no status field.
	WinnerOnly bool `toml:"winner_only"`

	HealthValue  string `toml:"health_value"`
	SuccessValue string `toml:"success_value"`
}

// ClassicProfile matches the original deployment: flat meal listing,
// path-segment name lookups, DELETE to clear combatants, GET /battle.
func ClassicProfile() Profile {
	return Profile{
		Name:            "classic",
		Health:          Route{Method: "GET", Path: "/health"},
		DBCheck:         Route{Method: "GET", Path: "/db-check"},
		ClearMeals:      Route{Method: "DELETE", Path: "/clear-meals"},
		CreateMeal:      Route{Method: "POST", Path: "/create-meal"},
		DeleteMeal:      Route{Method: "DELETE", Path: "/delete-meal/{id}"},
		ListMeals:       Route{Method: "GET", Path: "/get-all-meals"},
		MealByID:        Route{Method: "GET", Path: "/get-meal-by-id/{id}"},
		MealByName:      Route{Method: "GET", Path: "/get-meal-by-name/{name}"},
		ClearCombatants: Route{Method: "DELETE", Path: "/clear-combatants"},
		PrepCombatant:   Route{Method: "POST", Path: "/prep-combatant"},
		Combatants:      Route{Method: "GET", Path: "/get-combatants"},
		Battle:          Route{Method: "GET", Path: "/battle"},
		HealthValue:     "healthy",
		SuccessValue:    "success",
	}
}

// LeaderboardProfile matches the later deployment: ranked listing,
// query-parameter name lookups, POST to clear combatants and to battle,
// and a battle response judged by winner presence alone.
func LeaderboardProfile() Profile {
	p := ClassicProfile()
	p.Name = "leaderboard"
	p.ListMeals = Route{Method: "GET", Path: "/get-leaderboard"}
	p.MealByName = Route{Method: "GET", Path: "/get-meal-by-name"}
	p.NameQuery = true
	p.ClearCombatants = Route{Method: "POST", Path: "/clear-combatants"}
	p.Battle = Route{Method: "POST", Path: "/battle"}
	p.WinnerOnly = true
	return p
}

// BuiltinProfiles returns the known deployment contracts, in display order.
func BuiltinProfiles() []Profile {
	return []Profile{ClassicProfile(), LeaderboardProfile()}
}

// ResolveProfile picks the endpoint contract for a run: a TOML file when
// given, otherwise a builtin by name.
func ResolveProfile(name, file string) (Profile, error) {
	if file != "" {
		return LoadProfileFile(file)
	}
	for _, p := range BuiltinProfiles() {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown profile %q (have %s)", name, strings.Join(builtinNames(), ", "))
}

// LoadProfileFile reads and parses a TOML profile. The file starts from
// classic defaults, so it only needs the routes that differ.
func LoadProfileFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("loading profile %q: %w", path, err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes TOML data over classic defaults and validates the
// resulting contract.
func ParseProfile(data []byte) (Profile, error) {
	p := ClassicProfile()
	if _, err := toml.Decode(string(data), &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid profile %q: %w", p.Name, err)
	}
	return p, nil
}

func (p Profile) validate() error {
	routes := []struct {
		op string
		r  Route
	}{
		{"health", p.Health},
		{"db_check", p.DBCheck},
		{"clear_meals", p.ClearMeals},
		{"create_meal", p.CreateMeal},
		{"delete_meal", p.DeleteMeal},
		{"list_meals", p.ListMeals},
		{"meal_by_id", p.MealByID},
		{"meal_by_name", p.MealByName},
		{"clear_combatants", p.ClearCombatants},
		{"prep_combatant", p.PrepCombatant},
		{"combatants", p.Combatants},
		{"battle", p.Battle},
	}
	for _, rt := range routes {
		switch rt.r.Method {
		case "GET", "POST", "PUT", "DELETE":
		default:
			return fmt.Errorf("%s: unsupported method %q", rt.op, rt.r.Method)
		}
		if !strings.HasPrefix(rt.r.Path, "/") {
			return fmt.Errorf("%s: path %q must start with /", rt.op, rt.r.Path)
		}
	}
	if !strings.Contains(p.DeleteMeal.Path, "{id}") {
		return fmt.Errorf("delete_meal: path %q needs an {id} segment", p.DeleteMeal.Path)
	}
	if !strings.Contains(p.MealByID.Path, "{id}") {
		return fmt.Errorf("meal_by_id: path %q needs an {id} segment", p.MealByID.Path)
	}
	if !p.NameQuery && !strings.Contains(p.MealByName.Path, "{name}") {
		return fmt.Errorf("meal_by_name: path %q needs a {name} segment or name_query = true", p.MealByName.Path)
	}
	if p.HealthValue == "" || p.SuccessValue == "" {
		return fmt.Errorf("health_value and success_value must be set")
	}
	return nil
}

func builtinNames() []string {
	ps := BuiltinProfiles()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}
