package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/mealmax/smoke-harness/internal/config"
	"github.com/mealmax/smoke-harness/internal/mealapi"
)

// ErrWinnerMissing labels the battle edge case where the API reports
// success but names no winner.
var ErrWinnerMissing = errors.New("winner missing from battle response")

// API is the slice of the Meal Max client the plan needs.
type API interface {
	Health(ctx context.Context) (mealapi.HealthResponse, []byte, error)
	DBCheck(ctx context.Context) (mealapi.DBCheckResponse, []byte, error)
	ClearMeals(ctx context.Context) (mealapi.StatusResponse, []byte, error)
	CreateMeal(ctx context.Context, meal mealapi.CreateMealRequest) (mealapi.StatusResponse, []byte, error)
	DeleteMeal(ctx context.Context, id int) (mealapi.StatusResponse, []byte, error)
	ListMeals(ctx context.Context) (mealapi.ListMealsResponse, []byte, error)
	MealByID(ctx context.Context, id int) (mealapi.MealResponse, []byte, error)
	MealByName(ctx context.Context, q mealapi.MealQuery) (mealapi.MealResponse, []byte, error)
	ClearCombatants(ctx context.Context) (mealapi.StatusResponse, []byte, error)
	PrepCombatant(ctx context.Context, name string) (mealapi.StatusResponse, []byte, error)
	Combatants(ctx context.Context) (mealapi.CombatantsResponse, []byte, error)
	Battle(ctx context.Context) (mealapi.BattleResponse, []byte, error)
	Profile() config.Profile
}

var _ API = (*mealapi.Client)(nil)

// BuildPlan lays out one full smoke pass: probes, catalog mutations and
// lookups, then the combatant flow ending in a battle. Clearing runs
// before creation so the catalog starts from a known identifier space:
// the plan deletes dish 1, looks dish 2 up by id and by name, and preps
// the last two scenarios for the battle.
func BuildPlan(api API, scenarios []MealScenario) ([]Step, error) {
	if len(scenarios) < 3 {
		return nil, fmt.Errorf("plan needs at least 3 scenarios, got %d", len(scenarios))
	}
	profile := api.Profile()

	steps := []Step{
		{
			Name: "health check",
			Run: func(ctx context.Context) Outcome {
				resp, raw, err := api.Health(ctx)
				if err != nil {
					return Outcome{Body: raw, Err: err}
				}
				return expectValue("status", resp.Status, profile.HealthValue, raw)
			},
		},
		{
			Name: "database check",
			Run: func(ctx context.Context) Outcome {
				resp, raw, err := api.DBCheck(ctx)
				if err != nil {
					return Outcome{Body: raw, Err: err}
				}
				return expectValue("database_status", resp.DatabaseStatus, profile.HealthValue, raw)
			},
		},
		statusStep("clear meals", profile.SuccessValue, func(ctx context.Context) (mealapi.StatusResponse, []byte, error) {
			return api.ClearMeals(ctx)
		}),
	}

	for _, sc := range scenarios {
		sc := sc
		steps = append(steps, statusStep(fmt.Sprintf("create meal %s", sc.Name), profile.SuccessValue, func(ctx context.Context) (mealapi.StatusResponse, []byte, error) {
			return api.CreateMeal(ctx, sc.CreateRequest())
		}))
	}

	steps = append(steps,
		statusStep("delete meal 1", profile.SuccessValue, func(ctx context.Context) (mealapi.StatusResponse, []byte, error) {
			return api.DeleteMeal(ctx, 1)
		}),
		Step{
			Name: "list meals",
			Echo: true,
			Run: func(ctx context.Context) Outcome {
				resp, raw, err := api.ListMeals(ctx)
				if err != nil {
					return Outcome{Body: raw, Err: err}
				}
				out := expectValue("status", resp.Status, profile.SuccessValue, raw)
				if out.Err == nil {
					out.Detail = fmt.Sprintf("%d meals listed", len(resp.Meals)+len(resp.Leaderboard))
				}
				return out
			},
		},
		Step{
			Name: "get meal by id 2",
			Echo: true,
			Run: func(ctx context.Context) Outcome {
				resp, raw, err := api.MealByID(ctx, 2)
				if err != nil {
					return Outcome{Body: raw, Err: err}
				}
				out := expectValue("status", resp.Status, profile.SuccessValue, raw)
				if out.Err == nil && resp.Meal != nil && resp.Meal.ID != 2 {
					out.Err = fmt.Errorf("meal id %d, want 2", resp.Meal.ID)
				}
				return out
			},
		},
		Step{
			Name: fmt.Sprintf("get meal by name %s", scenarios[1].Name),
			Echo: true,
			Run: func(ctx context.Context) Outcome {
				resp, raw, err := api.MealByName(ctx, scenarios[1].Query())
				if err != nil {
					return Outcome{Body: raw, Err: err}
				}
				out := expectValue("status", resp.Status, profile.SuccessValue, raw)
				if out.Err == nil && resp.Meal != nil && resp.Meal.Name != scenarios[1].Name {
					out.Err = fmt.Errorf("meal name %q, want %q", resp.Meal.Name, scenarios[1].Name)
				}
				return out
			},
		},
		statusStep("clear combatants", profile.SuccessValue, func(ctx context.Context) (mealapi.StatusResponse, []byte, error) {
			return api.ClearCombatants(ctx)
		}),
	)

	for _, sc := range scenarios[len(scenarios)-2:] {
		sc := sc
		steps = append(steps, statusStep(fmt.Sprintf("prep combatant %s", sc.Name), profile.SuccessValue, func(ctx context.Context) (mealapi.StatusResponse, []byte, error) {
			return api.PrepCombatant(ctx, sc.Name)
		}))
	}

	steps = append(steps,
		Step{
			Name: "list combatants",
			Echo: true,
			Run: func(ctx context.Context) Outcome {
				resp, raw, err := api.Combatants(ctx)
				if err != nil {
					return Outcome{Body: raw, Err: err}
				}
				out := expectValue("status", resp.Status, profile.SuccessValue, raw)
				if out.Err == nil {
					out.Detail = fmt.Sprintf("%d combatants staged", len(resp.Combatants))
				}
				return out
			},
		},
		Step{
			Name: "battle",
			Run: func(ctx context.Context) Outcome {
				resp, raw, err := api.Battle(ctx)
				if err != nil {
					return Outcome{Body: raw, Err: err}
				}
				if !profile.WinnerOnly {
					if out := expectValue("status", resp.Status, profile.SuccessValue, raw); out.Err != nil {
						return out
					}
				}
				if resp.Winner == "" {
					return Outcome{Body: raw, Err: ErrWinnerMissing}
				}
				return Outcome{Detail: fmt.Sprintf("winner: %s", resp.Winner), Body: raw}
			},
		},
	)

	return steps, nil
}

// statusStep wraps a mutation call whose envelope only carries the
// generic success marker.
func statusStep(name, want string, call func(ctx context.Context) (mealapi.StatusResponse, []byte, error)) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context) Outcome {
			resp, raw, err := call(ctx)
			if err != nil {
				return Outcome{Body: raw, Err: err}
			}
			return expectValue("status", resp.Status, want, raw)
		},
	}
}

func expectValue(field, got, want string, raw []byte) Outcome {
	if got != want {
		return Outcome{Body: raw, Err: fmt.Errorf("%s %q, want %q", field, got, want)}
	}
	return Outcome{Body: raw}
}
