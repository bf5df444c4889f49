package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mealmax/smoke-harness/internal/config"
)

func newProfilesCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List builtin endpoint profiles and their routes",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			for i, p := range config.BuiltinProfiles() {
				if i > 0 {
					fmt.Fprintln(stdout)
				}
				printProfile(stdout, p)
			}
		},
	}
}

func printProfile(stdout io.Writer, p config.Profile) {
	fmt.Fprintf(stdout, "%s:\n", p.Name)
	rows := []struct {
		op string
		r  config.Route
	}{
		{"health", p.Health},
		{"db check", p.DBCheck},
		{"clear meals", p.ClearMeals},
		{"create meal", p.CreateMeal},
		{"delete meal", p.DeleteMeal},
		{"list meals", p.ListMeals},
		{"meal by id", p.MealByID},
		{"meal by name", p.MealByName},
		{"clear combatants", p.ClearCombatants},
		{"prep combatant", p.PrepCombatant},
		{"combatants", p.Combatants},
		{"battle", p.Battle},
	}
	for _, row := range rows {
		fmt.Fprintf(stdout, "  %-18s %-6s %s\n", row.op, row.r.Method, row.r.Path)
	}
	if p.NameQuery {
		fmt.Fprintln(stdout, "  meal-by-name lookups use query parameters")
	}
	if p.WinnerOnly {
		fmt.Fprintln(stdout, "  battle success is judged by winner presence")
	}
}
