package harness

import "github.com/mealmax/smoke-harness/internal/mealapi"

// MealScenario is one fixture dish the plan drives through the API.
type MealScenario struct {
	Name       string
	Cuisine    string
	Price      float64
	Difficulty string
}

// CreateRequest shapes the scenario as a create-meal body.
func (s MealScenario) CreateRequest() mealapi.CreateMealRequest {
	return mealapi.CreateMealRequest{
		Meal:       s.Name,
		Cuisine:    s.Cuisine,
		Price:      s.Price,
		Difficulty: s.Difficulty,
	}
}

// Query shapes the scenario as a meal-by-name lookup.
func (s MealScenario) Query() mealapi.MealQuery {
	return mealapi.MealQuery{
		Name:       s.Name,
		Cuisine:    s.Cuisine,
		Price:      s.Price,
		Difficulty: s.Difficulty,
	}
}

// DefaultScenarios is the standard fixture table. Order matters: the plan
// deletes the first dish, looks up the second by id and by name (its name
// keeps a space to exercise path encoding), and preps the last two as
// combatants.
func DefaultScenarios() []MealScenario {
	return []MealScenario{
		{Name: "Spaghetti", Cuisine: "Italian", Price: 12.5, Difficulty: mealapi.DifficultyMed},
		{Name: "Grilled Cheese", Cuisine: "American", Price: 7.5, Difficulty: mealapi.DifficultyLow},
		{Name: "Sushi", Cuisine: "Japanese", Price: 15, Difficulty: mealapi.DifficultyHigh},
		{Name: "Taco", Cuisine: "Mexican", Price: 8.99, Difficulty: mealapi.DifficultyMed},
	}
}
