package mealapi

// Difficulty levels the kitchen accepts.
const (
	DifficultyLow  = "LOW"
	DifficultyMed  = "MED"
	DifficultyHigh = "HIGH"
)

// Meal is one dish as the API reports it. Battles and Wins only appear in
// leaderboard listings.
type Meal struct {
	ID         int     `json:"id"`
	Name       string  `json:"meal"`
	Cuisine    string  `json:"cuisine"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty"`
	Battles    int     `json:"battles,omitempty"`
	Wins       int     `json:"wins,omitempty"`
	WinPct     float64 `json:"win_pct,omitempty"`
}

// CreateMealRequest is the create-meal POST body.
type CreateMealRequest struct {
	Meal       string  `json:"meal"`
	Cuisine    string  `json:"cuisine"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty"`
}

// MealQuery addresses a meal-by-name lookup. Path-segment deployments use
// only Name; query-parameter deployments send every field.
type MealQuery struct {
	Name       string
	Cuisine    string
	Price      float64
	Difficulty string
}

// HealthResponse is the liveness envelope.
type HealthResponse struct {
	Status string `json:"status"`
}

// DBCheckResponse is the backing-store liveness envelope.
type DBCheckResponse struct {
	DatabaseStatus string `json:"database_status"`
}

// StatusResponse is the generic mutation envelope.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListMealsResponse covers both listing variants: flat deployments fill
// Meals, ranked deployments fill Leaderboard.
type ListMealsResponse struct {
	Status      string `json:"status"`
	Meals       []Meal `json:"meals,omitempty"`
	Leaderboard []Meal `json:"leaderboard,omitempty"`
}

// MealResponse is the single-meal lookup envelope.
type MealResponse struct {
	Status string `json:"status"`
	Meal   *Meal  `json:"meal,omitempty"`
}

// CombatantsResponse lists currently prepped combatants.
type CombatantsResponse struct {
	Status     string `json:"status"`
	Combatants []Meal `json:"combatants,omitempty"`
}

// BattleResponse carries the battle outcome. Winner may be absent even
// when Status reports success; callers must treat that as a failure, not
// a crash.
type BattleResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Winner  string `json:"winner,omitempty"`
}
