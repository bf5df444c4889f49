// Package stubapi is a canned-response double of the Meal Max API. It
// serves the routes of every known deployment contract with fixed JSON
// documents so the harness can be exercised without a real kitchen. It
// holds no catalog state and computes no battle scores.
package stubapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/mealmax/smoke-harness/internal/mealapi"
)

// Call is one recorded request, path kept in escaped form so tests can
// assert on encoding.
type Call struct {
	Method string
	Path   string
	Query  string
}

// CannedResponse replaces a route's default answer.
type CannedResponse struct {
	Code int
	Body string
}

// Options tunes the stub's fixed answers.
type Options struct {
	// Winner is the battle winner name. Defaults to "Taco".
	Winner string
	// PathPrefix mounts all routes under a prefix such as "/api".
	PathPrefix string
}

// Server records requests and answers them from canned documents, with
// per-route overrides for failure injection.
type Server struct {
	winner string
	prefix string
	logger zerolog.Logger

	mu        sync.Mutex
	calls     []Call
	overrides map[string]CannedResponse
}

func New(opts Options, logger zerolog.Logger) *Server {
	if opts.Winner == "" {
		opts.Winner = "Taco"
	}
	return &Server{
		winner:    opts.Winner,
		prefix:    opts.PathPrefix,
		logger:    logger.With().Str("component", "stub_api").Logger(),
		overrides: make(map[string]CannedResponse),
	}
}

// Router builds the route table covering both deployment contracts: flat
// and ranked listings, path and query name lookups, DELETE and POST
// clear-combatants, GET and POST battle.
func (s *Server) Router() http.Handler {
	root := mux.NewRouter()
	r := root
	if s.prefix != "" {
		r = root.PathPrefix(s.prefix).Subrouter()
	}
	r.Use(s.record)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/db-check", s.handleDBCheck).Methods(http.MethodGet)

	r.HandleFunc("/clear-meals", s.handleClearMeals).Methods(http.MethodDelete)
	r.HandleFunc("/create-meal", s.handleCreateMeal).Methods(http.MethodPost)
	r.HandleFunc("/delete-meal/{id}", s.handleDeleteMeal).Methods(http.MethodDelete)
	r.HandleFunc("/get-all-meals", s.handleAllMeals).Methods(http.MethodGet)
	r.HandleFunc("/get-leaderboard", s.handleLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/get-meal-by-id/{id}", s.handleMealByID).Methods(http.MethodGet)
	r.HandleFunc("/get-meal-by-name/{name}", s.handleMealByName).Methods(http.MethodGet)
	r.HandleFunc("/get-meal-by-name", s.handleMealByName).Methods(http.MethodGet)

	r.HandleFunc("/clear-combatants", s.handleClearCombatants).Methods(http.MethodDelete, http.MethodPost)
	r.HandleFunc("/prep-combatant", s.handlePrepCombatant).Methods(http.MethodPost)
	r.HandleFunc("/get-combatants", s.handleCombatants).Methods(http.MethodGet)
	r.HandleFunc("/battle", s.handleBattle).Methods(http.MethodGet, http.MethodPost)

	return root
}

// Override replaces the canned answer for one method+path until Reset.
// Path is matched against the escaped request path, prefix included.
func (s *Server) Override(method, path string, code int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = CannedResponse{Code: code, Body: body}
}

// Calls returns the requests seen so far, in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Reset drops recorded calls and overrides.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
	s.overrides = make(map[string]CannedResponse)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := Call{Method: r.Method, Path: r.URL.EscapedPath(), Query: r.URL.RawQuery}
		s.mu.Lock()
		s.calls = append(s.calls, call)
		override, hasOverride := s.overrides[r.Method+" "+call.Path]
		s.mu.Unlock()

		s.logger.Debug().Str("method", call.Method).Str("path", call.Path).Msg("request")

		if hasOverride {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(override.Code)
			_, _ = w.Write([]byte(override.Body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, mealapi.StatusResponse{Status: "error", Error: msg})
}

// cannedMeals is the catalog a fresh smoke run leaves behind: meal 1 is
// deleted by the plan, so listings start at id 2.
func cannedMeals() []mealapi.Meal {
	return []mealapi.Meal{
		{ID: 2, Name: "Grilled Cheese", Cuisine: "American", Price: 7.5, Difficulty: mealapi.DifficultyLow, Battles: 2, Wins: 1},
		{ID: 3, Name: "Sushi", Cuisine: "Japanese", Price: 15, Difficulty: mealapi.DifficultyHigh, Battles: 1, Wins: 0},
		{ID: 4, Name: "Taco", Cuisine: "Mexican", Price: 8.99, Difficulty: mealapi.DifficultyMed, Battles: 3, Wins: 3},
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mealapi.HealthResponse{Status: "healthy"})
}

func (s *Server) handleDBCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mealapi.DBCheckResponse{DatabaseStatus: "healthy"})
}

func (s *Server) handleClearMeals(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mealapi.StatusResponse{Status: "success", Message: "catalog cleared"})
}

func (s *Server) handleCreateMeal(w http.ResponseWriter, r *http.Request) {
	var req mealapi.CreateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.writeJSON(w, http.StatusCreated, mealapi.StatusResponse{Status: "success", Message: "meal " + req.Meal + " created"})
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.writeJSON(w, http.StatusOK, mealapi.StatusResponse{Status: "success", Message: "meal " + id + " deleted"})
}

func (s *Server) handleAllMeals(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mealapi.ListMealsResponse{Status: "success", Meals: cannedMeals()})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mealapi.ListMealsResponse{Status: "success", Leaderboard: cannedMeals()})
}

func (s *Server) handleMealByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for _, m := range cannedMeals() {
		meal := m
		if id == strconv.Itoa(meal.ID) {
			s.writeJSON(w, http.StatusOK, mealapi.MealResponse{Status: "success", Meal: &meal})
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "meal not found")
}

func (s *Server) handleMealByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		name = r.URL.Query().Get("name")
	}
	for _, m := range cannedMeals() {
		meal := m
		if meal.Name == name {
			s.writeJSON(w, http.StatusOK, mealapi.MealResponse{Status: "success", Meal: &meal})
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "meal not found")
}

func (s *Server) handleClearCombatants(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mealapi.StatusResponse{Status: "success", Message: "combatants cleared"})
}

func (s *Server) handlePrepCombatant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Meal string `json:"meal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Meal == "" {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.writeJSON(w, http.StatusOK, mealapi.StatusResponse{Status: "success", Message: "combatant " + req.Meal + " prepped"})
}

func (s *Server) handleCombatants(w http.ResponseWriter, r *http.Request) {
	meals := cannedMeals()
	s.writeJSON(w, http.StatusOK, mealapi.CombatantsResponse{Status: "success", Combatants: meals[:2]})
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mealapi.BattleResponse{Status: "success", Message: "battle complete", Winner: s.winner})
}
