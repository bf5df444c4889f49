package mealapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mealmax/smoke-harness/internal/config"
)

// Client is a typed HTTP client for the Meal Max API. Routes and verbs come
// from the endpoint profile; responses come back decoded plus as raw bytes
// so callers can echo or report the exact body.
type Client struct {
	baseURL    string
	profile    config.Profile
	httpClient *http.Client
}

func NewClient(baseURL string, profile config.Profile, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:5000/api"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		profile:    profile,
		httpClient: httpClient,
	}
}

// Profile reports the endpoint contract this client was built with.
func (c *Client) Profile() config.Profile {
	return c.profile
}

// do runs one profile route: path params substituted and escaped, query
// encoded, JSON body attached when payload is non-nil. The response body is
// returned verbatim; HTTP status is not judged here because the API signals
// failure in the body.
func (c *Client) do(ctx context.Context, route config.Route, params map[string]string, query url.Values, payload any) ([]byte, error) {
	path := route.Path
	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", url.PathEscape(v))
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", route.Method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", route.Method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", route.Method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", route.Method, path, err)
	}
	return raw, nil
}

func decode(raw []byte, v any, what string) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s response: %w", what, err)
	}
	return nil
}

// Health probes the liveness endpoint.
func (c *Client) Health(ctx context.Context) (HealthResponse, []byte, error) {
	var out HealthResponse
	raw, err := c.do(ctx, c.profile.Health, nil, nil, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "health")
}

// DBCheck probes the backing-store endpoint.
func (c *Client) DBCheck(ctx context.Context) (DBCheckResponse, []byte, error) {
	var out DBCheckResponse
	raw, err := c.do(ctx, c.profile.DBCheck, nil, nil, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "db-check")
}

// ClearMeals resets the catalog.
func (c *Client) ClearMeals(ctx context.Context) (StatusResponse, []byte, error) {
	var out StatusResponse
	raw, err := c.do(ctx, c.profile.ClearMeals, nil, nil, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "clear-meals")
}

// CreateMeal adds one dish to the catalog.
func (c *Client) CreateMeal(ctx context.Context, meal CreateMealRequest) (StatusResponse, []byte, error) {
	var out StatusResponse
	raw, err := c.do(ctx, c.profile.CreateMeal, nil, nil, meal)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "create-meal")
}

// DeleteMeal removes a dish by id.
func (c *Client) DeleteMeal(ctx context.Context, id int) (StatusResponse, []byte, error) {
	var out StatusResponse
	raw, err := c.do(ctx, c.profile.DeleteMeal, map[string]string{"id": strconv.Itoa(id)}, nil, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "delete-meal")
}

// ListMeals fetches the catalog listing (flat or ranked, per profile).
func (c *Client) ListMeals(ctx context.Context) (ListMealsResponse, []byte, error) {
	var out ListMealsResponse
	raw, err := c.do(ctx, c.profile.ListMeals, nil, nil, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "list-meals")
}

// MealByID looks a dish up by id.
func (c *Client) MealByID(ctx context.Context, id int) (MealResponse, []byte, error) {
	var out MealResponse
	raw, err := c.do(ctx, c.profile.MealByID, map[string]string{"id": strconv.Itoa(id)}, nil, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "meal-by-id")
}

// MealByName looks a dish up by name, as a path segment or query
// parameters depending on the profile.
func (c *Client) MealByName(ctx context.Context, q MealQuery) (MealResponse, []byte, error) {
	var (
		params map[string]string
		values url.Values
	)
	if c.profile.NameQuery {
		values = url.Values{}
		values.Set("name", q.Name)
		values.Set("cuisine", q.Cuisine)
		values.Set("price", strconv.FormatFloat(q.Price, 'f', -1, 64))
		values.Set("difficulty", q.Difficulty)
	} else {
		params = map[string]string{"name": q.Name}
	}

	var out MealResponse
	raw, err := c.do(ctx, c.profile.MealByName, params, values, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "meal-by-name")
}

// ClearCombatants empties the battle staging area.
func (c *Client) ClearCombatants(ctx context.Context) (StatusResponse, []byte, error) {
	var out StatusResponse
	raw, err := c.do(ctx, c.profile.ClearCombatants, nil, nil, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "clear-combatants")
}

// PrepCombatant stages a dish for the next battle.
func (c *Client) PrepCombatant(ctx context.Context, name string) (StatusResponse, []byte, error) {
	var out StatusResponse
	raw, err := c.do(ctx, c.profile.PrepCombatant, nil, nil, map[string]string{"meal": name})
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "prep-combatant")
}

// Combatants lists the currently staged dishes.
func (c *Client) Combatants(ctx context.Context) (CombatantsResponse, []byte, error) {
	var out CombatantsResponse
	raw, err := c.do(ctx, c.profile.Combatants, nil, nil, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "combatants")
}

// Battle runs a battle between the staged combatants.
func (c *Client) Battle(ctx context.Context) (BattleResponse, []byte, error) {
	var out BattleResponse
	raw, err := c.do(ctx, c.profile.Battle, nil, nil, nil)
	if err != nil {
		return out, raw, err
	}
	return out, raw, decode(raw, &out, "battle")
}
