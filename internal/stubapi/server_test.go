package stubapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	stub := New(opts, zerolog.Nop())
	ts := httptest.NewServer(stub.Router())
	t.Cleanup(ts.Close)
	return stub, ts
}

func get(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return resp.StatusCode, body
}

func TestCannedRoutes(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	code, body := get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])

	code, body = get(t, ts.URL+"/db-check")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["database_status"])

	code, body = get(t, ts.URL+"/get-all-meals")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	assert.Len(t, body["meals"], 3)

	code, body = get(t, ts.URL+"/get-leaderboard")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["leaderboard"], 3)

	code, body = get(t, ts.URL+"/battle")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Taco", body["winner"])
}

func TestMealLookupsBothAddressingModes(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	code, body := get(t, ts.URL+"/get-meal-by-id/2")
	assert.Equal(t, http.StatusOK, code)
	meal := body["meal"].(map[string]any)
	assert.Equal(t, "Grilled Cheese", meal["meal"])

	code, body = get(t, ts.URL+"/get-meal-by-name/Grilled%20Cheese")
	assert.Equal(t, http.StatusOK, code)
	meal = body["meal"].(map[string]any)
	assert.Equal(t, float64(2), meal["id"])

	code, body = get(t, ts.URL+"/get-meal-by-name?name=Sushi&cuisine=Japanese")
	assert.Equal(t, http.StatusOK, code)
	meal = body["meal"].(map[string]any)
	assert.Equal(t, "Sushi", meal["meal"])

	code, body = get(t, ts.URL+"/get-meal-by-id/99")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error", body["status"])
}

func TestMutationsAcceptBothVerbVariants(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	client := ts.Client()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/clear-combatants", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Post(ts.URL+"/clear-combatants", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Post(ts.URL+"/prep-combatant", "application/json", strings.NewReader(`{"meal":"Taco"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Post(ts.URL+"/prep-combatant", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOverrideAndRecording(t *testing.T) {
	stub, ts := newTestServer(t, Options{})
	stub.Override(http.MethodGet, "/db-check", http.StatusServiceUnavailable, `{"database_status":"down"}`)

	code, body := get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])

	code, body = get(t, ts.URL+"/db-check")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", body["database_status"])

	calls := stub.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, Call{Method: http.MethodGet, Path: "/health"}, calls[0])
	assert.Equal(t, Call{Method: http.MethodGet, Path: "/db-check"}, calls[1])

	stub.Reset()
	assert.Empty(t, stub.Calls())

	code, body = get(t, ts.URL+"/db-check")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["database_status"])
}

func TestPathPrefix(t *testing.T) {
	stub, ts := newTestServer(t, Options{PathPrefix: "/api", Winner: "Sushi"})

	code, body := get(t, ts.URL+"/api/battle")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Sushi", body["winner"])

	resp, err := http.Get(ts.URL + "/battle")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	calls := stub.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, "/api/battle", calls[0].Path)
}
