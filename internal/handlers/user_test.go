package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companion-matcher/internal/models"
)

func TestCreateUser(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/users", map[string]interface{}{
		"name":      "  Alice  ",
		"age":       30,
		"interests": []string{"Music", "TECH"},
		"bio":       " hello ",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.CreateUserResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, []string{"music", "tech"}, resp.User.Interests)
	assert.Equal(t, "hello", resp.User.Bio)
}

func TestCreateUserValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		name string
		body map[string]interface{}
		code int
	}{
		{"missing name", map[string]interface{}{"age": 30, "interests": []string{"a", "b"}}, http.StatusBadRequest},
		{"missing age", map[string]interface{}{"name": "Al", "interests": []string{"a", "b"}}, http.StatusBadRequest},
		{"age too low", map[string]interface{}{"name": "Al", "age": 10, "interests": []string{"a", "b"}}, http.StatusBadRequest},
		{"age too high", map[string]interface{}{"name": "Al", "age": 150, "interests": []string{"a", "b"}}, http.StatusBadRequest},
		{"empty interests", map[string]interface{}{"name": "Al", "age": 30, "interests": []string{}}, http.StatusBadRequest},
		{"blank interest", map[string]interface{}{"name": "Al", "age": 30, "interests": []string{" "}}, http.StatusBadRequest},
		{"blank name", map[string]interface{}{"name": "   ", "age": 30, "interests": []string{"a", "b"}}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/users", tc.body)
			assert.Equal(t, tc.code, w.Code)

			var resp models.CreateUserResponse
			decode(t, w, &resp)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	router, directory := newTestRouter(t)
	seedUser(t, directory, "Alice", "music", "tech")

	w := doJSON(t, router, http.MethodPost, "/api/users", map[string]interface{}{
		"name":      "ALICE",
		"age":       25,
		"interests": []string{"art", "yoga"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetMatchesEndpoint(t *testing.T) {
	router, directory := newTestRouter(t)
	seedUser(t, directory, "Alice", "music", "tech", "art")
	seedUser(t, directory, "Bob", "music", "tech", "travel")
	seedUser(t, directory, "Carol", "cooking")

	w := doJSON(t, router, http.MethodGet, "/api/matches/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GetMatchesResponse
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.TotalMatches)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Bob", resp.Matches[0].Name)
	assert.Equal(t, 67, resp.Matches[0].CompatibilityScore)
}

func TestGetMatchesUnknownUser(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/matches/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp models.GetMatchesResponse
	decode(t, w, &resp)
	assert.Empty(t, resp.Matches)
}

func TestShortlistFlow(t *testing.T) {
	router, directory := newTestRouter(t)
	seedUser(t, directory, "Alice", "music", "tech")
	seedUser(t, directory, "Bob", "music", "tech")

	w := doJSON(t, router, http.MethodPost, "/api/shortlist", models.ShortlistRequest{
		Username:       "alice",
		TargetUsername: "Bob",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/shortlist/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GetShortlistResponse
	decode(t, w, &resp)
	require.Len(t, resp.Shortlist, 1)
	assert.Equal(t, "Bob", resp.Shortlist[0].Name)
}

func TestShortlistRejections(t *testing.T) {
	router, directory := newTestRouter(t)
	seedUser(t, directory, "Alice", "music", "tech")

	w := doJSON(t, router, http.MethodPost, "/api/shortlist", models.ShortlistRequest{
		Username:       "alice",
		TargetUsername: "ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/shortlist", models.ShortlistRequest{
		Username:       "alice",
		TargetUsername: "ALICE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/shortlist", map[string]interface{}{
		"username": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
