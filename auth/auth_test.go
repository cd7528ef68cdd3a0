package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"poolup/kv"
	"poolup/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFromName(t *testing.T) {
	user, ok := UserFromName(" Dana ", "Hill")
	require.True(t, ok)
	assert.Equal(t, "dana hill", user.Email)
	assert.True(t, strings.HasPrefix(user.ID, "u-"))

	// Same typed name, same identity, regardless of casing and spacing.
	again, ok := UserFromName("DANA", "hill")
	require.True(t, ok)
	assert.Equal(t, user.ID, again.ID)

	other, ok := UserFromName("Dana", "Holt")
	require.True(t, ok)
	assert.NotEqual(t, user.ID, other.ID)

	_, ok = UserFromName("", "Hill")
	assert.False(t, ok)
	_, ok = UserFromName("Dana", "   ")
	assert.False(t, ok)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	api := NewAPI(kv.NewMemoryStore())
	router := httprouter.New()
	router.POST("/api/auth/login", api.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"firstName":"Dana","lastName":"Hill"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Token  string `json:"token"`
			UserID string `json:"userid"`
			Email  string `json:"email"`
		} `json:"data"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, "dana hill", resp.Data.Email)
	require.NotEmpty(t, resp.Data.Token)

	// The issued token passes the middleware's own validation.
	claims, err := middleware.ValidateJWT("Bearer " + resp.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Data.UserID, claims.UserID)
	assert.Equal(t, "dana hill", claims.Username)
}

func TestLoginRequiresBothNames(t *testing.T) {
	api := NewAPI(kv.NewMemoryStore())
	router := httprouter.New()
	router.POST("/api/auth/login", api.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"firstName":"Dana"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
