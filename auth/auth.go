// Package auth hands out identities. There is no real authentication: any
// first/last name is accepted, and the same name maps to the same identity
// across sessions.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"poolup/globals"
	"poolup/kv"
	"poolup/middleware"
	"poolup/models"
	"poolup/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const tokenTTL = 72 * time.Hour

type API struct {
	sessions kv.Store
}

func NewAPI(sessions kv.Store) *API {
	return &API{sessions: sessions}
}

// UserFromName synthesizes the {id, email} identity from a typed name.
// Email is the lowercased "first last" handle, not a real address; the id is
// a stable digest of it.
func UserFromName(firstName, lastName string) (models.User, bool) {
	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))
	if first == "" || last == "" {
		return models.User{}, false
	}
	email := first + " " + last
	return models.User{
		ID:    "u-" + utils.EncrypIt(email)[:16],
		Email: email,
	}, true
}

func generateToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Username: user.Email,
		UserID:   user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// Login handles POST /api/auth/login
func (api *API) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, ok := UserFromName(input.FirstName, input.LastName)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "First and last name are required")
		return
	}

	tokenString, err := generateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := api.sessions.Set(ctx, "auth:token:"+user.ID, tokenString); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store session")
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":  tokenString,
		"userid": user.ID,
		"email":  user.Email,
	}, "Login successful", nil)
}

// Logout handles POST /api/auth/logout
func (api *API) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid user")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := api.sessions.Del(ctx, "auth:token:"+userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to invalidate session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Logged out successfully"})
}
