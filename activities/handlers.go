package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"poolup/utils"

	"github.com/julienschmidt/httprouter"
)

type API struct {
	svc *Service
}

func NewAPI(svc *Service) *API {
	return &API{svc: svc}
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// GET /api/activities
func (api *API) GetActivities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := requestContext()
	defer cancel()

	list, err := api.svc.List(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load activities")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activities": list})
}

// GET /api/activities/:activityid
func (api *API) GetActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestContext()
	defer cancel()

	activity, err := api.svc.Get(ctx, ps.ByName("activityid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load activity")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activity": activity})
}

// POST /api/activities
func (api *API) CreateActivity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	activity, err := api.svc.Create(ctx, req)
	switch {
	case errors.Is(err, ErrInvalidActivity):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDuplicateActivity):
		// Client may retry with allowDuplicate after confirming.
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": false, "reason": "duplicate-activity"})
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save activity")
	default:
		utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "activity": activity})
	}
}
