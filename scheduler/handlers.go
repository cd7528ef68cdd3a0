package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"poolup/models"
	"poolup/utils"

	"github.com/julienschmidt/httprouter"
)

// API exposes the SlotBoard over HTTP. It owns no logic beyond decoding
// gestures and mapping domain errors to response reasons.
type API struct {
	board *SlotBoard
}

func NewAPI(board *SlotBoard) *API {
	return &API{board: board}
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func viewerFromRequest(r *http.Request, role string) (Viewer, bool) {
	parsed, ok := ParseRole(role)
	if !ok {
		return Viewer{}, false
	}
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return Viewer{}, false
	}
	return Viewer{UserID: userID, Role: parsed}, true
}

// GET /api/scheduler/:activityid/slots
func (api *API) GetSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")
	ctx, cancel := requestContext()
	defer cancel()

	slots, err := api.board.Slots(ctx, activityID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load slots")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"slots": slots})
}

// GET /api/scheduler/:activityid/grid?role=driver|passenger
func (api *API) GetGrid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")
	viewer, ok := viewerFromRequest(r, r.URL.Query().Get("role"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "role must be driver or passenger")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	cells, err := api.board.Grid(ctx, activityID, viewer)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load slots")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"role": viewer.Role, "grid": cells})
}

// POST /api/scheduler/:activityid/select
func (api *API) SelectTime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")

	var body struct {
		Time string `json:"time"`
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if body.Time == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing time")
		return
	}
	viewer, ok := viewerFromRequest(r, body.Role)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "role must be driver or passenger")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	sel, selectable, err := api.board.Resolve(ctx, activityID, body.Time, viewer)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load slots")
		return
	}
	if !selectable {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": false, "reason": "not-selectable"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "selection": sel})
}

// POST /api/scheduler/:activityid/slots
func (api *API) CreateSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")

	var req CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	driver := models.User{
		ID:    utils.GetUserIDFromRequest(r),
		Email: utils.GetUsernameFromRequest(r),
	}
	if driver.ID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid user")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	slot, err := api.board.CreateSlot(ctx, activityID, driver, req)
	if errors.Is(err, ErrInvalidSlot) {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save slot")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "slot": slot})
}

// POST /api/scheduler/:activityid/slots/:slotid/join
func (api *API) JoinSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")
	slotID := ps.ByName("slotid")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid user")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	slot, err := api.board.JoinSlot(ctx, activityID, slotID, userID)
	switch {
	case errors.Is(err, ErrSlotNotFound):
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": false, "reason": "slot-missing"})
	case errors.Is(err, ErrAlreadyJoined):
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": false, "reason": "already-joined"})
	case errors.Is(err, ErrSlotFull):
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": false, "reason": "slot-full"})
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save slots")
	default:
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "slot": slot})
	}
}

// POST /api/scheduler/:activityid/slots/:slotid/leave
func (api *API) LeaveSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")
	slotID := ps.ByName("slotid")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid user")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	slot, err := api.board.LeaveSlot(ctx, activityID, slotID, userID)
	switch {
	case errors.Is(err, ErrSlotNotFound):
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": false, "reason": "slot-missing"})
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save slots")
	default:
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "slot": slot})
	}
}
