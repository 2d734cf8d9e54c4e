package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JebManMan/MeBot/common/types"

	"github.com/gorilla/mux"
)

func (router *Router) ping(w http.ResponseWriter, r *http.Request) {
	if resp, err := router.daemon.Ping(); err != nil {
		processServerError(w, r, err)
	} else {
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			processServerError(w, r, err)
		}
	}
}

func (router *Router) status(w http.ResponseWriter, r *http.Request) {
	if resp, err := router.daemon.Status(r.Context()); err != nil {
		processServerError(w, r, err)
	} else {
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			processServerError(w, r, err)
		}
	}
}

func (router *Router) modeSet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idStr, exists := vars["id"]
	if !exists {
		processBadRequest(w, r, errors.New("server received empty mode id"))
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		processBadRequest(w, r, fmt.Errorf("invalid mode id %q", idStr))
		return
	}
	logger.Debugf("Received mode %d request", id)

	if err := router.daemon.SetMode(r.Context(), id); err != nil {
		processServerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (router *Router) drive(w http.ResponseWriter, r *http.Request) {
	var req types.DriveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		processBadRequest(w, r, fmt.Errorf("invalid drive request: %s", err))
		return
	}
	if !types.ValidDriveCommand(req.Command) {
		processBadRequest(w, r, fmt.Errorf("%s: %q", types.ErrUnknownDriveCommand, req.Command))
		return
	}

	if err := router.daemon.Drive(r.Context(), req); err != nil {
		processServerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
