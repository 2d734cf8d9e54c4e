package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JebManMan/MeBot/common/backend"
	"github.com/JebManMan/MeBot/common/types"

	"github.com/gorilla/mux"
)

// Router represents the mebot router to send proper HTTP requests to the daemon.
type Router struct {
	*mux.Router
	routes routes
	daemon backend.MebotDaemonBackend
}

// NewRouter creates and returns a new router for the given backend.
func NewRouter(daemon backend.MebotDaemonBackend) Router {
	mRouter := mux.NewRouter().StrictSlash(true)
	r := Router{mRouter, routes{}, daemon}
	r.initBackendRoutes()
	for _, route := range r.routes {
		handler := Logger(route.HandlerFunc, route.Name)

		r.Methods(route.Method).
			Path(route.Pattern).
			Name(route.Name).
			Handler(handler)
	}
	return r
}

func processServerError(w http.ResponseWriter, r *http.Request, err error) {
	writeServerError(w, r, http.StatusInternalServerError,
		fmt.Sprintf("an unexpected internal error has occurred: \"%s\"", err))
}

func processBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeServerError(w, r, http.StatusBadRequest, err.Error())
}

func writeServerError(w http.ResponseWriter, r *http.Request, code int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	sErr := types.ServerError{
		Code: code,
		Text: text,
	}
	logger.Debugf("Processing error %s\n", sErr)
	logger.Errorf("Error while processing request %s %s: \"%s\"", r.Method, r.URL, text)
	if err := json.NewEncoder(w).Encode(sErr); err != nil {
		logger.Errorf("Error while encoding %T '%+v': \"%s\"", sErr, sErr, err)
		fmt.Fprintf(w, "Fatal error while processing request %s %s: \"%s\"", r.Method, r.URL, err)
	}
}
