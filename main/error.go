package main

import (
	"context"
	"errors"
	"net/http"
)

const (
	msgRequired         = "Image and style are required"
	msgGenerationFailed = "Failed to generate designs"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal server error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	WriteJSONError(w, http.StatusInternalServerError, "internal server error")
}

// generationFailedError hides the cause from the client, whatever failed.
// Once the request deadline has passed the timeout middleware answers 504.
func (app *application) generationFailedError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("generation failed error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		return
	}
	WriteJSONError(w, http.StatusInternalServerError, msgGenerationFailed)
}

func (app *application) badRequestError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	WriteJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	WriteJSONError(w, http.StatusNotFound, err.Error())
}
