package main

import "net/http"

func (app *application) getGenerationHandler(w http.ResponseWriter, r *http.Request) {
	gen := getGenerationFromCtx(r)
	WriteJSON(w, http.StatusOK, gen)
}
