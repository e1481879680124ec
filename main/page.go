package main

import (
	"net/http"

	"github.com/hnzhou16/project-cocraft-redesign/internal/page"
)

func (app *application) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, params any) {
	body, err := app.pages.Render(name, params)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		app.logger.Errorw("failed to write page", "path", r.URL.Path, "error", err)
	}
}

func (app *application) homePageHandler(w http.ResponseWriter, r *http.Request) {
	app.renderPage(w, r, http.StatusOK, page.Home, nil)
}

func (app *application) createPageHandler(w http.ResponseWriter, r *http.Request) {
	app.renderPage(w, r, http.StatusOK, page.Create, page.NewCreateParams())
}

func (app *application) resultsPageHandler(w http.ResponseWriter, r *http.Request) {
	gen := getGenerationFromCtx(r)
	app.renderPage(w, r, http.StatusOK, page.Results, page.NewResultsParams(gen))
}

func (app *application) notFoundPage(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	app.renderPage(w, r, http.StatusNotFound, page.NotFound, nil)
}

func (app *application) internalServerErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal server error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	app.renderPage(w, r, http.StatusInternalServerError, page.ServerError, nil)
}

func (app *application) notFoundPageHandler(w http.ResponseWriter, r *http.Request) {
	app.renderPage(w, r, http.StatusNotFound, page.NotFound, nil)
}
