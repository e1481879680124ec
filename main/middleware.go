package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hnzhou16/project-cocraft-redesign/internal/storage"
)

type ctxKey string

type errorResponder func(http.ResponseWriter, *http.Request, error)

const generationCtx ctxKey = "generation"

// Middleware wraps an HTTP handler, modifying the request(r) or response(w) before passing control to next handler

// generationCtxMiddleware - add generation to ctx, notFound and failed decide how a miss or a storage error is answered
func (app *application) generationCtxMiddleware(notFound, failed errorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			generationID := chi.URLParam(r, "generationID")
			ctx := r.Context()

			gen, err := app.storage.Generation.GetByID(ctx, generationID)
			if err != nil {
				switch {
				case errors.Is(err, storage.ErrGenerationNotFound):
					notFound(w, r, err)
					return
				default:
					failed(w, r, err)
					return
				}
			}

			ctx = context.WithValue(ctx, generationCtx, gen)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getGenerationFromCtx(r *http.Request) *storage.Generation {
	gen, _ := r.Context().Value(generationCtx).(*storage.Generation)
	return gen
}
