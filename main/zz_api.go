package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/hnzhou16/project-cocraft-redesign/internal/aws"
	"github.com/hnzhou16/project-cocraft-redesign/internal/design"
	"github.com/hnzhou16/project-cocraft-redesign/internal/mailer"
	"github.com/hnzhou16/project-cocraft-redesign/internal/page"
	"github.com/hnzhou16/project-cocraft-redesign/internal/storage"
)

// zz_api.go is named to ensure it's compiled last.
// This allows all handler functions (defined in other files) to be available.

type application struct {
	config   config
	storage  storage.Collection
	logger   *zap.SugaredLogger
	designer *design.Designer
	pages    *page.Templator
	// mailer and archiver are nil when not configured
	mailer   mailer.Client
	archiver aws.Archiver
}

type config struct {
	addr           string
	env            string
	version        string
	baseURL        string
	requestTimeout time.Duration
	maxUploadBytes int64
	corsOrigins    []string
	dbConfig       dbConfig
	mailConfig     mailConfig
	awsConfig      awsConfig
	aiConfig       aiConfig
}

type dbConfig struct {
	driver          string
	sqlitePath      string
	maxOpenConns    int
	maxIdleTime     time.Duration
	uri             string
	dbName          string
	maxPoolSize     uint64
	minPoolSize     uint64
	maxConnIdleTime time.Duration
	maxConnTimeOut  time.Duration
}

type mailConfig struct {
	apiKey    string
	fromEmail string
}

type awsConfig struct {
	accessKey       string
	secretAccessKey string
	region          string
	s3Bucket        string
}

type aiConfig struct {
	apiToken string
	apiUrl   string
	model    string
	timeout  time.Duration
}

func (app *application) mount() *chi.Mux {
	// mux is returned in chi
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// timeout request context, generation runs three predictions in a row
	r.Use(middleware.Timeout(app.config.requestTimeout))

	r.NotFound(app.notFoundPageHandler)

	r.Get("/health", app.healthCheckHandler)

	// pages
	r.Get("/", app.homePageHandler)
	r.Get("/create", app.createPageHandler)
	r.With(app.generationCtxMiddleware(app.notFoundPage, app.internalServerErrorPage)).
		Get("/results/{generationID}", app.resultsPageHandler)

	// api
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: app.config.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}).Handler)

		r.Post("/generate", app.generateHandler)
		r.With(app.generationCtxMiddleware(app.notFoundError, app.internalServerError)).
			Get("/generations/{generationID}", app.getGenerationHandler)
	})

	return r
}

func (app *application) run(mux *chi.Mux) *http.Server {

	srv := &http.Server{
		Addr:    app.config.addr,
		Handler: mux,
		// leave room for the router timeout to answer first
		WriteTimeout: app.config.requestTimeout + 10*time.Second,
		ReadTimeout:  30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	app.logger.Infow("server started", "addr", app.config.addr, "env", app.config.env)

	// Start server in a goroutine to allow graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Fatalw("server failed", "error", err)
		}
	}()

	return srv
}
