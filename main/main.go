package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lpernett/godotenv"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/hnzhou16/project-cocraft-redesign/internal/ai"
	"github.com/hnzhou16/project-cocraft-redesign/internal/aws"
	"github.com/hnzhou16/project-cocraft-redesign/internal/db"
	"github.com/hnzhou16/project-cocraft-redesign/internal/design"
	"github.com/hnzhou16/project-cocraft-redesign/internal/env"
	"github.com/hnzhou16/project-cocraft-redesign/internal/mailer"
	"github.com/hnzhou16/project-cocraft-redesign/internal/page"
	"github.com/hnzhou16/project-cocraft-redesign/internal/storage"
)

func main() {
	// load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Error loading .env file")
	}

	// initialize app config
	cfg := config{
		addr:           env.GetString("ADDR", ":8080"),
		env:            env.GetString("ENV", "development"),
		version:        env.GetString("VERSION", "1.0.0"),
		baseURL:        strings.TrimRight(env.GetString("BASE_URL", "http://localhost:8080"), "/"),
		requestTimeout: time.Duration(env.GetInt("REQUEST_TIMEOUT", 300)) * time.Second,
		maxUploadBytes: int64(env.GetInt("MAX_UPLOAD_MB", 10)) << 20,
		corsOrigins:    splitList(env.GetString("CORS_ALLOWED_ORIGINS", "*")),
		dbConfig: dbConfig{
			driver:          env.GetString("STORE_DRIVER", "sqlite"),
			sqlitePath:      env.GetString("SQLITE_PATH", "designs.db"),
			maxOpenConns:    env.GetInt("DB_MAX_OPEN_CONNS", 10),
			maxIdleTime:     time.Duration(env.GetInt("DB_MAX_IDLE_TIME", 10)) * time.Second,
			uri:             env.GetString("MONGODB_URI", ""),
			dbName:          env.GetString("MONGODB_NAME", ""),
			maxPoolSize:     uint64(env.GetInt("MONGODB_MAX_POOL_SIZE", 30)),
			minPoolSize:     uint64(env.GetInt("DB_MIN_POOL_SIZE", 10)),
			maxConnIdleTime: time.Duration(env.GetInt("DB_MAX_CONN_IDLE_TIME", 10)) * time.Second,
			maxConnTimeOut:  time.Duration(env.GetInt("DB_CONN_TIME_OUT", 10)) * time.Second,
		},
		mailConfig: mailConfig{
			apiKey:    env.GetString("SENDGRID_API_KEY", ""),
			fromEmail: env.GetString("FROM_EMAIL", ""),
		},
		awsConfig: awsConfig{
			accessKey:       env.GetString("AWS_ACCESS_KEY", ""),
			secretAccessKey: env.GetString("AWS_SECRET_ACCESS_KEY", ""),
			region:          env.GetString("AWS_REGION", ""),
			s3Bucket:        env.GetString("S3_BUCKET", ""),
		},
		aiConfig: aiConfig{
			apiToken: env.GetString("REPLICATE_API_TOKEN", ""),
			apiUrl:   env.GetString("REPLICATE_API_URL", "https://api.replicate.com"),
			model:    env.GetString("REPLICATE_MODEL", "black-forest-labs/flux-schnell"),
			timeout:  time.Duration(env.GetInt("REPLICATE_TIMEOUT", 120)) * time.Second,
		},
	}

	// initialize logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	ctx := context.Background()

	// connect to db
	var s storage.Collection
	switch cfg.dbConfig.driver {
	case "sqlite":
		sqlConn, err := db.OpenSQLite(ctx, db.SQLConfig{
			DSN:          cfg.dbConfig.sqlitePath,
			MaxOpenConns: cfg.dbConfig.maxOpenConns,
			MaxIdleTime:  cfg.dbConfig.maxIdleTime,
		})
		if err != nil {
			logger.Fatalw("❌ Error opening database", "error", err)
		}
		defer sqlConn.Close()
		logger.Infow("✅ Opened SQLite!", "path", cfg.dbConfig.sqlitePath)

		s = storage.NewSQLCollections(sqlConn)
	case "mongodb":
		mongoConn, err := db.ConnectMongo(ctx, db.MongoConfig{
			URI:             cfg.dbConfig.uri,
			Name:            cfg.dbConfig.dbName,
			MaxPoolSize:     cfg.dbConfig.maxPoolSize,
			MinPoolSize:     cfg.dbConfig.minPoolSize,
			MaxConnIdleTime: cfg.dbConfig.maxConnIdleTime,
			ConnectTimeout:  cfg.dbConfig.maxConnTimeOut,
		})
		if err != nil {
			logger.Fatalw("❌ Error connecting to database", "error", err)
		}
		defer mongoConn.Close()
		logger.Info("✅ Connected to MongoDB!")

		s = storage.NewMongoDBCollections(mongoConn)
	default:
		logger.Fatalw("❌ Unknown STORE_DRIVER", "driver", cfg.dbConfig.driver)
	}

	// Initialize image generation
	if cfg.aiConfig.apiToken == "" {
		logger.Warn("⚠️ REPLICATE_API_TOKEN is empty, generation requests will fail")
	}
	imageGenerator := ai.NewImageGenerator(cfg.aiConfig.apiToken, cfg.aiConfig.apiUrl, cfg.aiConfig.model, cfg.aiConfig.timeout)

	// Initialize app
	app := &application{
		config:   cfg,
		storage:  s,
		logger:   logger,
		designer: design.NewDesigner(imageGenerator, s, logger),
		pages:    &page.Templator{},
	}

	// Initialize Mailer
	if cfg.mailConfig.apiKey != "" {
		app.mailer = mailer.NewSendgrid(cfg.mailConfig.apiKey, cfg.mailConfig.fromEmail, cfg.env != "production")
	}

	// Initialize AWS
	if cfg.awsConfig.s3Bucket != "" {
		archiver, err := aws.NewS3Archiver(ctx, cfg.awsConfig.accessKey, cfg.awsConfig.secretAccessKey, cfg.awsConfig.region, cfg.awsConfig.s3Bucket)
		if err != nil {
			logger.Fatalw("❌ failed to initialize AWS config", "error", err)
		}
		app.archiver = archiver
	}

	// Create the server
	mux := app.mount()

	// Start the server in a goroutine
	server := app.run(mux)

	// Gracefully shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	<-shutdown
	logger.Info("🛑 Server shutting down...")

	// Gracefully shut down the server with a timeout
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Infow("⚠️ Error during server shutdown", "error", err)
	}

	logger.Info("✅ Server gracefully stopped.")
}

func splitList(value string) []string {
	return lo.Compact(lo.Map(strings.Split(value, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}
