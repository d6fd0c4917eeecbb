package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/ai"
	"resume-studio/internal/analysis"
	googleauth "resume-studio/internal/auth"
	"resume-studio/internal/extract"
	"resume-studio/internal/queue"
	"resume-studio/internal/shared/config"
	"resume-studio/internal/shared/server"
	"resume-studio/internal/shared/storage/db"
	"resume-studio/internal/shared/storage/object"
	localstore "resume-studio/internal/shared/storage/object/local"
	s3store "resume-studio/internal/shared/storage/object/s3"
	"resume-studio/internal/shared/telemetry"
	"resume-studio/internal/users"
)

const janitorInterval = 6 * time.Hour

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	Queue           queue.Client
	AnalysisRepo    analysis.Repo
	UsersRepo       users.Repo
	AnalysisSaver   *analysis.Saver
	AnalysisService *analysis.Service
	UsersService    *users.Service
	AnalysisHandler *analysis.Handler
	ImportHandler   *extract.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService

	janitorCancel context.CancelFunc
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	janitorCtx, cancel := context.WithCancel(context.Background())
	app.janitorCancel = cancel
	analysis.StartJanitor(janitorCtx, app.AnalysisRepo, janitorInterval)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		ImportHandler:   app.ImportHandler,
		UsersHandler:    app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

// Shutdown stops background workers and flushes pending saves.
func (a *App) Shutdown() {
	if a.janitorCancel != nil {
		a.janitorCancel()
	}
	if a.AnalysisSaver != nil {
		a.AnalysisSaver.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
}

// buildProviders initializes every AI provider with credentials configured.
// A provider that fails to initialize is logged and omitted so the analysis
// service falls back to heuristic scoring instead of failing requests.
func buildProviders(ctx context.Context, cfg config.Config) map[string]ai.Provider {
	providers := make(map[string]ai.Provider)

	if strings.TrimSpace(cfg.GeminiAPIKey) != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.GeminiAPIKey)
		if err != nil {
			telemetry.Error("gemini provider init failed", map[string]any{"error": err.Error()})
		} else {
			providers["gemini"] = gemini
		}
	}

	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		openAI, err := ai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			telemetry.Error("openai provider init failed", map[string]any{"error": err.Error()})
		} else {
			providers["openai"] = openAI
		}
	}

	return providers
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(ctx context.Context, app *App) error {
	var analysisRepo analysis.Repo
	var userRepo users.Repo

	if app.DB != nil {
		analysisRepo = &analysis.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		analysisRepo = analysis.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	providers := buildProviders(ctx, app.Config)

	saver := analysis.NewSaver(analysisRepo, app.Queue)
	analysisSvc := analysis.NewService(analysisRepo, providers, app.Config.AIProvider, saver, app.Store)

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.AnalysisRepo = analysisRepo
	app.UsersRepo = userRepo
	app.AnalysisSaver = saver
	app.AnalysisService = analysisSvc
	app.UsersService = userSvc
	app.AnalysisHandler = analysis.NewHandler(analysisSvc)
	app.ImportHandler = extract.NewHandler(app.Store)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
