package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/analysis"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/llm"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/llm/gemini"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/llm/openai"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/projects"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/services/health"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/config"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/server"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/storage/db"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/storage/object"
	localstore "github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/storage/object/local"
	s3store "github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/storage/object/s3"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/submissions"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/web"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	LLM          llm.Client
	ProjectsRepo projects.Repo
	Orchestrator *submissions.Orchestrator
	Sessions     *web.SessionStore

	closers []func() error
}

// Option overrides a dependency, mainly for tests.
type Option func(*buildOptions)

type buildOptions struct {
	llm   llm.Client
	store object.ObjectStore
}

// WithLLMClient replaces the provider client built from the configuration.
func WithLLMClient(c llm.Client) Option {
	return func(o *buildOptions) { o.llm = c }
}

// WithObjectStore replaces the object store built from the configuration.
func WithObjectStore(s object.ObjectStore) Option {
	return func(o *buildOptions) { o.store = s }
}

// Build constructs every dependency once and wires the router.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = config.StoreLocal
	}
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	filesDir := ""
	app.Store = bo.store
	if app.Store == nil {
		store, dir, err := buildStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.Store = store
		filesDir = dir
	}

	app.LLM = bo.llm
	if app.LLM == nil {
		client, closer, err := buildLLM(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.LLM = client
		if closer != nil {
			app.closers = append(app.closers, closer)
		}
	}

	if app.DB != nil {
		app.ProjectsRepo = &projects.PGRepo{DB: app.DB}
	} else {
		app.ProjectsRepo = projects.NewMemoryRepo()
	}

	app.Orchestrator = &submissions.Orchestrator{
		Analyzer: &analysis.Client{LLM: app.LLM, Model: cfg.LLMModel},
		Persister: &projects.Service{
			Uploader: &projects.Uploader{Store: app.Store},
			Repo:     app.ProjectsRepo,
		},
	}

	app.Sessions = web.NewSessionStore(cfg.SessionTTL, web.NewPreviewRegistry())
	webHandler := web.NewHandler(app.Sessions, app.Orchestrator, submissions.NewGuard())
	webHandler.SecureCookies = !cfg.IsDevLike()

	var healthDB health.Pinger
	if app.DB != nil {
		healthDB = app.DB
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:      cfg,
		Health:      health.NewService(healthDB),
		Submissions: submissions.NewHandler(app.Orchestrator, submissions.NewGuard()),
		Web:         webHandler,
		FilesDir:    filesDir,
	})

	return app, nil
}

// Close releases clients opened by Build.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.DB != nil && !db.IsLambdaRuntime() {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory project records")
			return nil, nil
		}
		return nil, db.ErrEmptyURL
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
		if cfg.IsDevLike() {
			log.Printf("bootstrap: database connect failed; using in-memory project records: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

// buildStore returns the object store and, for the local store, the directory
// to serve under /files.
func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, string, error) {
	switch cfg.ObjectStoreType {
	case config.StoreS3:
		store, err := s3store.New(ctx, s3store.Options{
			Endpoint:      cfg.StorageEndpoint,
			Region:        cfg.StorageRegion,
			AccessKey:     cfg.StorageAccessKey,
			SecretKey:     cfg.StorageSecretKey,
			Bucket:        cfg.StorageBucket,
			Prefix:        cfg.StoragePrefix,
			PublicBaseURL: cfg.StoragePublicBaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		store, err := localstore.New(cfg.LocalStoreDir, cfg.StorageBucket, cfg.StoragePublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		log.Printf("bootstrap: storing images under %s", store.Dir())
		return store, store.Dir(), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, func() error, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	case config.ProviderGemini, "":
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
}
