package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"nodeBoard/configs"
	"nodeBoard/internal/clients/openai"
	"nodeBoard/internal/clients/payments"
	"nodeBoard/internal/enums"
	"nodeBoard/internal/execution"
	"nodeBoard/internal/handlers"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/ratelimit"
	"nodeBoard/internal/repositories"
	"nodeBoard/internal/servers/database"
	"nodeBoard/internal/servers/http"
	"nodeBoard/internal/services"
	"nodeBoard/internal/telemetry"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "nodeBoard/docs"
)

type App struct {
	ctx             context.Context
	configs         *configs.Config
	db              *gorm.DB
	redis           *redis.Client
	shutdownTracing func(context.Context) error

	authRepo         *repositories.AuthenticationRepository
	whiteboardRepo   *repositories.WhiteboardRepository
	assetRepo        *repositories.AssetRepository
	creditRepo       *repositories.CreditRepository
	subscriptionRepo *repositories.SubscriptionRepository
}

func NewApp(ctx context.Context, config *configs.Config) *App {
	return &App{ctx: ctx, configs: config}
}

// LetsGo runs the HTTP and websocket server until ctx is cancelled.
func (app *App) LetsGo() error {
	if err := app.initialize(); err != nil {
		return err
	}
	defer app.close()

	if err := database.Migrate(app.db); err != nil {
		return err
	}

	app.initializeRedis()
	if err := app.redis.Ping(app.ctx).Err(); err != nil {
		return fmt.Errorf("redis: connecting to %s: %w", app.configs.Viper.GetString("redis.addr"), err)
	}

	minioService, err := services.NewMinioService(app.ctx, app.configs)
	if err != nil {
		return err
	}
	fileManagerService := services.NewFileManagerService(minioService, app.assetRepo)
	publisher := services.NewWhiteboardEventPublisher(app.redis)

	creditService := services.NewCreditService(app.creditRepo)
	authService := services.NewAuthenticationService(app.authRepo, creditService, app.configs)
	whiteboardService := services.NewWhiteboardService(app.whiteboardRepo, app.assetRepo, fileManagerService, publisher)
	subscriptionService := app.newSubscriptionService()

	engine := app.newEngine(creditService, fileManagerService, publisher)
	executionService := services.NewExecutionService(
		app.whiteboardRepo,
		engine,
		app.configs.Duration("execution.timeout", 5*time.Minute),
	)

	var limiter interfaces.RateLimiter
	if perMinute := app.configs.Viper.GetInt("ratelimit.execute_per_minute"); perMinute > 0 {
		limiter = ratelimit.NewRedisLimiter(app.redis, "nodeboard:ratelimit", perMinute)
	}

	restHandler := handlers.NewRestHandler(
		authService,
		whiteboardService,
		executionService,
		creditService,
		subscriptionService,
		limiter,
		app.configs.JwtKey(),
	)
	socketWhiteboardHandler := handlers.NewSocketWhiteboardHandler(app.redis, whiteboardService, app.configs.JwtKey())

	return http.NewHttpServer(
		app.configs.Viper.GetString("http.addr"),
		restHandler,
		socketWhiteboardHandler,
	).Run(app.ctx)
}

// Migrate only applies the schema.
func (app *App) Migrate() error {
	if err := app.initialize(); err != nil {
		return err
	}
	defer app.close()
	return database.Migrate(app.db)
}

// SyncSubscriptions syncs every customer once, or periodically when
// interval is positive.
func (app *App) SyncSubscriptions(interval time.Duration) error {
	if err := app.initialize(); err != nil {
		return err
	}
	defer app.close()

	subscriptionService := app.newSubscriptionService()
	if interval > 0 {
		return subscriptionService.RunPeriodicSync(app.ctx, interval)
	}

	synced, failed, err := subscriptionService.SyncAll(app.ctx)
	if err != nil {
		return err
	}
	slog.Info("subscriptions synced", "synced", synced, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d subscription syncs failed", failed)
	}
	return nil
}

func (app *App) initialize() error {
	app.initializeLogger()

	shutdownTracing, err := telemetry.Setup(app.ctx, app.configs)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	app.shutdownTracing = shutdownTracing

	db, err := database.Connect(app.configs)
	if err != nil {
		return err
	}
	app.db = db

	app.authRepo = repositories.NewAuthenticationRepository(db)
	app.whiteboardRepo = repositories.NewWhiteboardRepository(db)
	app.assetRepo = repositories.NewAssetRepository(db)
	app.creditRepo = repositories.NewCreditRepository(db)
	app.subscriptionRepo = repositories.NewSubscriptionRepository(db)
	return nil
}

func (app *App) initializeLogger() {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if app.configs.IsDevelopment() {
		options.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	slog.SetDefault(slog.New(handler))
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.configs.Viper.GetString("redis.addr"),
		Password: app.configs.Viper.GetString("redis.password"),
		DB:       app.configs.Viper.GetInt("redis.db"),
	})
}

func (app *App) newSubscriptionService() *services.SubscriptionService {
	var provider interfaces.PaymentProvider
	if stripeProvider := payments.NewStripeProvider(app.configs); stripeProvider != nil {
		provider = stripeProvider
	} else {
		slog.Warn("stripe.secret_key is empty, subscription sync is disabled")
	}
	return services.NewSubscriptionService(app.subscriptionRepo, app.authRepo, provider, app.configs)
}

func (app *App) newEngine(
	creditService *services.CreditService,
	assets interfaces.AssetStore,
	publisher interfaces.EventPublisher,
) *execution.Engine {
	client := openai.NewClient(openai.OptionsFromConfig(app.configs))

	executors := []execution.Executor{
		execution.NewTextExecutor(client),
		execution.NewImageExecutor(client, assets),
		execution.NewSpeechExecutor(client, assets, app.configs.Viper.GetString("openai.voice")),
		execution.NewWebsiteExecutor(client, assets),
	}

	costs := map[string]int64{}
	for _, creditType := range enums.CreditTypes {
		costs[creditType] = app.configs.Viper.GetInt64("credits.cost." + creditType)
	}

	return execution.NewEngine(executors, creditService,
		execution.WithMaxSteps(app.configs.Viper.GetInt("execution.max_steps")),
		execution.WithCosts(costs),
		execution.WithPublisher(publisher),
	)
}

func (app *App) close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			slog.Warn("closing redis", "error", err)
		}
	}
	if app.db != nil {
		if sqlDB, err := app.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if app.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.shutdownTracing(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("flushing traces", "error", err)
		}
	}
}
