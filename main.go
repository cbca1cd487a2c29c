package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/maze-collapse/api"
	api_i "github.com/beka-birhanu/maze-collapse/api/i"
	"github.com/beka-birhanu/maze-collapse/api/identity"
	mazeapi "github.com/beka-birhanu/maze-collapse/api/maze"
	runapi "github.com/beka-birhanu/maze-collapse/api/run"
	"github.com/beka-birhanu/maze-collapse/config"
	"github.com/beka-birhanu/maze-collapse/infrastruture/leaderboard"
	"github.com/beka-birhanu/maze-collapse/infrastruture/repo"
	"github.com/beka-birhanu/maze-collapse/infrastruture/token"
	"github.com/beka-birhanu/maze-collapse/logger"
	"github.com/beka-birhanu/maze-collapse/service"
	"github.com/beka-birhanu/maze-collapse/service/i"
	"github.com/beka-birhanu/maze-collapse/telemetry"
	"github.com/beka-birhanu/maze-collapse/web"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	playerRepo     *repo.PlayerRepo
	runRepo        *repo.RunRepo
	board          i.Leaderboard
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	mazeService    i.MazeGenerator
	runService     i.RunTracker
	controllers    []api_i.Controller
	authMiddleware gin.HandlerFunc
	router         *api.Router
	appLogger      *logger.Logger
)

func initTelemetry(ctx context.Context) func() {
	if !telemetry.Enabled() {
		appLogger.Info("OTLP endpoint not configured, tracing disabled")
		return func() {}
	}

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		appLogger.Warning(fmt.Sprintf("Telemetry setup failed, running without tracing: %v", err))
		return func() {}
	}

	appLogger.Info("Telemetry initialized")
	return func() {
		if err := shutdown(context.Background()); err != nil {
			appLogger.Error(fmt.Sprintf("Shutting down telemetry: %v", err))
		}
	}
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)
	if config.Envs.DBUser == "" {
		uri = fmt.Sprintf("mongodb://%s:%v", config.Envs.DBHost, config.Envs.DBPort)
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context) {
	playerRepo = repo.NewPlayerRepo(mongoClient, config.Envs.DBName, "players")
	if err := playerRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating player indexes: %v", err))
		os.Exit(1)
	}

	runRepo = repo.NewRunRepo(mongoClient, config.Envs.DBName, "runs")
	if err := runRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating run indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Repositories initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initLeaderboard() {
	var err error
	board, err = leaderboard.NewRedisLeaderboard(redisClient, "leaderboard", int64(config.Envs.LeaderboardSize))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	authLogger, err := logger.New("AUTH", logger.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth logger: %v", err))
		os.Exit(1)
	}

	authService, err = service.NewAuthService(playerRepo, jwtTokenizer, authLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initRunService() {
	runLogger, err := logger.New("RUNS", logger.ColorYellow, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run logger: %v", err))
		os.Exit(1)
	}

	runService, err = service.NewRunService(jwtTokenizer, runRepo, board, runLogger, &service.RunOptions{
		TicketTTL: time.Duration(config.Envs.RunTicketTTLSeconds) * time.Second,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run service initialized")
}

func initMazeService() {
	mazeLogger, err := logger.New("MAZE", logger.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze logger: %v", err))
		os.Exit(1)
	}

	mazeService, err = service.NewMazeService(service.MazeOptions{
		DefaultRows:  config.Envs.MazeRows,
		DefaultCols:  config.Envs.MazeCols,
		MaxDimension: config.Envs.MazeMaxDimension,
	}, mazeLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initControllers() {
	mazeController, err := mazeapi.NewMazeController(mazeService, runService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	controllers = append(controllers, mazeController)

	if runService == nil {
		appLogger.Info("Persistence disabled, serving mazes only")
		return
	}

	runController, err := runapi.NewRunController(runService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run controller: %v", err))
		os.Exit(1)
	}
	controllers = append(controllers, identity.NewIdentityServer(authService), runController)
	authMiddleware = identity.Authorize(jwtTokenizer, authService)
	appLogger.Info("Controllers initialized")
}

func initRouter() {
	page, err := web.Page()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading game page: %v", err))
		os.Exit(1)
	}
	assets, err := web.Assets()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading game assets: %v", err))
		os.Exit(1)
	}

	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.Port),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             controllers,
		AuthorizationMiddleware: authMiddleware,
		Page:                    page,
		Assets:                  assets,
	})
	appLogger.Info("Router initialized")
}

func main() {
	var err error
	appLogger, err = logger.New("APP", logger.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating app logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownTelemetry := initTelemetry(ctx)
	defer shutdownTelemetry()

	if config.Envs.PersistenceEnabled() {
		initMongo(ctx)
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
		initRepos(ctx)

		initRedis(ctx)
		defer redisClient.Close()
		initLeaderboard()

		initJWTTokenizer()
		initAuthService()
		initRunService()
	}

	initMazeService()
	initControllers()
	initRouter()

	appLogger.Info(fmt.Sprintf("Listening on port %d", config.Envs.Port))
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
