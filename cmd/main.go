package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/mstepanov-dev/recipebox/internal/facades"
	"github.com/mstepanov-dev/recipebox/internal/handlers"
	"github.com/mstepanov-dev/recipebox/internal/jwt"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/middlewares"
	"github.com/mstepanov-dev/recipebox/internal/repositories"
	"github.com/mstepanov-dev/recipebox/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title recipebox API
// @version 1.0.0
// @description Recipe-sharing backend: authentication, recipe CRUD and favorites
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, cacheExpSecond,
		kafkaBroker, kafkaTopic,
		s3Endpoint, s3Region, s3Bucket, s3AccessKey, s3SecretKey, s3PublicURL,
		logLevel,
		jwtSecret, jwtAccessExp, jwtRefreshExp,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, cacheExpSecond,
		kafkaBroker, kafkaTopic,
		s3Endpoint, s3Region, s3Bucket, s3AccessKey, s3SecretKey, s3PublicURL,
		logLevel,
		jwtSecret, jwtAccessExp, jwtRefreshExp,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, S3, logging, and JWT configuration.
func parseConfig(path string) (
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort int, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, cacheExpSecond int,
	kafkaBroker, kafkaTopic string,
	s3Endpoint, s3Region, s3Bucket, s3AccessKey, s3SecretKey, s3PublicURL string,
	logLevel string,
	jwtSecretKey string, jwtAccessExpSecond, jwtRefreshExpSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "recipebox")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}
	if cacheExpSecond, err = strconv.Atoi(getEnv("RECIPE_CACHE_EXP_SECOND", "300")); err != nil {
		return
	}

	// Kafka config
	kafkaBroker = getEnv("KAFKA_BROKER", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "recipe-events")

	// S3 image store config
	s3Endpoint = getEnv("S3_ENDPOINT", "http://localhost:9000")
	s3Region = getEnv("S3_REGION", "us-east-1")
	s3Bucket = getEnv("S3_BUCKET", "recipe-thumbnails")
	s3AccessKey = getEnv("S3_ACCESS_KEY", "minioadmin")
	s3SecretKey = getEnv("S3_SECRET_KEY", "minioadmin")
	s3PublicURL = getEnv("S3_PUBLIC_URL", s3Endpoint)

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtAccessExpSecond, err = strconv.Atoi(getEnv("JWT_ACCESS_EXP_SECOND", "900")); err != nil {
		return
	}
	if jwtRefreshExpSecond, err = strconv.Atoi(getEnv("JWT_REFRESH_EXP_SECOND", "864000")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, S3 client, and HTTP
// server. It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, cacheExpSecond int,
	kafkaBroker, kafkaTopic string,
	s3Endpoint, s3Region, s3Bucket, s3AccessKey, s3SecretKey, s3PublicURL string,
	logLevel string,
	jwtSecretKey string, jwtAccessExpSecond, jwtRefreshExpSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", pgHost, pgPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Error("PostgreSQL connection error:", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Error("PostgreSQL ping failed:", err)
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password:     redisPassword,
		DB:           redisDB,
		PoolSize:     redisPoolSize,
		MinIdleConns: redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Error("Redis connection error:", err)
		return err
	}
	defer rdb.Close()

	// Kafka writer, optional: recipe events are dropped when no broker is set
	var kafkaWriter *kafka.Writer
	if kafkaBroker != "" {
		kafkaWriter = &kafka.Writer{
			Addr:     kafka.TCP(kafkaBroker),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer kafkaWriter.Close()
	}

	// S3 image store
	s3Client, err := facades.NewS3Client(ctx, s3Endpoint, s3Region, s3AccessKey, s3SecretKey)
	if err != nil {
		logger.Log.Error("S3 client error:", err)
		return err
	}
	imageStore := facades.NewImageStoreFacade(s3Client, s3Bucket, s3PublicURL)

	// Initialize JWT service
	tokenIssuer := jwt.New(jwtSecretKey,
		time.Duration(jwtAccessExpSecond)*time.Second,
		time.Duration(jwtRefreshExpSecond)*time.Second)
	refreshExp := time.Duration(jwtRefreshExpSecond) * time.Second

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	recipeReadRepo := repositories.NewRecipeReadRepository(db)
	recipeWriteRepo := repositories.NewRecipeWriteRepository(db)
	favoriteReadRepo := repositories.NewFavoriteReadRepository(db)
	favoriteWriteRepo := repositories.NewFavoriteWriteRepository(db)
	recipeCacheRepo := repositories.NewRecipeCacheRepository(rdb, time.Duration(cacheExpSecond)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokenIssuer)
	recipeService := newRecipeService(recipeReadRepo, recipeWriteRepo, recipeCacheRepo, imageStore, kafkaWriter)
	favoriteService := services.NewFavoriteService(recipeReadRepo, favoriteReadRepo, favoriteWriteRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	authMiddleware := middlewares.AuthMiddleware(tokenIssuer, userReadRepo)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public routes
			r.Post("/register", handlers.NewRegisterHandler(authService))
			r.Post("/login", handlers.NewLoginHandler(authService, refreshExp))
			r.Post("/refresh-token", handlers.NewRefreshTokenHandler(authService, refreshExp))

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Post("/logout", handlers.NewLogoutHandler(authService))
				r.Get("/current-user", handlers.NewCurrentUserHandler())
			})
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/", handlers.NewListRecipesHandler(recipeService))
			r.Get("/user-recipes", handlers.NewUserRecipesHandler(recipeService))
			r.Get("/favorites", handlers.NewListFavoritesHandler(favoriteService))
			r.Post("/create", handlers.NewCreateRecipeHandler(recipeService))
			r.Get("/{recipeId}", handlers.NewGetRecipeHandler(recipeService))
			r.Patch("/{recipeId}/update", handlers.NewUpdateRecipeHandler(recipeService))
			r.Delete("/{recipeId}/delete", handlers.NewDeleteRecipeHandler(recipeService))
			r.Post("/{recipeId}/add-favorite", handlers.NewAddFavoriteHandler(favoriteService))
			r.Delete("/{recipeId}/remove-favorite", handlers.NewRemoveFavoriteHandler(favoriteService))
		})
	})

	// Liveness route
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true,"message":"Server is running successfully"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newRecipeService keeps the nil check for the optional Kafka writer in one
// place: a nil *kafka.Writer must not become a non-nil interface.
func newRecipeService(
	readRepo *repositories.RecipeReadRepository,
	writeRepo *repositories.RecipeWriteRepository,
	cacheRepo *repositories.RecipeCacheRepository,
	imageStore *facades.ImageStoreFacade,
	kafkaWriter *kafka.Writer,
) *services.RecipeService {
	var w services.KafkaWriter
	if kafkaWriter != nil {
		w = kafkaWriter
	}
	return services.NewRecipeService(readRepo, writeRepo, cacheRepo, imageStore, w)
}
