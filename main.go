package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/deenhub/deenhub-backend/handlers"
	"github.com/deenhub/deenhub-backend/internal/config"
	"github.com/deenhub/deenhub-backend/internal/content"
	"github.com/deenhub/deenhub-backend/internal/database"
	"github.com/deenhub/deenhub-backend/internal/resource"
	"github.com/deenhub/deenhub-backend/pkg/logger"
	"github.com/deenhub/deenhub-backend/pkg/metrics"
	"github.com/deenhub/deenhub-backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v origins=%d", cfg.MongoDB.URI != "", cfg.Redis.Host != "", len(cfg.CORS.Origins))

	r := gin.New()
	r.Use(middleware.CORS(cfg.CORS.Origins))
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Basic route
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend server is running!"})
	})

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	// The store connection is lazy and cached: nothing connects until the
	// first persistence operation, and every operation reuses the handle.
	conn := database.New(cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	defer func() { _ = conn.Disconnect(context.Background()) }()

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps["mongodb"] = conn.Ping(ctx) == nil
		if !deps["mongodb"] {
			ready = false
		}

		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Register the four content resources on the shared CRUD engine
	api := r.Group("/api")
	for _, schema := range content.All() {
		store := resource.NewMongoStore(conn, cfg.MongoDB.Database, schema)
		go ensureIndexes(store, schema.Collection, cfg.MongoDB.Timeout)
		resource.NewHandler(schema, store).Register(api)
	}

	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting content service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

// ensureIndexes creates the collection's unique and text indexes without
// blocking startup; the store stays usable even when the database comes up
// later, since connections are established lazily per operation.
func ensureIndexes(store *resource.MongoStore, collection string, timeout time.Duration) {
	const maxAttempts = 5
	backoff := time.Second
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err := store.EnsureIndexes(ctx)
		cancel()
		if err == nil {
			logger.Debugf("indexes ensured for %s", collection)
			return
		}
		logger.Warnf("attempt %d/%d: failed to ensure indexes for %s: %v", attempt, maxAttempts, collection, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
}
