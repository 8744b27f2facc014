package app

import (
	"os"
	"strconv"
	"time"

	"go-emdir/internal/employee"
	"go-emdir/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const defaultUpstreamBaseURL = "http://localhost:8112"

// BuildApp merakit dependency sekali di startup: pipeline resilience,
// upstream client, cache, service, lalu routes. Semuanya singleton
// seumur proses.
func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	baseURL := os.Getenv("UPSTREAM_BASE_URL")
	if baseURL == "" {
		baseURL = defaultUpstreamBaseURL
	}

	clientCfg := employee.DefaultClientConfig(baseURL)
	if timeout := envSeconds("UPSTREAM_TIMEOUT_SECONDS"); timeout > 0 {
		clientCfg.Timeout = timeout
	}

	client := employee.NewClient(clientCfg, logger)
	service := employee.NewService(
		client,
		clockwork.NewRealClock(),
		envSeconds("CACHE_TTL_SECONDS"), // <= 0 memakai default 120s
		logger,
	)
	handler := employee.NewHandler(service, logger)

	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	employee.RegisterRoutes(api, handler, logger)

	logger.Info("application wired",
		zap.String("upstream_base_url", baseURL),
	)
	return nil
}

func envSeconds(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
