// Command rebound runs the rule-driven reverse proxy: it reads its
// configuration file path from REBOUND_CONF_FILE, builds the routing
// Circuit from the configured rules, and serves until signaled.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aaytec/rebound/internal/config"
	"github.com/aaytec/rebound/internal/errorprovider"
	"github.com/aaytec/rebound/internal/logging"
	"github.com/aaytec/rebound/internal/master"
	"github.com/aaytec/rebound/internal/metrics"
	"github.com/aaytec/rebound/internal/rerrors"
)

const defaultErrorFile = "error.html"
const defaultMetricsAddr = ":9090"

func main() {
	os.Exit(run())
}

func run() int {
	confFile := os.Getenv("REBOUND_CONF_FILE")
	if confFile == "" {
		err := rerrors.New(rerrors.ConfigMissing, "REBOUND_CONF_FILE is required")
		os.Stderr.WriteString(err.Error() + "\n")
		return -1
	}

	logger, closer, err := logging.New(logConfigFromEnv())
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		return -1
	}
	if closer != nil {
		defer closer.Close()
	}
	defer logger.Sync()

	cfg, err := config.Load(confFile)
	if err != nil {
		logger.Error("failed to load configuration", zap.String("path", confFile), zap.Error(err))
		return -1
	}

	errProvider := errorprovider.New(errorFilePathFromEnv(), http.StatusNotFound)
	reg := prometheus.NewRegistry()
	m := master.New(cfg, master.Deps{
		ErrorProvider: errProvider,
		Metrics:       metrics.New(reg),
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	adminServer := &http.Server{Addr: metricsAddrFromEnv(), Handler: metrics.Handler(reg)}
	go func() {
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("admin listener exited", zap.Error(err))
		}
	}()
	defer adminServer.Close()

	if err := m.Run(ctx); err != nil {
		logger.Error("master exited with error", zap.Error(err))
		return -1
	}

	logger.Info("rebound shut down cleanly")
	return 0
}

// logConfigFromEnv derives the logger's output destination from
// REBOUND_LOG_DIR / REBOUND_LOG_FILE; stdout is used when neither is
// set.
func logConfigFromEnv() logging.Config {
	if logFile := os.Getenv("REBOUND_LOG_FILE"); logFile != "" {
		return logging.Config{Output: logFile, MaxSize: 5, MaxBackups: 3}
	}
	if logDir := os.Getenv("REBOUND_LOG_DIR"); logDir != "" {
		return logging.Config{Output: logDir + "/rebound.log", MaxSize: 5, MaxBackups: 3}
	}
	return logging.Config{Output: "stdout"}
}

// metricsAddrFromEnv derives the admin listener address serving
// Prometheus metrics from REBOUND_METRICS_ADDR, defaulting to ":9090"
// when unset.
func metricsAddrFromEnv() string {
	if addr := os.Getenv("REBOUND_METRICS_ADDR"); addr != "" {
		return addr
	}
	return defaultMetricsAddr
}

// errorFilePathFromEnv derives the ErrorProvider's backing file from
// REBOUND_SITE_DIR / REBOUND_DEFAULT_ERROR_FILE.
func errorFilePathFromEnv() string {
	if f := os.Getenv("REBOUND_DEFAULT_ERROR_FILE"); f != "" {
		return f
	}
	if dir := os.Getenv("REBOUND_SITE_DIR"); dir != "" {
		return dir + "/" + defaultErrorFile
	}
	return defaultErrorFile
}
