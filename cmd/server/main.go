// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/localdash/localdash-api-server/internal/api"
	"github.com/localdash/localdash-api-server/internal/config"
	"github.com/localdash/localdash-api-server/internal/docker"
	"github.com/localdash/localdash-api-server/internal/logs"
)

// --- Version Info ---
var (
	version = "development"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// --- Define and Parse Command Line Flags ---
	var showVersion bool
	var envFile string
	defaultEnvFile := ".env"

	flag.BoolVar(&showVersion, "version", false, "Print server version and exit")
	flag.BoolVar(&showVersion, "v", false, "Print server version and exit (shorthand)")
	flag.StringVar(&envFile, "env-file", defaultEnvFile, "Path to the .env configuration file")
	flag.Parse()

	if showVersion {
		fmt.Printf("localdash-api-server version: %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	// --- Load configuration First ---
	basicLogger := log.New(os.Stderr)
	basicLogger.Infof("Attempting to load configuration from '%s' and environment variables...", envFile)
	err := config.LoadConfig(envFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && envFile == defaultEnvFile {
			basicLogger.Infof("Default config file '%s' not found. Using environment variables and defaults.", defaultEnvFile)
			if err := config.LoadConfig(""); err != nil {
				basicLogger.Fatalf("Failed to load configuration: %v", err)
			}
		} else {
			basicLogger.Fatalf("Failed to load configuration: %v", err)
		}
	} else {
		basicLogger.Infof("Configuration file '%s' loaded successfully.", envFile)
	}

	// --- Initialize Logger Based on Config ---
	log.SetOutput(os.Stderr)
	log.SetTimeFormat("2006-01-02 15:04:05")
	switch strings.ToLower(config.AppConfig.LogLevel) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	default:
		log.Warnf("Invalid LOG_LEVEL '%s', defaulting to 'info'", config.AppConfig.LogLevel)
		log.SetLevel(log.InfoLevel)
	}
	log.Infof("localdash-api-server version %s starting...", version)
	log.Infof("Configuration processed. Log level set to '%s'.", config.AppConfig.LogLevel)

	// --- Initialize Log Aggregation Service ---
	log.Info("Initializing log aggregation service...")
	dockerClient := docker.NewClient(config.AppConfig.ContainerRuntime)
	logsService := logs.NewService(dockerClient, logs.Options{
		Candidates:   config.AppConfig.LogSourceCandidates(),
		TailLines:    config.AppConfig.LogTailLines,
		FetchTimeout: config.AppConfig.LogFetchTimeout,
		ListTimeout:  config.AppConfig.ListTimeout,
	})
	api.SetLogsService(logsService)
	log.Infof("Log source candidates: %v", config.AppConfig.LogSourceCandidates())

	// --- Initialize Health Monitoring ---
	log.Info("Initializing Health Monitoring...")
	api.InitHealth(version)

	// --- Initialize Gin router ---
	if strings.ToLower(config.AppConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode) // Default to debug
	}
	log.Infof("Gin running in '%s' mode", gin.Mode())
	router := gin.Default() // Use Default for logging and recovery middleware

	// Configure trusted proxies
	if config.AppConfig.TrustedProxies == "nil" {
		log.Info("Proxy trust disabled (TRUSTED_PROXIES=nil)")
		_ = router.SetTrustedProxies(nil)
	} else if config.AppConfig.TrustedProxies != "" {
		proxyList := strings.Split(config.AppConfig.TrustedProxies, ",")
		for i, proxy := range proxyList {
			proxyList[i] = strings.TrimSpace(proxy)
		}
		log.Infof("Setting trusted proxies: %v", proxyList)
		if err := router.SetTrustedProxies(proxyList); err != nil {
			log.Warnf("Error setting trusted proxies: %v. Using default.", err)
		}
	} else {
		log.Warn("All proxies are trusted (default). Set TRUSTED_PROXIES=nil or provide a list.")
	}

	// Setup API routes
	api.SetupRoutes(router)

	// Root handler
	router.GET("/", func(c *gin.Context) {
		protocol := "http"
		if config.AppConfig.TLSEnable {
			protocol = "https"
		} else if c.Request.Header.Get("X-Forwarded-Proto") == "https" {
			protocol = "https"
		}

		host := c.Request.Host
		baseURL := fmt.Sprintf("%s://%s", protocol, host)

		c.JSON(http.StatusOK, gin.H{
			"message":         fmt.Sprintf("LocalStack Dashboard API Server (Version: %s) is running (%s).", version, protocol),
			"logs_endpoint":   fmt.Sprintf("GET %s/logs", baseURL),
			"proxy_base_path": fmt.Sprintf("%s/api", baseURL),
			"localstack_url":  config.AppConfig.LocalStackURL,
			"notes": []string{
				"Relays /api/* requests to LocalStack with permissive CORS headers.",
				"Aggregates the LocalStack container's Docker logs into a leveled feed.",
				"Local development tooling: no authentication, do not expose publicly.",
			},
		})
	})

	// --- Prepare Server Configuration ---
	listenAddr := fmt.Sprintf(":%s", config.AppConfig.APIPort)
	serverBaseURL := fmt.Sprintf("http://localhost:%s", config.AppConfig.APIPort)
	if config.AppConfig.TLSEnable {
		serverBaseURL = fmt.Sprintf("https://localhost:%s", config.AppConfig.APIPort)
	}

	srv := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	// --- Start Server Goroutine ---
	go func() {
		protocol := "HTTP"
		if config.AppConfig.TLSEnable {
			protocol = "HTTPS"
			log.Infof("Starting %s server, accessible locally at %s (and potentially other IPs)", protocol, serverBaseURL)
			if config.AppConfig.TLSCertFile == "" || config.AppConfig.TLSKeyFile == "" {
				log.Fatalf("TLS is enabled but TLS_CERT_FILE or TLS_KEY_FILE is not set.")
			}
			if _, err := os.Stat(config.AppConfig.TLSCertFile); os.IsNotExist(err) {
				log.Fatalf("TLS cert file not found: %s", config.AppConfig.TLSCertFile)
			}
			if _, err := os.Stat(config.AppConfig.TLSKeyFile); os.IsNotExist(err) {
				log.Fatalf("TLS key file not found: %s", config.AppConfig.TLSKeyFile)
			}
			if err := srv.ListenAndServeTLS(config.AppConfig.TLSCertFile, config.AppConfig.TLSKeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start %s server: %v", protocol, err)
			}
		} else {
			log.Infof("Starting %s server, accessible locally at %s (and potentially other IPs)", protocol, serverBaseURL)
			log.Infof("Proxy: %s/api/* -> %s/*", serverBaseURL, config.AppConfig.LocalStackURL)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start %s server: %v", protocol, err)
			}
		}
		log.Info("Server listener stopped.")
	}()

	// --- Graceful Shutdown Handling ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("Received signal: %s. Shutting down server...", sig)

	// Give outstanding requests a deadline to finish
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting gracefully.")
}
