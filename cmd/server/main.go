package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"slices"
	"syscall"
	"time"

	"setu-signal-bot/internal/analysis"
	"setu-signal-bot/internal/bot"
	"setu-signal-bot/internal/cache"
	"setu-signal-bot/internal/config"
	"setu-signal-bot/internal/handler"
	"setu-signal-bot/internal/logger"
	"setu-signal-bot/internal/metrics"
	"setu-signal-bot/internal/service"
	"setu-signal-bot/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	_ "setu-signal-bot/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	newLoggerFunc          = logger.New
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newMetricsFunc         = metrics.New
	newSynthesizerFunc     = analysis.NewSynthesizer
	newAnalysisServiceFunc = service.NewAnalysisService
	startTelegramBotFunc   = bot.StartTelegramBot
	stopTelegramBotFunc    = func(b *tele.Bot) { b.Stop() }
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Setu Signal Bot API
// @version         1.0
// @description     Chart screenshot analysis over HTTP, mirroring the Telegram bot.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	zl, err := newLoggerFunc(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracing.Shutdown(tp); err != nil {
			zl.Warn("error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Redis only caches downloaded screenshots, so the bot runs without it.
	var imageCache bot.ImageCache
	redisClient, err := initRedisFunc(ctx, cfg.RedisURL)
	if err != nil {
		zl.Warn("redis unavailable, screenshot cache disabled", zap.Error(err))
	} else if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		imageCache = cache.NewImageCache(redisClient, time.Duration(cfg.ImageCacheTTLSecs)*time.Second)
	}

	rec := newMetricsFunc()
	synth := newSynthesizerFunc(nil, nil)
	analysisService := newAnalysisServiceFunc(tracer, synth, rec, zl)

	// Start Telegram bot
	tgBot, err := startTelegramBotFunc(bot.Config{
		Token:       cfg.TelegramBotToken,
		PollTimeout: time.Duration(cfg.TelegramPollTimeoutSecs) * time.Second,
	}, analysisService, imageCache, zl)
	if err != nil {
		zl.Error("failed to start telegram bot", zap.Error(err))
	}

	// Create handlers and routes
	h := newHandlerFunc(tracer, analysisService, cfg.HTTPMaxBodyBytes)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName))
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(rec.Registry(), promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    httpAddr(cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		zl.Info("http server listening", zap.String("addr", srv.Addr))
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	zl.Info("shutting down server")

	cancel()
	if tgBot != nil {
		stopTelegramBotFunc(tgBot)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
		return
	}

	zl.Info("server exiting")
}

func httpAddr(port int) string {
	if port <= 0 {
		port = 8080
	}
	return fmt.Sprintf(":%d", port)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
