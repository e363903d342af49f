package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	adapterhttp "github.com/communityhq/community-service/internal/adapter/http"
	"github.com/communityhq/community-service/internal/core/usecase"
	"github.com/communityhq/community-service/internal/infra"
	"github.com/communityhq/community-service/internal/pkg/applog"
)

var (
	logger applog.AppLogger
)

func main() {
	if err := infra.InitConfig(); err != nil {
		applog.NewAppDefaultLogger().Fatal("failed to load configuration", "err", err)
	}

	logger = applog.NewAppDefaultLogger()
	v := validator.New()
	var wg sync.WaitGroup

	users, err := infra.InitUserStore(logger, v)
	if err != nil {
		logger.Fatal("failed to init user store", "err", err)
	}
	sessions, err := infra.InitSessionStore(logger, v)
	if err != nil {
		logger.Fatal("failed to init session store", "err", err)
	}
	posts, err := infra.InitPostStore(logger, v)
	if err != nil {
		logger.Fatal("failed to init post store", "err", err)
	}

	sessionTTL := time.Duration(viper.GetInt("auth.session_ttl_seconds")) * time.Second
	authService := usecase.NewAuthService(logger, users, sessions, v, sessionTTL)
	postService := usecase.NewPostService(logger, posts, v)
	handler := adapterhttp.NewHandler(authService, postService)

	server := infra.InitServer(logger)
	infra.InitMetrics(server)
	infra.InitRoutes(server, handler)
	stopPprof := infra.StartPprof(logger, &wg)

	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	go func() {
		if err := server.Listen(addr); err != nil {
			logger.Fatal("http server error", "err", err)
		}
	}()
	logger.Info("community-service started", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(ctx); err != nil {
		logger.Error("http shutdown error", "err", err)
	}
	if err := stopPprof(ctx); err != nil {
		logger.Error("pprof shutdown error", "err", err)
	}
	wg.Wait()
	logger.Info("stopped")
}
