package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/sharefair-gateway/internal/bootstrap"
	"github.com/GregMSThompson/sharefair-gateway/internal/config"
	"github.com/GregMSThompson/sharefair-gateway/internal/handlers"
	"github.com/GregMSThompson/sharefair-gateway/internal/middleware"
	"github.com/GregMSThompson/sharefair-gateway/internal/response"
	"github.com/GregMSThompson/sharefair-gateway/internal/router"
	"github.com/GregMSThompson/sharefair-gateway/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// services
	dsserv := services.NewDisputeService(bs.Backend)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.DisputeSvc = dsserv

	auth := router.Auth{
		Tokens:   middleware.NewMiddleware(bs.JWTSecret),
		Sessions: bs.Sessions,
	}

	// router
	r := router.NewModerationRouter(deps, auth)
	bs.Log.Info("moderation listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
