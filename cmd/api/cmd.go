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
	txserv := services.NewTransactionService(bs.Backend)
	bkserv := services.NewBookingService(bs.Backend)
	pyserv := services.NewPaymentService(bs.Backend)
	dsserv := services.NewDisputeService(bs.Backend)
	rvserv := services.NewReviewService(bs.Backend)
	ssserv := services.NewSessionService(bs.Sessions)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.TransactionSvc = txserv
	deps.BookingSvc = bkserv
	deps.PaymentSvc = pyserv
	deps.DisputeSvc = dsserv
	deps.ReviewSvc = rvserv
	deps.SessionSvc = ssserv
	deps.PaymentReturnURL = cfg.PaymentReturnURL

	auth := router.Auth{
		Tokens:   middleware.NewMiddleware(bs.JWTSecret),
		Sessions: bs.Sessions,
	}

	// router
	r := router.NewRouter(deps, auth)
	bs.Log.Info("gateway listening", "port", cfg.Port, "backend", cfg.BackendBaseURL)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
