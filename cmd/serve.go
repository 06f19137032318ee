package cmd

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nuoiem/ms-go-donations/app/controller"
	"github.com/nuoiem/ms-go-donations/app/gateway"
	"github.com/nuoiem/ms-go-donations/app/middleware"
	"github.com/nuoiem/ms-go-donations/app/repository"
	"github.com/nuoiem/ms-go-donations/app/service"
	"github.com/nuoiem/ms-go-donations/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP (Echo) server for the donations service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, services, cleanup := mustCreateServices()
	defer cleanup()

	e := setupHTTPServer(cfg, services)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

type appServices struct {
	donation *service.DonationService
	auth     *service.AuthService
	impact   *service.ImpactService
}

func setupHTTPServer(cfg *config.Config, services *appServices) *echo.Echo {
	donationController := controller.NewDonationController(services.donation)
	webhookController := controller.NewWebhookController(services.donation)
	authController := controller.NewAuthController(services.auth)
	impactController := controller.NewImpactController(services.impact)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": v.RequestID,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestID())

	requireBearer := middleware.RequireBearer(cfg.Auth.JWTSecret)

	e.GET("/health", webhookController.Health)

	payment := e.Group("/payment")
	payment.POST("/create", donationController.CreatePayment, requireBearer)
	payment.GET("/vnpay-return", donationController.HandleGatewayReturn)
	payment.GET("/order/:orderId", donationController.GetOrderStatus, requireBearer)
	payment.GET("/transactions", donationController.ListTransactions, requireBearer)
	payment.GET("/rate", donationController.GetExchangeRate)

	auth := e.Group("/api/auth")
	auth.POST("/login", authController.Login)
	auth.GET("/me", authController.Me, requireBearer)

	webhook := e.Group("/api/webhook")
	webhook.GET("/health", webhookController.Health)
	webhook.POST("/settlement", webhookController.ConfirmSettlement, middleware.RequireWebhookKey(cfg.App.WebhookAPIKey))

	impact := e.Group("/v1/impact")
	impact.GET("/campaign/:id/proofs", impactController.ListCampaignProofs, requireBearer)
	impact.POST("/proof", impactController.SubmitProof, requireBearer)
	impact.POST("/proof/ipfs-url", impactController.ProofIpfsURL)

	return e
}

func mustCreateServices() (*config.Config, *appServices, func()) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	orderRepo := repository.NewOrderRepository(db)
	eventRepo := repository.NewOrderEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	proofRepo := repository.NewMealProofRepository(db)

	gatewayClient := gateway.NewClient(gateway.Config{
		TmnCode:    cfg.VNPay.TmnCode,
		HashSecret: cfg.VNPay.HashSecret,
		BaseURL:    cfg.VNPay.BaseURL,
		ReturnURL:  cfg.VNPay.ReturnURL,
		Version:    cfg.VNPay.Version,
	})

	services := &appServices{
		donation: service.NewDonationService(
			orderRepo,
			eventRepo,
			gatewayClient,
			cfg.Orders,
			cfg.Exchange,
			cfg.VNPay.ResultURL,
		),
		auth:   service.NewAuthService(userRepo, cfg.Auth),
		impact: service.NewImpactService(proofRepo),
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, services, cleanup
}
