package cmd

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nuoiem/ms-go-donations/app/client"
	"github.com/nuoiem/ms-go-donations/app/gateway"
	"github.com/nuoiem/ms-go-donations/app/poller"
	"github.com/nuoiem/ms-go-donations/app/presenter"
	"github.com/nuoiem/ms-go-donations/config"
)

var (
	watchBaseURL string
	watchToken   string
)

var watchCmd = &cobra.Command{
	Use:   "watch <orderId>",
	Short: "Poll an order until it settles",
	Long:  "Poll the order status endpoint until the order reaches a terminal state, the attempt budget runs out, or the command is interrupted.",
	Args:  cobra.ExactArgs(1),
	Run:   runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchBaseURL, "base-url", "", "Base URL of the donations API (defaults to the local server address)")
	watchCmd.Flags().StringVar(&watchToken, "token", "", "Bearer token for authenticated status reads")
}

func runWatch(_ *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	orderID := args[0]
	baseURL := watchBaseURL
	if baseURL == "" {
		baseURL = "http://" + cfg.HTTP.Host + ":" + cfg.HTTP.Port
	}

	statusClient, err := client.NewStatusClient(client.StatusClientConfig{
		BaseURL:     baseURL,
		BearerToken: watchToken,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create status client")
	}

	params := url.Values{}
	params.Set("success", "true")
	params.Set("orderId", orderID)
	result := presenter.NewResult(gateway.ParseRedirect(params, gateway.LanguageVietnamese), cfg.Explorer.BaseURL)

	p := poller.New(statusClient, poller.Config{
		Interval:    cfg.Polling.Interval,
		MaxAttempts: cfg.Polling.MaxAttempts,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logrus.Info("Watch interrupted")
		cancel()
	}()

	logger := logrus.WithField("order_id", orderID)
	logger.WithField("interval", cfg.Polling.Interval.String()).Info("Watching order")

	start := time.Now()
	reason, err := result.Watch(ctx, p)
	if err != nil {
		logger.WithError(err).Fatal("Watch failed")
	}

	entry := logger.WithField("stop_reason", reason.String()).WithField("elapsed", time.Since(start).String())
	if snapshot := result.Snapshot(); snapshot != nil {
		entry = entry.WithField("status", string(snapshot.Status))
		if link := result.ExplorerTxURL(); link != "" {
			entry = entry.WithField("explorer_url", link)
		}
	}
	entry.Info("Watch finished")
}
