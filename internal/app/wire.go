package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avencrest/raisegate/internal/cache/redis"
	"github.com/avencrest/raisegate/internal/config"
	"github.com/avencrest/raisegate/internal/notify"
	"github.com/avencrest/raisegate/internal/platform/dealmaker"
	"github.com/avencrest/raisegate/internal/server"
	"github.com/avencrest/raisegate/internal/server/handler"
	"github.com/avencrest/raisegate/internal/service"
)

// Dependencies bundles everything App.Run needs to operate.
type Dependencies struct {
	ConfigService   *service.DealConfigService
	InvestorService *service.InvestorService
	Server          *server.Server
}

// Wire constructs all concrete dependencies from the configuration and
// returns them together with a cleanup function to be called on shutdown.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// --- Platform client, with the shared token cache when Redis is on ---
	var clientOpts []dealmaker.Option
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("app: connect redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		clientOpts = append(clientOpts, dealmaker.WithTokenCache(redis.NewTokenCache(redisClient)))
		logger.InfoContext(ctx, "using redis token cache", slog.String("addr", cfg.Redis.Addr))
	}

	dmClient := dealmaker.NewClient(dealmaker.Config{
		APIBase:      cfg.DealMaker.APIBase,
		TokenURL:     cfg.DealMaker.TokenURL,
		ClientID:     cfg.DealMaker.ClientID,
		ClientSecret: cfg.DealMaker.ClientSecret,
	}, clientOpts...)

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	var notifier *notify.Notifier
	if len(senders) > 0 {
		notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)
	}

	// --- Services ---
	configSvc := service.NewDealConfigService(dmClient, cfg.DealMaker.DealID, logger)
	investorSvc := service.NewInvestorService(dmClient, cfg.DealMaker.DealID, notifier, logger)

	// --- HTTP server ---
	srv := server.NewServer(server.Config{
		Port:        cfg.Server.Port,
		CORSOrigins: cfg.Server.CORSOrigins,
		APIKey:      cfg.Server.APIKey,
	}, server.Handlers{
		Health:    handler.NewHealthHandler(logger),
		Deal:      handler.NewDealHandler(configSvc, logger),
		Investors: handler.NewInvestorHandler(investorSvc, logger),
	}, logger)

	return &Dependencies{
		ConfigService:   configSvc,
		InvestorService: investorSvc,
		Server:          srv,
	}, cleanup, nil
}
