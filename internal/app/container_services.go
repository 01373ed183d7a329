package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"mogilev-express/internal/broadcast"
	"mogilev-express/internal/config"
	"mogilev-express/internal/gateway/notify"
	"mogilev-express/internal/logx"
	"mogilev-express/internal/repository"
	"mogilev-express/internal/service/accept"
	"mogilev-express/internal/service/authcode"
	"mogilev-express/internal/service/orders"
)

type publisherIn struct {
	dig.In

	Redis  *redis.Client
	Logger logx.Logger
	Failed prometheus.Counter `name:"broadcast_failed_total"`
}

func newBroadcastPublisher(in publisherIn) *broadcast.Publisher {
	return broadcast.NewPublisher(in.Redis, in.Logger, in.Failed)
}

func newBroadcastSubscriber(rdb *redis.Client, logger logx.Logger) *broadcast.Subscriber {
	return broadcast.NewSubscriber(rdb, logger)
}

type ordersServiceIn struct {
	dig.In

	Repo    *repository.OrderRepo
	Pub     *broadcast.Publisher
	Timeout time.Duration
	Logger  logx.Logger
	Created prometheus.Counter `name:"orders_created_total"`
}

func newOrdersService(in ordersServiceIn) *orders.Service {
	return orders.NewService(in.Repo, in.Pub, in.Timeout, in.Logger, in.Created)
}

type acceptServiceIn struct {
	dig.In

	Repo      *repository.AcceptRepo
	Timeout   time.Duration
	Logger    logx.Logger
	Conflicts prometheus.Counter `name:"accept_conflicts_total"`
}

func newAcceptService(in acceptServiceIn) *accept.Service {
	return accept.NewService(in.Repo, in.Timeout, in.Logger, in.Conflicts)
}

type notifierIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"notify_retries_total"`
}

// newNotifier assembles the Telegram code delivery chain. Without a bot
// token codes are only logged server side.
func newNotifier(in notifierIn) authcode.Notifier {
	tg := notify.NewTelegramGateway(in.Cfg.Notify.APIBase, in.Cfg.Notify.BotToken, nil)
	if tg == nil {
		return authcode.NopNotifier{}
	}
	return notify.NewRetryingGateway(tg, in.Logger, in.Retries, notify.RetryConfig{
		MaxAttempts: in.Cfg.Notify.MaxAttempts,
		BaseDelay:   in.Cfg.Notify.BaseDelay,
		MaxDelay:    in.Cfg.Notify.MaxDelay,
	})
}

func newAuthService(
	rdb *redis.Client,
	accounts *repository.AccountRepo,
	notifier authcode.Notifier,
	cfg *config.Config,
	logger logx.Logger,
) *authcode.Service {
	return authcode.NewService(rdb, accounts, notifier, authcode.Config{
		CodeTTL:   cfg.Auth.CodeTTL,
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	}, logger)
}
