package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"solarops/internal/config"
	"solarops/internal/mq"
	"solarops/internal/pkg/logger"
	"solarops/internal/pkg/mailer"
)

// The worker drains the email queue so SMTP latency and outages never
// touch the request path.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)
	defer log.Sync()

	sender := mailer.New(cfg.SMTP)

	consumer, err := mq.NewConsumer(cfg.MQ.URL, mq.KeyNotifyEmail)
	if err != nil {
		log.Fatal("connect message queue", zap.Error(err))
	}
	defer consumer.Close()

	consumer.SetHandler(func(ctx context.Context, data json.RawMessage) error {
		var event mq.EmailEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Error("decode email event", zap.Error(err))
			return err
		}
		if len(event.Recipients) == 0 {
			return nil
		}
		if err := sender.Send(event.Recipients, event.Subject, event.HTMLBody); err != nil {
			log.Error("send email",
				zap.Strings("recipients", event.Recipients),
				zap.String("subject", event.Subject),
				zap.Error(err),
			)
			return err
		}
		log.Info("email sent",
			zap.Strings("recipients", event.Recipients),
			zap.String("subject", event.Subject),
		)
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("stopping consumer")
		consumer.Stop()
	}()

	log.Info("email worker started", zap.String("queue", mq.KeyNotifyEmail+".q"))
	if err := consumer.StartConsuming(); err != nil {
		log.Fatal("consume", zap.Error(err))
	}
}
