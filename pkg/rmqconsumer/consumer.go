package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"storage-api/config"
	"storage-api/internal/application/ports"
	"storage-api/internal/domain/file"
	"storage-api/internal/infrastructure/mq"
)

// can scale depends on a parallel worker count
const (
	preFetchCount = 1
	retryDelay    = 2 * time.Second
)

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery

	blobs      ports.BlobStore
	pub        mq.Publisher
	retryDelay time.Duration
}

func New(cfg config.MQ, logger *zap.Logger, blobs ports.BlobStore) *Consumer {
	return &Consumer{
		cfg:        cfg,
		log:        logger,
		blobs:      blobs,
		retryDelay: retryDelay,
	}
}

func (c *Consumer) Connect(dsn string) error {
	var err error
	c.conn, err = amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		c.conn = nil
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.pub = c.chConsume

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := mq.Declare(c.chConsume, c.cfg); err != nil {
		return fmt.Errorf("declare topology: %w", err)
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var err error
	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			c.handle(ctx, msg)
		case <-ctx.Done():
			if c.chConsume != nil {
				_ = c.chConsume.Close()
			}
			if c.conn != nil {
				_ = c.conn.Close()
			}
			return
		}
	}
}

// handle acks only once the message is settled: deleted, requeued with the
// next attempt, or parked on the dead-letter queue.
func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	if err := c.delivery(ctx, msg.Body); err != nil {
		// alert
		c.log.Error("mq delivery error", zap.Error(err))
		if nerr := msg.Nack(false, true); nerr != nil {
			c.log.Error("mq nack error", zap.Error(nerr))
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		c.log.Error("mq ack error", zap.Error(err))
	}
}

func (c *Consumer) delivery(ctx context.Context, body []byte) error {
	var d file.BlobDeletion
	if err := json.Unmarshal(body, &d); err != nil || d.Locator == "" {
		c.log.Error("undecodable blob deletion, dead-lettering", zap.ByteString("body", body))
		return c.publish(ctx, mq.RoutingDead, file.BlobDeletion{Reason: "undecodable: " + string(body)})
	}

	err := c.blobs.Delete(ctx, d.Locator)
	if err == nil {
		c.log.Info("blob deleted on retry",
			zap.String("locator", d.Locator),
			zap.Int("attempt", d.Attempt),
		)
		return nil
	}

	d.Reason = err.Error()
	if d.Attempt >= c.cfg.MaxAttempts {
		c.log.Error("blob delete gave up, dead-lettering",
			zap.String("locator", d.Locator),
			zap.Int("attempt", d.Attempt),
			zap.Error(err),
		)
		return c.publish(ctx, mq.RoutingDead, d)
	}

	c.log.Warn("blob delete retry failed",
		zap.String("locator", d.Locator),
		zap.Int("attempt", d.Attempt),
		zap.Error(err),
	)

	if err = sleepCtx(ctx, time.Duration(d.Attempt)*c.retryDelay); err != nil {
		return err
	}

	d.Attempt++
	return c.publish(ctx, mq.RoutingRetry, d)
}

func (c *Consumer) publish(ctx context.Context, routingKey string, d file.BlobDeletion) error {
	return mq.Publish(ctx, c.pub, c.cfg.Exchange, routingKey, d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
