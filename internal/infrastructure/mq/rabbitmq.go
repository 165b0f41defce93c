package mq

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"storage-api/config"
	"storage-api/internal/domain/file"
)

// "Rely on metrics, not guesses."
const (
	bufferSize   = 128
	drainTimeout = 5 * time.Second

	RoutingRetry = "blob.delete"
	RoutingDead  = "blob.delete.dead"

	MessageType = "BlobDeletion"
)

var ErrQueueFull = errors.New("blob deletion buffer is full")

type (
	InputCh = chan file.BlobDeletion

	// Publisher is the part of *amqp091.Channel used for publishing.
	Publisher interface {
		PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	}

	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh *amqp091.Channel
		pub   Publisher
		in    InputCh
	}
)

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan file.BlobDeletion, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "storageapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}
	r.pub = r.pubCh

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	return Declare(r.pubCh, r.cfg)
}

// Declare sets up the exchange, the retry queue and the dead-letter queue.
// Publisher and consumer both call it; the declarations are idempotent.
func Declare(ch *amqp091.Channel, cfg config.MQ) error {
	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	for q, rk := range map[string]string{
		cfg.QueueName:       RoutingRetry,
		cfg.DeadLetterQueue: RoutingDead,
	} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return err
		}
		if err := ch.QueueBind(q, rk, cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

// Enqueue never blocks the request path: a full buffer is reported to the
// caller instead.
func (r *RabbitMQ) Enqueue(ctx context.Context, d file.BlobDeletion) error {
	select {
	case r.in <- d:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case d := <-r.in:
			r.publishOrLog(ctx, d)
		case <-ctx.Done():
			r.drain()
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

// drain flushes what is still buffered so a shutdown does not drop
// scheduled deletes.
func (r *RabbitMQ) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case d := <-r.in:
			r.publishOrLog(ctx, d)
		default:
			return
		}
	}
}

func (r *RabbitMQ) publishOrLog(ctx context.Context, d file.BlobDeletion) {
	if err := Publish(ctx, r.pub, r.cfg.Exchange, RoutingRetry, d); err != nil {
		// alert
		r.log.Error("mq publish error",
			zap.String("locator", d.Locator),
			zap.Error(err),
		)
	}
}

func Publish(ctx context.Context, p Publisher, exchange, routingKey string, d file.BlobDeletion) error {
	if p == nil {
		return errors.New("mq publisher is not connected")
	}

	pub, err := NewPublishing(d, time.Now())
	if err != nil {
		return err
	}

	return p.PublishWithContext(
		ctx,
		exchange,
		routingKey,
		false,
		false,
		pub,
	)
}

func NewPublishing(d file.BlobDeletion, ts time.Time) (amqp091.Publishing, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return amqp091.Publishing{}, err
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    ts,
		Type:         MessageType,
		Body:         b,
	}, nil
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
