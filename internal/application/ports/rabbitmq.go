package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"storage-api/internal/domain/file"
)

// BlobDeletionQueue accepts deletes that must be retried later.
type BlobDeletionQueue interface {
	Enqueue(ctx context.Context, d file.BlobDeletion) error
}

type RabbitMQ interface {
	BlobDeletionQueue
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
