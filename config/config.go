package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	BackendLocal = "local"
	BackendS3    = "s3"

	defaultQuota     = "100MiB"
	defaultMaxUpload = "10MiB"
)

type (
	APP struct {
		Name        string
		Host        string
		Port        string
		Env         string
		JWTSecret   string
		CORSOrigins []string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Storage struct {
		Backend        string
		LocalDir       string
		QuotaBytes     uint64
		MaxUploadBytes uint64
	}
	S3 struct {
		Region          string
		AccessKeyID     string
		SecretAccessKey string
		BucketUploads   string
		BaseEndpoint    string
	}
	MQ struct {
		User            string
		Password        string
		Vhost           string
		Host            string
		AmqpPort        string
		Exchange        string
		ExchangeType    string
		QueueName       string
		DeadLetterQueue string
		MaxAttempts     int
	}

	Config struct {
		App     APP
		DB      DB
		Storage Storage
		S3      S3
		MQ      MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func Load() (Config, error) {
	app := APP{
		Name:        getEnv("SERVICE_NAME", "storageapi"),
		Host:        getEnv("SERVICE_HOST", ""),
		Port:        getEnv("SERVICE_PORT", "8080"),
		Env:         getEnv("SERVICE_ENV", ""),
		JWTSecret:   getEnv("SERVICE_JWT_SECRET", ""),
		CORSOrigins: splitList(getEnv("SERVICE_CORS_ORIGINS", "")),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}

	quota, err := humanize.ParseBytes(getEnv("STORAGE_QUOTA", defaultQuota))
	if err != nil {
		return Config{}, fmt.Errorf("invalid STORAGE_QUOTA: %w", err)
	}
	maxUpload, err := humanize.ParseBytes(getEnv("STORAGE_MAX_UPLOAD", defaultMaxUpload))
	if err != nil {
		return Config{}, fmt.Errorf("invalid STORAGE_MAX_UPLOAD: %w", err)
	}
	storage := Storage{
		Backend:        strings.ToLower(getEnv("STORAGE_BACKEND", BackendLocal)),
		LocalDir:       getEnv("STORAGE_LOCAL_DIR", "./data/blobs"),
		QuotaBytes:     quota,
		MaxUploadBytes: maxUpload,
	}
	if storage.Backend != BackendLocal && storage.Backend != BackendS3 {
		return Config{}, fmt.Errorf("invalid STORAGE_BACKEND %q: must be %q or %q", storage.Backend, BackendLocal, BackendS3)
	}

	s3 := S3{
		Region:          getEnv("S3_REGION", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		BucketUploads:   getEnv("S3_BUCKET_UPLOADS", ""),
		BaseEndpoint:    getEnv("S3_BASE_ENDPOINT", ""),
	}

	maxAttempts, err := strconv.Atoi(getEnv("RABBITMQ_MAX_ATTEMPTS", "5"))
	if err != nil || maxAttempts < 1 {
		return Config{}, fmt.Errorf("invalid RABBITMQ_MAX_ATTEMPTS: must be a positive integer")
	}
	mq := MQ{
		User:            getEnv("RABBITMQ_USER", ""),
		Password:        getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:           getEnv("RABBITMQ_VHOST", ""),
		Host:            getEnv("RABBITMQ_HOST", ""),
		AmqpPort:        getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:        getEnv("RABBITMQ_EXCHANGE", "storage"),
		ExchangeType:    getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:       getEnv("RABBITMQ_QUEUE_NAME", "blob-deletions"),
		DeadLetterQueue: getEnv("RABBITMQ_DEAD_LETTER_QUEUE", "blob-deletions-dead"),
		MaxAttempts:     maxAttempts,
	}

	return Config{
		App:     app,
		DB:      db,
		Storage: storage,
		S3:      s3,
		MQ:      mq,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) S3Enabled() bool { return c.Storage.Backend == BackendS3 }
