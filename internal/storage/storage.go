package storage

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Storage is the binary object capability consumed by the upload endpoint:
// store bytes, get a public URL back.
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Type      string // local or s3
	BasePath  string // local storage directory
	BaseURL   string // public URL base
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

func LoadConfig() Config {
	cfg := Config{
		Type:      os.Getenv("STORAGE_TYPE"),
		BasePath:  os.Getenv("STORAGE_PATH"),
		BaseURL:   os.Getenv("STORAGE_BASE_URL"),
		Bucket:    os.Getenv("STORAGE_BUCKET"),
		Region:    os.Getenv("STORAGE_REGION"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
	}
	if cfg.Type == "" {
		cfg.Type = "local"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "uploads"
	}
	return cfg
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
