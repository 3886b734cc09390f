package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"actualize-backend/internal/auth"
	"actualize-backend/internal/config"
	"actualize-backend/internal/database"
	"actualize-backend/internal/upload"
)

// MyServer holds the dependencies every route handler is built from
type MyServer struct {
	Config    *config.Config
	DB        *database.DBinstanceStruct
	JWT       *auth.JWTService
	Blacklist auth.JwtBlacklistStore
	Redis     *redis.Client
	Storage   upload.StorageClient
	Files     *upload.DatabaseStorage
}

// NewServer construct new http.Server serving the API.
// redisClient may be nil, in which case revoked tokens are kept in memory and
// the login limiter lets every request through.
func NewServer(cfg *config.Config, db *database.DBinstanceStruct, redisClient *redis.Client, storage upload.StorageClient) *http.Server {
	s := &MyServer{
		Config: cfg,
		DB:     db,
		JWT:    auth.NewJWTService(cfg.SecretKey, cfg.JWTIssuer, cfg.AccessTokenTTL),
		Redis:  redisClient,
		Files:  upload.NewDatabaseStorage(db.DB),
	}

	if redisClient != nil {
		s.Blacklist = auth.NewRedisBlacklistStore(redisClient)
	} else {
		s.Blacklist = auth.NewInMemoryBlacklistStore()
	}

	s.Storage = storage
	if s.Storage == nil {
		s.Storage = s.Files
	}

	// Declare Server config
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  cfg.SubmitTimeout(),
		WriteTimeout: cfg.SubmitTimeout() + 10*time.Second,
	}
}

// NewStorage picks Google Cloud Storage when a bucket is configured and the files table otherwise.
func NewStorage(ctx context.Context, cfg *config.Config, db *database.DBinstanceStruct) (upload.StorageClient, error) {
	if cfg.GCSBucket == "" {
		log.Println("GCS_BUCKET is not set, attachments are stored in the database")
		return upload.NewDatabaseStorage(db.DB), nil
	}
	return upload.NewCloudStorageClient(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.StoragePublicBaseURL)
}

// NewRedisClient connects to redis when an address is configured. It returns nil otherwise,
// and also when redis does not answer, so the API still starts without it.
func NewRedisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis at %s is unreachable, continuing without it: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return nil
	}
	return client
}
