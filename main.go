package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"stride-client/api"
	"stride-client/config"
	"stride-client/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	store, closeStore, err := newCredentialStore(cfg)
	if err != nil {
		log.Fatalf("credential store: %v", err)
	}

	logger := log.StandardLogger()
	opts := api.Options{
		BaseURL:   cfg.APIURL,
		LoginPath: cfg.LoginPath,
		Timeout:   cfg.RequestTimeout,
		Logger:    logger,
	}
	session := api.NewSession(store, opts)
	client := api.NewClient(session, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &cli{
		cfg:    cfg,
		client: client,
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	code := c.run(ctx, os.Args[1:])
	stop()
	closeStore()
	os.Exit(code)
}

func newCredentialStore(cfg *config.Config) (storage.CredentialStore, func(), error) {
	switch cfg.TokenStore {
	case config.StoreRedis:
		redisOpts, err := config.RedisOptions(cfg.RedisConnectionString)
		if err != nil {
			return nil, nil, err
		}
		rc := redis.NewClient(redisOpts)
		return storage.NewRedisStore(rc, cfg.RedisKey), func() { _ = rc.Close() }, nil
	case config.StoreMemory:
		return storage.NewMemoryStore(), func() {}, nil
	case config.StoreFile:
		fs := storage.NewFileStore(cfg.TokenFile)
		log.WithField("path", fs.Path()).Debug("credential store: file")
		return fs, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unsupported token store %q", cfg.TokenStore)
}
