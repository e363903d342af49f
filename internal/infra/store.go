package infra

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/communityhq/community-service/internal/adapter/store"
	"github.com/communityhq/community-service/internal/core/port"
	"github.com/communityhq/community-service/internal/pkg/applog"
)

// InitUserStore creates the Redis-backed user store using configuration loaded
// via Viper and returns the port-facing interface so callers remain decoupled
// from the adapter.
func InitUserStore(log applog.AppLogger, v *validator.Validate) (port.UserStore, error) {
	cfg := loadStoreConfig()
	users, err := store.NewUserStore(log, v, &cfg)
	if err != nil {
		return nil, fmt.Errorf("infra: failed to init user store: %w", err)
	}
	return users, nil
}

// InitSessionStore creates the Redis-backed session store using the same
// configuration block.
func InitSessionStore(log applog.AppLogger, v *validator.Validate) (port.SessionStore, error) {
	cfg := loadStoreConfig()
	sessions, err := store.NewSessionStore(log, v, &cfg)
	if err != nil {
		return nil, fmt.Errorf("infra: failed to init session store: %w", err)
	}
	return sessions, nil
}

// InitPostStore creates the Redis-backed post store using the same
// configuration block.
func InitPostStore(log applog.AppLogger, v *validator.Validate) (port.PostStore, error) {
	cfg := loadStoreConfig()
	posts, err := store.NewPostStore(log, v, &cfg)
	if err != nil {
		return nil, fmt.Errorf("infra: failed to init post store: %w", err)
	}
	return posts, nil
}

func loadStoreConfig() store.Config {
	return store.Config{
		Host:               viper.GetString("redis.host"),
		Port:               viper.GetString("redis.port"),
		Password:           viper.GetString("redis.password"),
		DB:                 viper.GetInt("redis.db"),
		UseTLS:             viper.GetBool("redis.use_tls"),
		PoolSize:           viper.GetInt("redis.pool_size"),
		MaxRetries:         viper.GetInt("redis.max_retries"),
		DialTimeoutSeconds: viper.GetInt("redis.dial_timeout_seconds"),
		KeyPrefix:          viper.GetString("redis.key_prefix"),
	}
}
