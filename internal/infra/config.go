package infra

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// InitConfig loads config/application.yaml and lets environment variables
// override any key (dots become underscores, e.g. REDIS_HOST).
func InitConfig() error {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// a missing file is fine, the environment can carry everything
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("infra: failed to read config: %w", err)
	}
	return nil
}
