package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/roach88/twentyfour/internal/oracle"
)

// DefaultEnvFile is the dotenv file read for oracle settings.
const DefaultEnvFile = ".env.local"

// Config holds oracle connection settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// LoadConfig reads OPENAI_API_KEY, OPENAI_BASE_URL and OPENAI_MODEL.
// Process environment wins over the dotenv file; a missing file is fine.
func LoadConfig(envFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("openai_model", oracle.DefaultModel)

	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read env file %s: %w", envFile, err)
			}
		}
	}

	return Config{
		APIKey:  v.GetString("openai_api_key"),
		BaseURL: v.GetString("openai_base_url"),
		Model:   v.GetString("openai_model"),
	}, nil
}

// OracleConfig converts to the adapter's configuration.
func (c Config) OracleConfig() oracle.OpenAIConfig {
	return oracle.OpenAIConfig{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Model:   c.Model,
	}
}
