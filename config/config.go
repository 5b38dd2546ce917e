package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`

	// Recommendation holds the tunables of the itinerary pipeline. Tests
	// substitute their own values instead of relying on package globals.
	Recommendation struct {
		DefaultLatitude  float64 `mapstructure:"defaultLatitude"`
		DefaultLongitude float64 `mapstructure:"defaultLongitude"`
		// RetrievalK is the number of hits requested per (category, sub-tag)
		// semantic query during schedule retrieval.
		RetrievalK int `mapstructure:"retrievalK"`
		// PlaceSearchK / PlaceResultLimit shape the single-place lookup path.
		PlaceSearchK     int `mapstructure:"placeSearchK"`
		PlaceResultLimit int `mapstructure:"placeResultLimit"`
		// MaxTagsPerCategory bounds retrieval fan-out when a category falls
		// back to a large default catalog entry.
		MaxTagsPerCategory int `mapstructure:"maxTagsPerCategory"`
		// MaxConcurrentCalls bounds in-flight external calls per stage.
		MaxConcurrentCalls  int           `mapstructure:"maxConcurrentCalls"`
		LLMCallTimeout      time.Duration `mapstructure:"llmCallTimeout"`
		OpenVerdictCacheTTL time.Duration `mapstructure:"openVerdictCacheTTL"`
		FAQScoreThreshold   float64       `mapstructure:"faqScoreThreshold"`
	} `mapstructure:"recommendation"`

	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	}
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
