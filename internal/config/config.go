package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/deskhive/deskhive/internal/text"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Language selects the stop-word set and stemmer for the
	// recommendation engine. The novelty and display thresholds are part
	// of the algorithm contract and deliberately not configurable.
	Language string `envconfig:"LANGUAGE" default:"russian"`

	// KBCorpusLimit bounds how many highest-frequency knowledge items
	// feed one recommendation request.
	KBCorpusLimit int `envconfig:"KB_CORPUS_LIMIT" default:"100"`

	// StatsInterval is the poll interval of the stats snapshot worker in
	// seconds; zero disables the worker.
	StatsIntervalSeconds int `envconfig:"STATS_INTERVAL_SECONDS" default:"300"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DESKHIVE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if text.StopWords(cfg.Language) == nil {
		return nil, fmt.Errorf("unsupported language %q", cfg.Language)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
