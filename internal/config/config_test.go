package config

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", Host: "localhost"},
		Database: DatabaseConfig{URL: "postgres://localhost:5432/marketplace"},
		Sweep:    SweepConfig{OpenSpec: "5 0 * * *", CloseSpec: "55 23 * * *", BatchSize: 512},
	}
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	check.Nil(t, validConfig().Validate())
}

func TestValidate_RejectsMissingPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	check.NotNil(t, err)
	check.Equal(t, "server port is required", err.Error())
}

func TestValidate_RejectsMissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Database.URL = ""

	err := cfg.Validate()
	check.NotNil(t, err)
	check.Equal(t, "database URL is required", err.Error())
}

func TestValidate_RejectsNonPositiveBatchSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		cfg := validConfig()
		cfg.Sweep.BatchSize = size
		check.NotNil(t, cfg.Validate())
	}
}
