package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything the process needs at startup. Values come from
// config.yml when present, otherwise from environment variables (dots
// become underscores, e.g. DATABASE_CLIENT).
type Config struct {
	Database struct {
		Client   string // "sqlite" or "postgres"
		Path     string // sqlite file path
		Host     string
		User     string
		Password string
		Name     string
		Port     string
	}
	Router struct {
		Port int
		Mode string
	}
	Log struct {
		Level string
	}
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	viper.SetDefault("database.client", "sqlite")
	viper.SetDefault("database.path", "nutrition.db")
	viper.SetDefault("router.port", 8080)
	viper.SetDefault("router.mode", "release")
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			viper.AutomaticEnv()
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		} else {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	cfg.Database.Client = viper.GetString("database.client")
	cfg.Database.Path = viper.GetString("database.path")
	cfg.Database.Host = viper.GetString("database.host")
	cfg.Database.User = viper.GetString("database.user")
	cfg.Database.Password = viper.GetString("database.password")
	cfg.Database.Name = viper.GetString("database.name")
	cfg.Database.Port = viper.GetString("database.port")
	cfg.Router.Port = viper.GetInt("router.port")
	cfg.Router.Mode = viper.GetString("router.mode")
	cfg.Log.Level = viper.GetString("log.level")
	return &cfg, nil
}
