package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	DB       DB
	Redis    Redis
	Rabbit   Rabbit
	Auth     Auth
	Sweeper  Sweeper
	AdminIDs []string
}

type Server struct {
	Port        string
	Environment string
}

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Redis struct {
	Host string
	Port string
}

type Rabbit struct {
	URL      string
	Exchange string
}

type Auth struct {
	Secret string
}

type Sweeper struct {
	IntervalSeconds int
}

func Load(filename string) (*Config, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.name", "tripnest")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("rabbit.exchange", "tripnest.events")
	v.SetDefault("sweeper.intervalseconds", 60)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// env vars and defaults are enough to run
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, err
	}
	return &c, nil
}
