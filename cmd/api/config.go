package main

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
)

type Config struct {
	Port   string `conf:"default:8080,env:PORT"`
	DBCon  string `conf:"env:DB_CONN,help:postgres connection string; the fixture catalog is served from memory when empty"`
	JWTKey string `conf:"env:JWT_KEY,noprint,help:HS256 key required for course updates; updates are open when empty"`
}

func ReadConfig() (*Config, error) {
	// A missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	var cfg Config
	help, err := conf.ParseOSArgs("APP", &cfg)

	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
