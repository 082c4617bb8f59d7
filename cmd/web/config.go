package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string        `conf:"default:4200,env:PORT"`
	APIURL         string        `conf:"default:http://localhost:8080,env:API_URL"`
	RequestTimeout time.Duration `conf:"default:10s,env:REQUEST_TIMEOUT"`
}

func ReadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	help, err := conf.ParseOSArgs("WEB", &cfg)

	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
