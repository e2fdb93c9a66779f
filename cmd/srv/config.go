package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/hungercard/backend/config"
)

func (s *srv) loadConfig() {
	s.cfg = &config.Configs{
		Env: getEnv("ENV", "local"),
		ApiServer: config.ServerConfigs{
			Host:           getEnv("HOST", "localhost"),
			Port:           getEnv("PORT", "8080"),
			Cert:           getEnv("SERVER_CERT", ""),
			Key:            getEnv("SERVER_KEY", ""),
			DefaultLimit:   getEnvInt("DEFAULT_LIMIT", 10),
			MaxLimit:       getEnvInt("MAX_LIMIT", 50),
			AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "hungercard"),
			Password: getEnv("MYSQL_PASSWORD", "hungercard"),
			Database: getEnv("MYSQL_DATABASE", "hungercard"),
			LogLevel: getEnv("MYSQL_LOG_LEVEL", "error"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", time.Hour*24),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("AUTH_SESSION_SECRET", "session_secret"),
			Name:   "auth_session",
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", ""),
		},
		Kafka: config.KafkaConfigs{
			Addr:          getEnv("KAFKA_ADDRESS", ""),
			ApprovedTopic: getEnv("KAFKA_APPROVED_TOPIC", "application_approved"),
		},
		Eth: loadEthConfig(getEnv("ETH_CONFIG", "eth.toml")),
		Pinata: config.PinataConfigs{
			Token:   getEnv("PINATA_TOKEN", ""),
			Gateway: getEnv("PINATA_GATEWAY", "https://gateway.pinata.cloud"),
		},
		Storage: config.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", ""),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", ""),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", ""),
			SSLDisabled:    getEnv("STORAGE_SSL_DISABLED", "false") == "true",
		},
		Card: config.CardConfigs{
			ArchiveBucket: getEnv("CARD_ARCHIVE_BUCKET", "hungercard-archive"),
		},
	}
}

// loadEthConfig reads the chain section from a toml file. A missing file is
// not fatal, the snapshot provider falls back to sane defaults.
func loadEthConfig(path string) config.EthConfigs {
	cfg := config.EthConfigs{
		Chain:          "eth",
		TokenBatchSize: 5,
		PriceCacheTTL:  time.Minute * 5,
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		panic(err)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}

	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return d
}
