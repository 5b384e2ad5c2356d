package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server Server
	Redis  Redis
	JWT    JWT
	Store  Store
	Mock   Mock
}

type Server struct {
	Port string
	Env  string
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWT struct {
	Secret string
	Expiry int // in hours
}

// Store names the key-value slots each state container persists into.
type Store struct {
	KeyPrefix string
	Seed      bool
}

// Mock controls the simulated latency standing in for network calls:
// product writes and payment submission wait these delays before completing.
type Mock struct {
	WriteDelay   time.Duration
	PaymentDelay time.Duration
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("JWT_EXPIRY", 24)
	viper.SetDefault("STORE_KEY_PREFIX", "giftoria")
	viper.SetDefault("STORE_SEED", true)
	viper.SetDefault("MOCK_WRITE_DELAY_MS", 800)
	viper.SetDefault("MOCK_PAYMENT_DELAY_MS", 1500)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: Server{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Redis: Redis{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWT{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: viper.GetInt("JWT_EXPIRY"),
		},
		Store: Store{
			KeyPrefix: viper.GetString("STORE_KEY_PREFIX"),
			Seed:      viper.GetBool("STORE_SEED"),
		},
		Mock: Mock{
			WriteDelay:   time.Duration(viper.GetInt("MOCK_WRITE_DELAY_MS")) * time.Millisecond,
			PaymentDelay: time.Duration(viper.GetInt("MOCK_PAYMENT_DELAY_MS")) * time.Millisecond,
		},
	}
}
