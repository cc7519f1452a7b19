package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
// JWT_SECRET and DATABASE_URL are mandatory; there is deliberately no built-in
// fallback signing secret.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	if AppConfig.Port == "" {
		AppConfig.Port = "8080"
	}
	if AppConfig.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
}
