// Package config collects the environment variables the application uses.
package config

import "os"

type Config struct {
	Port         string
	RedisURL     string
	GeminiAPIKey string
	GeminiModel  string
}

// FromEnv reads the configuration from the environment, applying defaults
// where a variable is unset.
func FromEnv() *Config {
	c := &Config{
		Port:         os.Getenv("PORT"),
		RedisURL:     os.Getenv("REDIS_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.RedisURL == "" {
		c.RedisURL = "redis://localhost:6379"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-1.5-flash"
	}
	return c
}
