package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	TransportFiber   = "fiber"
	TransportNetHTTP = "nethttp"

	defaultResumePath = "public/files/Eddy_Zhang_CV.pdf"
)

type Config struct {
	Server ServerConfig
	Agent  AgentConfig
	Resume ResumeConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	Transport   string
	MaxBodySize int64
}

type AgentConfig struct {
	APIKey  string
	Model   string
	Backend string
}

type ResumeConfig struct {
	Path string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			Env:         getEnv("ENV", "development"),
			Transport:   getEnv("TRANSPORT", TransportFiber),
			MaxBodySize: getEnvAsInt64("MAX_BODY_SIZE", 1000000),
		},
		Agent: AgentConfig{
			APIKey:  getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
			Model:   getEnv("OPENAI_MODEL", getEnv("GEMINI_MODEL", "")),
			Backend: getEnv("AGENT_BACKEND", "adk"),
		},
		Resume: ResumeConfig{
			Path: getEnv("RESUME_PATH", defaultResumePath),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
