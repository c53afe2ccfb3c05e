package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	Port             string
	Env              string
	JWTSecret        string
	PortalBaseURL    string
	OpenAIKey        string
	OpenAIModel      string
	EmailProvider    string
	BrevoAPIKey      string
	ResendAPIKey     string
	EmailFrom        string
	EmailFromName    string
	WhatsAppStoreURL string
	WhatsAppEnabled  bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             os.Getenv("PORT"),
		Env:              os.Getenv("ENV"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		PortalBaseURL:    os.Getenv("PORTAL_BASE_URL"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		EmailProvider:    os.Getenv("EMAIL_PROVIDER"),
		BrevoAPIKey:      os.Getenv("BREVO_API_KEY"),
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		EmailFromName:    os.Getenv("EMAIL_FROM_NAME"),
		WhatsAppStoreURL: os.Getenv("WHATSAPP_STORE_URL"),
		WhatsAppEnabled:  os.Getenv("WHATSAPP_ENABLED") == "true",
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.PortalBaseURL == "" {
		cfg.PortalBaseURL = "https://portal.havenstead.com"
	}
	if cfg.EmailFromName == "" {
		cfg.EmailFromName = "Havenstead Tenant Assistant"
	}

	return cfg
}
