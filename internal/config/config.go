package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	// One isolated account store per application. The set of applications is
	// closed; adding one means adding a field here and a row in the resolver
	// table, on purpose.
	Stores struct {
		PsrTestDSN string `yaml:"psrtest_dsn"`
		EduTestDSN string `yaml:"edutest_dsn"`
	} `yaml:"stores"`

	Webhook struct {
		// Shared secret for HMAC-SHA512 signature verification.
		// Provisioned out of band; never logged.
		Secret string `yaml:"secret"`
	} `yaml:"webhook"`

	Alerts struct {
		SMTPHost     string   `yaml:"smtp_host"`
		SMTPPort     int      `yaml:"smtp_port"`
		SMTPUser     string   `yaml:"smtp_user"`
		SMTPPassword string   `yaml:"smtp_password"`
		FromEmail    string   `yaml:"from_email"`
		ToEmails     []string `yaml:"to_emails"`
	} `yaml:"alerts"`
}

var AppConfig *Config

// LoadConfig populates AppConfig from environment variables when the store
// DSNs are provided that way (deployment and tests), otherwise from the yaml
// file at CONFIG_PATH (default config/config.yaml).
func LoadConfig() {
	var cfg Config

	psrDSN := os.Getenv("PSRTEST_DATABASE_URL")
	eduDSN := os.Getenv("EDUTEST_DATABASE_URL")

	if psrDSN == "" && eduDSN == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		// The secret may still arrive via environment on top of yaml.
		if secret := os.Getenv("PAYMENT_API_SECRET_KEY"); secret != "" {
			cfg.Webhook.Secret = secret
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Stores.PsrTestDSN = psrDSN
	cfg.Stores.EduTestDSN = eduDSN
	cfg.Webhook.Secret = os.Getenv("PAYMENT_API_SECRET_KEY")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

	cfg.Alerts.SMTPHost = os.Getenv("ALERT_SMTP_HOST")
	cfg.Alerts.SMTPPort, _ = strconv.Atoi(os.Getenv("ALERT_SMTP_PORT"))
	cfg.Alerts.SMTPUser = os.Getenv("ALERT_SMTP_USER")
	cfg.Alerts.SMTPPassword = os.Getenv("ALERT_SMTP_PASSWORD")
	cfg.Alerts.FromEmail = os.Getenv("ALERT_FROM_EMAIL")
	if to := os.Getenv("ALERT_TO_EMAIL"); to != "" {
		cfg.Alerts.ToEmails = []string{to}
	}

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5002
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
}
