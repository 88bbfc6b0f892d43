package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ResetTokenConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type OTPConfig struct {
	TTL         string `yaml:"ttl"`
	Length      int    `yaml:"length"`
	MaxAttempts int    `yaml:"max_attempts"`
}

type EgoSMSConfig struct {
	APIURL   string `yaml:"api_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SenderID string `yaml:"sender_id"`
	Priority int    `yaml:"priority"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type SMSConfig struct {
	Provider    string       `yaml:"provider"`
	CountryCode string       `yaml:"country_code"`
	EgoSMS      EgoSMSConfig `yaml:"egosms"`
	Twilio      TwilioConfig `yaml:"twilio"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	PublicURL string `yaml:"public_url"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	ResetToken ResetTokenConfig `yaml:"reset_token"`
	OTP        OTPConfig        `yaml:"otp"`
	SMS        SMSConfig        `yaml:"sms"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Storage    StorageConfig    `yaml:"storage"`
	Casbin     CasbinConfig     `yaml:"casbin"`
}

type Config struct {
	Port             string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	ResetTokenSecret string
	ResetTokenIssuer string
	ResetTokenTTL    time.Duration
	OTP_TTL          time.Duration
	OTP_Length       int
	OTP_MaxAttempts  int
	SMSProvider      string
	SMSCountryCode   string
	EgoSMS           EgoSMSConfig
	Twilio           TwilioConfig
	SMTP             SMTPConfig
	Storage          StorageConfig
	CasbinModelPath  string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.ResetToken.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	cfg := &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          configFile.App.GinMode,
		DSN:              env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:        env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          configFile.Redis.DB,
		ResetTokenSecret: env("RESET_TOKEN_SECRET", configFile.ResetToken.Secret),
		ResetTokenIssuer: configFile.ResetToken.Issuer,
		ResetTokenTTL:    resetTTL,
		OTP_TTL:          otpTTL,
		OTP_Length:       configFile.OTP.Length,
		OTP_MaxAttempts:  configFile.OTP.MaxAttempts,
		SMSProvider:      env("SMS_PROVIDER", configFile.SMS.Provider),
		SMSCountryCode:   configFile.SMS.CountryCode,
		EgoSMS:           configFile.SMS.EgoSMS,
		Twilio:           configFile.SMS.Twilio,
		SMTP:             configFile.SMTP,
		Storage:          configFile.Storage,
		CasbinModelPath:  configFile.Casbin.ModelPath,
	}

	if v := os.Getenv("EGOSMS_PASSWORD"); v != "" {
		cfg.EgoSMS.Password = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		cfg.Twilio.AuthToken = v
	}

	if cfg.OTP_Length <= 0 {
		cfg.OTP_Length = 6
	}
	if cfg.OTP_MaxAttempts <= 0 {
		cfg.OTP_MaxAttempts = 3
	}
	if cfg.SMSCountryCode == "" {
		cfg.SMSCountryCode = "256"
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
