package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BackendKind is the once-per-process backend choice.
type BackendKind int

const (
	BackendMock BackendKind = iota
	BackendReal
)

func (k BackendKind) String() string {
	if k == BackendReal {
		return "real"
	}
	return "mock"
}

// placeholderAPIKey is the value shipped in the example config; it never
// selects the real backend.
const placeholderAPIKey = "YOUR_API_KEY"

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	LogMode string `yaml:"log_mode"`
}

type BackendConfig struct {
	ProjectID string `yaml:"project_id"`
	APIKey    string `yaml:"api_key"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Backend  BackendConfig  `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

// Config is the flattened, parsed runtime configuration.
type Config struct {
	Port    string
	GinMode string
	LogMode string

	AppID  string
	APIKey string

	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	AccessTTL time.Duration

	OTP_TTL          time.Duration
	OTP_Length       int
	OTP_MaxAttempts  int
	OTP_ResendWindow time.Duration

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	CasbinModelPath string
}

// Backend decides, from the credential block alone, which backend the
// process wires. The decision is pure and deterministic: a non-empty,
// non-placeholder API key selects the real backend, anything else the mock.
func (c *Config) Backend() BackendKind {
	if c.APIKey != "" && c.APIKey != placeholderAPIKey {
		return BackendReal
	}
	return BackendMock
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml relative to the working directory.
func Load() (*Config, error) {
	return LoadPath("config/config.yml")
}

// LoadPath reads and parses the config file at path. Secrets may be
// overridden through the environment so deployments can switch backends
// without editing the file.
func LoadPath(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var cf ConfigFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return fromFile(&cf)
}

func fromFile(cf *ConfigFile) (*Config, error) {
	accTTL, err := time.ParseDuration(cf.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	otpTTL, err := time.ParseDuration(cf.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	resWnd, err := time.ParseDuration(cf.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	return &Config{
		Port:             fmt.Sprintf("%d", cf.App.Port),
		GinMode:          cf.App.GinMode,
		LogMode:          cf.App.LogMode,
		AppID:            env("BACKEND_PROJECT_ID", cf.Backend.ProjectID),
		APIKey:           env("BACKEND_API_KEY", cf.Backend.APIKey),
		DSN:              env("DATABASE_DSN", cf.Database.DSN),
		RedisAddr:        env("REDIS_ADDR", cf.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", cf.Redis.Password),
		RedisDB:          cf.Redis.DB,
		JWTSecret:        env("JWT_SECRET", cf.JWT.Secret),
		JWTIssuer:        cf.JWT.Issuer,
		AccessTTL:        accTTL,
		OTP_TTL:          otpTTL,
		OTP_Length:       cf.OTP.Length,
		OTP_MaxAttempts:  cf.OTP.MaxAttempts,
		OTP_ResendWindow: resWnd,
		TwilioSID:        env("TWILIO_ACCOUNT_SID", cf.Twilio.AccountSID),
		TwilioToken:      env("TWILIO_AUTH_TOKEN", cf.Twilio.AuthToken),
		TwilioFrom:       env("TWILIO_FROM_NUMBER", cf.Twilio.FromNumber),
		CasbinModelPath:  cf.Casbin.ModelPath,
	}, nil
}
