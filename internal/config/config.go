package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"readTimeout"`
		WriteTimeout time.Duration `yaml:"writeTimeout"`
		CORSOrigins  []string      `yaml:"corsOrigins"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mongo | mysql | postgres | sqlite
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
		URI      string `yaml:"uri"`  // mongo
		Path     string `yaml:"path"` // sqlite
		DSN      string `yaml:"dsn"`  // overrides the built DSN for SQL drivers
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI struct {
		Provider        string        `yaml:"provider"` // openai | gemini | anthropic
		APIKey          string        `yaml:"apiKey"`
		Model           string        `yaml:"model"`
		Timeout         time.Duration `yaml:"timeout"`
		MaxTokens       int           `yaml:"maxTokens"`
		SafetyThreshold string        `yaml:"safetyThreshold"`
	} `yaml:"ai"`

	Auth struct {
		JWTSecret string        `yaml:"jwtSecret"`
		TokenTTL  time.Duration `yaml:"tokenTTL"`
	} `yaml:"auth"`

	Log struct {
		Level string `yaml:"level"`
		Env   string `yaml:"env"`
	} `yaml:"log"`

	RateLimit struct {
		Capacity        int `yaml:"capacity"`
		RefillPerSecond int `yaml:"refillPerSecond"`
	} `yaml:"rateLimit"`

	Uploads struct {
		MaxBytes     int64    `yaml:"maxBytes"`
		AllowedTypes []string `yaml:"allowedTypes"`
	} `yaml:"uploads"`

	Matcher struct {
		IndustryWeight     int     `yaml:"industryWeight"`
		ProductTypeWeight  int     `yaml:"productTypeWeight"`
		TargetMarketWeight int     `yaml:"targetMarketWeight"`
		RatingMultiplier   float64 `yaml:"ratingMultiplier"`
		ExcellentThreshold int     `yaml:"excellentThreshold"`
		GoodThreshold      int     `yaml:"goodThreshold"`
		TopN               int     `yaml:"topN"`
	} `yaml:"matcher"`
}

// Load baca file config, .env, lalu override dari environment.
// A missing config file is fine as long as the environment fills the gaps.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	setInt(&c.Server.Port, "APP_PORT")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Database.URI, "MONGO_URI")
	setString(&c.Database.Path, "SQLITE_PATH")

	setString(&c.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Minio.BucketName, "MINIO_BUCKET")

	setString(&c.AI.Provider, "AI_PROVIDER")
	setString(&c.AI.Model, "AI_MODEL")
	setString(&c.AI.APIKey, "AI_API_KEY")
	// provider-specific keys win only for their own provider
	switch c.AI.Provider {
	case "openai":
		setString(&c.AI.APIKey, "OPENAI_API_KEY")
	case "gemini":
		setString(&c.AI.APIKey, "GEMINI_API_KEY")
	case "anthropic":
		setString(&c.AI.APIKey, "ANTHROPIC_API_KEY")
	}

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Env, "APP_ENV")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	// AI generation alone may take up to AI.Timeout
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "udyamsakhi.db"
	}
	if c.Database.Name == "" {
		c.Database.Name = "udyamsakhi"
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "gemini"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 30 * time.Second
	}
	if c.AI.MaxTokens == 0 {
		c.AI.MaxTokens = 4096
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Env == "" {
		c.Log.Env = "development"
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 10
	}
	if c.RateLimit.RefillPerSecond == 0 {
		c.RateLimit.RefillPerSecond = 1
	}
	if c.Uploads.MaxBytes == 0 {
		c.Uploads.MaxBytes = 5 << 20
	}
	if len(c.Uploads.AllowedTypes) == 0 {
		c.Uploads.AllowedTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}
	}
	if c.Minio.BucketName == "" {
		c.Minio.BucketName = "udyamsakhi-uploads"
	}

	m := &c.Matcher
	if m.IndustryWeight == 0 {
		m.IndustryWeight = 30
	}
	if m.ProductTypeWeight == 0 {
		m.ProductTypeWeight = 25
	}
	if m.TargetMarketWeight == 0 {
		m.TargetMarketWeight = 20
	}
	if m.RatingMultiplier == 0 {
		m.RatingMultiplier = 5
	}
	if m.ExcellentThreshold == 0 {
		m.ExcellentThreshold = 75
	}
	if m.GoodThreshold == 0 {
		m.GoodThreshold = 50
	}
	if m.TopN == 0 {
		m.TopN = 5
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mongo", "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database driver %q (allowed: mongo, mysql, postgres, sqlite)", c.Database.Driver)
	}
	switch c.AI.Provider {
	case "openai", "gemini", "anthropic":
	default:
		return fmt.Errorf("unknown ai provider %q (allowed: openai, gemini, anthropic)", c.AI.Provider)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwtSecret is required")
	}
	return nil
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection string.
func (c *Config) PostgresDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	ssl := c.Database.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		ssl,
	)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
