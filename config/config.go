package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Data    DataConfig
	Redis   RedisConfig
	Media   MediaConfig
	Auth    AuthConfig
	Metrics MetricsConfig
	Client  ClientConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type AppConfig struct {
	Name        string
	Environment string
	LogLevel    string
	LogFile     string
	Version     string
}

type DataConfig struct {
	Backend   string
	DSN       string
	TableName string
	AWSRegion string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
	WarmSpec string
}

type MediaConfig struct {
	BucketName     string
	BaseURL        string
	PresignExpires time.Duration
}

type AuthConfig struct {
	Provider                string
	Disabled                bool
	CognitoRegion           string
	CognitoUserPoolID       string
	CognitoAppClientID      string
	FirebaseCredentialsPath string
}

// Enabled reports whether bearer tokens are verified at all.
func (a AuthConfig) Enabled() bool {
	if a.Disabled {
		return false
	}
	switch a.Provider {
	case AuthProviderFirebase:
		return a.FirebaseCredentialsPath != ""
	default:
		return a.CognitoUserPoolID != "" && a.CognitoAppClientID != ""
	}
}

type MetricsConfig struct {
	Namespace      string
	ViewMetricName string
	DeploymentEnv  string
	ViewRatePerMin int
}

// ClientConfig is consumed by the CMS/site clients rather than the API server.
type ClientConfig struct {
	APIBaseURL     string
	AuthEnabled    bool
	IDToken        string
	TokenFile      string
	ViewMarkerDB   string
	ViewSource     string
	RequestTimeout time.Duration
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"

	AuthProviderCognito  = "cognito"
	AuthProviderFirebase = "firebase"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:3001"),
		},
		App: AppConfig{
			Name:        getEnv("APP_NAME", "portfolio-api"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFile:     getEnv("LOG_FILE", ""),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Data: DataConfig{
			Backend:   strings.ToLower(strings.TrimSpace(getEnv("DATA_BACKEND", BackendDynamoDB))),
			DSN:       getEnv("DB_DSN", ""),
			TableName: getEnv("TABLE_NAME", "portfolio-projects"),
			AWSRegion: getEnv("AWS_REGION", "us-west-2"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("CACHE_TTL", 5*time.Minute),
			WarmSpec: getEnv("CACHE_WARM_SPEC", "@every 4m"),
		},
		Media: MediaConfig{
			BucketName:     getEnv("MEDIA_BUCKET_NAME", ""),
			BaseURL:        getEnv("MEDIA_BASE_URL", "/media"),
			PresignExpires: getEnvAsDuration("PRESIGN_EXPIRES", 15*time.Minute),
		},
		Auth: AuthConfig{
			Provider:                strings.ToLower(getEnv("AUTH_PROVIDER", AuthProviderCognito)),
			Disabled:                getEnvAsBool("DISABLE_AUTH", false),
			CognitoRegion:           getEnv("COGNITO_REGION", "us-west-2"),
			CognitoUserPoolID:       getEnv("COGNITO_USER_POOL_ID", ""),
			CognitoAppClientID:      getEnv("COGNITO_APP_CLIENT_ID", ""),
			FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Metrics: MetricsConfig{
			Namespace:      getEnv("METRIC_NAMESPACE", "PortfolioWebsite"),
			ViewMetricName: getEnv("VIEW_METRIC_NAME", "WebsiteViews"),
			DeploymentEnv:  getEnv("DEPLOYMENT_ENV", "local"),
			ViewRatePerMin: getEnvAsInt("VIEW_RATE_PER_MIN", 30),
		},
		Client: ClientConfig{
			APIBaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
			AuthEnabled:    getEnvAsBool("ENABLE_AUTH", true),
			IDToken:        getEnv("CMS_ID_TOKEN", ""),
			TokenFile:      getEnv("CMS_TOKEN_FILE", ""),
			ViewMarkerDB:   getEnv("VIEW_MARKER_DB", ""),
			ViewSource:     getEnv("VIEW_SOURCE", "public-site"),
			RequestTimeout: getEnvAsDuration("CLIENT_TIMEOUT", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Data.Backend {
	case BackendMemory, BackendDynamoDB:
	case BackendPostgres:
		if c.Data.DSN == "" {
			return fmt.Errorf("DB_DSN is required when DATA_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("DATA_BACKEND must be memory, postgres or dynamodb")
	}

	switch c.Auth.Provider {
	case AuthProviderCognito, AuthProviderFirebase:
	default:
		return fmt.Errorf("AUTH_PROVIDER must be cognito or firebase")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	out := make([]string, 0, 4)
	for _, entry := range strings.Split(raw, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
