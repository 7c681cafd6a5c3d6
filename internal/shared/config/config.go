package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	LogLevel        string
	DatabaseURL     string

	// Catalog pool overrides; zero keeps the db package defaults.
	DBMaxOpenConns    int           `validate:"gte=0"`
	DBMaxIdleConns    int           `validate:"gte=0"`
	DBConnMaxLifetime time.Duration `validate:"gte=0"`
	DBConnMaxIdleTime time.Duration `validate:"gte=0"`
	DBPingTimeout     time.Duration `validate:"gte=0"`

	ObjectStoreType string `validate:"oneof=local s3"`
	LocalStoreDir   string `validate:"required_if=ObjectStoreType local"`
	PublicBaseURL   string
	AWSRegion       string
	S3Bucket        string `validate:"required_if=ObjectStoreType s3"`
	S3Prefix        string
	S3PublicURL     string
	SSEKMSKeyID     string

	VisionProvider   string `validate:"oneof=facepp none"`
	VisionEndpoint   string `validate:"omitempty,url"`
	VisionAPIKey     string
	VisionAPISecret  string
	VisionTimeout    time.Duration `validate:"gt=0"`
	VisionMaxRetries int           `validate:"gte=0,lte=5"`
	UploadTimeout    time.Duration `validate:"gt=0"`

	MaxImageBytes     int64 `validate:"gt=0"`
	MaxImageDimension int   `validate:"gt=0"`

	SkinTypeLabelOily        string `validate:"required"`
	SkinTypeLabelDry         string `validate:"required"`
	SkinTypeLabelCombination string `validate:"required"`

	AnalysisRatePerMinute float64 `validate:"gte=0"`
	AnalysisBurst         int     `validate:"gte=0"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	port := getEnv("PORT", "8080")

	return Config{
		Port:            port,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DatabaseURL:     dbURL,

		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 0),
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 0),
		DBConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 0),
		DBConnMaxIdleTime: getDuration("DB_CONN_MAX_IDLE_TIME", 0),
		DBPingTimeout:     getDuration("DB_PING_TIMEOUT", 0),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+strings.TrimPrefix(port, ":")), "/"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", "skin-analysis/"),
		S3PublicURL:     getEnv("S3_PUBLIC_URL", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),

		VisionProvider:   normalizeVisionProvider(getEnv("VISION_PROVIDER", "facepp")),
		VisionEndpoint:   getEnv("VISION_ENDPOINT", "https://api-us.faceplusplus.com/facepp/v3/detect"),
		VisionAPIKey:     getEnv("VISION_API_KEY", ""),
		VisionAPISecret:  getEnv("VISION_API_SECRET", ""),
		VisionTimeout:    getDuration("VISION_TIMEOUT", 20*time.Second),
		VisionMaxRetries: getInt("VISION_MAX_RETRIES", 0),
		UploadTimeout:    getDuration("UPLOAD_TIMEOUT", 15*time.Second),

		MaxImageBytes:     int64(getInt("MAX_IMAGE_BYTES", 5<<20)),
		MaxImageDimension: getInt("MAX_IMAGE_DIMENSION", 2048),

		SkinTypeLabelOily:        getEnv("SKIN_TYPE_LABEL_OILY", "Oily"),
		SkinTypeLabelDry:         getEnv("SKIN_TYPE_LABEL_DRY", "Dry"),
		SkinTypeLabelCombination: getEnv("SKIN_TYPE_LABEL_COMBINATION", "Combination"),

		AnalysisRatePerMinute: getFloat("SKIN_ANALYSIS_RATE_PER_MIN", 6),
		AnalysisBurst:         getInt("SKIN_ANALYSIS_BURST", 3),
	}
}

var validate = validator.New()

// Validate checks cross-field requirements that defaults cannot satisfy.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config env %s invalid float: %v", key, err)
		return def
	}
	return val
}

// getDuration accepts Go durations ("20s") or bare seconds ("20").
func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config env %s invalid duration: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeVisionProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none", "off", "disabled":
		return "none"
	default:
		return "facepp"
	}
}
