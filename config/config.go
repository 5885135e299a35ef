package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the runtime settings for the wizard service. Values come
// from the environment, with a .env file loaded first if present.
type Config struct {
	// Port the HTTP API listens on
	Port string

	// BackendURL is the base URL of the content backend (planner, search,
	// render, social endpoints)
	BackendURL string

	// CohereAPIKey enables the in-process Cohere planner when set
	CohereAPIKey string

	// RenderPollCap bounds the main render poll loop in attempts; 0 means
	// poll until the job reaches a terminal state
	RenderPollCap int

	// DefaultVisualStyle is the video-template search style preference
	DefaultVisualStyle string

	// RequiredVideoAssets is the selection size for the video template:
	// VideoAssetCount, or DualVideoAssetCount when the dual-clip template
	// is enabled
	RequiredVideoAssets int

	// LocalRender switches rendering from the backend API to the in-process
	// ffmpeg engine
	LocalRender bool

	// RedisAddr enables the search-result cache when set
	RedisAddr string

	// KafkaBrokers enables the pipeline event publisher when set
	KafkaBrokers []string
	KafkaTopic   string

	// S3Bucket enables archiving of delivered renders when set
	S3Bucket       string
	S3Region       string
	S3Prefix       string
	S3UsePathStyle bool

	// TopicFeeds are RSS feed URLs used for auto-mode topic suggestions
	TopicFeeds []string

	// YouTubeServiceAccountFile enables the Shorts uploader when set
	YouTubeServiceAccountFile string
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:                      getEnvOrDefault("PORT", "8090"),
		BackendURL:                getEnvOrDefault("BACKEND_URL", "http://localhost:8000"),
		CohereAPIKey:              os.Getenv("COHERE_API_KEY"),
		DefaultVisualStyle:        getEnvOrDefault("DEFAULT_VISUAL_STYLE", "stock_video"),
		RedisAddr:                 os.Getenv("REDIS_ADDR"),
		KafkaTopic:                getEnvOrDefault("KAFKA_TOPIC", "wizard-events"),
		S3Bucket:                  strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:                  strings.TrimSpace(os.Getenv("S3_REGION")),
		YouTubeServiceAccountFile: os.Getenv("YOUTUBE_SERVICE_ACCOUNT_FILE"),
	}

	cfg.LocalRender = strings.EqualFold(strings.TrimSpace(os.Getenv("LOCAL_RENDER")), "true")

	cfg.RequiredVideoAssets = VideoAssetCount
	if strings.EqualFold(strings.TrimSpace(os.Getenv("DUAL_CLIP_TEMPLATE")), "true") {
		cfg.RequiredVideoAssets = DualVideoAssetCount
	}

	if v := os.Getenv("RENDER_POLL_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RenderPollCap = n
		}
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	if feeds := os.Getenv("TOPIC_FEEDS"); feeds != "" {
		cfg.TopicFeeds = splitAndTrim(feeds)
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		cfg.S3Prefix = strings.Trim(prefix, "/") + "/"
	}
	cfg.S3UsePathStyle = strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true")

	return cfg
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
