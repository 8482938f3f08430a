package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr         string
	DataPath           string
	MaxUploadSizeBytes int64
	HistoryLimit       int
	SimilarMaxDistance float64
	ContrastTarget     float64
	SampleRadius       int
	AllowedOrigins     []string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		DataPath:           getEnv("DATA_PATH", "./data/state.json"),
		MaxUploadSizeBytes: getEnvInt64("MAX_UPLOAD_SIZE_BYTES", 8*1024*1024),
		HistoryLimit:       getEnvInt("HISTORY_LIMIT", 500),
		SimilarMaxDistance: getEnvFloat("SIMILAR_MAX_DISTANCE", 50),
		ContrastTarget:     getEnvFloat("CONTRAST_TARGET", 4.5),
		SampleRadius:       getEnvInt("SAMPLE_RADIUS", 0),
		AllowedOrigins:     getEnvSlice("ALLOWED_ORIGINS", ""),
	}

	if cfg.MaxUploadSizeBytes <= 0 {
		return Config{}, errors.New("max upload size must be > 0")
	}
	if cfg.HistoryLimit <= 0 {
		return Config{}, errors.New("history limit must be > 0")
	}
	if cfg.SimilarMaxDistance <= 0 {
		return Config{}, errors.New("similar max distance must be > 0")
	}
	if cfg.ContrastTarget < 1 || cfg.ContrastTarget > 21 {
		return Config{}, errors.New("contrast target must be in [1,21]")
	}
	if cfg.SampleRadius < 0 {
		return Config{}, errors.New("sample radius must be >= 0")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvSlice(key, fallback string) []string {
	v := getEnv(key, fallback)
	out := make([]string, 0, 4)
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
