package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/KrUtHi96/sidebyside/internal/extract"
)

// minResultTTL is the floor on stored comparison lifetime; consumers rely on
// results staying retrievable for at least two hours.
const minResultTTL = 2 * time.Hour

type Config struct {
	Port string

	// Auth
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Stored comparison lifetime
	ResultTTL time.Duration

	// Where uploaded documents are parked for the viewer
	TempDir string

	// Extraction tunables
	YBucket           float64
	FooterBand        float64
	ParagraphGap      float64
	SuperscriptHeight float64
	IndentStep        float64
}

func Load() Config {
	defaults := extract.DefaultOptions()
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("SIDEBYSIDE_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ResultTTL: envDuration("RESULT_TTL", minResultTTL),

		TempDir: envOr("TEMP_DIR", os.TempDir()),

		YBucket:           envFloat("EXTRACT_Y_BUCKET", defaults.YBucket),
		FooterBand:        envFloat("EXTRACT_FOOTER_BAND", defaults.FooterBand),
		ParagraphGap:      envFloat("EXTRACT_PARAGRAPH_GAP", defaults.ParagraphGap),
		SuperscriptHeight: envFloat("EXTRACT_SUPERSCRIPT_HEIGHT", defaults.SuperscriptHeight),
		IndentStep:        envFloat("EXTRACT_INDENT_STEP", defaults.IndentStep),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ResultTTL < minResultTTL {
		cfg.ResultTTL = minResultTTL
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("SIDEBYSIDE_API_KEY is required")
	}
	if c.FooterBand <= 0 || c.FooterBand >= 1 {
		return fmt.Errorf("EXTRACT_FOOTER_BAND must be in (0, 1), got %v", c.FooterBand)
	}
	return nil
}

// ExtractOptions maps the tunables into the extraction pipeline's options.
func (c Config) ExtractOptions() extract.Options {
	return extract.Options{
		YBucket:           c.YBucket,
		FooterBand:        c.FooterBand,
		ParagraphGap:      c.ParagraphGap,
		SuperscriptHeight: c.SuperscriptHeight,
		IndentStep:        c.IndentStep,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
