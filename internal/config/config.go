package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// TimeZone is the single reference zone for dates and reminders.
	// Users' own zones are not tracked.
	TimeZone string `yaml:"time_zone"`

	// TaxonomyPath is the JSON file holding the category dictionary.
	TaxonomyPath string `yaml:"taxonomy_path"`

	// StorageBackend selects the tabular backend:
	// "memory", "sqlite", "sheets" or "firestore".
	StorageBackend string `yaml:"storage_backend"`
	SQLitePath     string `yaml:"sqlite_path"`
	SpreadsheetID  string `yaml:"spreadsheet_id"`
	SheetRange     string `yaml:"sheet_range"`

	GCPProjectID        string `yaml:"gcp_project"`
	GCPLocation         string `yaml:"gcp_location"`
	ModelName           string `yaml:"model_name"`
	FirestoreCollection string `yaml:"firestore_collection"`

	UseMockLLM bool `yaml:"use_mock_llm"`

	// WebhookURL, when set, is where reminder directives are POSTed.
	WebhookURL string `yaml:"webhook_url"`

	// PacingDelay is the mandatory wait between successive backend
	// appends. Not user-controlled.
	PacingDelay time.Duration `yaml:"pacing_delay"`

	// MinTranscriptChars rejects transcript submissions shorter than
	// this as too short to analyze.
	MinTranscriptChars int `yaml:"min_transcript_chars"`

	ReminderText string `yaml:"reminder_text"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load reads all env vars and builds the config.
func Load() *Config {
	return &Config{
		Port: getEnv("ENERGOLOG_PORT", "8080"),

		TimeZone:     getEnv("ENERGOLOG_TIMEZONE", "Europe/Paris"),
		TaxonomyPath: getEnv("ENERGOLOG_TAXONOMY_PATH", "categories.json"),

		StorageBackend: getEnv("ENERGOLOG_STORAGE_BACKEND", "memory"),
		SQLitePath:     getEnv("ENERGOLOG_SQLITE_PATH", "journal.db"),
		SpreadsheetID:  getEnv("SPREADSHEET_ID", ""),
		SheetRange:     getEnv("ENERGOLOG_SHEET_RANGE", "A:F"),

		GCPProjectID:        getEnv("ENERGOLOG_GCP_PROJECT", ""),
		GCPLocation:         getEnv("ENERGOLOG_GCP_LOCATION", "us-central1"),
		ModelName:           getEnv("ENERGOLOG_MODEL_NAME", "gemini-2.5-flash"),
		FirestoreCollection: getEnv("ENERGOLOG_FIRESTORE_COLLECTION", "journal"),

		UseMockLLM: getBoolEnv("ENERGOLOG_USE_MOCK_LLM", true),

		WebhookURL: getEnv("ENERGOLOG_WEBHOOK_URL", ""),

		PacingDelay:        time.Duration(getIntEnv("ENERGOLOG_PACING_MS", 1000)) * time.Millisecond,
		MinTranscriptChars: getIntEnv("ENERGOLOG_MIN_TRANSCRIPT_CHARS", 200),

		ReminderText: getEnv("ENERGOLOG_REMINDER_TEXT",
			"Пора заполнить дневник активностей! Напиши /start."),
	}
}

// LoadFile overlays values from a YAML config file onto cfg. A missing
// file is not an error: env-only setups stay valid.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks backend-specific requirements.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "memory", "sqlite":
	case "sheets":
		if c.SpreadsheetID == "" {
			return fmt.Errorf("SPREADSHEET_ID is required for the sheets backend")
		}
	case "firestore":
		if c.GCPProjectID == "" {
			return fmt.Errorf("ENERGOLOG_GCP_PROJECT is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if !c.UseMockLLM && c.GCPProjectID == "" {
		return fmt.Errorf("ENERGOLOG_GCP_PROJECT is required when the mock LLM is disabled")
	}
	if c.PacingDelay < 0 {
		return fmt.Errorf("pacing delay must not be negative")
	}
	return nil
}
