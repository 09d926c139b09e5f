// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-leadscout-automation/internal/scraper"
)

type Config struct {
	// LinkedIn credentials, env only
	Email    string
	Password string

	// Agent goal
	GoalCount          int      `yaml:"goal_count"`
	MaxScrollsPerQuery int      `yaml:"max_scrolls_per_query"`
	DateFilter         string   `yaml:"date_filter"`
	Queries            []string `yaml:"queries"`

	// Classifier
	OllamaModel string `yaml:"ollama_model"`
	OllamaHost  string `yaml:"ollama_host"`

	// Paths
	OutputPath  string `yaml:"output_path"`
	CachePath   string `yaml:"cache_path"`
	CookiesPath string `yaml:"cookies_path"`

	// Behavior
	TrackProcessed       bool `yaml:"track_processed"`
	RequireKeywordMatch  bool `yaml:"require_keyword_match"`
	Headless             bool `yaml:"headless"`
	WebdriverTimeoutSecs int  `yaml:"webdriver_timeout_secs"`

	// Optional integrations, env only
	TelegramToken  string
	TelegramChatID int64
	DatabaseURL    string
}

// Defaults returns the baseline configuration before yaml and env overrides.
func Defaults() *Config {
	return &Config{
		GoalCount:          20,
		MaxScrollsPerQuery: 15,
		DateFilter:         string(scraper.DatePast24h),
		Queries: []string{
			`"looking for a virtual assistant"`,
			`"virtual assistant recommendation"`,
			`"seeking administrative support"`,
			`"need help with admin tasks"`,
			`"hiring a VA"`,
		},
		OllamaModel:          "deepseek-r1:8b",
		OllamaHost:           "http://localhost:11434",
		OutputPath:           "linkedin_leads.csv",
		CachePath:            ".cache",
		TrackProcessed:       true,
		WebdriverTimeoutSecs: 20,
	}
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := Defaults()

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	cfg.Email = os.Getenv("LINKEDIN_EMAIL")
	cfg.Password = os.Getenv("LINKEDIN_PASSWORD")
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.OllamaHost = host
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}

	return cfg
}

// Validate checks required credentials and option values. Called by Load;
// exported so tests can exercise it directly.
func (c *Config) Validate() error {
	if c.Email == "" || c.Password == "" {
		return fmt.Errorf("set LINKEDIN_EMAIL and LINKEDIN_PASSWORD in your .env file")
	}
	if c.GoalCount <= 0 {
		return fmt.Errorf("goal_count must be positive, got %d", c.GoalCount)
	}
	if c.MaxScrollsPerQuery <= 0 {
		return fmt.Errorf("max_scrolls_per_query must be positive, got %d", c.MaxScrollsPerQuery)
	}
	if len(c.Queries) == 0 {
		return fmt.Errorf("at least one search query is required")
	}
	if _, ok := scraper.ParseDateWindow(c.DateFilter); !ok {
		return fmt.Errorf("invalid date_filter %q (use none, past-24h, past-week or past-month)", c.DateFilter)
	}
	return nil
}

// DateWindow returns the validated date filter window.
func (c *Config) DateWindow() scraper.DateWindow {
	window, _ := scraper.ParseDateWindow(c.DateFilter)
	return window
}
