package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/playwright-community/playwright-go"

	"go-leadscout-automation/internal/ai"
	"go-leadscout-automation/internal/browser"
	"go-leadscout-automation/internal/config"
	"go-leadscout-automation/internal/database"
	"go-leadscout-automation/internal/filter"
	"go-leadscout-automation/internal/reporter"
	"go-leadscout-automation/internal/scan"
	"go-leadscout-automation/internal/scraper"
	"go-leadscout-automation/internal/scraper/linkedin"
	"go-leadscout-automation/internal/store"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Goal: %d leads, %d queries, date filter: %s", cfg.GoalCount, len(cfg.Queries), cfg.DateWindow())

	// No run-wide deadline: the CAPTCHA pause is unbounded by design.
	ctx := context.Background()

	//verify the classifier before any browsing starts
	classifier := ai.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel)
	if err := classifier.Ping(ctx); err != nil {
		log.Fatalf("❌ Could not connect to the Ollama server. Please ensure Ollama is running: %v", err)
	}
	log.Println("🧠 Successfully connected to Ollama server.")

	//optional telegram reporter
	var bot *reporter.TelegramReporter
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		var err error
		bot, err = reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram reporter: %v. Continuing without it.", err)
		} else {
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	//optional postgres mirror
	var repo *database.Repository
	if cfg.DatabaseURL != "" {
		var err error
		repo, err = database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ Database mirror unavailable: %v. Continuing without it.", err)
		} else {
			defer repo.Close()
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Printf("⚠️ Could not prepare leads table: %v", err)
			} else {
				log.Println("🗄️ Postgres mirror connected.")
			}
		}
	}

	log.Println("🚀 Starting LinkedIn Lead Scout...")

	//init playwright manager, close it on every exit path
	pwManager, err := browser.NewManager(cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer pwManager.Close()

	//load session cookies if available
	var cookies []playwright.OptionalCookie
	if cfg.CookiesPath != "" {
		cookieFile := filepath.Join(cfg.CookiesPath, "cookies-linkedin.json")
		loaded, err := browser.LoadCookies(cookieFile)
		if err != nil {
			log.Printf("⚠️ Could not load cookies: %v. Continuing with fresh login.", err)
		} else {
			log.Printf("🍪 Loaded %d cookies", len(loaded))
			cookies = loaded
		}
	}

	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	driver := linkedin.NewDriver(page, cfg)
	if err := driver.Login(ctx); err != nil {
		log.Printf("❌ Login failed: %v", err)
		if bot != nil {
			bot.SendError(fmt.Errorf("login failed: %w", err))
		}
		return
	}

	//load previous leads to resume the session
	leadStore := store.NewLeadStore(cfg.OutputPath)
	seenLinks, resumedCount := leadStore.Load()

	var processed scan.ProcessedLog
	if cfg.TrackProcessed {
		processed = store.NewProcessedCache(cfg.CachePath)
	}

	opts := scan.Options{
		Queries:      cfg.Queries,
		GoalCount:    cfg.GoalCount,
		MaxScrolls:   cfg.MaxScrollsPerQuery,
		DateFilter:   cfg.DateWindow(),
		SeenLinks:    seenLinks,
		ResumedCount: resumedCount,
		OnLead: func(lead scraper.Lead, found, goal int) {
			if bot != nil {
				if err := bot.SendLead(lead, found, goal); err != nil {
					log.Printf("⚠️ Failed to send lead to Telegram: %v", err)
				}
			}
			if repo != nil {
				if err := repo.SaveLead(ctx, lead); err != nil {
					log.Printf("⚠️ Failed to mirror lead to Postgres: %v", err)
				}
			}
		},
	}
	if cfg.RequireKeywordMatch {
		opts.Prefilter = filter.LooksLikeLead
	}

	scanner := scan.New(driver, classifier, leadStore, processed, opts)
	scanner.Run(ctx)

	summary := fmt.Sprintf("Session finished. Found %d/%d leads, saved to %s.", scanner.LeadsFound(), cfg.GoalCount, cfg.OutputPath)
	log.Printf("🏁 %s", summary)
	if bot != nil {
		if err := bot.SendStatus(summary); err != nil {
			log.Printf("⚠️ Failed to send status to Telegram: %v", err)
		}
	}
}
