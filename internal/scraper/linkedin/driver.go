package linkedin

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-leadscout-automation/internal/browser"
	"go-leadscout-automation/internal/config"
	"go-leadscout-automation/internal/scraper"
)

const (
	loginURL = "https://www.linkedin.com/login"
	feedURL  = "https://www.linkedin.com/feed/"

	searchBarSelector        = "input.search-global-typeahead__input"
	postsFilterSelector      = `button:text-is("Posts")`
	dateFilterButtonSelector = `button:has-text("Date posted")`
	dateFilterApplySelector  = ".reusables-filters-modal-artdeco-modal__action-bar button.artdeco-button--primary"
	postContainerSelector    = "div.feed-shared-update-v2[data-urn]"
	captchaSelector          = "#captcha-internal"
	globalNavSelector        = "#global-nav"
)

// Driver implements scraper.PageDriver against the LinkedIn web UI.
type Driver struct {
	page    playwright.Page
	cfg     *config.Config
	shots   *browser.ScreenshotDebugger
	timeout float64 // milliseconds
}

func NewDriver(page playwright.Page, cfg *config.Config) *Driver {
	return &Driver{
		page:    page,
		cfg:     cfg,
		shots:   browser.NewScreenshotDebugger(),
		timeout: float64(cfg.WebdriverTimeoutSecs) * 1000,
	}
}

// Login signs in with the configured credentials and waits for the feed.
// A session restored from cookies lands on the feed without the form.
func (d *Driver) Login(ctx context.Context) error {
	log.Println("🔑 Navigating to LinkedIn login page...")
	if _, err := d.page.Goto(loginURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(d.timeout),
	}); err != nil {
		return fmt.Errorf("failed to load login page: %w", err)
	}
	d.ResolveChallenge()

	if strings.Contains(d.page.URL(), "feed") {
		log.Println("✅ Session restored from cookies, already logged in.")
		return nil
	}

	log.Println("Entering credentials...")
	userField := d.page.Locator("#username")
	if err := userField.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(d.timeout),
	}); err != nil {
		return fmt.Errorf("login form not found: %w", err)
	}
	if err := browser.HumanType(userField, d.cfg.Email); err != nil {
		return fmt.Errorf("failed to type email: %w", err)
	}
	if err := browser.HumanType(d.page.Locator("#password"), d.cfg.Password); err != nil {
		return fmt.Errorf("failed to type password: %w", err)
	}

	log.Println("Submitting login form...")
	if err := d.page.Locator(`button[type="submit"]`).Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(d.timeout),
	}); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}
	d.ResolveChallenge()

	// Give the post-login redirect double the usual budget.
	if _, err := d.page.WaitForSelector(globalNavSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(d.timeout * 2),
	}); err != nil {
		d.shots.CaptureAndLog(d.page, "login-failed", "🚨 Login verification failed - global nav not found")
		return fmt.Errorf("login verification failed: %w", err)
	}
	log.Println("✅ Login successful.")
	return nil
}

// GoHome returns to the feed, the known-good landing state between queries.
func (d *Driver) GoHome(ctx context.Context) {
	if _, err := d.page.Goto(feedURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(d.timeout),
	}); err != nil {
		log.Printf("⚠️ Could not navigate back to feed: %v", err)
	}
	browser.RandomDelay(3000, 5000)
}

// Search types the query into the global search bar and submits it.
func (d *Driver) Search(ctx context.Context, query string) error {
	bar := d.page.Locator(searchBarSelector).First()
	if err := bar.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(d.timeout),
	}); err != nil {
		return fmt.Errorf("search bar not found: %w", err)
	}
	if err := bar.Click(); err != nil {
		return fmt.Errorf("failed to focus search bar: %w", err)
	}
	if err := bar.Clear(); err != nil {
		return fmt.Errorf("failed to clear search bar: %w", err)
	}
	if err := browser.HumanType(bar, query); err != nil {
		return fmt.Errorf("failed to type query: %w", err)
	}
	if err := bar.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit query: %w", err)
	}
	if err := d.waitForURLContains("search"); err != nil {
		return fmt.Errorf("search results did not load: %w", err)
	}
	log.Printf("Search for %q executed.", query)
	return nil
}

// ApplyPostsFilter restricts results to native posts.
func (d *Driver) ApplyPostsFilter(ctx context.Context) error {
	log.Println("Applying 'Posts' filter...")
	if err := d.page.Locator(postsFilterSelector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(d.timeout),
	}); err != nil {
		return fmt.Errorf("failed to click posts filter: %w", err)
	}
	if err := d.waitForURLContains("results/content"); err != nil {
		return fmt.Errorf("posts filter did not apply: %w", err)
	}
	log.Println("Filtered by 'Posts'.")
	browser.RandomDelay(2000, 3000)
	return nil
}

// ApplyDateFilter narrows results to the given window via the filter modal.
func (d *Driver) ApplyDateFilter(ctx context.Context, window scraper.DateWindow) error {
	if window == "" || window == scraper.DateAny {
		log.Println("No date filter specified. Skipping.")
		return nil
	}

	log.Printf("Applying date filter: %q...", window)
	if err := d.page.Locator(dateFilterButtonSelector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(d.timeout),
	}); err != nil {
		return fmt.Errorf("failed to open date filter: %w", err)
	}
	browser.RandomDelay(1000, 2000)

	option := d.page.Locator(fmt.Sprintf(`label[for*="date-posted-%s"]`, window)).First()
	if err := option.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(d.timeout),
	}); err != nil {
		d.shots.CaptureAndLog(d.page, "date-filter", "🚨 Date filter option not found, selectors may need updating")
		return fmt.Errorf("failed to select %q option: %w", window, err)
	}
	browser.RandomDelay(500, 1000)

	if err := d.page.Locator(dateFilterApplySelector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(d.timeout),
	}); err != nil {
		return fmt.Errorf("failed to apply date filter: %w", err)
	}
	if err := d.waitForURLContains("datePosted"); err != nil {
		return fmt.Errorf("date filter did not apply: %w", err)
	}
	log.Printf("Successfully applied date filter %q.", window)
	browser.RandomDelay(2000, 3000)
	return nil
}

// VisiblePosts lists every post container currently rendered on the results page.
func (d *Driver) VisiblePosts() ([]scraper.PostHandle, error) {
	locators, err := d.page.Locator(postContainerSelector).All()
	if err != nil {
		return nil, fmt.Errorf("failed to list post containers: %w", err)
	}

	posts := make([]scraper.PostHandle, 0, len(locators))
	for _, loc := range locators {
		posts = append(posts, &post{root: loc})
	}
	return posts, nil
}

func (d *Driver) Scroll() error {
	return browser.HumanScroll(d.page)
}

// PageExtent reads the document height, used by the scan loop to detect when
// scrolling has stopped loading new content.
func (d *Driver) PageExtent() (int, error) {
	result, err := d.page.Evaluate("document.body.scrollHeight")
	if err != nil {
		return 0, fmt.Errorf("failed to read page extent: %w", err)
	}
	switch v := result.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("unexpected page extent type %T", result)
}

// ResolveChallenge blocks on a console prompt when LinkedIn shows a CAPTCHA.
// The wait is intentionally unbounded: only a human can clear it.
func (d *Driver) ResolveChallenge() {
	count, err := d.page.Locator(captchaSelector).Count()
	if err != nil || count == 0 {
		return
	}

	d.shots.CaptureAndLog(d.page, "captcha", "🚨 CAPTCHA page detected")
	log.Println("---! CAPTCHA DETECTED !---")
	log.Println("Please solve the CAPTCHA in the browser, then press Enter in this console to continue...")
	bufio.NewReader(os.Stdin).ReadString('\n')
	log.Println("Resuming...")
}

// waitForURLContains polls the page URL until it contains fragment or the
// driver timeout elapses.
func (d *Driver) waitForURLContains(fragment string) error {
	deadline := time.Now().Add(time.Duration(d.timeout) * time.Millisecond)
	for time.Now().Before(deadline) {
		if strings.Contains(d.page.URL(), fragment) {
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}
	return fmt.Errorf("url did not contain %q within %.0fms", fragment, d.timeout)
}
