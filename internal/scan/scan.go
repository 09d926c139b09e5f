// The scan loop: scroll-paginate search results, classify each post exactly
// once, persist accepted leads, stop on quota or convergence.

package scan

import (
	"context"
	"fmt"
	"log"

	mapset "github.com/deckarep/golang-set/v2"

	"go-leadscout-automation/internal/ai"
	"go-leadscout-automation/internal/browser"
	"go-leadscout-automation/internal/scraper"
)

// LeadStore persists accepted leads.
type LeadStore interface {
	Append(lead scraper.Lead) error
}

// ProcessedLog remembers links that were already classified, accepted or not.
type ProcessedLog interface {
	IsProcessed(link string) bool
	Mark(links ...string)
}

// Options configures one run of the scanner.
type Options struct {
	Queries    []string
	GoalCount  int
	MaxScrolls int
	DateFilter scraper.DateWindow

	// SeenLinks and ResumedCount seed the run from the persisted store, so a
	// fresh run against a full store does zero work.
	SeenLinks    []string
	ResumedCount int

	// Prefilter, when set, decides whether a post is worth a model call at all.
	Prefilter func(text string) bool

	// OnLead is invoked after each accepted lead has been persisted, with the
	// running lead count against the goal.
	OnLead func(lead scraper.Lead, found, goal int)

	// Pause runs between post-level actions to keep a human cadence. Tests
	// replace it with a no-op.
	Pause func()
}

// Scanner runs the scroll-and-classify loop over every configured query. All
// mutable run state (seen-set, lead counter) lives here, not in globals.
type Scanner struct {
	driver     scraper.PageDriver
	classifier ai.Client
	store      LeadStore
	processed  ProcessedLog
	opts       Options

	seen       mapset.Set[string]
	leadsFound int
}

// New builds a scanner. processed may be nil, in which case only accepted
// leads suppress re-classification across runs.
func New(driver scraper.PageDriver, classifier ai.Client, store LeadStore, processed ProcessedLog, opts Options) *Scanner {
	if opts.Pause == nil {
		opts.Pause = func() { browser.RandomDelay(1000, 2000) }
	}

	seen := mapset.NewSet[string]()
	for _, link := range opts.SeenLinks {
		seen.Add(link)
	}

	return &Scanner{
		driver:     driver,
		classifier: classifier,
		store:      store,
		processed:  processed,
		opts:       opts,
		seen:       seen,
		leadsFound: opts.ResumedCount,
	}
}

// LeadsFound reports the current lead count, including resumed leads.
func (s *Scanner) LeadsFound() int {
	return s.leadsFound
}

// Run processes every query until the lead goal is met. A failure in one query
// never aborts the run: it is logged, the driver returns to the feed, and the
// next query starts.
func (s *Scanner) Run(ctx context.Context) {
	for _, query := range s.opts.Queries {
		if s.goalMet() {
			break
		}
		log.Printf("--- Starting new search for: %s ---", query)
		if err := s.scanQuery(ctx, query); err != nil {
			log.Printf("❌ Failed to process search query %q: %v. Moving to next one.", query, err)
			s.driver.GoHome(ctx)
		}
	}
	if !s.goalMet() {
		log.Printf("All searches processed. Found %d/%d total leads.", s.leadsFound, s.opts.GoalCount)
	}
}

func (s *Scanner) goalMet() bool {
	return s.leadsFound >= s.opts.GoalCount
}

func (s *Scanner) scanQuery(ctx context.Context, query string) error {
	if err := s.driver.Search(ctx, query); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := s.driver.ApplyPostsFilter(ctx); err != nil {
		return fmt.Errorf("posts filter: %w", err)
	}
	if err := s.driver.ApplyDateFilter(ctx, s.opts.DateFilter); err != nil {
		// Non-fatal: results are still usable without the date restriction.
		log.Printf("⚠️ Could not apply date filter %q: %v. Continuing without it.", s.opts.DateFilter, err)
	}
	s.subScan(ctx)
	return nil
}

// subScan scroll-paginates the current results, classifying each new post at
// most once, until the goal is met, the scroll budget runs out, or scrolling
// stops producing anything new.
func (s *Scanner) subScan(ctx context.Context) {
	lastExtent, err := s.driver.PageExtent()
	if err != nil {
		lastExtent = -1
	}

	for scrolls := 0; scrolls < s.opts.MaxScrolls && !s.goalMet(); scrolls++ {
		posts, err := s.driver.VisiblePosts()
		if err != nil {
			log.Printf("⚠️ Could not list posts: %v", err)
			posts = nil
		}
		log.Printf("Found %d potential post containers on screen.", len(posts))

		newPosts := 0
		for _, post := range posts {
			if s.goalMet() {
				break
			}
			if s.processPost(ctx, post) {
				newPosts++
			}
		}

		if s.goalMet() {
			break
		}

		log.Printf("Scroll %d/%d. Scrolling down...", scrolls+1, s.opts.MaxScrolls)
		if err := s.driver.Scroll(); err != nil {
			log.Printf("⚠️ Scroll failed: %v", err)
		}
		s.opts.Pause()

		extent, err := s.driver.PageExtent()
		if err != nil {
			continue
		}
		if extent == lastExtent && newPosts == 0 {
			log.Println("Scrolled, but no new posts were loaded. Reached the end of results for this query.")
			break
		}
		lastExtent = extent
	}
}

// processPost handles one rendered post and reports whether it was new in this
// run. Marking the link seen happens before any extraction or classification,
// so every link gets at most one attempt no matter what fails afterwards.
func (s *Scanner) processPost(ctx context.Context, post scraper.PostHandle) bool {
	link := post.Link()
	if link == "" {
		log.Println("⚠️ Found a post-like container without a stable id. Skipping.")
		return false
	}
	if s.seen.Contains(link) {
		return false
	}
	if s.processed != nil && s.processed.IsProcessed(link) {
		s.seen.Add(link)
		return false
	}

	s.seen.Add(link)
	log.Printf("Processing new post: %s", link)

	post.Expand()

	text := post.Text()
	author := post.Author()
	if author == "" {
		log.Printf("⚠️ Could not find author for post %s.", link)
		author = scraper.Unknown
	}

	if text == "" {
		log.Printf("Skipping post (%s) due to empty text.", link)
		return true
	}

	if s.processed != nil {
		s.processed.Mark(link)
	}

	if s.opts.Prefilter != nil && !s.opts.Prefilter(text) {
		log.Printf("Post does not match lead keywords, skipping model call: %s", link)
		s.opts.Pause()
		return true
	}

	verdict, err := s.classifier.Classify(ctx, text)
	if err != nil {
		log.Printf("⚠️ LLM qualification failed: %v", err)
		verdict = &ai.Verdict{IsLead: false, Reason: "classifier error"}
	}

	if verdict.IsLead {
		s.leadsFound++
		log.Printf("[LEAD FOUND!] (%d/%d) Author: %s, Reason: %s", s.leadsFound, s.opts.GoalCount, author, verdict.Reason)
		lead := scraper.Lead{Link: link, Author: author, Reason: verdict.Reason, Text: text}
		if err := s.store.Append(lead); err != nil {
			log.Printf("⚠️ Could not save lead %s: %v", link, err)
		}
		if s.opts.OnLead != nil {
			s.opts.OnLead(lead, s.leadsFound, s.opts.GoalCount)
		}
	} else {
		log.Printf("Post is not a lead. Reason: %s", verdict.Reason)
	}

	s.opts.Pause()
	return true
}
