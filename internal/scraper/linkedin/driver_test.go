package linkedin

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-leadscout-automation/internal/config"
)

// helper starts a headless browser; requires installed playwright browsers
func setupPlaywright(t *testing.T) (*playwright.Playwright, playwright.Browser, playwright.Page) {
	t.Helper()
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("could not launch playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("could not launch browser: %v", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	return pw, browser, page
}

const mockResultsHTML = `<html><body>
<div class="feed-shared-update-v2" data-urn="urn:li:activity:111">
  <span class="update-components-actor__title"><span aria-hidden="true">Ann Example</span></span>
  <div class="update-components-text"><span dir="ltr">Need a VA ASAP, anyone have recs?</span></div>
</div>
<div class="feed-shared-update-v2" data-urn="urn:li:activity:222">
  <div class="update-components-text"><span dir="ltr">Line one
line two</span></div>
</div>
<div class="feed-shared-update-v2">
  <div class="update-components-text"><span dir="ltr">No urn on this one</span></div>
</div>
</body></html>`

func TestDriverVisiblePosts(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pw, b, page := setupPlaywright(t)
	defer pw.Stop()
	defer b.Close()

	page.Route("**/*", func(route playwright.Route) {
		route.Fulfill(playwright.RouteFulfillOptions{
			Status: playwright.Int(200),
			Body:   mockResultsHTML,
		})
	})

	_, err := page.Goto("https://www.linkedin.com/search/results/content/")
	require.NoError(t, err)

	cfg := &config.Config{WebdriverTimeoutSecs: 5}
	driver := NewDriver(page, cfg)

	posts, err := driver.VisiblePosts()
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "https://www.linkedin.com/feed/update/urn:li:activity:111/", posts[0].Link())
	assert.Equal(t, "Ann Example", posts[0].Author())
	assert.Equal(t, "Need a VA ASAP, anyone have recs?", posts[0].Text())

	assert.Equal(t, "https://www.linkedin.com/feed/update/urn:li:activity:222/", posts[1].Link())
	assert.Equal(t, "", posts[1].Author(), "missing author element yields empty string")
	assert.Equal(t, "Line one line two", posts[1].Text(), "newlines are collapsed")

	assert.Equal(t, "", posts[2].Link(), "container without data-urn has no stable id")
}

func TestDriverPageExtent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pw, b, page := setupPlaywright(t)
	defer pw.Stop()
	defer b.Close()

	page.Route("**/*", func(route playwright.Route) {
		route.Fulfill(playwright.RouteFulfillOptions{
			Status: playwright.Int(200),
			Body:   `<html><body style="height:3000px"></body></html>`,
		})
	})
	_, err := page.Goto("https://www.linkedin.com/feed/")
	require.NoError(t, err)

	driver := NewDriver(page, &config.Config{WebdriverTimeoutSecs: 5})

	extent, err := driver.PageExtent()
	require.NoError(t, err)
	assert.Greater(t, extent, 0)
}
