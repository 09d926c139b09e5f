package linkedin

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"go-leadscout-automation/internal/browser"
)

const (
	postTextSelector = `div.update-components-text span[dir="ltr"]`
	seeMoreSelector  = "button.feed-shared-inline-show-more-text__see-more-less-toggle"
	authorSelector   = `span.update-components-actor__title span[aria-hidden="true"]`

	// Best-effort field reads fail fast so one broken post cannot stall a scan.
	fieldReadTimeoutMs = 2000
)

// post wraps one rendered feed update. The data-urn attribute is its stable
// identity; everything else is optional.
type post struct {
	root playwright.Locator
}

// Link derives the canonical permalink from the container's data-urn, or ""
// when the container carries none.
func (p *post) Link() string {
	urn, err := p.root.GetAttribute("data-urn")
	if err != nil || urn == "" {
		return ""
	}
	return fmt.Sprintf("https://www.linkedin.com/feed/update/%s/", urn)
}

// Expand clicks the see-more toggle when present so the full text renders.
func (p *post) Expand() {
	seeMore := p.root.Locator(seeMoreSelector).First()
	if visible, _ := seeMore.IsVisible(); !visible {
		return
	}
	if err := seeMore.Click(playwright.LocatorClickOptions{
		Force:   playwright.Bool(true),
		Timeout: playwright.Float(fieldReadTimeoutMs),
	}); err == nil {
		browser.RandomDelay(500, 1000)
	}
}

func (p *post) Text() string {
	el := p.root.Locator(postTextSelector).First()
	if count, _ := el.Count(); count == 0 {
		return ""
	}
	text, err := el.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(fieldReadTimeoutMs),
	})
	if err != nil {
		return ""
	}
	// Collapse newlines so one post stays one CSV row worth of text.
	return strings.Join(strings.Fields(text), " ")
}

func (p *post) Author() string {
	el := p.root.Locator(authorSelector).First()
	if count, _ := el.Count(); count == 0 {
		return ""
	}
	name, err := el.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(fieldReadTimeoutMs),
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}
