package browser

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay pauses execution for a random time between min and max (milliseconds)
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := time.Duration(rand.Intn(max-min)+min) * time.Millisecond
	time.Sleep(duration)
}

// HumanScroll scrolls down by a random fraction of the viewport, the way a
// person skims a feed, and triggers lazy loading.
func HumanScroll(page playwright.Page) error {
	fraction := 0.7 + rand.Float64()*0.2
	_, err := page.Evaluate(fmt.Sprintf("window.scrollBy(0, window.innerHeight * %.2f)", fraction))
	return err
}

// HumanType fills a field one character at a time with a randomized delay.
func HumanType(loc playwright.Locator, text string) error {
	return loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(float64(rand.Intn(120) + 80)),
	})
}

// MouseJiggle simulates random mouse movements
func MouseJiggle(page playwright.Page) {
	x := float64(rand.Intn(800) + 100)
	y := float64(rand.Intn(600) + 100)

	page.Mouse().Move(x, y)
	RandomDelay(100, 300)
}
