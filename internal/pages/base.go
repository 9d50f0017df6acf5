// Package pages holds the page objects of the Advantage Online Shopping site
package pages

import (
	"fmt"
	"time"

	"github.com/advantage-qa/aos-e2e/internal/browser"
)

// Waits used by the page objects
const (
	defaultWait     = 10 * time.Second
	popupWait       = 5 * time.Second
	userMenuSettle  = 2 * time.Second
	loginSettleWait = 10 * time.Second
)

// sleep is replaced in tests
var sleep = time.Sleep

func label(text string) browser.Locator {
	return browser.CSS("label").WithText(text)
}

// expectVisible fails when l does not become visible within timeout
func expectVisible(page browser.Page, l browser.Locator, timeout time.Duration) error {
	if err := page.WaitVisible(l, timeout); err != nil {
		return fmt.Errorf("expected %s to be visible: %w", l, err)
	}
	return nil
}

type formField struct {
	locator browser.Locator
	value   string
}

func fillAll(page browser.Page, fields []formField) error {
	for _, f := range fields {
		if err := page.Fill(f.locator, f.value); err != nil {
			return err
		}
	}
	return nil
}
