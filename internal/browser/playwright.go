package browser

import (
	"fmt"
	"regexp"
	"time"

	"github.com/advantage-qa/aos-e2e/internal/config"
	"github.com/playwright-community/playwright-go"
)

// PlaywrightBrowser runs Chromium through playwright-go
type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.BrowserConfig
}

// LaunchPlaywright starts playwright and a Chromium instance. Browsers must be
// installed beforehand with the playwright CLI.
func LaunchPlaywright(cfg *config.BrowserConfig) (*PlaywrightBrowser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	return &PlaywrightBrowser{pw: pw, browser: b, cfg: cfg}, nil
}

// NewPage opens a page with the configured default timeout
func (b *PlaywrightBrowser) NewPage() (Page, error) {
	page, err := b.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultTimeout(b.cfg.TimeoutMillis())
	return &PlaywrightPage{page: page, baseURL: b.cfg.BaseURL}, nil
}

// Close shuts the browser and the playwright driver down
func (b *PlaywrightBrowser) Close() error {
	if err := b.browser.Close(); err != nil {
		b.pw.Stop()
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return b.pw.Stop()
}

var (
	_ Browser = (*PlaywrightBrowser)(nil)
	_ Page    = (*PlaywrightPage)(nil)
)

// PlaywrightPage implements Page on a playwright page
type PlaywrightPage struct {
	page    playwright.Page
	baseURL string
}

func (p *PlaywrightPage) locator(l Locator) playwright.Locator {
	var loc playwright.Locator
	if l.HasText != "" {
		loc = p.page.Locator(l.CSS, playwright.PageLocatorOptions{HasText: l.HasText})
	} else {
		loc = p.page.Locator(l.CSS)
	}
	if !l.Indexed {
		return loc
	}
	if l.Nth == -1 {
		return loc.Last()
	}
	if l.Nth < 0 {
		count, err := loc.Count()
		if err == nil {
			if i, err := resolveIndex(l.Nth, count); err == nil {
				return loc.Nth(i)
			}
		}
	}
	return loc.Nth(l.Nth)
}

func (p *PlaywrightPage) Navigate(path string) error {
	if _, err := p.page.Goto(resolveURL(p.baseURL, path), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", path, err)
	}
	return nil
}

func (p *PlaywrightPage) Click(l Locator) error {
	if err := p.locator(l).Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", l, err)
	}
	return nil
}

func (p *PlaywrightPage) ForceClick(l Locator) error {
	if err := p.locator(l).Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)}); err != nil {
		return fmt.Errorf("failed to click %s: %w", l, err)
	}
	return nil
}

func (p *PlaywrightPage) Fill(l Locator, value string) error {
	if err := p.locator(l).Fill(value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", l, err)
	}
	return nil
}

func (p *PlaywrightPage) TextContent(l Locator) (string, error) {
	text, err := p.locator(l).TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", l, err)
	}
	return text, nil
}

func (p *PlaywrightPage) InnerText(l Locator) (string, error) {
	text, err := p.locator(l).InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", l, err)
	}
	return text, nil
}

func (p *PlaywrightPage) IsVisible(l Locator) (bool, error) {
	return p.locator(l).IsVisible()
}

func (p *PlaywrightPage) Count(l Locator) (int, error) {
	return p.locator(l).Count()
}

func (p *PlaywrightPage) Hover(l Locator) error {
	if err := p.locator(l).Hover(); err != nil {
		return fmt.Errorf("failed to hover %s: %w", l, err)
	}
	return nil
}

func (p *PlaywrightPage) SelectOptionByLabel(l Locator, label string) error {
	labels := []string{label}
	if _, err := p.locator(l).SelectOption(playwright.SelectOptionValues{Labels: &labels}); err != nil {
		return fmt.Errorf("failed to select %q in %s: %w", label, l, err)
	}
	return nil
}

func (p *PlaywrightPage) WaitVisible(l Locator, timeout time.Duration) error {
	return p.waitFor(l, playwright.WaitForSelectorStateVisible, timeout)
}

func (p *PlaywrightPage) WaitHidden(l Locator, timeout time.Duration) error {
	return p.waitFor(l, playwright.WaitForSelectorStateHidden, timeout)
}

func (p *PlaywrightPage) waitFor(l Locator, state *playwright.WaitForSelectorState, timeout time.Duration) error {
	if err := p.locator(l).WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("%s did not become %s: %w", l, *state, err)
	}
	return nil
}

func (p *PlaywrightPage) WaitForURL(pattern *regexp.Regexp, timeout time.Duration) error {
	if err := p.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("url did not match %s: %w", pattern, err)
	}
	return nil
}

func (p *PlaywrightPage) URL() string {
	return p.page.URL()
}

func (p *PlaywrightPage) Close() error {
	return p.page.Close()
}
