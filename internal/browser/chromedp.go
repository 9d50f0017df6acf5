package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/advantage-qa/aos-e2e/internal/config"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	networkQuietPeriod = 500 * time.Millisecond
	pollInterval       = 100 * time.Millisecond
)

// elementState is what the element scripts report back
type elementState struct {
	Found   bool    `json:"found"`
	Visible bool    `json:"visible"`
	OK      bool    `json:"ok"`
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

const visibilityJS = `const style = getComputedStyle(el);
  const rect = el.getBoundingClientRect();
  const visible = rect.width > 0 && rect.height > 0 && style.visibility !== 'hidden' && style.display !== 'none';`

const notFoundJS = `{found: false}`

// ChromedpBrowser drives Chrome over the DevTools protocol
type ChromedpBrowser struct {
	browserCtx context.Context
	cancel     context.CancelFunc
	cfg        *config.BrowserConfig
}

// LaunchChromedp starts a local Chrome
func LaunchChromedp(cfg *config.BrowserConfig) (*ChromedpBrowser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1366, 900),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	return &ChromedpBrowser{
		browserCtx: browserCtx,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
		cfg: cfg,
	}, nil
}

// NewPage opens a tab with network tracking enabled
func (b *ChromedpBrowser) NewPage() (Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(b.browserCtx)

	tracker := newNetworkTracker(time.Now)
	chromedp.ListenTarget(tabCtx, tracker.handle)

	if err := chromedp.Run(tabCtx, network.Enable()); err != nil {
		tabCancel()
		return nil, fmt.Errorf("failed to enable network events: %w", err)
	}

	return &ChromedpPage{
		ctx:     tabCtx,
		cancel:  tabCancel,
		baseURL: b.cfg.BaseURL,
		timeout: b.cfg.Timeout,
		network: tracker,
	}, nil
}

// Close stops Chrome
func (b *ChromedpBrowser) Close() error {
	b.cancel()
	return nil
}

var (
	_ Browser = (*ChromedpBrowser)(nil)
	_ Page    = (*ChromedpPage)(nil)
)

// ChromedpPage implements Page on a chromedp tab
type ChromedpPage struct {
	ctx     context.Context
	cancel  context.CancelFunc
	baseURL string
	timeout time.Duration
	network *networkTracker
}

func (p *ChromedpPage) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (p *ChromedpPage) state(l Locator, body string) (elementState, error) {
	var st elementState
	err := p.run(p.timeout, chromedp.Evaluate(l.elementJS(body, notFoundJS), &st))
	return st, err
}

// found runs body on the element and fails when nothing matches
func (p *ChromedpPage) found(l Locator, body string) (elementState, error) {
	st, err := p.state(l, body)
	if err != nil {
		return st, err
	}
	if !st.Found {
		return st, fmt.Errorf("%w: %s", ErrElementNotFound, l)
	}
	return st, nil
}

func (p *ChromedpPage) Navigate(path string) error {
	p.network.reset()
	if err := p.run(p.timeout, chromedp.Navigate(resolveURL(p.baseURL, path))); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", path, err)
	}
	if err := poll(p.timeout, pollInterval, func() (bool, error) {
		return p.network.idleFor(networkQuietPeriod), nil
	}); err != nil {
		return fmt.Errorf("network did not go idle after navigating to %s: %w", path, err)
	}
	return nil
}

// center scrolls the element into view and returns its visible center
func (p *ChromedpPage) center(l Locator) (elementState, error) {
	if err := p.WaitVisible(l, p.timeout); err != nil {
		return elementState{}, err
	}
	return p.found(l, `el.scrollIntoView({block: 'center', inline: 'center'});
  `+visibilityJS+`
  return {found: true, visible: visible, x: rect.left + rect.width / 2, y: rect.top + rect.height / 2};`)
}

func (p *ChromedpPage) Click(l Locator) error {
	st, err := p.center(l)
	if err != nil {
		return fmt.Errorf("failed to click %s: %w", l, err)
	}
	if err := p.run(p.timeout, chromedp.MouseClickXY(st.X, st.Y)); err != nil {
		return fmt.Errorf("failed to click %s: %w", l, err)
	}
	return nil
}

func (p *ChromedpPage) ForceClick(l Locator) error {
	if _, err := p.found(l, `el.click(); return {found: true};`); err != nil {
		return fmt.Errorf("failed to click %s: %w", l, err)
	}
	return nil
}

func (p *ChromedpPage) Fill(l Locator, value string) error {
	if err := p.WaitVisible(l, p.timeout); err != nil {
		return fmt.Errorf("failed to fill %s: %w", l, err)
	}
	if _, err := p.found(l, `el.focus();
  el.value = '';
  el.dispatchEvent(new Event('input', {bubbles: true}));
  return {found: true};`); err != nil {
		return fmt.Errorf("failed to fill %s: %w", l, err)
	}
	if err := p.run(p.timeout, input.InsertText(value)); err != nil {
		return fmt.Errorf("failed to fill %s: %w", l, err)
	}
	if _, err := p.found(l, `el.dispatchEvent(new Event('change', {bubbles: true})); return {found: true};`); err != nil {
		return fmt.Errorf("failed to fill %s: %w", l, err)
	}
	return nil
}

func (p *ChromedpPage) TextContent(l Locator) (string, error) {
	st, err := p.found(l, `return {found: true, text: el.textContent || ''};`)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", l, err)
	}
	return st.Text, nil
}

func (p *ChromedpPage) InnerText(l Locator) (string, error) {
	st, err := p.found(l, `return {found: true, text: el.innerText || ''};`)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", l, err)
	}
	return st.Text, nil
}

func (p *ChromedpPage) IsVisible(l Locator) (bool, error) {
	st, err := p.state(l, visibilityJS+`
  return {found: true, visible: visible};`)
	if err != nil {
		return false, err
	}
	return st.Found && st.Visible, nil
}

func (p *ChromedpPage) Count(l Locator) (int, error) {
	var n int
	if err := p.run(p.timeout, chromedp.Evaluate(l.countJS(), &n)); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", l, err)
	}
	return n, nil
}

func (p *ChromedpPage) Hover(l Locator) error {
	st, err := p.center(l)
	if err != nil {
		return fmt.Errorf("failed to hover %s: %w", l, err)
	}
	if err := p.run(p.timeout, chromedp.MouseEvent(input.MouseMoved, st.X, st.Y)); err != nil {
		return fmt.Errorf("failed to hover %s: %w", l, err)
	}
	return nil
}

func (p *ChromedpPage) SelectOptionByLabel(l Locator, label string) error {
	if err := p.WaitVisible(l, p.timeout); err != nil {
		return fmt.Errorf("failed to select %q in %s: %w", label, l, err)
	}
	st, err := p.found(l, selectByLabelJS(label))
	if err != nil {
		return fmt.Errorf("failed to select %q in %s: %w", label, l, err)
	}
	if !st.OK {
		return fmt.Errorf("%s has no option labelled %q", l, label)
	}
	return nil
}

func (p *ChromedpPage) WaitVisible(l Locator, timeout time.Duration) error {
	if err := poll(timeout, pollInterval, func() (bool, error) {
		return p.IsVisible(l)
	}); err != nil {
		return fmt.Errorf("%s did not become visible: %w", l, err)
	}
	return nil
}

func (p *ChromedpPage) WaitHidden(l Locator, timeout time.Duration) error {
	if err := poll(timeout, pollInterval, func() (bool, error) {
		visible, err := p.IsVisible(l)
		return !visible, err
	}); err != nil {
		return fmt.Errorf("%s did not become hidden: %w", l, err)
	}
	return nil
}

func (p *ChromedpPage) WaitForURL(pattern *regexp.Regexp, timeout time.Duration) error {
	if err := poll(timeout, pollInterval, func() (bool, error) {
		return pattern.MatchString(p.URL()), nil
	}); err != nil {
		return fmt.Errorf("url did not match %s: %w", pattern, err)
	}
	return nil
}

func (p *ChromedpPage) URL() string {
	var location string
	if err := p.run(p.timeout, chromedp.Location(&location)); err != nil {
		return ""
	}
	return location
}

func (p *ChromedpPage) Close() error {
	p.cancel()
	return nil
}

// selectByLabelJS selects the option whose visible label equals label
func selectByLabelJS(label string) string {
	return fmt.Sprintf(`const wanted = %s;
  const option = Array.from(el.options || []).find(o => (o.label || o.textContent || '').trim() === wanted);
  if (!option) { return {found: true, ok: false}; }
  el.value = option.value;
  option.selected = true;
  el.dispatchEvent(new Event('input', {bubbles: true}));
  el.dispatchEvent(new Event('change', {bubbles: true}));
  return {found: true, ok: true};`, jsString(label))
}

var errPollTimeout = errors.New("timed out")

// poll evaluates cond every interval until it holds or timeout elapses.
// Errors from cond are retried; the last one is reported on timeout.
func poll(timeout, interval time.Duration, cond func() (bool, error)) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		ok, err := cond()
		if err == nil && ok {
			return nil
		}
		lastErr = err
		if time.Now().After(deadline) {
			if lastErr != nil {
				return fmt.Errorf("%w after %s: %w", errPollTimeout, timeout, lastErr)
			}
			return fmt.Errorf("%w after %s", errPollTimeout, timeout)
		}
		time.Sleep(interval)
	}
}

// networkTracker counts in-flight requests of a tab
type networkTracker struct {
	mu       sync.Mutex
	inflight map[network.RequestID]struct{}
	last     time.Time
	now      func() time.Time
}

func newNetworkTracker(now func() time.Time) *networkTracker {
	return &networkTracker{
		inflight: make(map[network.RequestID]struct{}),
		last:     now(),
		now:      now,
	}
}

func (t *networkTracker) handle(ev interface{}) {
	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		t.started(e.RequestID)
	case *network.EventLoadingFinished:
		t.finished(e.RequestID)
	case *network.EventLoadingFailed:
		t.finished(e.RequestID)
	}
}

func (t *networkTracker) started(id network.RequestID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight[id] = struct{}{}
	t.last = t.now()
}

func (t *networkTracker) finished(id network.RequestID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.inflight[id]; !ok {
		return
	}
	delete(t.inflight, id)
	t.last = t.now()
}

// idleFor reports whether no request has been in flight for quiet
func (t *networkTracker) idleFor(quiet time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight) == 0 && t.now().Sub(t.last) >= quiet
}

// reset forgets requests of the previous document
func (t *networkTracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight = make(map[network.RequestID]struct{})
	t.last = t.now()
}
