package browser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Locator addresses an element by CSS selector, optional contained text and
// optional index among the matches
type Locator struct {
	CSS     string
	HasText string
	// Nth picks one match when Indexed is set; negative values count from the end
	Nth     int
	Indexed bool
}

// CSS returns a locator for every element matching selector
func CSS(selector string) Locator {
	return Locator{CSS: selector}
}

// WithText narrows the locator to elements whose text contains text
func (l Locator) WithText(text string) Locator {
	l.HasText = text
	return l
}

// At picks the n-th match; -1 is the last one
func (l Locator) At(n int) Locator {
	l.Nth = n
	l.Indexed = true
	return l
}

// First picks the first match
func (l Locator) First() Locator {
	return l.At(0)
}

// Last picks the last match
func (l Locator) Last() Locator {
	return l.At(-1)
}

func (l Locator) String() string {
	var b strings.Builder
	b.WriteString(l.CSS)
	if l.HasText != "" {
		fmt.Fprintf(&b, " :has-text(%q)", l.HasText)
	}
	if l.Indexed {
		fmt.Fprintf(&b, " >> nth=%d", l.Nth)
	}
	return b.String()
}

// resolveIndex maps a possibly negative index onto count matches
func resolveIndex(n, count int) (int, error) {
	i := n
	if i < 0 {
		i = count + i
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %d out of range for %d matches", n, count)
	}
	return i, nil
}

// matchJS returns a JavaScript expression evaluating to the array of elements
// matching l, ignoring the index
func (l Locator) matchJS() string {
	text := jsString(l.HasText)
	return fmt.Sprintf(
		"Array.from(document.querySelectorAll(%s)).filter(e => %s === '' || (e.textContent || '').includes(%s))",
		jsString(l.CSS), text, text)
}

// jsString quotes s as a JavaScript string literal
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// elementJS wraps body in a function that receives the located element as el.
// The function returns missing when no element is found.
func (l Locator) elementJS(body, missing string) string {
	index := 0
	if l.Indexed {
		index = l.Nth
	}
	return fmt.Sprintf(`(() => {
  const els = %s;
  const i = %d < 0 ? els.length + %d : %d;
  const el = els[i];
  if (!el) { return %s; }
  %s
})()`, l.matchJS(), index, index, index, missing, body)
}

// countJS returns a JavaScript expression counting the matches of l
func (l Locator) countJS() string {
	return l.matchJS() + ".length"
}
