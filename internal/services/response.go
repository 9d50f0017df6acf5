package services

import (
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"
)

var (
	accountIDPattern = regexp.MustCompile(`<accountId>(\d+)</accountId>`)
	errNotXML        = errors.New("body is not an XML document")
)

// responseVerdict is what a 2xx body says about an account creation
type responseVerdict struct {
	Fault     bool
	AccountID string
}

// interpretResponse decides whether a 2xx body reports a fault and extracts
// the account id. Well-formed XML is inspected element by element: a Fault
// element, any element named like an error, or <success>false</success> is a
// fault. Malformed bodies fall back to the regex id match. The case-sensitive
// substring scan for "fault" and "error" always applies on top, so a body that
// merely mentions "error" in a value is still treated as a failure.
func interpretResponse(body string) responseVerdict {
	var v responseVerdict

	scan, err := scanXML(body)
	if err == nil {
		v = scan
	} else if m := accountIDPattern.FindStringSubmatch(body); m != nil {
		v.AccountID = m[1]
	}

	if strings.Contains(body, "fault") || strings.Contains(body, "error") {
		v.Fault = true
	}
	return v
}

func scanXML(body string) (responseVerdict, error) {
	var (
		v          responseVerdict
		text       strings.Builder
		sawElement bool
	)

	dec := xml.NewDecoder(strings.NewReader(body))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return responseVerdict{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawElement = true
			text.Reset()
			if isFaultElement(t.Name.Local) {
				v.Fault = true
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			value := text.String()
			switch t.Name.Local {
			case "accountId":
				if v.AccountID == "" && isDigits(value) {
					v.AccountID = value
				}
			case "success":
				if strings.EqualFold(strings.TrimSpace(value), "false") {
					v.Fault = true
				}
			}
			text.Reset()
		}
	}

	if !sawElement {
		return responseVerdict{}, errNotXML
	}
	return v, nil
}

func isFaultElement(local string) bool {
	return strings.EqualFold(local, "Fault") || strings.Contains(strings.ToLower(local), "error")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// truncateRunes returns at most n runes of s
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
