package market

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MetricExtractor pulls named metrics out of an unstructured payload.
// Strategies are swappable so a structured-data source can replace the
// scraped one without touching the resolver's merge logic.
type MetricExtractor interface {
	PERatio(payload string) *float64
	EarningsPerShare(payload string) *string
}

const (
	labelPERatio  = "P/E ratio"
	labelEarnings = "Earnings per share"
	labelEPS      = "EPS"
)

// LabelExtractor scans for a label substring and takes the first value
// matching a numeric pattern within an 80-character window after it. The
// earnings pattern is stricter: the match must be a clean decimal under 20
// characters, rejecting styling tokens and runaway matches.
type LabelExtractor struct{}

var (
	peRatioPattern  = labelNumberPattern(labelPERatio)
	earningsPattern = labelTextPattern(labelEarnings)
	epsPattern      = labelTextPattern(labelEPS)
	cleanDecimal    = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

func labelNumberPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `[^0-9]{0,80}([0-9.,-]+)`)
}

func labelTextPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `[^0-9]*?([0-9]+(?:\.[0-9]+)?(?:[^a-zA-Z<]|$))`)
}

func (LabelExtractor) PERatio(payload string) *float64 {
	m := peRatioPattern.FindStringSubmatch(payload)
	if m == nil {
		return nil
	}
	return toNumber(m[1])
}

func (LabelExtractor) EarningsPerShare(payload string) *string {
	for _, pattern := range []*regexp.Regexp{earningsPattern, epsPattern} {
		m := pattern.FindStringSubmatch(payload)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if cleanDecimal.MatchString(value) && len(value) < 20 {
			return &value
		}
	}
	return nil
}

// DOMExtractor parses the payload as HTML and reads the value element
// following a label element.
type DOMExtractor struct{}

func (DOMExtractor) PERatio(payload string) *float64 {
	if v := domValueForLabel(payload, labelPERatio); v != "" {
		return toNumber(v)
	}
	return nil
}

func (DOMExtractor) EarningsPerShare(payload string) *string {
	for _, label := range []string{labelEarnings, labelEPS} {
		value := domValueForLabel(payload, label)
		if cleanDecimal.MatchString(value) && len(value) < 20 {
			return &value
		}
	}
	return nil
}

// domValueForLabel finds the leaf element whose text equals the label and
// returns the text of the next value-bearing sibling, walking up one level
// when the label sits in a wrapper of its own.
func domValueForLabel(payload, label string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(payload))
	if err != nil {
		return ""
	}

	var value string
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 || !strings.EqualFold(strings.TrimSpace(s.Text()), label) {
			return true
		}
		for node := s; node.Length() > 0 && value == ""; node = node.Parent() {
			if text := strings.TrimSpace(node.Next().Text()); text != "" {
				value = text
			}
		}
		return value == ""
	})
	return value
}

// toNumber parses a scraped numeric string, tolerating thousands
// separators. Returns nil for anything non-finite.
func toNumber(raw string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &n
}
