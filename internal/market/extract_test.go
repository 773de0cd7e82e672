package market

import "testing"

func TestLabelExtractorPERatio(t *testing.T) {
	e := LabelExtractor{}

	cases := []struct {
		name    string
		payload string
		want    *float64
	}{
		{"plain", `P/E ratio</div><div>19.40</div>`, ptr(19.4)},
		{"case insensitive", `p/e RATIO: 22.1`, ptr(22.1)},
		{"thousands separator", `P/E ratio value 1,204.5`, ptr(1204.5)},
		{"window exceeded", "P/E ratio" + pad(100) + "19.4", nil},
		{"label absent", `<div>Dividend yield</div><div>1.2</div>`, nil},
	}
	for _, c := range cases {
		got := e.PERatio(c.payload)
		switch {
		case c.want == nil && got != nil:
			t.Errorf("%s: got %v, want nil", c.name, *got)
		case c.want != nil && (got == nil || *got != *c.want):
			t.Errorf("%s: got %v, want %v", c.name, got, *c.want)
		}
	}
}

func TestLabelExtractorEarnings(t *testing.T) {
	e := LabelExtractor{}

	if got := e.EarningsPerShare(`Earnings per share</div><div>82.44 </div>`); got == nil || *got != "82.44" {
		t.Errorf("earnings = %v, want 82.44", got)
	}
	// Falls through to the shorter EPS label.
	if got := e.EarningsPerShare(`EPS: 12.5 per share`); got == nil || *got != "12.5" {
		t.Errorf("EPS = %v, want 12.5", got)
	}
}

func TestLabelExtractorEarningsRejectsStylingTokens(t *testing.T) {
	e := LabelExtractor{}

	// A truncated value followed by markup must not validate.
	if got := e.EarningsPerShare(`Earnings per share<span>12.5</span>`); got != nil {
		t.Errorf("earnings = %q, want nil for markup-adjacent value", *got)
	}
	if got := e.EarningsPerShare(`Earnings per share none reported`); got != nil {
		t.Errorf("earnings = %q, want nil when no number follows", *got)
	}
}

func TestDOMExtractor(t *testing.T) {
	e := DOMExtractor{}

	pe := e.PERatio(quotePage)
	if pe == nil || *pe != 19.4 {
		t.Errorf("DOM peRatio = %v, want 19.4", pe)
	}
	eps := e.EarningsPerShare(quotePage)
	if eps == nil || *eps != "82.44" {
		t.Errorf("DOM earnings = %v, want 82.44", eps)
	}

	if got := e.PERatio(`<html><body><p>nothing here</p></body></html>`); got != nil {
		t.Errorf("DOM peRatio on empty page = %v, want nil", got)
	}
}

func TestExtractorStrategiesAgree(t *testing.T) {
	label := LabelExtractor{}
	dom := DOMExtractor{}

	lp, dp := label.PERatio(quotePage), dom.PERatio(quotePage)
	if lp == nil || dp == nil || *lp != *dp {
		t.Errorf("strategies disagree on P/E: label=%v dom=%v", lp, dp)
	}
	le, de := label.EarningsPerShare(quotePage), dom.EarningsPerShare(quotePage)
	if le == nil || de == nil || *le != *de {
		t.Errorf("strategies disagree on earnings: label=%v dom=%v", le, de)
	}
}

func TestToNumber(t *testing.T) {
	if got := toNumber("1,234.56"); got == nil || *got != 1234.56 {
		t.Errorf("toNumber = %v, want 1234.56", got)
	}
	if got := toNumber("  "); got != nil {
		t.Errorf("toNumber blank = %v, want nil", got)
	}
	if got := toNumber("abc"); got != nil {
		t.Errorf("toNumber non-numeric = %v, want nil", got)
	}
}

func ptr(v float64) *float64 { return &v }

func pad(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
