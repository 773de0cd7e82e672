package tabular

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/niveshlab/folio/internal/domain"
)

// Kind tags the result of classifying a single row.
type Kind int

const (
	// KindSkip marks blank separators, subtotals, sold positions and any
	// row that does not form a complete stock entry. Skipped rows are not
	// errors and produce no diagnostics.
	KindSkip Kind = iota
	// KindSectorMarker marks a row that declares a new grouping context.
	KindSectorMarker
	// KindStock marks a retained position row.
	KindStock
)

// Classification is the tagged result of Classify. Sector is set for
// KindSectorMarker, Holding for KindStock (with Sector left empty; the
// fold in Parse fills it in).
type Classification struct {
	Kind    Kind
	Sector  string
	Holding domain.Holding
}

// Sector label literals that appear without the "Sector" token.
// "Consumer " carries a trailing space in the source workbook.
var literalSectors = []string{"Power", "Consumer ", "Others"}

// Classify classifies one row in isolation. It is a pure function; the
// parser threads the current sector context through a separate fold.
func Classify(row Row) Classification {
	name, nameIsStr := row.str(colName)

	// Sector markers are recognized before the stock-row shape check,
	// regardless of what the index column holds.
	if nameIsStr && (strings.Contains(name, "Sector") || lo.Contains(literalSectors, name)) {
		return Classification{Kind: KindSectorMarker, Sector: strings.TrimSpace(name)}
	}

	// Stock rows need a numeric index and a non-empty name.
	if _, ok := row.num(colIndex); !ok {
		return Classification{Kind: KindSkip}
	}
	if !nameIsStr || strings.TrimSpace(name) == "" {
		return Classification{Kind: KindSkip}
	}

	// Sold or exited positions are dropped even when otherwise well-formed.
	if status, ok := row.str(colStatus); ok {
		folded := strings.ToLower(status)
		if strings.Contains(folded, "exit") || folded == "sold" {
			return Classification{Kind: KindSkip}
		}
	}

	price, ok := row.num(colPurchasePrice)
	if !ok || price <= 0 {
		return Classification{Kind: KindSkip}
	}
	quantity, ok := row.num(colQuantity)
	if !ok || quantity <= 0 {
		return Classification{Kind: KindSkip}
	}

	// The exchange code column is classified by type, not value: a string
	// is an NSE ticker, a number is a BSE scrip code.
	var symbol, exchange string
	if code, ok := row.str(colExchangeCode); ok && code != "" {
		symbol = strings.ToUpper(code)
		exchange = domain.ExchangeNSE
	} else if code, ok := row.num(colExchangeCode); ok && code != 0 {
		symbol = strconv.FormatFloat(code, 'f', -1, 64)
		exchange = domain.ExchangeBSE
	} else {
		return Classification{Kind: KindSkip}
	}

	h := domain.Holding{
		Symbol:        symbol,
		Name:          strings.TrimSpace(name),
		PurchasePrice: price,
		Quantity:      quantity,
		Exchange:      exchange,
	}

	// Fallback metrics are captured opportunistically when typed as expected.
	if cmp, ok := row.num(colFallbackCmp); ok {
		h.FallbackCmp = &cmp
	}
	if pe, ok := row.num(colFallbackPE); ok {
		h.FallbackPeRatio = &pe
	}
	if eps, ok := row.num(colFallbackEPS); ok {
		s := strconv.FormatFloat(eps, 'f', -1, 64)
		h.FallbackEarnings = &s
	} else if eps, ok := row.str(colFallbackEPS); ok {
		h.FallbackEarnings = &eps
	}

	return Classification{Kind: KindStock, Holding: h}
}
