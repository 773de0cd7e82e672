// Package tabular parses the loosely-structured holdings export into typed
// records. Rows map positional column keys (Column1..Column35) to scalar
// values; column roles are fixed by convention of the source workbook.
package tabular

// Row is a single source row. Values are the shapes produced by JSON
// decoding: float64, string, or nil/absent.
type Row map[string]any

// Column roles in the holdings export.
const (
	colIndex         = "Column1"
	colName          = "Column2"
	colPurchasePrice = "Column3"
	colQuantity      = "Column4"
	colExchangeCode  = "Column7"
	colFallbackCmp   = "Column8"
	colFallbackPE    = "Column13"
	colFallbackEPS   = "Column14"
	colStatus        = "Column35"
)

// str extracts a string-typed cell. Returns false for missing or
// non-string values.
func (r Row) str(col string) (string, bool) {
	v, ok := r[col]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// num extracts a numeric cell. Returns false for missing or
// non-numeric values.
func (r Row) num(col string) (float64, bool) {
	v, ok := r[col]
	if !ok || v == nil {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}
