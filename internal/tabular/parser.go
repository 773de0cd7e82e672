package tabular

import "github.com/niveshlab/folio/internal/domain"

// Parse reduces the raw rows to an ordered holding list. The first row is
// the header and is always discarded. Sector context set by a marker row
// persists across any number of skipped rows until the next marker;
// holdings seen before the first marker get the "Unknown" sector.
func Parse(rows []Row) []domain.Holding {
	if len(rows) > 0 {
		rows = rows[1:]
	}

	currentSector := ""
	var holdings []domain.Holding
	for _, row := range rows {
		c := Classify(row)
		switch c.Kind {
		case KindSectorMarker:
			currentSector = c.Sector
		case KindStock:
			h := c.Holding
			h.Sector = currentSector
			if h.Sector == "" {
				h.Sector = domain.SectorUnknown
			}
			holdings = append(holdings, h)
		}
	}

	return holdings
}
