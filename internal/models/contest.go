package models

// PrizeResult is one drawn prize within a contest. Value is the winning
// ticket number as a fixed-width 6-digit numeral string; prizes that were
// not drawn are omitted from the parent record, never zero-filled.
type PrizeResult struct {
	Index int     `json:"index"`
	Value string  `json:"value"`
	Price float64 `json:"price"`
}

// ContestRecord is the canonical form of one lottery draw, built once per
// run from a single spreadsheet row and immutable afterwards.
type ContestRecord struct {
	Contest int           `json:"contest"`
	Date    *string       `json:"date"`
	Results []PrizeResult `json:"results"`
}

// Valid reports whether the record satisfies the dataset invariants: a
// positive contest number and at least one drawn prize.
func (c ContestRecord) Valid() bool {
	return c.Contest > 0 && len(c.Results) > 0
}
