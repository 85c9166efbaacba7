// Package normalizer maps raw spreadsheet rows onto canonical contest
// records, applying the locale-specific parsing the published schema
// requires and dropping rows that fail validation.
package normalizer

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/loteria-results/static-api/internal/decoder"
	"github.com/loteria-results/static-api/internal/models"
)

// Column labels as published in the source spreadsheet. Prize columns
// follow the "{i}º prêmio" / "Valor {i}º prêmio" pattern for i in 1..5.
const (
	colContest = "Extração"
	colDate    = "Data Sorteio"

	maxPrizes = 5
)

// variants returns the label spellings seen across published exports:
// plain, markdown-bold wrapped, and with the masculine ordinal sign
// swapped for the degree sign.
func variants(label string) []string {
	degree := strings.ReplaceAll(label, "º", "°")
	if degree == label {
		return []string{label, "**" + label + "**"}
	}
	return []string{label, "**" + label + "**", degree, "**" + degree + "**"}
}

func lookup(row decoder.Row, label string) (string, bool) {
	for _, v := range variants(label) {
		if s, ok := row.Get(v); ok {
			return s, true
		}
	}
	return "", false
}

// NormalizeRow maps one raw row onto a ContestRecord. ok is false when
// the row fails structural validation (non-positive contest number or no
// drawn prizes) and must be dropped.
func NormalizeRow(row decoder.Row) (models.ContestRecord, bool) {
	rawContest, _ := lookup(row, colContest)
	contest, err := strconv.Atoi(strings.TrimSpace(rawContest))
	if err != nil || contest <= 0 {
		return models.ContestRecord{}, false
	}

	rec := models.ContestRecord{Contest: contest}
	if rawDate, ok := lookup(row, colDate); ok {
		rec.Date = ParseDate(rawDate)
	}

	for i := 1; i <= maxPrizes; i++ {
		value, ok := lookup(row, fmt.Sprintf("%dº prêmio", i))
		if !ok {
			continue
		}
		price, _ := lookup(row, fmt.Sprintf("Valor %dº prêmio", i))
		rec.Results = append(rec.Results, models.PrizeResult{
			Index: i,
			Value: PadNumber(value),
			Price: ParsePrice(price),
		})
	}

	if !rec.Valid() {
		return models.ContestRecord{}, false
	}
	return rec, true
}

// Normalize converts decoded rows into the validated dataset. Rejected
// rows are excluded silently; rejection is never fatal for the run.
func Normalize(rows []decoder.Row) []models.ContestRecord {
	records := make([]models.ContestRecord, 0, len(rows))
	rejected := 0
	for i, row := range rows {
		rec, ok := NormalizeRow(row)
		if !ok {
			rejected++
			slog.Debug("row rejected during normalization", "row", i+1)
			continue
		}
		records = append(records, rec)
	}
	if rejected > 0 {
		slog.Info("rows rejected during normalization", "rejected", rejected, "accepted", len(records))
	}
	return records
}
