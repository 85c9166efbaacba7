package normalizer

import (
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// layouts a native date cell may surface as after decoding, besides the
// DD/MM/YYYY text the CSV exports carry.
var nativeDateLayouts = []string{isoDate, "1-2-06", "1-2-2006", time.RFC3339}

// ParsePrice converts a monetary cell such as "R$ 200.000,00" to its
// numeric amount. The Brazilian format uses '.' for thousands and ',' for
// decimals; when no comma is present the value is taken as a plain number
// so that natively-typed cells survive untouched. Empty or unparseable
// input yields 0.
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseDate converts a draw date cell to ISO YYYY-MM-DD. DD/MM/YYYY text
// is rewritten by splitting on '/' and zero-padding day and month; other
// native-date renderings are tried against known layouts. nil means the
// date is absent or unparseable, which does not invalidate the row.
func ParseDate(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if parts := strings.Split(s, "/"); len(parts) == 3 {
		iso := strings.TrimSpace(parts[2]) + "-" + pad2(parts[1]) + "-" + pad2(parts[0])
		if _, err := time.Parse(isoDate, iso); err != nil {
			return nil
		}
		return &iso
	}

	for _, layout := range nativeDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.Format(isoDate)
			return &iso
		}
	}
	return nil
}

// PadNumber left-pads a winning number to the fixed 6-digit width the
// tickets are printed with.
func PadNumber(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) < 6 {
		s = strings.Repeat("0", 6-len(s)) + s
	}
	return s
}

func pad2(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
