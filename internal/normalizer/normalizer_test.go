package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loteria-results/static-api/internal/decoder"
	"github.com/loteria-results/static-api/internal/models"
)

func TestNormalizeRowFullDraw(t *testing.T) {
	row := decoder.Row{
		"Extração":        "5123",
		"Data Sorteio":    "15/01/2024",
		"1º prêmio":       "5349",
		"Valor 1º prêmio": "R$ 200.000,00",
		"2º prêmio":       "38031",
		"Valor 2º prêmio": "R$ 8.000,00",
	}

	rec, ok := NormalizeRow(row)
	require.True(t, ok)

	assert.Equal(t, 5123, rec.Contest)
	require.NotNil(t, rec.Date)
	assert.Equal(t, "2024-01-15", *rec.Date)
	require.Len(t, rec.Results, 2)
	assert.Equal(t, models.PrizeResult{Index: 1, Value: "005349", Price: 200000}, rec.Results[0])
	assert.Equal(t, models.PrizeResult{Index: 2, Value: "038031", Price: 8000}, rec.Results[1])
}

func TestNormalizeRowRejections(t *testing.T) {
	tests := []struct {
		name string
		row  decoder.Row
	}{
		{"missing contest", decoder.Row{"1º prêmio": "5349"}},
		{"zero contest", decoder.Row{"Extração": "0", "1º prêmio": "5349"}},
		{"negative contest", decoder.Row{"Extração": "-3", "1º prêmio": "5349"}},
		{"non-numeric contest", decoder.Row{"Extração": "abc", "1º prêmio": "5349"}},
		{"no prizes", decoder.Row{"Extração": "5123", "Data Sorteio": "15/01/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := NormalizeRow(tt.row)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeRowMissingDateSurvives(t *testing.T) {
	row := decoder.Row{
		"Extração":        "42",
		"1º prêmio":       "123",
		"Valor 1º prêmio": "R$ 100,00",
	}

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	assert.Nil(t, rec.Date)
	assert.Equal(t, 42, rec.Contest)
}

func TestNormalizeRowColumnVariants(t *testing.T) {
	row := decoder.Row{
		"**Extração**":     "77",
		"**Data Sorteio**": "02/03/2023",
		"1° prêmio":        "9",
		"Valor 1° prêmio":  "R$ 50,00",
	}

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	assert.Equal(t, 77, rec.Contest)
	require.NotNil(t, rec.Date)
	assert.Equal(t, "2023-03-02", *rec.Date)
	require.Len(t, rec.Results, 1)
	assert.Equal(t, "000009", rec.Results[0].Value)
	assert.Equal(t, 50.0, rec.Results[0].Price)
}

func TestNormalizeRowSkipsAbsentPrizes(t *testing.T) {
	row := decoder.Row{
		"Extração":        "10",
		"1º prêmio":       "111",
		"Valor 1º prêmio": "R$ 10,00",
		// 2nd prize never drawn; 3rd present without a price cell
		"3º prêmio": "333",
	}

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	require.Len(t, rec.Results, 2)
	assert.Equal(t, 1, rec.Results[0].Index)
	assert.Equal(t, 3, rec.Results[1].Index)
	// a drawn prize with no price cell still appears, priced at zero
	assert.Equal(t, 0.0, rec.Results[1].Price)
}

func TestNormalizeDropsInvalidRows(t *testing.T) {
	rows := []decoder.Row{
		{"Extração": "1", "1º prêmio": "100", "Valor 1º prêmio": "R$ 1,00"},
		{"Extração": "bad"},
		{"Extração": "2", "1º prêmio": "200", "Valor 1º prêmio": "R$ 2,00"},
		{},
	}

	records := Normalize(rows)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Contest)
	assert.Equal(t, 2, records[1].Contest)
	for _, rec := range records {
		assert.True(t, rec.Valid())
	}
}
