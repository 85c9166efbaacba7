package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loteria-results/static-api/internal/models"
)

func manifest(total int, latest *int) *models.Manifest {
	m := &models.Manifest{
		Lottery:       "federal",
		TotalContests: total,
		LatestContest: latest,
		LastUpdated:   time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC),
		AvailableEndpoints: []string{
			"/api/federal/latest.json",
			"/api/federal/{contest}/index.json",
			"/api/federal/{contest}/result/{index}.json",
		},
	}
	if latest == nil {
		m.Error = "no valid contest rows in source dataset"
	}
	return m
}

func TestRenderWithData(t *testing.T) {
	latest := 5123
	docs, err := Render(manifest(200, &latest))
	require.NoError(t, err)

	html := string(docs["index.html"])
	assert.Contains(t, html, "federal")
	assert.Contains(t, html, "<strong>200</strong>")
	assert.Contains(t, html, "api/federal/latest.json")
	assert.Contains(t, html, "api/federal/5123/index.json")
	assert.Contains(t, html, "api/federal/5123/result/1.json")

	// Pages support files ride along with the page
	assert.Contains(t, docs, ".nojekyll")
	assert.Contains(t, string(docs["_config.yml"]), "api/**/*.json")
}

func TestRenderEmptyDatasetOmitsExamples(t *testing.T) {
	docs, err := Render(manifest(0, nil))
	require.NoError(t, err)

	html := string(docs["index.html"])
	assert.NotContains(t, html, "<a href=")
	assert.Contains(t, html, "no valid contest rows")
	assert.Contains(t, html, "<strong>0</strong>")
}
