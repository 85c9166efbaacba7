// Package pages renders the human-readable documentation page for a
// generated API tree, plus the support files GitHub Pages needs to serve
// the JSON documents verbatim. Everything here is presentational; a
// failure must not invalidate the API tree itself.
package pages

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/loteria-results/static-api/internal/models"
)

type example struct {
	Label string
	Href  string
}

type indexView struct {
	Lottery       string
	TotalContests int
	LatestContest int
	HasLatest     bool
	LastUpdated   string
	Error         string
	Endpoints     []string
	Examples      []example
}

// Render produces the documentation set for a manifest: index.html plus
// .nojekyll and _config.yml. Example links are emitted only for endpoints
// that have data behind them.
func Render(manifest *models.Manifest) (map[string][]byte, error) {
	view := indexView{
		Lottery:       manifest.Lottery,
		TotalContests: manifest.TotalContests,
		LastUpdated:   manifest.LastUpdated.Format("2006-01-02 15:04:05 MST"),
		Error:         manifest.Error,
		Endpoints:     manifest.AvailableEndpoints,
	}
	if manifest.LatestContest != nil {
		latest := *manifest.LatestContest
		view.HasLatest = true
		view.LatestContest = latest
		view.Examples = []example{
			{Label: "Latest draw", Href: fmt.Sprintf("api/%s/latest.json", manifest.Lottery)},
			{Label: fmt.Sprintf("Contest %d", latest), Href: fmt.Sprintf("api/%s/%d/index.json", manifest.Lottery, latest)},
			{Label: fmt.Sprintf("Contest %d, 1st prize", latest), Href: fmt.Sprintf("api/%s/%d/result/1.json", manifest.Lottery, latest)},
			{Label: "Manifest", Href: "api/meta.json"},
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("pages: render index.html: %w", err)
	}

	return map[string][]byte{
		"index.html":  buf.Bytes(),
		".nojekyll":   {},
		"_config.yml": []byte(jekyllConfig),
	}, nil
}

// jekyllConfig keeps GitHub Pages from running the JSON tree through
// Jekyll and serves it with no layout applied.
const jekyllConfig = `include:
  - "api/**/*.json"

defaults:
  - scope:
      path: "api"
    values:
      layout: null
`

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Lottery}} lottery results API</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; padding: 0 1em; color: #222; }
code { background: #f4f4f4; padding: 2px 5px; border-radius: 3px; }
li { margin: 0.4em 0; }
.muted { color: #777; }
</style>
</head>
<body>
<h1>{{.Lottery}} lottery results API</h1>
<p>Static JSON documents generated from the official result spreadsheet.</p>
{{if .Error}}<p><strong>Note:</strong> {{.Error}}</p>{{end}}
<p>Total contests: <strong>{{.TotalContests}}</strong>{{if .HasLatest}} &middot; latest contest: <strong>{{.LatestContest}}</strong>{{end}}</p>
<h2>Endpoints</h2>
<ul>
{{range .Endpoints}}<li><code>{{.}}</code></li>
{{end}}</ul>
{{if .Examples}}<h2>Examples</h2>
<ul>
{{range .Examples}}<li><a href="{{.Href}}">{{.Label}}</a></li>
{{end}}</ul>
{{end}}<p class="muted">Last updated: {{.LastUpdated}}. Source: <a href="https://loterias.caixa.gov.br/">Caixa Econômica Federal</a>.</p>
</body>
</html>
`))
