// Package materializer renders the validated contest dataset into the
// static file tree that mimics a REST API. Building is a pure function
// from records to an in-memory path → bytes map; flushing the map to disk
// is a separate step so the published root never holds a partial run.
package materializer

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strconv"
	"time"

	"github.com/loteria-results/static-api/internal/models"
)

const (
	apiRoot      = "api"
	latestDoc    = "latest.json"
	contestDoc   = "index.json"
	resultDir    = "result"
	manifestPath = apiRoot + "/meta.json"
)

// prizeDoc is the individually addressable sub-resource for one prize.
type prizeDoc struct {
	Value string  `json:"value"`
	Price float64 `json:"price"`
}

// Endpoints returns the path templates advertised in the manifest for a
// lottery's generated tree.
func Endpoints(lottery string) []string {
	base := "/" + apiRoot + "/" + lottery
	return []string{
		base + "/" + latestDoc,
		base + "/{contest}/" + contestDoc,
		base + "/{contest}/" + resultDir + "/{index}.json",
	}
}

// Materialize builds every document of the static API for one lottery.
// Records are stable-sorted ascending by contest number; the last record
// becomes the latest pointer. An empty dataset produces only the manifest,
// flagged with an error marker. Identical records produce byte-identical
// contest documents; only the manifest varies with now.
func Materialize(lottery string, records []models.ContestRecord, now time.Time) (map[string][]byte, *models.Manifest, error) {
	sorted := make([]models.ContestRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Contest < sorted[j].Contest })

	manifest := &models.Manifest{
		Lottery:            lottery,
		TotalContests:      len(sorted),
		LastUpdated:        now.UTC(),
		AvailableEndpoints: Endpoints(lottery),
	}
	docs := make(map[string][]byte)

	if len(sorted) == 0 {
		manifest.Error = "no valid contest rows in source dataset"
		if err := putJSON(docs, manifestPath, manifest); err != nil {
			return nil, nil, err
		}
		return docs, manifest, nil
	}

	latest := sorted[len(sorted)-1]
	manifest.LatestContest = &latest.Contest

	p, b, err := LatestDocument(lottery, latest)
	if err != nil {
		return nil, nil, err
	}
	docs[p] = b

	for _, rec := range sorted {
		contestDocs, err := ContestDocuments(lottery, rec)
		if err != nil {
			return nil, nil, err
		}
		for cp, cb := range contestDocs {
			docs[cp] = cb
		}
	}

	if err := putJSON(docs, manifestPath, manifest); err != nil {
		return nil, nil, err
	}
	return docs, manifest, nil
}

// ContestDocuments returns the documents addressed by a single contest:
// its index document plus one sub-document per drawn prize.
func ContestDocuments(lottery string, rec models.ContestRecord) (map[string][]byte, error) {
	dir := path.Join(apiRoot, lottery, strconv.Itoa(rec.Contest))
	docs := make(map[string][]byte, len(rec.Results)+1)

	if err := putJSON(docs, path.Join(dir, contestDoc), rec); err != nil {
		return nil, err
	}
	for _, prize := range rec.Results {
		p := path.Join(dir, resultDir, strconv.Itoa(prize.Index)+".json")
		if err := putJSON(docs, p, prizeDoc{Value: prize.Value, Price: prize.Price}); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// LatestDocument returns the latest-pointer document for rec.
func LatestDocument(lottery string, rec models.ContestRecord) (string, []byte, error) {
	p := path.Join(apiRoot, lottery, latestDoc)
	b, err := marshal(p, rec)
	return p, b, err
}

// ManifestDocument returns the manifest document.
func ManifestDocument(m *models.Manifest) (string, []byte, error) {
	b, err := marshal(manifestPath, m)
	return manifestPath, b, err
}

func putJSON(docs map[string][]byte, p string, v any) error {
	b, err := marshal(p, v)
	if err != nil {
		return err
	}
	docs[p] = b
	return nil
}

func marshal(p string, v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("materializer: encode %s: %w", p, err)
	}
	return append(b, '\n'), nil
}
