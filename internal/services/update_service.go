package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/loteria-results/static-api/internal/config"
	"github.com/loteria-results/static-api/internal/materializer"
	"github.com/loteria-results/static-api/internal/models"
	"github.com/loteria-results/static-api/internal/normalizer"
	"github.com/loteria-results/static-api/pkg/caixa"
)

// LatestFetcher supplies the most recent draw from the upstream JSON API.
type LatestFetcher interface {
	LatestResult(ctx context.Context, lottery string) (*caixa.DrawResult, error)
}

// Compile-time check to ensure the Caixa client implements LatestFetcher
var _ LatestFetcher = (*caixa.Client)(nil)

// UpdateService refreshes the latest contest's documents in an already
// published tree without a full rebuild, for the frequent runs between
// spreadsheet publications.
type UpdateService struct {
	fetcher LatestFetcher
	cfg     *config.Config
}

// NewUpdateService creates a new UpdateService
func NewUpdateService(fetcher LatestFetcher, cfg *config.Config) *UpdateService {
	return &UpdateService{fetcher: fetcher, cfg: cfg}
}

// RecordFromDrawResult converts the upstream latest-draw JSON into the
// canonical contest record. Prize tiers are paired positionally with the
// drawn numbers; tiers beyond the drawn numbers are ignored.
func RecordFromDrawResult(res *caixa.DrawResult) (models.ContestRecord, error) {
	if res.Numero <= 0 {
		return models.ContestRecord{}, fmt.Errorf("update: draw number missing from upstream result")
	}

	rec := models.ContestRecord{
		Contest: res.Numero,
		Date:    normalizer.ParseDate(res.DataApuracao),
	}
	for i, dezena := range res.DezenasSorteadasOrdemSorteio {
		if i >= len(res.ListaRateioPremio) || i >= 5 {
			break
		}
		rec.Results = append(rec.Results, models.PrizeResult{
			Index: i + 1,
			Value: normalizer.PadNumber(dezena),
			Price: res.ListaRateioPremio[i].ValorPremio,
		})
	}
	if !rec.Valid() {
		return models.ContestRecord{}, fmt.Errorf("update: draw %d has no prizes", res.Numero)
	}
	return rec, nil
}

// UpdateLatest fetches the most recent draw, writes its documents and the
// latest pointer into the existing output tree, and refreshes the
// manifest. An existing document for the same contest is overwritten.
func (s *UpdateService) UpdateLatest(ctx context.Context) (*models.ContestRecord, error) {
	res, err := s.fetcher.LatestResult(ctx, s.cfg.Lottery)
	if err != nil {
		return nil, fmt.Errorf("fetch latest result: %w", err)
	}
	rec, err := RecordFromDrawResult(res)
	if err != nil {
		return nil, err
	}

	docs, err := materializer.ContestDocuments(s.cfg.Lottery, rec)
	if err != nil {
		return nil, err
	}
	latestPath, latestBytes, err := materializer.LatestDocument(s.cfg.Lottery, rec)
	if err != nil {
		return nil, err
	}
	docs[latestPath] = latestBytes

	manifest := s.loadManifest()
	contestDir := filepath.Join(s.cfg.Output.Dir, "api", s.cfg.Lottery, strconv.Itoa(rec.Contest))
	if _, statErr := os.Stat(contestDir); os.IsNotExist(statErr) {
		manifest.TotalContests++
	}
	manifest.LatestContest = &rec.Contest
	manifest.LastUpdated = time.Now().UTC()
	manifest.Error = ""

	manifestPath, manifestBytes, err := materializer.ManifestDocument(manifest)
	if err != nil {
		return nil, err
	}
	docs[manifestPath] = manifestBytes

	for p, b := range docs {
		if err := materializer.WriteDoc(s.cfg.Output.Dir, p, b); err != nil {
			return nil, err
		}
	}

	slog.Info("latest draw updated", "lottery", s.cfg.Lottery, "contest", rec.Contest, "documents", len(docs))
	return &rec, nil
}

// loadManifest reads the published manifest, falling back to a fresh one
// when the tree has never been generated.
func (s *UpdateService) loadManifest() *models.Manifest {
	manifest := &models.Manifest{
		Lottery:            s.cfg.Lottery,
		AvailableEndpoints: materializer.Endpoints(s.cfg.Lottery),
	}

	data, err := os.ReadFile(filepath.Join(s.cfg.Output.Dir, "api", "meta.json"))
	if err != nil {
		return manifest
	}
	if err := json.Unmarshal(data, manifest); err != nil {
		slog.Warn("unreadable manifest, rebuilding it", "error", err)
		return &models.Manifest{
			Lottery:            s.cfg.Lottery,
			AvailableEndpoints: materializer.Endpoints(s.cfg.Lottery),
		}
	}
	return manifest
}
