package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/loteria-results/static-api/internal/config"
	"github.com/loteria-results/static-api/internal/decoder"
	"github.com/loteria-results/static-api/internal/materializer"
	"github.com/loteria-results/static-api/internal/models"
	"github.com/loteria-results/static-api/internal/normalizer"
	"github.com/loteria-results/static-api/internal/pages"
	"github.com/loteria-results/static-api/pkg/caixa"
)

// SourceFetcher supplies the raw spreadsheet bytes for a lottery's full
// result table. A fetch failure is a hard stop for the run.
type SourceFetcher interface {
	FetchSpreadsheet(ctx context.Context, modalidade string) ([]byte, error)
}

// Compile-time check to ensure the Caixa client implements SourceFetcher
var _ SourceFetcher = (*caixa.Client)(nil)

// ErrEmptyDataset is returned when every source row was rejected and the
// pipeline is configured to treat that as fatal. The empty manifest has
// already been published when this is returned.
var ErrEmptyDataset = errors.New("pipeline: no valid contest records in source")

// PipelineService runs one full rebuild: fetch, decode, normalize,
// materialize, document, flush.
type PipelineService struct {
	fetcher SourceFetcher
	cfg     *config.Config
}

// NewPipelineService creates a new PipelineService
func NewPipelineService(fetcher SourceFetcher, cfg *config.Config) *PipelineService {
	return &PipelineService{fetcher: fetcher, cfg: cfg}
}

// RunResult summarizes one full rebuild.
type RunResult struct {
	RunID    string
	Manifest *models.Manifest
	Rows     int
	Records  int
}

// Run executes one end-to-end rebuild against the configured output root.
// When inputFile is non-empty the spreadsheet is read from disk instead
// of being fetched.
func (s *PipelineService) Run(ctx context.Context, inputFile string) (*RunResult, error) {
	runID := uuid.New().String()
	log := slog.With("run", runID, "lottery", s.cfg.Lottery)

	var data []byte
	var err error
	if inputFile != "" {
		data, err = os.ReadFile(inputFile)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		log.Info("loaded source spreadsheet", "path", inputFile, "bytes", len(data))
	} else {
		modalidade := Modalidade(s.cfg)
		data, err = s.fetcher.FetchSpreadsheet(ctx, modalidade)
		if err != nil {
			return nil, fmt.Errorf("fetch spreadsheet: %w", err)
		}
		log.Info("fetched source spreadsheet", "modalidade", modalidade, "bytes", len(data))
	}

	rows, err := decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode spreadsheet: %w", err)
	}
	log.Info("decoded spreadsheet", "rows", len(rows))

	records := normalizer.Normalize(rows)
	log.Info("normalized rows", "records", len(records), "rejected", len(rows)-len(records))

	docs, manifest, err := materializer.Materialize(s.cfg.Lottery, records, time.Now())
	if err != nil {
		return nil, fmt.Errorf("materialize api tree: %w", err)
	}

	if s.cfg.Pages.Enabled {
		pageDocs, err := pages.Render(manifest)
		if err != nil {
			// presentational only, the API tree still ships
			log.Warn("documentation page skipped", "error", err)
		} else {
			for p, b := range pageDocs {
				docs[p] = b
			}
		}
	}

	if err := materializer.Flush(s.cfg.Output.Dir, docs); err != nil {
		return nil, fmt.Errorf("flush output tree: %w", err)
	}
	log.Info("published api tree", "dir", s.cfg.Output.Dir, "documents", len(docs))

	res := &RunResult{RunID: runID, Manifest: manifest, Rows: len(rows), Records: len(records)}
	if len(records) == 0 && s.cfg.Pipeline.FailOnEmpty {
		return res, ErrEmptyDataset
	}
	return res, nil
}

// Modalidade resolves the download slug for the configured lottery:
// config overrides first, then the built-in map, then the identifier
// itself.
func Modalidade(cfg *config.Config) string {
	if slug, ok := cfg.Source.Slugs[strings.ToLower(cfg.Lottery)]; ok {
		return slug
	}
	if slug, ok := caixa.ModalidadeFor(cfg.Lottery); ok {
		return slug
	}
	return cfg.Lottery
}
