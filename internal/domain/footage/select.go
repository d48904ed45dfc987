package footage

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/podclip/podclip/internal/ports"
	"github.com/podclip/podclip/internal/types"
)

// Config tunes footage selection. MaxQueries bounds provider calls per
// candidate; MaxResults bounds the returned ranking.
type Config struct {
	MaxQueries   int
	MaxResults   int
	QueryTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxQueries:   3,
		MaxResults:   10,
		QueryTimeout: 20 * time.Second,
	}
}

// Selector queries one or more footage-search collaborators and returns a
// deduplicated ranking.
type Selector struct {
	searchers []ports.FootageSearch
	cfg       Config
	log       zerolog.Logger
}

func NewSelector(searchers []ports.FootageSearch, cfg Config, log zerolog.Logger) *Selector {
	def := DefaultConfig()
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = def.MaxQueries
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = def.QueryTimeout
	}
	return &Selector{searchers: searchers, cfg: cfg, log: log}
}

// Select queries the first MaxQueries keywords against every searcher,
// merges the results, deduplicates by asset ID (last seen wins) and returns
// the top MaxResults sorted by relevance, highest first.
//
// A failing or empty query never aborts the others.
func (s *Selector) Select(ctx context.Context, keywords []string) []types.FootageAsset {
	queries := keywords
	if len(queries) > s.cfg.MaxQueries {
		queries = queries[:s.cfg.MaxQueries]
	}

	byID := make(map[string]types.FootageAsset)
	var order []string // first-seen ID order keeps the sort stable
	for _, kw := range queries {
		for _, src := range s.searchers {
			assets, err := s.search(ctx, src, kw)
			if err != nil {
				s.log.Warn().Err(err).
					Str("provider", src.Name()).
					Str("query", kw).
					Msg("footage search failed, continuing with remaining queries")
				continue
			}
			for _, a := range assets {
				if _, seen := byID[a.ID]; !seen {
					order = append(order, a.ID)
				}
				byID[a.ID] = a
			}
		}
	}

	merged := make([]types.FootageAsset, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})

	if len(merged) > s.cfg.MaxResults {
		merged = merged[:s.cfg.MaxResults]
	}
	s.log.Info().Int("assets", len(merged)).Strs("keywords", queries).Msg("footage selected")
	return merged
}

func (s *Selector) search(ctx context.Context, src ports.FootageSearch, query string) ([]types.FootageAsset, error) {
	qctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()
	return src.Search(qctx, query)
}
