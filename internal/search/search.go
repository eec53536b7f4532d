package search

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve"

	"github.com/mohammad-safakhou/weekender/internal/pipeline"
)

// Index is a full-text index over completed itineraries, backing the
// run search endpoint.
type Index struct {
	idx bleve.Index
}

type runDoc struct {
	RequestText string `json:"request_text"`
	Location    string `json:"location"`
	Itinerary   string `json:"itinerary"`
}

// Open opens the index at path, creating it when absent.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("open index: %w", err)
		}
		mapping := bleve.NewIndexMapping()
		idx, err = bleve.New(path, mapping)
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
	}
	return &Index{idx: idx}, nil
}

// OpenInMemory opens an ephemeral index, used by tests and the CLI.
func OpenInMemory() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	return &Index{idx: idx}, nil
}

// IndexRun adds a completed run to the index.
func (i *Index) IndexRun(run pipeline.RunResult) error {
	return i.idx.Index(run.ID, runDoc{
		RequestText: run.Request.Text,
		Location:    run.Intent.Location,
		Itinerary:   run.Itinerary,
	})
}

// Hit is one search match.
type Hit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Search runs a match query over the indexed runs.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	res, err := i.idx.Search(req)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{ID: h.ID, Score: h.Score})
	}
	return hits, nil
}

// Close releases the index.
func (i *Index) Close() error { return i.idx.Close() }
