package webapi

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/salscrudato/deckard/internal/models"
)

// ErrAnalysisNotFound is returned when an analysis ID does not match any
// stored analysis.
var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisStore provides access to stored deck analysis results.
type AnalysisStore interface {
	// ListAnalyses returns all analyses, sorted by the given field and order.
	ListAnalyses(sortField, order string) ([]AnalysisSummary, error)
	// GetAnalysis returns a single analysis with full slide details.
	GetAnalysis(id string) (*AnalysisDetail, error)
	// Summary returns aggregate metrics across all analyses.
	Summary() (*SummaryResponse, error)
}

// FileStore reads DeckOutcome JSON files from a results directory. The file
// name without its .json extension is the analysis ID.
type FileStore struct {
	dir string

	mu       sync.RWMutex
	analyses map[string]*models.DeckOutcome
	loaded   bool
	loadErr  error
}

// NewFileStore creates a FileStore that reads results from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:      dir,
		analyses: make(map[string]*models.DeckOutcome),
	}
}

// load reads all result JSON files from the configured directory.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.analyses = make(map[string]*models.DeckOutcome)

	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			fs.loaded = true
			return nil
		}
		fs.loadErr = err
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(fs.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var outcome models.DeckOutcome
		if err := json.Unmarshal(data, &outcome); err != nil {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		fs.analyses[id] = &outcome
	}

	fs.loaded = true
	fs.loadErr = nil
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh reload of all result files from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

func outcomeToSummary(id string, o *models.DeckOutcome) AnalysisSummary {
	return AnalysisSummary{
		ID:            id,
		Deck:          o.DeckName,
		SlideCount:    o.Digest.SlideCount,
		Flagged:       o.Digest.Flagged,
		Fallbacks:     o.Digest.Fallbacks,
		Pinned:        o.Digest.Pinned,
		AvgConfidence: o.Digest.AvgConfidence,
		Duration:      float64(o.Digest.DurationMs) / 1000.0,
		Timestamp:     o.Timestamp,
	}
}

func outcomeToDetail(id string, o *models.DeckOutcome) *AnalysisDetail {
	detail := &AnalysisDetail{AnalysisSummary: outcomeToSummary(id, o)}

	for i := range o.Slides {
		sa := &o.Slides[i]
		sr := SlideResult{
			ID:            sa.SlideID,
			Title:         sa.Title,
			Status:        string(sa.Status),
			Layout:        sa.EffectiveLayout(),
			Pinned:        sa.PinnedLayout != "",
			Confidence:    sa.Recommendation.Primary.Confidence,
			Reasoning:     sa.Recommendation.Primary.Reasoning,
			Visualization: string(sa.Visualization.Type),
		}
		for _, opt := range sa.Recommendation.Optimizations {
			sr.Optimizations = append(sr.Optimizations, OptimizationResult{
				Type:        opt.Type,
				Description: opt.Description,
				Impact:      opt.Impact,
			})
		}
		if sr.Reasoning == nil {
			sr.Reasoning = []string{}
		}
		if sr.Optimizations == nil {
			sr.Optimizations = []OptimizationResult{}
		}
		detail.Slides = append(detail.Slides, sr)
	}
	if detail.Slides == nil {
		detail.Slides = []SlideResult{}
	}

	return detail
}

// ListAnalyses returns all analyses sorted by the given field and order.
func (fs *FileStore) ListAnalyses(sortField, order string) ([]AnalysisSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	analyses := make([]AnalysisSummary, 0, len(fs.analyses))
	for id, o := range fs.analyses {
		analyses = append(analyses, outcomeToSummary(id, o))
	}

	sortAnalyses(analyses, sortField, order)
	return analyses, nil
}

// GetAnalysis returns a single analysis with full slide details.
func (fs *FileStore) GetAnalysis(id string) (*AnalysisDetail, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	o, ok := fs.analyses[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}

	return outcomeToDetail(id, o), nil
}

// Summary returns aggregate metrics across all analyses.
func (fs *FileStore) Summary() (*SummaryResponse, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	resp := &SummaryResponse{}
	if len(fs.analyses) == 0 {
		return resp, nil
	}

	totalSlides := 0
	totalFlagged := 0
	totalConfidence := 0.0
	totalDuration := 0.0

	for _, o := range fs.analyses {
		resp.TotalAnalyses++
		totalSlides += o.Digest.SlideCount
		totalFlagged += o.Digest.Flagged
		totalConfidence += o.Digest.AvgConfidence
		totalDuration += float64(o.Digest.DurationMs) / 1000.0
	}

	resp.TotalSlides = totalSlides
	if totalSlides > 0 {
		resp.CleanRate = float64(totalSlides-totalFlagged) / float64(totalSlides) * 100.0
	}
	if resp.TotalAnalyses > 0 {
		resp.AvgConfidence = totalConfidence / float64(resp.TotalAnalyses)
		resp.AvgDuration = totalDuration / float64(resp.TotalAnalyses)
	}

	return resp, nil
}

func sortAnalyses(analyses []AnalysisSummary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "confidence":
			return analyses[i].AvgConfidence < analyses[j].AvgConfidence
		case "slides":
			return analyses[i].SlideCount < analyses[j].SlideCount
		case "duration":
			return analyses[i].Duration < analyses[j].Duration
		default: // "timestamp" or empty
			return analyses[i].Timestamp.Before(analyses[j].Timestamp)
		}
	}

	if order == "asc" {
		sort.Slice(analyses, less)
	} else {
		sort.Slice(analyses, func(i, j int) bool { return less(j, i) })
	}
}

// Ensure FileStore satisfies AnalysisStore.
var _ AnalysisStore = (*FileStore)(nil)
