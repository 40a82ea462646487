// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/subratsf/amfstore/core"
)

const (
	defaultLabelWeight float32 = 1.0
	defaultTextWeight  float32 = 0.5

	// Added when the label is exactly the query
	exactLabelBoost float32 = 0.3
)

// Item is one navigation entry offered to the searcher.
type Item struct {
	ID    string
	Kind  core.SearchKind
	Label string
	// Text is searched in addition to the label (descriptions, paths, methods).
	Text string
}

// Searcher scores navigation items against free-text queries. It holds no
// per-query state and is safe for concurrent use.
type Searcher struct {
	labelWeight float32
	textWeight  float32
	logger      *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithWeights overrides the scores given to label and text matches.
// Defaults are 1.0 and 0.5.
func WithWeights(label, text float32) Option {
	return func(s *Searcher) error {
		if label <= 0 || text <= 0 {
			return ErrInvalidWeight
		}
		s.labelWeight = label
		s.textWeight = text
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(opts ...Option) (*Searcher, error) {
	s := &Searcher{
		labelWeight: defaultLabelWeight,
		textWeight:  defaultTextWeight,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Find returns up to maxHits items matching query, best first.
// A maxHits of zero or less returns every match.
func (s *Searcher) Find(items []Item, query string, maxHits int) []core.SearchResult {
	return s.FindWithMonitor(items, query, maxHits, nil)
}

// FindWithMonitor is Find with scoring callbacks delivered to monitor.
func (s *Searcher) FindWithMonitor(items []Item, query string, maxHits int, monitor Monitor) []core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	words := tokenize(query)
	monitor.Start(query, words)
	if len(words) == 0 {
		monitor.Finish(nil)
		return []core.SearchResult{}
	}
	normalized := strings.Join(words, " ")

	results := make([]core.SearchResult, 0)
	for _, item := range items {
		labelWords := tokenize(item.Label)
		labelSet := wordSet(item.Label)

		var score float32
		switch {
		case containsAll(labelSet, words):
			score = s.labelWeight
			if strings.Join(labelWords, " ") == normalized {
				score += exactLabelBoost
			}
			monitor.LabelHit(item, score)
		case containsAll(wordSet(item.Label, item.Text), words):
			score = s.textWeight
			monitor.TextHit(item, score)
		default:
			continue
		}

		results = append(results, core.SearchResult{
			ID:    item.ID,
			Kind:  item.Kind,
			Label: item.Label,
			Score: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Label < results[j].Label
	})
	if maxHits > 0 && len(results) > maxHits {
		results = results[:maxHits]
	}
	s.logger.Debug("search finished", "query", query, "candidates", len(items), "hits", len(results))
	monitor.Finish(results)
	return results
}
