// Package search provides an in-memory fuzzy index over the crawled notes.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"gh-notes/internal/vault"
)

// Token scores, from the strongest kind of match to the weakest.
const (
	scoreExact       = 1.0
	scorePrefix      = 0.8
	scoreSubstring   = 0.6
	scoreTypo        = 0.55 // Reduced by typoPenalty per edit
	typoPenalty      = 0.1
	scoreSubsequence = 0.3
	minFuzzyTermLen  = 3
)

// Options tunes ranking.
type Options struct {
	TitleWeight   float64
	ContentWeight float64
	MaxDistance   int // Largest edit distance tolerated for long terms, 0 for none
	Limit         int // Maximum results per query, 0 for no limit
}

// DefaultOptions weighs title matches twice as much as content matches.
func DefaultOptions() Options {
	return Options{
		TitleWeight:   2,
		ContentWeight: 1,
		MaxDistance:   2,
		Limit:         20,
	}
}

// Match is one search hit.
type Match struct {
	Location string  `json:"location"`
	Title    string  `json:"title"`
	Score    float64 `json:"score"`
}

type entry struct {
	location string
	title    string
	titleTok []string
	bodyTok  []string
}

// Index is built once and never modified, so Search is safe for concurrent use.
type Index struct {
	opts    Options
	entries []entry
}

// Build indexes the title and content of every record. The index keeps its own
// tokenized copy of the text and does not retain records.
func Build(records []vault.Record, opts Options) *Index {
	entries := make([]entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, entry{
			location: r.Location,
			title:    r.Title,
			titleTok: tokenize(r.Title),
			bodyTok:  tokenize(r.Content),
		})
	}
	return &Index{opts: opts, entries: entries}
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Search returns the documents matching query, best first. It never fails:
// a blank or unmatched query yields an empty slice.
func (idx *Index) Search(query string) []Match {
	terms := tokenize(query)
	matches := []Match{}
	if len(terms) == 0 {
		return matches
	}

	totalWeight := idx.opts.TitleWeight + idx.opts.ContentWeight
	if totalWeight <= 0 {
		totalWeight = 1
	}

	for _, e := range idx.entries {
		title := idx.fieldScore(terms, e.titleTok)
		body := idx.fieldScore(terms, e.bodyTok)
		score := (idx.opts.TitleWeight*title + idx.opts.ContentWeight*body) / totalWeight
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{
			Location: e.location,
			Title:    e.title,
			Score:    score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Location < matches[j].Location
	})

	if idx.opts.Limit > 0 && len(matches) > idx.opts.Limit {
		matches = matches[:idx.opts.Limit]
	}
	return matches
}

// fieldScore averages, over the query terms, the best score each term reaches
// against the field's tokens.
func (idx *Index) fieldScore(terms, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	var total float64
	for _, term := range terms {
		best := 0.0
		for _, tok := range tokens {
			if s := idx.tokenScore(term, tok); s > best {
				best = s
				if best == scoreExact {
					break
				}
			}
		}
		total += best
	}
	return total / float64(len(terms))
}

func (idx *Index) tokenScore(term, tok string) float64 {
	switch {
	case term == tok:
		return scoreExact
	case strings.HasPrefix(tok, term):
		return scorePrefix
	case strings.Contains(tok, term):
		return scoreSubstring
	}

	termLen := len([]rune(term))
	if termLen < minFuzzyTermLen {
		return 0
	}

	maxDist := idx.maxDistance(termLen)
	if maxDist > 0 {
		if diff := len([]rune(tok)) - termLen; diff <= maxDist && diff >= -maxDist {
			if d := fuzzy.LevenshteinDistance(term, tok); d <= maxDist {
				return scoreTypo - typoPenalty*float64(d)
			}
		}
	}

	if len(tok) <= 2*len(term) && fuzzy.Match(term, tok) {
		return scoreSubsequence
	}
	return 0
}

// maxDistance allows at most a single typo in short terms. Zero disables typo
// matching.
func (idx *Index) maxDistance(termLen int) int {
	if idx.opts.MaxDistance <= 0 {
		return 0
	}
	if termLen <= 4 {
		return 1
	}
	return idx.opts.MaxDistance
}

// tokenize lower-cases s and splits it into unique words of letters and digits.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
