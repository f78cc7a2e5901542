// Package kb holds the static destination catalogue and the scoring and
// lookup functions the tool layer is built on. The catalogue is embedded at
// build time; a Store is immutable once constructed.
package kb

import (
	_ "embed"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
)

//go:embed data/destinations.json
var rawCatalogue []byte

const defaultTopN = 5

// Store is the read-only destination catalogue plus the USD→AUD conversion
// rate applied to every cost it reports.
type Store struct {
	destinations []Destination
	byID         map[string]int
	rate         float64
}

// NewStore decodes the embedded catalogue. rate is the USD→AUD exchange
// rate; rate <= 0 falls back to 1.55.
func NewStore(rate float64) (*Store, error) {
	return NewStoreFromJSON(rawCatalogue, rate)
}

// NewStoreFromJSON builds a Store from a caller-supplied catalogue. Used by
// tests that need a tiny fixed catalogue.
func NewStoreFromJSON(data []byte, rate float64) (*Store, error) {
	if rate <= 0 {
		rate = 1.55
	}

	var destinations []Destination
	if err := sonic.Unmarshal(data, &destinations); err != nil {
		return nil, fmt.Errorf("decoding destination catalogue: %w", err)
	}

	byID := make(map[string]int, len(destinations))
	for i, d := range destinations {
		if d.ID == "" {
			return nil, fmt.Errorf("destination %q has no id", d.Name)
		}
		if _, dup := byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate destination id %q", d.ID)
		}
		byID[d.ID] = i
	}

	return &Store{destinations: destinations, byID: byID, rate: rate}, nil
}

// Rate returns the configured USD→AUD exchange rate.
func (s *Store) Rate() float64 {
	return s.rate
}

// Search scores every destination against the query and returns the top
// matches, best first. Ties keep catalogue order. Zero-score destinations
// are dropped, except that a country filter guarantees score >= 1 so a
// country-filtered city never vanishes on an interest mismatch alone.
func (s *Store) Search(q SearchQuery) []SearchResult {
	topN := q.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	interests := make(map[string]bool, len(q.Interests))
	for _, i := range q.Interests {
		interests[strings.ToLower(i)] = true
	}

	var scored []SearchResult
	for _, d := range s.destinations {
		if q.Country != "" && !strings.EqualFold(d.Country, q.Country) {
			continue
		}

		score := 0

		seen := make(map[string]bool, len(d.Activities))
		for _, a := range d.Activities {
			if interests[a.Category] && !seen[a.Category] {
				seen[a.Category] = true
				score += 2
			}
		}

		if q.BudgetLevel != "" {
			destRank := budgetRank[d.BudgetLevel]
			reqRank := budgetRank[q.BudgetLevel]
			switch diff := destRank - reqRank; {
			case diff == 0:
				score += 2
			case diff == 1 || diff == -1:
				score++
			}
		}

		if q.Season != "" {
			for _, season := range d.BestSeasons {
				if strings.EqualFold(season, q.Season) {
					score += 2
					break
				}
			}
		}

		if q.Region != "" && strings.EqualFold(d.Region, q.Region) {
			score++
		}

		if score == 0 && q.Country != "" {
			score = 1
		}
		if score == 0 {
			continue
		}

		scored = append(scored, SearchResult{
			ID:               d.ID,
			Name:             d.Name,
			Country:          d.Country,
			Region:           d.Region,
			Description:      d.Description,
			BudgetLevel:      d.BudgetLevel,
			AvgDailyCostAUD:  int(math.Round(d.AvgDailyCostUSD * s.rate)),
			AvgFlightCostAUD: int(math.Round(d.AvgFlightCostUSD * s.rate)),
			BestSeasons:      d.BestSeasons,
			VisaNotes:        d.VisaNotes,
			Score:            score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// ActivitiesFor returns a destination's activities with interest-matched
// categories first, catalogue order preserved within each group, truncated
// to max. Unknown destination yields an empty list.
func (s *Store) ActivitiesFor(destinationID string, interests []string, max int) []Activity {
	dest, ok := s.ByID(destinationID)
	if !ok || max <= 0 {
		return nil
	}

	wanted := make(map[string]bool, len(interests))
	for _, i := range interests {
		wanted[strings.ToLower(i)] = true
	}

	matched := make([]Activity, 0, len(dest.Activities))
	var others []Activity
	for _, a := range dest.Activities {
		if wanted[a.Category] {
			matched = append(matched, a)
		} else {
			others = append(others, a)
		}
	}

	ranked := append(matched, others...)
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

// ByID looks up a destination by its identifier.
func (s *Store) ByID(destinationID string) (Destination, bool) {
	i, ok := s.byID[destinationID]
	if !ok {
		return Destination{}, false
	}
	return s.destinations[i], true
}

// All returns the full catalogue in its original order.
func (s *Store) All() []Destination {
	out := make([]Destination, len(s.destinations))
	copy(out, s.destinations)
	return out
}
