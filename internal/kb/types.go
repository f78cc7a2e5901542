package kb

// Activity is a named, categorised thing to do at a destination. It has no
// identity outside its parent Destination.
type Activity struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	DurationHours float64 `json:"duration_hours"`
	CostUSD       float64 `json:"cost_usd"`
	Description   string  `json:"description"`
}

// Destination is one catalogued place. The catalogue is loaded once at
// process start and never mutated.
type Destination struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Country          string     `json:"country"`
	Region           string     `json:"region"`
	Description      string     `json:"description"`
	BudgetLevel      string     `json:"budget_level"`
	AvgDailyCostUSD  float64    `json:"avg_daily_cost_usd"`
	AvgFlightCostUSD float64    `json:"avg_flight_cost_usd"`
	BestSeasons      []string   `json:"best_seasons"`
	VisaNotes        string     `json:"visa_notes"`
	Language         string     `json:"language"`
	Currency         string     `json:"currency"`
	Tips             []string   `json:"tips"`
	Activities       []Activity `json:"activities"`
}

// SearchQuery holds the filters for Store.Search. TopN <= 0 means the
// default of 5.
type SearchQuery struct {
	Interests   []string
	BudgetLevel string
	Season      string
	Region      string
	Country     string
	TopN        int
}

// SearchResult is one scored search hit with costs already converted to AUD
// and rounded to whole units.
type SearchResult struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Country          string   `json:"country"`
	Region           string   `json:"region"`
	Description      string   `json:"description"`
	BudgetLevel      string   `json:"budget_level"`
	AvgDailyCostAUD  int      `json:"avg_daily_cost_aud"`
	AvgFlightCostAUD int      `json:"avg_flight_cost_aud"`
	BestSeasons      []string `json:"best_seasons"`
	VisaNotes        string   `json:"visa_notes"`
	Score            int      `json:"score"`
}

// Interest categories accepted by search and activity ranking.
const (
	CategoryCulture    = "culture"
	CategoryFood       = "food"
	CategoryAdventure  = "adventure"
	CategoryNature     = "nature"
	CategoryNightlife  = "nightlife"
	CategoryShopping   = "shopping"
	CategoryRelaxation = "relaxation"
)

// budgetRank orders the budget tiers for adjacency scoring.
var budgetRank = map[string]int{
	"budget":    1,
	"mid-range": 2,
	"luxury":    3,
}
