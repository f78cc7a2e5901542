// Package tools exposes the knowledge base to the chat model as five named
// eino tools. Every tool returns a JSON-serializable value; validation and
// lookup failures become {"error": ...} objects the model reasons around,
// never Go errors that would break the orchestration loop.
package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"tripplanner/internal/kb"
)

// Tool names the orchestration loop keys its decision table on.
const (
	NameSearchDestinations = "search_destinations"
	NameGetActivities      = "get_activities"
	NameEstimateBudget     = "estimate_budget"
	NameBuildItinerary     = "build_itinerary"
	NameListDestinations   = "list_available_destinations"
)

// styleMultiplier scales the daily base cost by travel style.
var styleMultiplier = map[string]float64{
	"budget":    0.7,
	"mid-range": 1.0,
	"luxury":    1.5,
}

// errorResult is the structured error object tools hand back to the model.
type errorResult struct {
	Error string `json:"error"`
}

// Registry holds the five tools, in their canonical order, and executes
// them by name.
type Registry struct {
	store *kb.Store
	tools map[string]tool.InvokableTool
	order []string
}

// NewRegistry builds all five tools over the given store.
func NewRegistry(store *kb.Store) (*Registry, error) {
	r := &Registry{
		store: store,
		tools: make(map[string]tool.InvokableTool),
	}

	for _, build := range []func() (tool.InvokableTool, error){
		r.searchDestinationsTool,
		r.getActivitiesTool,
		r.estimateBudgetTool,
		r.buildItineraryTool,
		r.listDestinationsTool,
	} {
		t, err := build()
		if err != nil {
			return nil, err
		}
		info, err := t.Info(context.Background())
		if err != nil {
			return nil, fmt.Errorf("reading tool info: %w", err)
		}
		r.tools[info.Name] = t
		r.order = append(r.order, info.Name)
	}

	return r, nil
}

// Infos returns the tool schemas for binding to the chat model, in
// canonical order.
func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		info, err := r.tools[name].Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool %s info: %w", name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Run executes one tool by name with raw JSON arguments and returns its
// JSON result. An unrecognized name yields a structured error result, not a
// failure.
func (r *Registry) Run(ctx context.Context, name, argumentsJSON string) string {
	t, ok := r.tools[name]
	if !ok {
		return errorJSON(fmt.Sprintf("Unknown tool: %s", name))
	}
	out, err := t.InvokableRun(ctx, argumentsJSON)
	if err != nil {
		return errorJSON(fmt.Sprintf("Tool %s failed: %v", name, err))
	}
	return out
}

type searchParams struct {
	Interests   []string `json:"interests" jsonschema:"description=Categories the user enjoys: culture food adventure nature nightlife shopping relaxation"`
	BudgetLevel string   `json:"budget_level,omitempty" jsonschema:"description=Spending preference: budget mid-range or luxury"`
	Season      string   `json:"season,omitempty" jsonschema:"description=Travel window: spring summer autumn or winter"`
	Region      string   `json:"region,omitempty" jsonschema:"description=Geographic area: Asia Europe Americas Oceania Africa or Middle East"`
	Country     string   `json:"country,omitempty" jsonschema:"description=Country name filter so only cities within that country are returned"`
}

func (r *Registry) searchDestinationsTool() (tool.InvokableTool, error) {
	return utils.InferTool(NameSearchDestinations,
		"Search the knowledge base for destinations matching the user's preferences. Call this first for any trip planning request. When the user names a country, pass it as country so only cities within that country are returned.",
		func(ctx context.Context, p searchParams) (any, error) {
			results := r.store.Search(kb.SearchQuery{
				Interests:   p.Interests,
				BudgetLevel: p.BudgetLevel,
				Season:      p.Season,
				Region:      p.Region,
				Country:     p.Country,
			})
			if len(results) == 0 {
				return errorResult{"No destinations matched. Try broader interests or remove filters."}, nil
			}
			return results, nil
		})
}

type activitiesParams struct {
	DestinationID string   `json:"destination_id" jsonschema:"description=The id from a search_destinations result"`
	Interests     []string `json:"interests" jsonschema:"description=Categories to prioritise"`
	Days          int      `json:"days,omitempty" jsonschema:"description=Trip length; controls how many activities are returned (about 3 per day)"`
}

func (r *Registry) getActivitiesTool() (tool.InvokableTool, error) {
	return utils.InferTool(NameGetActivities,
		"Retrieve curated activities for a destination, prioritised by interests. Call this after search_destinations and before build_itinerary.",
		func(ctx context.Context, p activitiesParams) (any, error) {
			days := p.Days
			if days < 1 {
				days = 3
			}
			activities := r.store.ActivitiesFor(p.DestinationID, p.Interests, days*3)
			if len(activities) == 0 {
				return errorResult{fmt.Sprintf("No activities found for '%s'.", p.DestinationID)}, nil
			}
			return activities, nil
		})
}

type budgetParams struct {
	DestinationID string `json:"destination_id" jsonschema:"description=The id from a search_destinations result"`
	Days          int    `json:"days" jsonschema:"description=Number of in-destination days excluding travel days"`
	TravelStyle   string `json:"travel_style,omitempty" jsonschema:"description=Spending level: budget mid-range or luxury"`
}

// budgetBreakdown itemizes a trip estimate in AUD. The five cost components
// sum to the total; the daily average excludes flights.
type budgetBreakdown struct {
	Destination      string  `json:"destination"`
	Days             int     `json:"days"`
	TravelStyle      string  `json:"travel_style"`
	FlightsAUD       float64 `json:"flights_aud"`
	AccommodationAUD float64 `json:"accommodation_aud"`
	FoodAUD          float64 `json:"food_aud"`
	ActivitiesAUD    float64 `json:"activities_aud"`
	TransportAUD     float64 `json:"transport_aud"`
	TotalAUD         float64 `json:"total_aud"`
	DailyAvgAUD      float64 `json:"daily_avg_aud"`
	Currency         string  `json:"currency"`
}

func (r *Registry) estimateBudgetTool() (tool.InvokableTool, error) {
	return utils.InferTool(NameEstimateBudget,
		"Estimate the total AUD cost for a trip. Call this before build_itinerary to anchor real costs, and whenever the user asks whether their budget is achievable.",
		func(ctx context.Context, p budgetParams) (any, error) {
			dest, ok := r.store.ByID(p.DestinationID)
			if !ok {
				return errorResult{fmt.Sprintf("Destination '%s' not found.", p.DestinationID)}, nil
			}
			if p.Days < 1 {
				return errorResult{"days must be at least 1."}, nil
			}

			style := p.TravelStyle
			if style == "" {
				style = "mid-range"
			}
			multiplier, ok := styleMultiplier[style]
			if !ok {
				multiplier = 1.0
			}

			days := float64(p.Days)
			dailyBase := dest.AvgDailyCostUSD * multiplier * r.store.Rate()

			accommodation := round2(dailyBase * 0.40 * days)
			food := round2(dailyBase * 0.30 * days)
			transport := round2(dailyBase * 0.15 * days)
			activities := round2(dailyBase * 0.15 * days)
			flights := round2(dest.AvgFlightCostUSD * r.store.Rate())
			total := round2(flights + accommodation + food + transport + activities)

			return budgetBreakdown{
				Destination:      dest.Name,
				Days:             p.Days,
				TravelStyle:      style,
				FlightsAUD:       flights,
				AccommodationAUD: accommodation,
				FoodAUD:          food,
				ActivitiesAUD:    activities,
				TransportAUD:     transport,
				TotalAUD:         total,
				DailyAvgAUD:      round2((total - flights) / days),
				Currency:         "AUD",
			}, nil
		})
}

type itineraryParams struct {
	DestinationID string   `json:"destination_id" jsonschema:"description=The id from a search_destinations result"`
	Days          int      `json:"days" jsonschema:"description=Number of days in the itinerary"`
	Interests     []string `json:"interests" jsonschema:"description=Categories to prioritise when selecting activities"`
	TravelStyle   string   `json:"travel_style,omitempty" jsonschema:"description=Spending level: budget mid-range or luxury"`
}

type itineraryDay struct {
	DayNumber int      `json:"day_number"`
	Theme     string   `json:"theme"`
	Morning   string   `json:"morning"`
	Afternoon string   `json:"afternoon"`
	Evening   string   `json:"evening"`
	Tips      []string `json:"tips"`
}

type practicalInfo struct {
	VisaNotes   string   `json:"visa_notes"`
	Language    string   `json:"language"`
	Currency    string   `json:"currency"`
	BestSeasons []string `json:"best_seasons"`
}

type itineraryResult struct {
	Destination   string         `json:"destination"`
	Country       string         `json:"country"`
	DaysTotal     int            `json:"days_total"`
	TravelStyle   string         `json:"travel_style"`
	Itinerary     []itineraryDay `json:"itinerary"`
	PracticalInfo practicalInfo  `json:"practical_info"`
}

func (r *Registry) buildItineraryTool() (tool.InvokableTool, error) {
	return utils.InferTool(NameBuildItinerary,
		"Build a structured day-by-day itinerary. Call this last, after search_destinations, get_activities and estimate_budget, to produce the final schedule.",
		func(ctx context.Context, p itineraryParams) (any, error) {
			dest, ok := r.store.ByID(p.DestinationID)
			if !ok {
				return errorResult{fmt.Sprintf("Destination '%s' not found.", p.DestinationID)}, nil
			}
			if p.Days < 1 {
				return errorResult{"days must be at least 1."}, nil
			}

			activities := r.store.ActivitiesFor(p.DestinationID, p.Interests, 999)
			if len(activities) == 0 {
				return errorResult{fmt.Sprintf("No activities found for '%s'.", p.DestinationID)}, nil
			}

			style := p.TravelStyle
			if style == "" {
				style = "mid-range"
			}

			tips := dest.Tips
			if len(tips) > 2 {
				tips = tips[:2]
			}

			days := make([]itineraryDay, 0, p.Days)
			for dayNum := 1; dayNum <= p.Days; dayNum++ {
				// Slots cycle round-robin across all day×slot positions when
				// the catalogue is smaller than days*3.
				slot := func(i int) string {
					return r.renderSlot(activities[((dayNum-1)*3+i)%len(activities)])
				}
				first := activities[((dayNum-1)*3)%len(activities)]

				days = append(days, itineraryDay{
					DayNumber: dayNum,
					Theme:     capitalize(first.Category),
					Morning:   slot(0),
					Afternoon: slot(1),
					Evening:   slot(2),
					Tips:      tips,
				})
			}

			return itineraryResult{
				Destination: dest.Name,
				Country:     dest.Country,
				DaysTotal:   p.Days,
				TravelStyle: style,
				Itinerary:   days,
				PracticalInfo: practicalInfo{
					VisaNotes:   dest.VisaNotes,
					Language:    dest.Language,
					Currency:    dest.Currency,
					BestSeasons: dest.BestSeasons,
				},
			}, nil
		})
}

// renderSlot formats one scheduled activity with its converted cost.
func (r *Registry) renderSlot(a kb.Activity) string {
	cost := int(math.Round(a.CostUSD * r.store.Rate()))
	return fmt.Sprintf("%s (%s, ~%sh, A$%d)",
		a.Name, a.Category, strconv.FormatFloat(a.DurationHours, 'f', -1, 64), cost)
}

type listParams struct{}

// destinationSummary is one row of the full-catalogue listing.
type destinationSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	BudgetLevel string `json:"budget_level"`
	Description string `json:"description"`
}

func (r *Registry) listDestinationsTool() (tool.InvokableTool, error) {
	return utils.InferTool(NameListDestinations,
		"Return all destinations in the knowledge base. Use when the user asks about a destination not found by search_destinations, or asks what destinations are available.",
		func(ctx context.Context, _ listParams) (any, error) {
			all := r.store.All()
			summaries := make([]destinationSummary, 0, len(all))
			for _, d := range all {
				summaries = append(summaries, destinationSummary{
					ID:          d.ID,
					Name:        d.Name,
					Country:     d.Country,
					Region:      d.Region,
					BudgetLevel: d.BudgetLevel,
					Description: truncate(d.Description, 120) + "...",
				})
			}
			return summaries, nil
		})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func capitalize(s string) string {
	if s == "" {
		return "Exploration"
	}
	runes := []rune(s)
	if runes[0] >= 'a' && runes[0] <= 'z' {
		runes[0] -= 'a' - 'A'
	}
	return string(runes)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func errorJSON(msg string) string {
	out, err := sonic.MarshalString(errorResult{msg})
	if err != nil {
		return `{"error":"internal tool error"}`
	}
	return out
}
