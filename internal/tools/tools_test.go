package tools_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/kb"
	"tripplanner/internal/tools"
)

const testCatalogue = `[
  {
    "id": "alpha",
    "name": "Alpha",
    "country": "Japan",
    "region": "asia",
    "description": "` + longDescription + `",
    "budget_level": "budget",
    "avg_daily_cost_usd": 100,
    "avg_flight_cost_usd": 1000,
    "best_seasons": ["spring"],
    "visa_notes": "Visa-free.",
    "language": "Japanese",
    "currency": "JPY",
    "tips": ["Carry cash", "Buy a rail pass", "Book early"],
    "activities": [
      {"name": "Temple walk", "category": "culture", "duration_hours": 3, "cost_usd": 10, "description": "Old temples."},
      {"name": "Night market", "category": "food", "duration_hours": 2.5, "cost_usd": 20, "description": "Street food."}
    ]
  },
  {
    "id": "bare",
    "name": "Bare",
    "country": "Nowhere",
    "region": "asia",
    "description": "Nothing to do.",
    "budget_level": "budget",
    "avg_daily_cost_usd": 50,
    "avg_flight_cost_usd": 500,
    "best_seasons": ["summer"],
    "visa_notes": "None.",
    "language": "None",
    "currency": "USD",
    "tips": [],
    "activities": []
  }
]`

const longDescription = "A very long description that keeps going well past the one hundred and twenty character mark so the listing code has something real to cut short for display."

func newRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	store, err := kb.NewStoreFromJSON([]byte(testCatalogue), 2.0)
	require.NoError(t, err)
	r, err := tools.NewRegistry(store)
	require.NoError(t, err)
	return r
}

func run(t *testing.T, r *tools.Registry, name, args string) map[string]any {
	t.Helper()
	out := r.Run(context.Background(), name, args)
	var m map[string]any
	require.NoError(t, sonic.Unmarshal([]byte(out), &m), "tool output: %s", out)
	return m
}

func runList(t *testing.T, r *tools.Registry, name, args string) []map[string]any {
	t.Helper()
	out := r.Run(context.Background(), name, args)
	var l []map[string]any
	require.NoError(t, sonic.Unmarshal([]byte(out), &l), "tool output: %s", out)
	return l
}

func TestRegistry_Infos(t *testing.T) {
	r := newRegistry(t)

	infos, err := r.Infos(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 5)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{
		tools.NameSearchDestinations,
		tools.NameGetActivities,
		tools.NameEstimateBudget,
		tools.NameBuildItinerary,
		tools.NameListDestinations,
	}, names)
}

func TestRun_UnknownTool(t *testing.T) {
	r := newRegistry(t)

	m := run(t, r, "teleport", `{}`)
	assert.Contains(t, m["error"], "Unknown tool")
}

func TestSearchDestinations_NoMatches(t *testing.T) {
	r := newRegistry(t)

	m := run(t, r, tools.NameSearchDestinations, `{"interests":["nightlife"]}`)
	assert.Contains(t, m["error"], "No destinations matched")
}

func TestSearchDestinations_ReturnsScoredResults(t *testing.T) {
	r := newRegistry(t)

	l := runList(t, r, tools.NameSearchDestinations, `{"interests":["culture"],"season":"spring"}`)
	require.Len(t, l, 1)
	assert.Equal(t, "alpha", l[0]["id"])
	assert.Equal(t, float64(200), l[0]["avg_daily_cost_aud"])
}

func TestEstimateBudget_ComponentsSumToTotal(t *testing.T) {
	r := newRegistry(t)

	m := run(t, r, tools.NameEstimateBudget, `{"destination_id":"alpha","days":5,"travel_style":"budget"}`)

	// daily base = 100 USD * 0.7 * 2.0 = 140 AUD.
	assert.Equal(t, float64(280), m["accommodation_aud"]) // 40% * 5 days
	assert.Equal(t, float64(210), m["food_aud"])          // 30%
	assert.Equal(t, float64(105), m["transport_aud"])     // 15%
	assert.Equal(t, float64(105), m["activities_aud"])    // 15%
	assert.Equal(t, float64(2000), m["flights_aud"])

	sum := m["flights_aud"].(float64) + m["accommodation_aud"].(float64) +
		m["food_aud"].(float64) + m["activities_aud"].(float64) + m["transport_aud"].(float64)
	assert.Equal(t, sum, m["total_aud"])

	// Daily average excludes flights: 700 / 5.
	assert.Equal(t, float64(140), m["daily_avg_aud"])
	assert.Equal(t, "AUD", m["currency"])
}

func TestEstimateBudget_DefaultsToMidRange(t *testing.T) {
	r := newRegistry(t)

	m := run(t, r, tools.NameEstimateBudget, `{"destination_id":"alpha","days":2}`)
	assert.Equal(t, "mid-range", m["travel_style"])

	unknown := run(t, r, tools.NameEstimateBudget, `{"destination_id":"alpha","days":2,"travel_style":"opulent"}`)
	// Unknown style keeps the 1.0 multiplier.
	assert.Equal(t, m["total_aud"], unknown["total_aud"])
}

func TestEstimateBudget_InvalidInput(t *testing.T) {
	r := newRegistry(t)

	m := run(t, r, tools.NameEstimateBudget, `{"destination_id":"alpha","days":0}`)
	assert.Contains(t, m["error"], "days")

	m = run(t, r, tools.NameEstimateBudget, `{"destination_id":"atlantis","days":3}`)
	assert.Contains(t, m["error"], "not found")
}

func TestBuildItinerary_CyclesActivities(t *testing.T) {
	r := newRegistry(t)

	m := run(t, r, tools.NameBuildItinerary,
		`{"destination_id":"alpha","days":3,"interests":["culture"]}`)

	days, ok := m["itinerary"].([]any)
	require.True(t, ok)
	require.Len(t, days, 3)

	// Two activities cycle through nine slots, so each day repeats them.
	templeSlots := 0
	for _, d := range days {
		day := d.(map[string]any)
		for _, slot := range []string{"morning", "afternoon", "evening"} {
			text := day[slot].(string)
			if strings.HasPrefix(text, "Temple walk") {
				templeSlots++
			}
		}
		tips := day["tips"].([]any)
		assert.LessOrEqual(t, len(tips), 2)
	}
	assert.GreaterOrEqual(t, templeSlots, 3)

	day1 := days[0].(map[string]any)
	assert.Equal(t, float64(1), day1["day_number"])
	assert.Equal(t, "Culture", day1["theme"])
	// Cost is converted at the store rate: 10 USD * 2.0.
	assert.Equal(t, "Temple walk (culture, ~3h, A$20)", day1["morning"])
	assert.Equal(t, "Night market (food, ~2.5h, A$40)", day1["afternoon"])

	practical := m["practical_info"].(map[string]any)
	assert.Equal(t, "Japanese", practical["language"])
}

func TestBuildItinerary_Deterministic(t *testing.T) {
	r := newRegistry(t)
	args := `{"destination_id":"alpha","days":2,"interests":["food"]}`

	first := r.Run(context.Background(), tools.NameBuildItinerary, args)
	second := r.Run(context.Background(), tools.NameBuildItinerary, args)
	assert.Equal(t, first, second)
}

func TestBuildItinerary_NoActivities(t *testing.T) {
	r := newRegistry(t)

	m := run(t, r, tools.NameBuildItinerary, `{"destination_id":"bare","days":2,"interests":[]}`)
	assert.Contains(t, m["error"], "No activities")
}

func TestGetActivities_DefaultDays(t *testing.T) {
	r := newRegistry(t)

	l := runList(t, r, tools.NameGetActivities, `{"destination_id":"alpha","interests":["food"]}`)
	require.Len(t, l, 2)
	assert.Equal(t, "Night market", l[0]["name"])
}

func TestListDestinations_TruncatesDescriptions(t *testing.T) {
	r := newRegistry(t)

	l := runList(t, r, tools.NameListDestinations, `{}`)
	require.Len(t, l, 2)

	desc := l[0]["description"].(string)
	assert.True(t, strings.HasSuffix(desc, "..."))
	assert.LessOrEqual(t, len([]rune(desc)), 123)
	assert.True(t, strings.HasPrefix(longDescription, strings.TrimSuffix(desc, "...")))
}
