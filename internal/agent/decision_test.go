package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripplanner/internal/agent"
	"tripplanner/internal/tools"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name    string
		results []string
		message string
		want    agent.Decision
	}{
		{
			name:    "first pass always forced",
			results: nil,
			message: "plan me a trip to Japan",
			want:    agent.DecisionForce,
		},
		{
			name:    "itinerary built means compose",
			results: []string{tools.NameSearchDestinations, tools.NameEstimateBudget, tools.NameGetActivities, tools.NameBuildItinerary},
			message: "plan me a trip to Japan",
			want:    agent.DecisionFree,
		},
		{
			name:    "only list tool fired means non-travel turn",
			results: []string{tools.NameListDestinations},
			message: "hi there",
			want:    agent.DecisionFree,
		},
		{
			name:    "two searches without budget is a comparison",
			results: []string{tools.NameSearchDestinations, tools.NameSearchDestinations},
			message: "Tokyo vs Kyoto?",
			want:    agent.DecisionFree,
		},
		{
			name:    "budget without activities continues a full plan",
			results: []string{tools.NameSearchDestinations, tools.NameEstimateBudget},
			message: "plan me 5 days in Kyoto",
			want:    agent.DecisionForce,
		},
		{
			name:    "budget without activities answers a feasibility question",
			results: []string{tools.NameSearchDestinations, tools.NameEstimateBudget},
			message: "Can I do Kyoto for under A$3,000?",
			want:    agent.DecisionFree,
		},
		{
			name:    "feasibility keyword is case insensitive",
			results: []string{tools.NameSearchDestinations, tools.NameEstimateBudget},
			message: "IS IT POSSIBLE on my savings?",
			want:    agent.DecisionFree,
		},
		{
			name:    "safety cap stops forcing after five results",
			results: []string{tools.NameSearchDestinations, tools.NameGetActivities, tools.NameGetActivities, tools.NameGetActivities, tools.NameGetActivities},
			message: "plan me a trip",
			want:    agent.DecisionFree,
		},
		{
			name:    "mid sequence keeps forcing",
			results: []string{tools.NameSearchDestinations},
			message: "plan me a trip to Japan",
			want:    agent.DecisionForce,
		},
		{
			name:    "list tool plus search is not a non-travel turn",
			results: []string{tools.NameListDestinations, tools.NameSearchDestinations},
			message: "what about Fiji?",
			want:    agent.DecisionForce,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, agent.Decide(tc.results, tc.message))
		})
	}
}
