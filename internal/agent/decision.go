package agent

import (
	"strings"

	"tripplanner/internal/tools"
)

// Decision selects the tool-choice mode for the next model pass.
type Decision int

const (
	// DecisionForce requires the model to call at least one tool.
	DecisionForce Decision = iota
	// DecisionFree forbids tool calls so the model composes its answer.
	DecisionFree
)

// toolResultCap stops forcing tools if something unexpected loops.
const toolResultCap = 5

// feasibilityKeywords mark a budget feasibility question, which is answered
// directly from estimate_budget without the full planning sequence.
var feasibilityKeywords = []string{
	"can i", "how much", "afford", "under a$", "within my budget",
	"is it possible", "enough for", "feasible", "fit in my", "fit within",
}

// Decide picks the mode for the next pass from the tool results produced so
// far this turn (in execution order) and the user's message. The first pass
// of every turn is forced so the model cannot answer travel questions from
// its training data.
func Decide(resultNames []string, userMessage string) Decision {
	if len(resultNames) == 0 {
		return DecisionForce
	}

	called := make(map[string]bool, len(resultNames))
	destSearches := 0
	for _, name := range resultNames {
		called[name] = true
		if name == tools.NameSearchDestinations {
			destSearches++
		}
	}

	switch {
	case called[tools.NameBuildItinerary]:
		// All four planning tools are done.
		return DecisionFree

	case len(called) == 1 && called[tools.NameListDestinations]:
		// Non-travel or greeting turn: the mandatory tool fired, compose.
		return DecisionFree

	case destSearches >= 2 && !called[tools.NameEstimateBudget]:
		// Two destination lookups with no budget is a comparison question.
		return DecisionFree

	case called[tools.NameEstimateBudget] && !called[tools.NameGetActivities]:
		// Exit early only for feasibility questions; full plans continue on
		// to get_activities.
		if isFeasibility(userMessage) {
			return DecisionFree
		}
		return DecisionForce

	case len(resultNames) >= toolResultCap:
		return DecisionFree

	default:
		return DecisionForce
	}
}

func isFeasibility(userMessage string) bool {
	text := strings.ToLower(userMessage)
	for _, kw := range feasibilityKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
