package layout

import (
	"strings"
	"unicode"
)

// Agent identifies a known agent kind with a hand-tuned layout.
type Agent int

const (
	AgentGeneric Agent = iota
	AgentHarvester
	AgentTrendAnalyst
	AgentForecaster
	AgentOptimizer
	AgentOrderManager
	AgentNotifier
	AgentVisualizer
)

// Agents lists every agent kind, generic first.
var Agents = []Agent{
	AgentGeneric, AgentHarvester, AgentTrendAnalyst, AgentForecaster,
	AgentOptimizer, AgentOrderManager, AgentNotifier, AgentVisualizer,
}

// String returns the normalized name matched by ParseAgent.
func (a Agent) String() string {
	switch a {
	case AgentHarvester:
		return "dataharvester"
	case AgentTrendAnalyst:
		return "trendanalyst"
	case AgentForecaster:
		return "forecaster"
	case AgentOptimizer:
		return "mctsoptimizer"
	case AgentOrderManager:
		return "ordermanager"
	case AgentNotifier:
		return "notifier"
	case AgentVisualizer:
		return "visualizer"
	default:
		return "generic"
	}
}

// NormalizeAgent lowercases name and strips underscores, hyphens and
// whitespace: "Data_Harvester", "data-harvester" and "data harvester" all
// normalize to "dataharvester".
func NormalizeAgent(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

// ParseAgent maps a free-form agent name to its kind. Unknown or empty
// names are AgentGeneric.
func ParseAgent(name string) Agent {
	switch NormalizeAgent(name) {
	case "dataharvester":
		return AgentHarvester
	case "trendanalyst":
		return AgentTrendAnalyst
	case "forecaster":
		return AgentForecaster
	case "mctsoptimizer":
		return AgentOptimizer
	case "ordermanager":
		return AgentOrderManager
	case "notifier":
		return AgentNotifier
	case "visualizer":
		return AgentVisualizer
	default:
		return AgentGeneric
	}
}
