package simulation

import "strings"

// Scenario is a stress regime expressed as a volatility multiplier
type Scenario string

const (
	ScenarioNormal   Scenario = "NORMAL"
	ScenarioCrisis   Scenario = "CRISIS"
	ScenarioPandemic Scenario = "PANDEMIC"
)

var scenarioMultipliers = map[Scenario]float64{
	ScenarioNormal:   1.0,
	ScenarioCrisis:   2.5,
	ScenarioPandemic: 4.0,
}

var scenarioAliases = map[string]Scenario{
	"":         ScenarioNormal,
	"NORMAL":   ScenarioNormal,
	"CRISIS":   ScenarioCrisis,
	"CRISE":    ScenarioCrisis,
	"PANDEMIC": ScenarioPandemic,
	"PANDEMIA": ScenarioPandemic,
}

// ParseScenario resolves a scenario name. An empty name is Normal.
func ParseScenario(s string) (Scenario, bool) {
	sc, ok := scenarioAliases[strings.ToUpper(strings.TrimSpace(s))]
	return sc, ok
}

// Multiplier returns the volatility multiplier. Unknown scenarios are Normal.
func (s Scenario) Multiplier() float64 {
	if m, ok := scenarioMultipliers[s]; ok {
		return m
	}
	return 1.0
}

// Apply scales an annual volatility by the scenario multiplier
func (s Scenario) Apply(volatility float64) float64 {
	return volatility * s.Multiplier()
}

// ScenarioInfo describes a scenario for listing
type ScenarioInfo struct {
	Name       Scenario `json:"name" msgpack:"name"`
	Multiplier float64  `json:"multiplier" msgpack:"multiplier"`
}

// Scenarios lists the stress scenarios from mildest to most severe
func Scenarios() []ScenarioInfo {
	return []ScenarioInfo{
		{Name: ScenarioNormal, Multiplier: ScenarioNormal.Multiplier()},
		{Name: ScenarioCrisis, Multiplier: ScenarioCrisis.Multiplier()},
		{Name: ScenarioPandemic, Multiplier: ScenarioPandemic.Multiplier()},
	}
}
