package domain

// StrategyThreshold is the rule-based threshold strategy kind. The set of
// kinds is closed: agent creation rejects anything else.
const StrategyThreshold = "threshold"

// StrategyConfig selects and parameterizes an agent's strategy. Zero-value
// thresholds take the kind's defaults at construction.
type StrategyConfig struct {
	Kind          string  `yaml:"kind"`
	BuyThreshold  float64 `yaml:"buy_threshold"`
	SellThreshold float64 `yaml:"sell_threshold"`
	MinBalance    float64 `yaml:"min_balance"`
}
