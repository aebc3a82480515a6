// Package profiles holds the authored descriptions attached to each cluster
// label: display name, narrative, risk tier, color, and recommended strategies.
package profiles

// Risk tiers a profile may declare.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// Profile is the static description of one cluster.
type Profile struct {
	ID          int      `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	RiskTier    string   `yaml:"risk_tier" json:"risk_tier"`
	Color       string   `yaml:"color" json:"color"`
	Strategies  []string `yaml:"strategies" json:"strategies"`
}

func validRisk(tier string) bool {
	switch tier {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	}
	return false
}
