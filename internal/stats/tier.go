package stats

const (
	tierSilverLevel  = 5
	tierGoldLevel    = 10
	tierDiamondLevel = 20
)

// Tier is a cosmetic banding of level used for display and for synthesized
// leaderboard entries.
type Tier struct {
	Name  string `json:"name"`
	Color string `json:"color"`

	// NextTierLevel is the level at which the next band starts, 0 at the top.
	NextTierLevel int `json:"nextTierLevel,omitempty"`
}

func TierFor(level int) Tier {
	switch {
	case level >= tierDiamondLevel:
		return Tier{Name: "Diamond", Color: "cyan"}
	case level >= tierGoldLevel:
		return Tier{Name: "Gold", Color: "amber", NextTierLevel: tierDiamondLevel}
	case level >= tierSilverLevel:
		return Tier{Name: "Silver", Color: "slate", NextTierLevel: tierGoldLevel}
	default:
		return Tier{Name: "Bronze", Color: "orange", NextTierLevel: tierSilverLevel}
	}
}
