package player

import "time"

const (
	ItemThemeNebula = "theme_nebula"
	ItemThemeAurora = "theme_aurora"
	ItemFrameGold   = "frame_gold"
	ItemFrameNeon   = "frame_neon"
	ItemBooster2x   = "booster_2x"
)

const (
	kindTheme   = "theme"
	kindAvatar  = "avatar"
	kindBooster = "booster"
)

const boosterDuration = 24 * time.Hour

// CoinsPerCompletion is the coin drop for each completed task. The 2x
// booster doubles it while active.
const CoinsPerCompletion = 5

type ShopItem struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Value       string `json:"value,omitempty"`
}

// ShopCatalog is the fixed coin-priced cosmetic catalog. Premium is not
// listed here: it is granted through the payment approval flow, never bought
// with coins.
var ShopCatalog = []ShopItem{
	{ID: ItemThemeNebula, Type: kindTheme, Title: "Nebula Theme", Description: "Deep purple hues.", Cost: 300, Value: "nebula"},
	{ID: ItemThemeAurora, Type: kindTheme, Title: "Aurora Theme", Description: "Shifting greens.", Cost: 500, Value: "aurora"},
	{ID: ItemFrameNeon, Type: kindAvatar, Title: "Neon Ring", Description: "Stand out in the feed.", Cost: 750, Value: "ring-neon"},
	{ID: ItemFrameGold, Type: kindAvatar, Title: "Golden Halo", Description: "Shine on the leaderboard.", Cost: 1000, Value: "ring-gold"},
	{ID: ItemBooster2x, Type: kindBooster, Title: "2x Booster", Description: "Double coin drops for 24h.", Cost: 400},
}

func catalogItem(id string) (ShopItem, bool) {
	for _, item := range ShopCatalog {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}

// UserState is the durable per-user wallet and cosmetics state. Readers must
// tolerate missing keys: every field defaults to its zero value.
type UserState struct {
	BonusPoints   int             `json:"bonusPoints"`
	Coins         int             `json:"coins"`
	Unlocked      map[string]bool `json:"unlocked,omitempty"`
	ActiveTheme   string          `json:"activeTheme,omitempty"`
	ActiveFrame   string          `json:"activeFrame,omitempty"`
	BoosterExpiry int64           `json:"boosterExpiry,omitempty"` // unix seconds
	Pro           bool            `json:"pro,omitempty"`
	LastSpinDate  string          `json:"lastSpinDate,omitempty"`
}

type fileState struct {
	Users map[string]UserState `json:"users"`
}

func defaultUserState() UserState {
	return UserState{
		Unlocked: map[string]bool{},
	}
}

func normalizeUserState(s UserState) UserState {
	if s.Unlocked == nil {
		s.Unlocked = map[string]bool{}
	}
	return s
}

func cloneUserState(s UserState) UserState {
	out := s
	out.Unlocked = make(map[string]bool, len(s.Unlocked))
	for k, v := range s.Unlocked {
		out.Unlocked[k] = v
	}
	return out
}

func (s UserState) BoosterActive(now time.Time) bool {
	return s.BoosterExpiry > now.Unix()
}

type StateResponse struct {
	UserState
	Catalog []ShopItem `json:"catalog"`
}
