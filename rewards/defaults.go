package rewards

// Surface names for the configured draw tables
const (
	SurfaceCase     = "case"
	SurfaceRoulette = "roulette"
)

// DefaultCaseRewards is the Gift Box case table
var DefaultCaseRewards = []Reward{
	{Type: "bear", Name: "Bear", Emoji: "🧸", Price: 15, Chance: 35},
	{Type: "heart", Name: "Heart", Emoji: "💝", Price: 15, Chance: 35},
	{Type: "rose", Name: "Rose", Emoji: "🌹", Price: 25, Chance: 7.5},
	{Type: "gift", Name: "Gift", Emoji: "🎁", Price: 25, Chance: 7.5},
	{Type: "rocket", Name: "Rocket", Emoji: "🚀", Price: 50, Chance: 5},
	{Type: "champagne", Name: "Champagne", Emoji: "🍾", Price: 50, Chance: 5},
	{Type: "trophy", Name: "Trophy", Emoji: "🏆", Price: 100, Chance: 2.5},
	{Type: "ring", Name: "Ring", Emoji: "💍", Price: 100, Chance: 2.5},
}

// DefaultRouletteRewards is the roulette table. The top prize displaces one
// percent of chance spread evenly across the two cheapest entries.
var DefaultRouletteRewards = []Reward{
	{Type: "bear", Name: "Bear", Emoji: "🧸", Price: 15, Chance: 34.5},
	{Type: "heart", Name: "Heart", Emoji: "💝", Price: 15, Chance: 34.5},
	{Type: "rose", Name: "Rose", Emoji: "🌹", Price: 25, Chance: 7.5},
	{Type: "gift", Name: "Gift", Emoji: "🎁", Price: 25, Chance: 7.5},
	{Type: "rocket", Name: "Rocket", Emoji: "🚀", Price: 50, Chance: 5},
	{Type: "champagne", Name: "Champagne", Emoji: "🍾", Price: 50, Chance: 5},
	{Type: "trophy", Name: "Trophy", Emoji: "🏆", Price: 100, Chance: 2.5},
	{Type: "ring", Name: "Ring", Emoji: "💍", Price: 100, Chance: 2.5},
	{Type: "nft", Name: "Random NFT Gift", Emoji: "❔", Price: 500, Chance: 1},
}

// DefaultCaseTable builds the validated Gift Box table
func DefaultCaseTable() (*Table, error) {
	return NewTable(SurfaceCase, DefaultCaseRewards)
}

// DefaultRouletteTable builds the validated roulette table
func DefaultRouletteTable() (*Table, error) {
	return NewTable(SurfaceRoulette, DefaultRouletteRewards)
}
