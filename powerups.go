package main

// PowerUp is a per-round, per-player consumable. The engine records usage
// and reports the effect description; actually enforcing the effect (timers,
// visibility) is left to the clients driving the game.
type PowerUp struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Type        string `json:"type"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"`
	Points      int    `json:"points"`
}

var powerUpTable = []PowerUp{
	{
		ID:          "double_down",
		Name:        "Double Down",
		Icon:        "2️⃣",
		Description: "Double points for next prediction",
		Cost:        1,
		Type:        "strategic",
	},
	{
		ID:          "spy_mode",
		Name:        "Spy Mode",
		Icon:        "👁️",
		Description: "See other team's discussion for 30 seconds",
		Cost:        2,
		Type:        "strategic",
	},
	{
		ID:          "steal",
		Name:        "Steal",
		Icon:        "💰",
		Description: "Take the other team's points if they get it wrong",
		Cost:        2,
		Type:        "strategic",
	},
	{
		ID:          "chaos_card",
		Name:        "Chaos Card",
		Icon:        "🎲",
		Description: "Random effect that changes the game",
		Cost:        1,
		Type:        "chaos",
	},
	{
		ID:          "time_freeze",
		Name:        "Time Freeze",
		Icon:        "⏰",
		Description: "Get extra 30 seconds to discuss",
		Cost:        1,
		Type:        "strategic",
	},
	{
		ID:          "meme_bomb",
		Name:        "Meme Bomb",
		Icon:        "💣",
		Description: "Insert trending meme into current question",
		Cost:        1,
		Type:        "chaos",
	},
}

func powerUpByID(id string) (PowerUp, bool) {
	for _, p := range powerUpTable {
		if p.ID == id {
			return p, true
		}
	}

	return PowerUp{}, false
}

var achievementTable = []Achievement{
	{
		ID:          "mind_reader",
		Name:        "Mind Reader",
		Description: "Predict 10 #1 answers in a row",
		Icon:        "🧠",
		Rarity:      "rare",
		Points:      100,
	},
	{
		ID:          "friendship_destroyer",
		Name:        "Friendship Destroyer",
		Description: "Cause 10 arguments in friend group",
		Icon:        "💀",
		Rarity:      "epic",
		Points:      200,
	},
	{
		ID:          "meme_lord",
		Name:        "Meme Lord",
		Description: "Create 25 viral moments",
		Icon:        "👑",
		Rarity:      "legendary",
		Points:      500,
	},
	{
		ID:          "clutch_player",
		Name:        "Clutch Player",
		Description: "Win 5 games in final round",
		Icon:        "🔥",
		Rarity:      "rare",
		Points:      150,
	},
}
