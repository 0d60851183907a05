package entity

// Snapshot is the full persistable image of a game. A round-trip through
// the persistence collaborator must reproduce an equivalent game: same
// balances, ownership, improvements, deck remainders and turn order.
type Snapshot struct {
	ID        string           `json:"id"`
	Turn      int              `json:"turn"`
	TurnTotal int              `json:"turn_total"`
	Players   []PlayerSnapshot `json:"players"`
	Lost      []PlayerSnapshot `json:"lost,omitempty"`
	Assets    []AssetSnapshot  `json:"assets"`
	Chance    []int            `json:"chance"`
	Chest     []int            `json:"chest"`
}

// PlayerSnapshot carries one player's scalar state. Holdings are derived
// from the asset snapshots on restore.
type PlayerSnapshot struct {
	Name            string `json:"name"`
	TurnIndex       int    `json:"turn_index"`
	Position        int    `json:"position"`
	Balance         int    `json:"balance"`
	ChanceJailCards int    `json:"chance_jail_cards"`
	ChestJailCards  int    `json:"chest_jail_cards"`
	InJail          bool   `json:"in_jail"`
	JailTurns       int    `json:"jail_turns"`
	DoublesCount    int    `json:"doubles_count"`
}

// AssetSnapshot carries the mutable fields of one board asset. An empty
// owner means bank-owned.
type AssetSnapshot struct {
	Position     int    `json:"position"`
	Owner        string `json:"owner,omitempty"`
	Improvements int    `json:"improvements"`
	Mortgaged    bool   `json:"mortgaged"`
	ExtraCharge  bool   `json:"extra_charge,omitempty"`
}
