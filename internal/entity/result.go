package entity

// Result records the outcome of a finished game.
type Result struct {
	GameID string `json:"game_id"`
	Winner string `json:"winner"`
	Turns  int    `json:"turns"`
}
