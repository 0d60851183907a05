package apperror

import "errors"

// Rule violations. These reject the offending action and return control to
// the decision point; they never end a game.
var (
	ErrAlreadyMortgaged        = errors.New("asset is already mortgaged")
	ErrNotMortgaged            = errors.New("asset is not mortgaged")
	ErrGroupHasImprovements    = errors.New("group has improvements")
	ErrGroupMortgaged          = errors.New("group has a mortgaged asset")
	ErrIncompleteGroup         = errors.New("owner does not hold the full group")
	ErrUnevenBuilding          = errors.New("improvements must be spread evenly across a group")
	ErrAtMaximum               = errors.New("asset is at maximum improvement")
	ErrImprovementNotSupported = errors.New("asset cannot be improved")
	ErrNotOwned                = errors.New("asset is not owned")
)

// Funds and bankruptcy.
var (
	// ErrInsufficientFunds means a payment cannot be covered by the current
	// balance. Inside the engine it routes into the liquidation protocol.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsolvent is terminal for a player: liquidation found nothing left
	// to raise. The turn controller answers it with bankruptcy finalization.
	ErrInsolvent = errors.New("player is insolvent")
)

// Decisions and game lifecycle.
var (
	// ErrInvalidDecision marks a malformed strategy response; the engine
	// re-prompts the strategy.
	ErrInvalidDecision = errors.New("invalid strategy decision")

	// ErrGameExited is returned by a strategy to abandon the game. It unwinds
	// the turn loop without altering ledger state already committed.
	ErrGameExited = errors.New("game exited by player")

	ErrGameFinished = errors.New("game is already finished")

	// ErrLoadValidation marks a structurally or semantically inconsistent
	// persisted snapshot. The game does not start from such a snapshot.
	ErrLoadValidation = errors.New("snapshot failed validation")
)
