package holdem

// Error is an engine error that is safe to return to the acting player.
// A failed command never mutates table state.
type Error string

func (e Error) Error() string {
	return string(e)
}

// join errors
const (
	ErrTableFull    Error = "table is full"
	ErrInvalidBuyIn Error = "invalid buy-in amount"
	ErrSeatTaken    Error = "seat is already taken"
)

// action precondition errors
const (
	ErrPlayerNotFound Error = "player not found"
	ErrNotYourTurn    Error = "it is not your turn"
	ErrInvalidPhase   Error = "not in a betting phase"
)

// action legality errors
const (
	ErrBelowMinimumRaise      Error = "bet or raise is below the minimum"
	ErrInsufficientChips      Error = "not enough chips"
	ErrMaxRaisesReached       Error = "maximum raises reached for this round"
	ErrNoBetToCall            Error = "there is no bet to call"
	ErrCannotCheckWithOpenBet Error = "cannot check when there is a bet"
	ErrAmountRequired         Error = "an amount is required for a bet or raise"
)

// lifecycle errors
const (
	ErrNotEnoughPlayers Error = "not enough players to start a hand"
	ErrHandInProgress   Error = "a hand is already in progress"
)
