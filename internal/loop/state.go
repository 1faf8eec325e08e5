package loop

// GameState represents the current phase of a game.
type GameState int

const (
	StateRunning  GameState = iota // Active gameplay
	StateGameOver                  // Player was hit, waiting for restart
)

func (s GameState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// CanTransition reports whether the scheduler may move from s to next.
// The only legal moves are Running to GameOver and back.
func (s GameState) CanTransition(next GameState) bool {
	switch s {
	case StateRunning:
		return next == StateGameOver
	case StateGameOver:
		return next == StateRunning
	default:
		return false
	}
}
