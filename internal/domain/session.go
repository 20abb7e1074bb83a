package domain

// GameState is a node of the session state machine
type GameState string

const (
	StateWelcome    GameState = "WELCOME"
	StateDashboard  GameState = "DASHBOARD"
	StateSpinning   GameState = "SPINNING"
	StateScratching GameState = "SCRATCHING"
	StateResult     GameState = "RESULT"
	StateAdmin      GameState = "ADMIN"
)

// GameMode distinguishes the two ways of playing
type GameMode string

const (
	ModeSpin    GameMode = "spin"
	ModeScratch GameMode = "scratch"
)
