package core

// RuntimeConfig contains the platform parameters a game is started with.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed, 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 30 ticks/s.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}
