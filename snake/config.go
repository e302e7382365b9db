package snake

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultWidth     = 640
	DefaultHeight    = 480
	DefaultBlockSize = 20
	DefaultReward    = 1
	DefaultPenalty   = 2

	// initialLength is the number of segments a new snake starts with.
	initialLength = 3

	// maxExtent bounds width and height so a wrapped coordinate, which can
	// reach one block past the far edge, still packs into an int32.
	maxExtent = math.MaxInt32
)

// ErrInvalidConfig is returned by Config.Validate and New for unusable board settings.
var ErrInvalidConfig = errors.New("snake: invalid config")

// Config describes the board and scoring rules of a game.
type Config struct {
	Width     int
	Height    int
	BlockSize int

	// Reward is added to the score when food is eaten.
	Reward int
	// Penalty is subtracted from the score when poison is eaten.
	Penalty int

	// Seed drives food and poison placement. Zero picks a seed from the clock.
	Seed uint64
}

// DefaultConfig returns the classic 640x480 board with 20px blocks.
func DefaultConfig() Config {
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		BlockSize: DefaultBlockSize,
		Reward:    DefaultReward,
		Penalty:   DefaultPenalty,
	}
}

// Columns returns the number of block-sized cells across the board.
func (c Config) Columns() int {
	return c.Width / c.BlockSize
}

// Rows returns the number of block-sized cells down the board.
func (c Config) Rows() int {
	return c.Height / c.BlockSize
}

// Validate checks that the board is block aligned and large enough for the
// starting snake.
func (c Config) Validate() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size %d must be positive", ErrInvalidConfig, c.BlockSize)
	}
	if c.Width <= 0 || c.Width%c.BlockSize != 0 {
		return fmt.Errorf("%w: width %d is not a positive multiple of block size %d", ErrInvalidConfig, c.Width, c.BlockSize)
	}
	if c.Height <= 0 || c.Height%c.BlockSize != 0 {
		return fmt.Errorf("%w: height %d is not a positive multiple of block size %d", ErrInvalidConfig, c.Height, c.BlockSize)
	}
	if c.Width > maxExtent-c.BlockSize || c.Height > maxExtent-c.BlockSize {
		return fmt.Errorf("%w: board %dx%d exceeds %d pixels per side", ErrInvalidConfig, c.Width, c.Height, maxExtent-c.BlockSize)
	}
	// The tail of the starting snake sits initialLength-1 cells left of centre.
	if c.Columns()/2 < initialLength-1 {
		return fmt.Errorf("%w: board needs at least %d columns, got %d", ErrInvalidConfig, 2*(initialLength-1), c.Columns())
	}
	if c.Reward <= 0 {
		return fmt.Errorf("%w: reward %d must be positive", ErrInvalidConfig, c.Reward)
	}
	if c.Penalty <= 0 {
		return fmt.Errorf("%w: penalty %d must be positive", ErrInvalidConfig, c.Penalty)
	}
	return nil
}
