package storage

import (
	"time"

	"github.com/google/uuid"
)

// Game represents a chess game.
type Game struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug        string    `gorm:"index"`
	FEN         string
	PGN         string
	Status      string
	Active      bool `gorm:"index"`
	Resets      int
	CompletedAt *time.Time
	LastSeen    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Moves       []Move `gorm:"constraint:OnDelete:CASCADE;"`
}

// Move stores a single committed move in a game.
type Move struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_game_number"`
	Number    int       `gorm:"uniqueIndex:idx_game_number"`
	From      string    `gorm:"size:2"`
	To        string    `gorm:"size:2"`
	Kind      string
	Promotion string `gorm:"size:1"`
	Color     string
	CreatedAt time.Time
}

// UCI renders the stored move in UCI notation
func (m Move) UCI() string {
	return m.From + m.To + m.Promotion
}
