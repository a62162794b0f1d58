package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps a gorm DB instance and journals games and their moves.
// A nil *Store is valid and does nothing.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store helper from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// DB exposes the underlying gorm DB instance.
func (s *Store) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// ErrNotFound is returned when a record is not found.
var ErrNotFound = gorm.ErrRecordNotFound

// GameStateUpdate represents a partial update to a game row.
type GameStateUpdate struct {
	FEN         *string
	PGN         *string
	Status      *string
	Active      *bool
	LastSeen    *time.Time
	CompletedAt *time.Time
}

// CreateGame inserts a new game, doing nothing when it already exists.
func (s *Store) CreateGame(ctx context.Context, id uuid.UUID, slug string, lastSeen time.Time) error {
	if s == nil {
		return nil
	}
	game := Game{
		ID:       id,
		Slug:     slug,
		Active:   true,
		LastSeen: lastSeen,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&game).Error
}

// SaveGameState applies partial updates to the game row.
func (s *Store) SaveGameState(ctx context.Context, id uuid.UUID, upd GameStateUpdate) error {
	if s == nil {
		return nil
	}
	updates := make(map[string]any)
	if upd.FEN != nil {
		updates["fen"] = *upd.FEN
	}
	if upd.PGN != nil {
		updates["pgn"] = *upd.PGN
	}
	if upd.Status != nil {
		updates["status"] = *upd.Status
	}
	if upd.Active != nil {
		updates["active"] = *upd.Active
	}
	if upd.LastSeen != nil {
		updates["last_seen"] = *upd.LastSeen
	}
	if upd.CompletedAt != nil {
		updates["completed_at"] = *upd.CompletedAt
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Game{}).Where("id = ?", id).Updates(updates).Error
}

// RecordMove inserts a move row for the given game.
func (s *Store) RecordMove(ctx context.Context, gameID uuid.UUID, number int, from, to, kind, promotion, color string) error {
	if s == nil {
		return nil
	}
	move := Move{
		GameID:    gameID,
		Number:    number,
		From:      from,
		To:        to,
		Kind:      kind,
		Promotion: promotion,
		Color:     color,
	}
	return s.db.WithContext(ctx).Create(&move).Error
}

// TruncateMoves deletes journaled moves numbered above keep
func (s *Store) TruncateMoves(ctx context.Context, gameID uuid.UUID, keep int) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("game_id = ? AND number > ?", gameID, keep).Delete(&Move{}).Error
}

// ResetGame drops the journaled moves of a game and reopens it at fen.
func (s *Store) ResetGame(ctx context.Context, id uuid.UUID, fen string) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&Move{}).Error; err != nil {
			return err
		}
		return tx.Model(&Game{}).Where("id = ?", id).Updates(map[string]any{
			"fen":          fen,
			"pgn":          "",
			"status":       "",
			"active":       true,
			"completed_at": nil,
			"resets":       gorm.Expr("resets + ?", 1),
			"last_seen":    time.Now(),
		}).Error
	})
}

// PersistedGame is a stored game with its moves in order.
type PersistedGame struct {
	Game  Game
	Moves []Move
}

// LoadGame fetches a persisted game and its moves.
func (s *Store) LoadGame(ctx context.Context, id uuid.UUID) (*PersistedGame, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	var game Game
	if err := s.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	var moves []Move
	if err := s.db.WithContext(ctx).
		Where("game_id = ?", id).
		Order("number asc").
		Find(&moves).Error; err != nil {
		return nil, err
	}
	return &PersistedGame{Game: game, Moves: moves}, nil
}

// Stats represents aggregate counts for games.
type Stats struct {
	Started   int64 `json:"started"`
	Completed int64 `json:"completed"`
	Active    int64 `json:"active"`
	Moves     int64 `json:"moves"`
}

// FetchStats aggregates counts for display on the home page.
func (s *Store) FetchStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if s == nil {
		return stats, nil
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Count(&stats.Started).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Where("active = ?", true).Count(&stats.Active).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Where("completed_at IS NOT NULL").Count(&stats.Completed).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Move{}).Count(&stats.Moves).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// Healthy pings the database.
func (s *Store) Healthy(ctx context.Context) error {
	if s == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
