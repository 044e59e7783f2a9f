package store

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jmarek/bowldraft/internal/draft"
)

// Team and Player mirror the persistent league tables, limited to the columns
// the finalize write needs.
type Team struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

type Player struct {
	ID     string `gorm:"primaryKey"`
	Name   string
	TeamID *string
}

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

type TeamStore struct{ db *gorm.DB }

func NewTeamStore(db *gorm.DB) *TeamStore { return &TeamStore{db: db} }

func (s *TeamStore) FindIDByName(ctx context.Context, name draft.TeamName) (string, error) {
	var team Team
	if err := s.db.WithContext(ctx).Where("name = ?", string(name)).First(&team).Error; err != nil {
		return "", fmt.Errorf("find team %q: %w", name, err)
	}
	return team.ID, nil
}

type PlayerStore struct{ db *gorm.DB }

func NewPlayerStore(db *gorm.DB) *PlayerStore { return &PlayerStore{db: db} }

// AssignTeam is idempotent: re-running the finalize pass just rewrites the
// same assignment.
func (s *PlayerStore) AssignTeam(ctx context.Context, playerID, teamID string) error {
	res := s.db.WithContext(ctx).Model(&Player{}).Where("id = ?", playerID).Update("team_id", teamID)
	if res.Error != nil {
		return fmt.Errorf("assign player %s to team %s: %w", playerID, teamID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("assign player %s: no such player", playerID)
	}
	return nil
}
