package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeedUser struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Approved bool   `yaml:"approved"`
}

type SeedPond struct {
	ID                  string   `yaml:"id"`
	Name                string   `yaml:"name"`
	FeedingFrequency    int      `yaml:"feeding_frequency"`
	InitialStockedCount int      `yaml:"initial_stocked_count"`
	Members             []string `yaml:"members"`
	ABW                 *float64 `yaml:"abw"`
	Dead                int      `yaml:"dead"`
}

// SeedData describes directory and growth rows loaded for local runs.
type SeedData struct {
	Users []SeedUser `yaml:"users"`
	Ponds []SeedPond `yaml:"ponds"`
}

func LoadSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &data, nil
}

// Seed upserts users, ponds and memberships. Growth and mortality rows are
// appended, so seeding twice records a second measurement.
func Seed(ctx context.Context, db *gorm.DB, data *SeedData, now time.Time) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range data.Users {
			m := userModel{ID: u.ID, Name: u.Name, Email: u.Email, Approved: u.Approved}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "email", "approved", "updated_at"}),
			}).Create(&m).Error; err != nil {
				return classifyDBError("seed user "+u.ID, err)
			}
		}

		for _, p := range data.Ponds {
			m := pondModel{
				ID:                  p.ID,
				Name:                p.Name,
				FeedingFrequency:    p.FeedingFrequency,
				InitialStockedCount: p.InitialStockedCount,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "feeding_frequency", "initial_stocked_count", "updated_at"}),
			}).Create(&m).Error; err != nil {
				return classifyDBError("seed pond "+p.ID, err)
			}

			for _, userID := range p.Members {
				member := pondMemberModel{PondID: p.ID, UserID: userID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
					return classifyDBError("seed member "+userID, err)
				}
			}

			if p.ABW != nil {
				growth := growthSetupModel{PondID: p.ID, CurrentABW: *p.ABW, RecordedAt: storedTime(now)}
				if err := tx.Create(&growth).Error; err != nil {
					return classifyDBError("seed growth "+p.ID, err)
				}
			}
			if p.Dead > 0 {
				mortality := mortalityLogModel{PondID: p.ID, DeadCount: p.Dead, RecordedAt: storedTime(now)}
				if err := tx.Create(&mortality).Error; err != nil {
					return classifyDBError("seed mortality "+p.ID, err)
				}
			}
		}

		return nil
	})
}
