package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

type growthStore struct {
	db *gorm.DB
}

func NewGrowthStore(db *gorm.DB) domain.GrowthRepository {
	return &growthStore{db: db}
}

// CurrentABW returns the most recently recorded average body weight.
func (s *growthStore) CurrentABW(ctx context.Context, pondID string) (*float64, error) {
	var m growthSetupModel
	err := s.db.WithContext(ctx).
		Where("pond_id = ?", pondID).
		Order("recorded_at DESC").
		Order("id DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyDBError("get current abw", err)
	}

	abw := m.CurrentABW
	return &abw, nil
}

func (s *growthStore) SurvivalPercent(ctx context.Context, pondID string) (*float64, error) {
	var pond pondModel
	err := s.db.WithContext(ctx).First(&pond, "id = ?", pondID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyDBError("get pond stock", err)
	}

	var dead int64
	err = s.db.WithContext(ctx).
		Model(&mortalityLogModel{}).
		Where("pond_id = ?", pondID).
		Select("COALESCE(SUM(dead_count), 0)").
		Scan(&dead).Error
	if err != nil {
		return nil, classifyDBError("sum mortality", err)
	}

	survival, ok := domain.SurvivalPercent(pond.InitialStockedCount, int(dead))
	if !ok {
		return nil, nil
	}
	return &survival, nil
}
