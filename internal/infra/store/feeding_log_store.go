package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

type feedingLogStore struct {
	db *gorm.DB
}

func NewFeedingLogStore(db *gorm.DB) domain.FeedingLogRepository {
	return &feedingLogStore{db: db}
}

// Create inserts the log. An auto-logged entry for a slot that already has
// one returns domain.ErrFeedingLogExists.
func (s *feedingLogStore) Create(ctx context.Context, log *domain.FeedingLog) error {
	m := feedingLogFromDomain(log)

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "backfill_key"}},
		DoNothing: true,
	}).Create(&m)
	if result.Error != nil {
		return classifyDBError("create feeding log", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrFeedingLogExists
	}

	return nil
}

func (s *feedingLogStore) ListInRange(ctx context.Context, pondID string, start, end time.Time) ([]domain.FeedingLog, error) {
	var models []feedingLogModel
	err := s.db.WithContext(ctx).
		Where("pond_id = ? AND fed_at >= ? AND fed_at <= ?", pondID, storedTime(start), storedTime(end)).
		Order("fed_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, classifyDBError("list feeding logs", err)
	}

	logs := make([]domain.FeedingLog, 0, len(models))
	for i := range models {
		l, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}

	return logs, nil
}

func backfillKey(log *domain.FeedingLog) *string {
	if !log.AutoLogged {
		return nil
	}
	key := log.PondID + "|" + storedTime(log.FedAt).Format(time.RFC3339)
	return &key
}

func feedingLogFromDomain(log *domain.FeedingLog) feedingLogModel {
	return feedingLogModel{
		ID:             log.ID,
		PondID:         log.PondID,
		FedAt:          storedTime(log.FedAt),
		FeedGivenGrams: log.FeedGivenGrams,
		AutoLogged:     log.AutoLogged,
		Reason:         log.Reason.String(),
		BackfillKey:    backfillKey(log),
		UserID:         log.UserID,
		PondName:       log.PondName,
		UserName:       log.UserName,
		CreatedAt:      storedTime(log.CreatedAt),
	}
}

func (m *feedingLogModel) toDomain() (*domain.FeedingLog, error) {
	reason := domain.LogReason(m.Reason)
	switch reason {
	case domain.ReasonManual, domain.ReasonMissedSchedule:
	default:
		return nil, domain.NewValidationError("reason", "unknown stored reason "+m.Reason)
	}
	if m.FeedGivenGrams <= 0 {
		return nil, domain.NewValidationError("feed_given_grams", "stored value must be positive")
	}

	return &domain.FeedingLog{
		ID:             m.ID,
		PondID:         m.PondID,
		FedAt:          m.FedAt,
		FeedGivenGrams: m.FeedGivenGrams,
		AutoLogged:     m.AutoLogged,
		Reason:         reason,
		UserID:         m.UserID,
		PondName:       m.PondName,
		UserName:       m.UserName,
		CreatedAt:      m.CreatedAt,
	}, nil
}
