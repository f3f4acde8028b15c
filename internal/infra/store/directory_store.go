package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

type directoryStore struct {
	db *gorm.DB
}

func NewDirectoryStore(db *gorm.DB) domain.DirectoryRepository {
	return &directoryStore{db: db}
}

func (s *directoryStore) ListApprovedUsers(ctx context.Context) ([]domain.User, error) {
	var models []userModel
	err := s.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, classifyDBError("list approved users", err)
	}
	if len(models) == 0 {
		return nil, domain.ErrNoApprovedUsers
	}

	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, m.toDomain())
	}
	return users, nil
}

func (s *directoryStore) ListPondsForUser(ctx context.Context, userID string) ([]domain.Pond, error) {
	var models []pondModel
	err := s.db.WithContext(ctx).
		Joins("JOIN pond_members ON pond_members.pond_id = ponds.id").
		Where("pond_members.user_id = ?", userID).
		Order("ponds.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, classifyDBError("list ponds for user", err)
	}

	ponds := make([]domain.Pond, 0, len(models))
	for _, m := range models {
		p, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		ponds = append(ponds, *p)
	}
	return ponds, nil
}

func (s *directoryStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var m userModel
	err := s.db.WithContext(ctx).First(&m, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, classifyDBError("get user", err)
	}

	u := m.toDomain()
	return &u, nil
}

func (s *directoryStore) GetPond(ctx context.Context, pondID string) (*domain.Pond, error) {
	var m pondModel
	err := s.db.WithContext(ctx).First(&m, "id = ?", pondID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPondNotFound
	}
	if err != nil {
		return nil, classifyDBError("get pond", err)
	}

	return m.toDomain()
}

func (s *directoryStore) IsMember(ctx context.Context, pondID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&pondMemberModel{}).
		Where("pond_id = ? AND user_id = ?", pondID, userID).
		Count(&count).Error
	if err != nil {
		return false, classifyDBError("check pond membership", err)
	}
	return count > 0, nil
}

func (m userModel) toDomain() domain.User {
	return domain.User{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Approved: m.Approved,
	}
}

func (m pondModel) toDomain() (*domain.Pond, error) {
	if m.FeedingFrequency < 0 {
		return nil, domain.NewValidationError("feeding_frequency", "stored value must not be negative")
	}
	if m.InitialStockedCount < 0 {
		return nil, domain.NewValidationError("initial_stocked_count", "stored value must not be negative")
	}

	return &domain.Pond{
		ID:                  m.ID,
		Name:                m.Name,
		FeedingFrequency:    m.FeedingFrequency,
		InitialStockedCount: m.InitialStockedCount,
	}, nil
}
