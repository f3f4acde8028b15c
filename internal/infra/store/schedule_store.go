package store

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

type scheduleStore struct {
	db *gorm.DB
}

func NewScheduleStore(db *gorm.DB) domain.ScheduleRepository {
	return &scheduleStore{db: db}
}

func (s *scheduleStore) Get(ctx context.Context, pondID string) (*domain.FeedingSchedule, error) {
	var m scheduleModel
	err := s.db.WithContext(ctx).First(&m, "pond_id = ?", pondID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, classifyDBError("get schedule", err)
	}

	return m.toDomain()
}

func (s *scheduleStore) Upsert(ctx context.Context, sched *domain.FeedingSchedule) error {
	m := scheduleFromDomain(sched)

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pond_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"times_of_day",
			"repeat_kind",
			"selected_days",
			"start_date",
			"end_date",
			"times_per_day",
			"last_updated_by",
			"updated_at",
		}),
	}).Create(&m).Error

	return classifyDBError("upsert schedule", err)
}

func scheduleFromDomain(sched *domain.FeedingSchedule) scheduleModel {
	days := make([]string, 0, len(sched.Repeat.SelectedDays))
	for _, d := range sched.Repeat.SelectedDays {
		days = append(days, strconv.Itoa(d))
	}

	m := scheduleModel{
		PondID:        sched.PondID,
		TimesOfDay:    strings.Join(sched.TimesOfDay, ","),
		RepeatKind:    sched.Repeat.Kind.String(),
		SelectedDays:  strings.Join(days, ","),
		StartDate:     storedTime(sched.StartDate),
		TimesPerDay:   sched.TimesPerDay,
		CreatedBy:     sched.CreatedBy,
		LastUpdatedBy: sched.LastUpdatedBy,
		UpdatedAt:     storedTime(sched.UpdatedAt),
	}
	if sched.EndDate != nil {
		end := storedTime(*sched.EndDate)
		m.EndDate = &end
	}

	return m
}

// toDomain parses the stored row. Malformed columns surface as validation
// errors. A times list whose length disagrees with TimesPerDay is returned
// as-is so the schedule service can realign it.
func (m *scheduleModel) toDomain() (*domain.FeedingSchedule, error) {
	kind, err := domain.ParseRepeatKind(m.RepeatKind)
	if err != nil {
		return nil, domain.NewValidationError("repeat.kind", err.Error())
	}

	var times []string
	if m.TimesOfDay != "" {
		for _, raw := range strings.Split(m.TimesOfDay, ",") {
			tod, err := domain.ParseTimeOfDay(raw)
			if err != nil {
				return nil, domain.NewValidationError("times_of_day", err.Error())
			}
			times = append(times, tod.String())
		}
	}

	var days []int
	if m.SelectedDays != "" {
		for _, raw := range strings.Split(m.SelectedDays, ",") {
			d, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || d < 0 || d > 6 {
				return nil, domain.NewValidationError("repeat.selected_days", "malformed weekday "+strconv.Quote(raw))
			}
			days = append(days, d)
		}
	}

	sched := &domain.FeedingSchedule{
		PondID:        m.PondID,
		TimesOfDay:    times,
		Repeat:        domain.Repeat{Kind: kind, SelectedDays: days},
		StartDate:     m.StartDate,
		TimesPerDay:   m.TimesPerDay,
		CreatedBy:     m.CreatedBy,
		LastUpdatedBy: m.LastUpdatedBy,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.EndDate != nil {
		end := *m.EndDate
		sched.EndDate = &end
	}

	return sched, nil
}
