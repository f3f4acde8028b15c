package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/testutil"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupSQLite(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func manila(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	return loc
}

func seedBasic(t *testing.T, db *gorm.DB) {
	t.Helper()
	abw := 12.5
	data := &SeedData{
		Users: []SeedUser{
			{ID: "u1", Name: "Ana", Email: "ana@example.com", Approved: true},
			{ID: "u2", Name: "Ben", Approved: false},
		},
		Ponds: []SeedPond{
			{ID: "pond-1", Name: "North Pond", FeedingFrequency: 3, InitialStockedCount: 1000, Members: []string{"u1"}, ABW: &abw, Dead: 250},
		},
	}

	if err := Seed(context.Background(), db, data, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
}

func TestScheduleStore_RoundTrip(t *testing.T) {
	db := setupDB(t)
	repo := NewScheduleStore(db)
	ctx := context.Background()
	loc := manila(t)

	if _, err := repo.Get(ctx, "pond-1"); !errors.Is(err, domain.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}

	end := time.Date(2026, 12, 31, 0, 0, 0, 0, loc)
	sched := &domain.FeedingSchedule{
		PondID:        "pond-1",
		TimesOfDay:    []string{"07:00", "12:00", "17:00"},
		Repeat:        domain.Repeat{Kind: domain.RepeatWeekly, SelectedDays: []int{1, 3, 5}},
		StartDate:     time.Date(2026, 10, 1, 0, 0, 0, 0, loc),
		EndDate:       &end,
		TimesPerDay:   3,
		CreatedBy:     "u1",
		LastUpdatedBy: "u1",
		UpdatedAt:     time.Now(),
	}
	if err := repo.Upsert(ctx, sched); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	got, err := repo.Get(ctx, "pond-1")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if len(got.TimesOfDay) != 3 || got.TimesOfDay[2] != "17:00" {
		t.Errorf("TimesOfDay = %v", got.TimesOfDay)
	}
	if got.Repeat.Kind != domain.RepeatWeekly || len(got.Repeat.SelectedDays) != 3 {
		t.Errorf("Repeat = %+v", got.Repeat)
	}
	if !got.StartDate.Equal(sched.StartDate) {
		t.Errorf("StartDate = %v, want %v", got.StartDate, sched.StartDate)
	}
	if got.EndDate == nil || !got.EndDate.Equal(end) {
		t.Errorf("EndDate = %v, want %v", got.EndDate, end)
	}

	sched.TimesOfDay = []string{"08:00", "16:00"}
	sched.TimesPerDay = 2
	sched.Repeat = domain.Repeat{Kind: domain.RepeatDaily}
	sched.CreatedBy = "someone-else"
	sched.LastUpdatedBy = "u2"
	if err := repo.Upsert(ctx, sched); err != nil {
		t.Fatalf("failed to upsert update: %v", err)
	}

	got, err = repo.Get(ctx, "pond-1")
	if err != nil {
		t.Fatalf("failed to get after update: %v", err)
	}
	if got.TimesPerDay != 2 || got.Repeat.Kind != domain.RepeatDaily {
		t.Errorf("update not applied: %+v", got)
	}
	if got.CreatedBy != "u1" {
		t.Errorf("CreatedBy = %q, upsert must keep the original author", got.CreatedBy)
	}
	if got.LastUpdatedBy != "u2" {
		t.Errorf("LastUpdatedBy = %q", got.LastUpdatedBy)
	}

	var count int64
	db.Model(&scheduleModel{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single schedule row per pond, got %d", count)
	}
}

func TestScheduleStore_MalformedRows(t *testing.T) {
	tests := []struct {
		name  string
		model scheduleModel
	}{
		{
			name:  "bad time of day",
			model: scheduleModel{PondID: "p", TimesOfDay: "07:00,25:00", RepeatKind: "daily", TimesPerDay: 2},
		},
		{
			name:  "unknown repeat kind",
			model: scheduleModel{PondID: "p", TimesOfDay: "07:00", RepeatKind: "monthly", TimesPerDay: 1},
		},
		{
			name:  "weekday out of range",
			model: scheduleModel{PondID: "p", TimesOfDay: "07:00", RepeatKind: "weekly", SelectedDays: "1,9", TimesPerDay: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			if err := db.Create(&tt.model).Error; err != nil {
				t.Fatalf("failed to insert: %v", err)
			}

			_, err := NewScheduleStore(db).Get(context.Background(), "p")
			if !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestScheduleStore_LengthMismatchIsReturned(t *testing.T) {
	db := setupDB(t)
	row := scheduleModel{PondID: "p", TimesOfDay: "07:00,17:00", RepeatKind: "daily", TimesPerDay: 3}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	got, err := NewScheduleStore(db).Get(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TimesPerDay != 3 || len(got.TimesOfDay) != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestFeedingLogStore_ListInRange(t *testing.T) {
	db := setupDB(t)
	repo := NewFeedingLogStore(db)
	ctx := context.Background()
	loc := manila(t)
	pond := &domain.Pond{ID: "pond-1", Name: "North Pond"}
	user := &domain.User{ID: "u1", Name: "Ana"}

	at := func(day, hour int) time.Time { return time.Date(2026, 10, day, hour, 0, 0, 0, loc) }

	for _, fedAt := range []time.Time{at(17, 12), at(16, 8), at(17, 8), at(18, 8)} {
		if err := repo.Create(ctx, domain.NewManualLog(pond, user, fedAt, 150)); err != nil {
			t.Fatalf("failed to create: %v", err)
		}
	}
	other := &domain.Pond{ID: "pond-2"}
	if err := repo.Create(ctx, domain.NewManualLog(other, user, at(17, 9), 90)); err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	logs, err := repo.ListInRange(ctx, "pond-1", at(16, 8), at(17, 12))
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs with inclusive bounds, got %d", len(logs))
	}
	for i, want := range []time.Time{at(16, 8), at(17, 8), at(17, 12)} {
		if !logs[i].FedAt.Equal(want) {
			t.Errorf("logs[%d].FedAt = %v, want %v", i, logs[i].FedAt, want)
		}
	}
	if logs[0].Reason != domain.ReasonManual || logs[0].UserName != "Ana" || logs[0].PondName != "North Pond" {
		t.Errorf("unexpected log: %+v", logs[0])
	}
}

func TestFeedingLogStore_BackfillIsUniquePerSlot(t *testing.T) {
	db := setupDB(t)
	repo := NewFeedingLogStore(db)
	ctx := context.Background()
	pond := &domain.Pond{ID: "pond-1"}
	user := &domain.User{ID: "u1"}
	slot := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, domain.NewMissedScheduleLog(pond, user, slot, 300)); err != nil {
		t.Fatalf("first backfill failed: %v", err)
	}
	err := repo.Create(ctx, domain.NewMissedScheduleLog(pond, user, slot, 300))
	if !errors.Is(err, domain.ErrFeedingLogExists) {
		t.Fatalf("expected ErrFeedingLogExists, got %v", err)
	}

	// manual logs at the same instant are not constrained
	for range 2 {
		if err := repo.Create(ctx, domain.NewManualLog(pond, user, slot, 100)); err != nil {
			t.Fatalf("manual log rejected: %v", err)
		}
	}

	logs, err := repo.ListInRange(ctx, "pond-1", slot, slot)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(logs) != 3 {
		t.Errorf("expected 1 auto and 2 manual logs, got %d", len(logs))
	}
}

func TestDirectoryStore(t *testing.T) {
	db := setupDB(t)
	seedBasic(t, db)
	repo := NewDirectoryStore(db)
	ctx := context.Background()

	users, err := repo.ListApprovedUsers(ctx)
	if err != nil {
		t.Fatalf("failed to list users: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u1" || users[0].Email != "ana@example.com" {
		t.Errorf("approved users = %+v", users)
	}

	ponds, err := repo.ListPondsForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("failed to list ponds: %v", err)
	}
	if len(ponds) != 1 || ponds[0].FeedingFrequency != 3 {
		t.Errorf("ponds = %+v", ponds)
	}

	ponds, err = repo.ListPondsForUser(ctx, "u2")
	if err != nil || len(ponds) != 0 {
		t.Errorf("u2 ponds = %+v, err = %v", ponds, err)
	}

	if ok, err := repo.IsMember(ctx, "pond-1", "u1"); err != nil || !ok {
		t.Errorf("IsMember(u1) = %v, %v", ok, err)
	}
	if ok, err := repo.IsMember(ctx, "pond-1", "u2"); err != nil || ok {
		t.Errorf("IsMember(u2) = %v, %v", ok, err)
	}

	if _, err := repo.GetUser(ctx, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.GetPond(ctx, "nowhere"); !errors.Is(err, domain.ErrPondNotFound) {
		t.Errorf("expected ErrPondNotFound, got %v", err)
	}
}

func TestDirectoryStore_NoApprovedUsers(t *testing.T) {
	db := setupDB(t)
	_, err := NewDirectoryStore(db).ListApprovedUsers(context.Background())
	if !errors.Is(err, domain.ErrNoApprovedUsers) {
		t.Errorf("expected ErrNoApprovedUsers, got %v", err)
	}
}

func TestGrowthStore(t *testing.T) {
	db := setupDB(t)
	seedBasic(t, db)
	repo := NewGrowthStore(db)
	ctx := context.Background()

	later := growthSetupModel{PondID: "pond-1", CurrentABW: 14, RecordedAt: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(&later).Error; err != nil {
		t.Fatalf("failed to insert growth: %v", err)
	}

	abw, err := repo.CurrentABW(ctx, "pond-1")
	if err != nil || abw == nil || *abw != 14 {
		t.Errorf("CurrentABW = %v, %v; want 14", abw, err)
	}

	survival, err := repo.SurvivalPercent(ctx, "pond-1")
	if err != nil || survival == nil || *survival != 75 {
		t.Errorf("SurvivalPercent = %v, %v; want 75", survival, err)
	}

	abw, err = repo.CurrentABW(ctx, "pond-9")
	if err != nil || abw != nil {
		t.Errorf("unknown pond ABW = %v, %v; want nil", abw, err)
	}
	survival, err = repo.SurvivalPercent(ctx, "pond-9")
	if err != nil || survival != nil {
		t.Errorf("unknown pond survival = %v, %v; want nil", survival, err)
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `users:
  - id: u1
    name: Ana
    email: ana@example.com
    approved: true
ponds:
  - id: pond-1
    name: North Pond
    feeding_frequency: 4
    initial_stocked_count: 2000
    members: [u1]
    abw: 8.5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}

	data, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("failed to load seed: %v", err)
	}
	if len(data.Users) != 1 || !data.Users[0].Approved {
		t.Errorf("users = %+v", data.Users)
	}
	if len(data.Ponds) != 1 || data.Ponds[0].ABW == nil || *data.Ponds[0].ABW != 8.5 || data.Ponds[0].Members[0] != "u1" {
		t.Errorf("ponds = %+v", data.Ponds)
	}
}

func TestClassifyDBError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantThrottled bool
	}{
		{name: "nil", err: nil},
		{name: "locked", err: errors.New("database is locked"), wantThrottled: true},
		{name: "busy", err: errors.New("SQLITE_BUSY: cannot commit"), wantThrottled: true},
		{name: "other", err: errors.New("no such table: ponds")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyDBError("op", tt.err)
			if tt.err == nil {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}
			if domain.IsThrottled(got) != tt.wantThrottled {
				t.Errorf("IsThrottled(%v) = %v, want %v", got, !tt.wantThrottled, tt.wantThrottled)
			}
			if !tt.wantThrottled && !errors.Is(got, tt.err) {
				t.Errorf("expected wrapped error, got %v", got)
			}
		})
	}
}
