package store

import "time"

type scheduleModel struct {
	PondID        string `gorm:"primaryKey;size:64"`
	TimesOfDay    string `gorm:"not null"`
	RepeatKind    string `gorm:"size:16;not null"`
	SelectedDays  string `gorm:"size:32"`
	StartDate     time.Time
	EndDate       *time.Time
	TimesPerDay   int    `gorm:"not null"`
	CreatedBy     string `gorm:"size:64"`
	LastUpdatedBy string `gorm:"size:64"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (scheduleModel) TableName() string { return "feeding_schedules" }

// feedingLogModel.BackfillKey is set on auto-logged entries only. NULL keys
// never collide, so manual logs are unconstrained.
type feedingLogModel struct {
	ID             string    `gorm:"primaryKey;size:36"`
	PondID         string    `gorm:"size:64;not null;index:idx_feeding_logs_pond_fed,priority:1"`
	FedAt          time.Time `gorm:"not null;index:idx_feeding_logs_pond_fed,priority:2"`
	FeedGivenGrams float64   `gorm:"not null"`
	AutoLogged     bool      `gorm:"not null;default:false"`
	Reason         string    `gorm:"size:32;not null"`
	BackfillKey    *string   `gorm:"size:128;uniqueIndex"`
	UserID         string    `gorm:"size:64;index"`
	PondName       string    `gorm:"size:255"`
	UserName       string    `gorm:"size:255"`
	CreatedAt      time.Time
}

func (feedingLogModel) TableName() string { return "feeding_logs" }

type userModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:255"`
	Email     string `gorm:"size:255"`
	Approved  bool   `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type pondModel struct {
	ID                  string `gorm:"primaryKey;size:64"`
	Name                string `gorm:"size:255"`
	FeedingFrequency    int
	InitialStockedCount int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (pondModel) TableName() string { return "ponds" }

type pondMemberModel struct {
	PondID    string `gorm:"primaryKey;size:64"`
	UserID    string `gorm:"primaryKey;size:64;index"`
	CreatedAt time.Time
}

func (pondMemberModel) TableName() string { return "pond_members" }

type growthSetupModel struct {
	ID         uint      `gorm:"primaryKey"`
	PondID     string    `gorm:"size:64;not null;index:idx_growth_pond_recorded,priority:1"`
	CurrentABW float64   `gorm:"column:current_abw;not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_growth_pond_recorded,priority:2"`
}

func (growthSetupModel) TableName() string { return "growth_setups" }

type mortalityLogModel struct {
	ID         uint   `gorm:"primaryKey"`
	PondID     string `gorm:"size:64;not null;index"`
	DeadCount  int    `gorm:"not null"`
	RecordedAt time.Time
}

func (mortalityLogModel) TableName() string { return "mortality_logs" }

// storedTime normalizes instants before they are written or compared so the
// text encoding used by sqlite sorts chronologically.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
