package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/access"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/ration"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/schedule"
)

type ScheduleHandler struct {
	schedules *schedule.Service
	estimator *ration.Estimator
	directory domain.DirectoryRepository
	clock     Clock
}

func NewScheduleHandler(schedules *schedule.Service, estimator *ration.Estimator, directory domain.DirectoryRepository) *ScheduleHandler {
	return &ScheduleHandler{
		schedules: schedules,
		estimator: estimator,
		directory: directory,
		clock:     time.Now,
	}
}

type repeatBody struct {
	Kind         string `json:"kind" binding:"required"`
	SelectedDays []int  `json:"selected_days"`
}

type scheduleRequest struct {
	// TimesOfDay may be omitted; evenly spaced times are generated from TimesPerDay.
	TimesOfDay  []string   `json:"times_of_day"`
	TimesPerDay int        `json:"times_per_day"`
	Repeat      repeatBody `json:"repeat"`
	StartDate   string     `json:"start_date" binding:"required"`
	EndDate     *string    `json:"end_date"`
}

type scheduleResponse struct {
	PondID        string     `json:"pond_id"`
	TimesOfDay    []string   `json:"times_of_day"`
	TimesPerDay   int        `json:"times_per_day"`
	Repeat        repeatBody `json:"repeat"`
	StartDate     string     `json:"start_date"`
	EndDate       *string    `json:"end_date,omitempty"`
	CreatedBy     string     `json:"created_by"`
	LastUpdatedBy string     `json:"last_updated_by"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toScheduleResponse(s *domain.FeedingSchedule, loc *time.Location) scheduleResponse {
	resp := scheduleResponse{
		PondID:      s.PondID,
		TimesOfDay:  s.SortedTimes(),
		TimesPerDay: s.TimesPerDay,
		Repeat: repeatBody{
			Kind:         s.Repeat.Kind.String(),
			SelectedDays: s.Repeat.SelectedDays,
		},
		StartDate:     s.StartDate.In(loc).Format(dateLayout),
		CreatedBy:     s.CreatedBy,
		LastUpdatedBy: s.LastUpdatedBy,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.EndDate != nil {
		end := s.EndDate.In(loc).Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}

// HandlePutSchedule creates or replaces the pond's feeding schedule.
func (h *ScheduleHandler) HandlePutSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	user, pond, err := access.Resolve(ctx, h.directory, c.Param("pondID"), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}

	sched, err := h.buildSchedule(pond, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.schedules.Save(ctx, sched, user.ID); err != nil {
		respondError(c, err)
		return
	}

	slog.InfoContext(ctx, "feeding schedule saved",
		slog.String("pond_id", pond.ID),
		slog.String("user_id", user.ID),
		slog.Any("times_of_day", sched.TimesOfDay),
		slog.String("repeat", sched.Repeat.Kind.String()),
	)

	c.JSON(http.StatusOK, toScheduleResponse(sched, h.schedules.Location()))
}

func (h *ScheduleHandler) buildSchedule(pond *domain.Pond, req scheduleRequest) (*domain.FeedingSchedule, error) {
	loc := h.schedules.Location()

	kind, err := domain.ParseRepeatKind(req.Repeat.Kind)
	if err != nil {
		return nil, domain.NewValidationError("repeat.kind", err.Error())
	}

	perDay := req.TimesPerDay
	if perDay == 0 {
		perDay = len(req.TimesOfDay)
	}
	if pond.FeedingFrequency >= 1 && perDay != pond.FeedingFrequency {
		return nil, domain.NewValidationError("times_per_day",
			fmt.Sprintf("pond feeds %d times a day, got %d", pond.FeedingFrequency, perDay))
	}

	times := req.TimesOfDay
	if len(times) == 0 && perDay > 0 {
		times = schedule.GenerateTimes(perDay)
	}

	start, err := parseDate("start_date", req.StartDate, loc)
	if err != nil {
		return nil, err
	}

	sched := &domain.FeedingSchedule{
		PondID:      pond.ID,
		TimesOfDay:  times,
		TimesPerDay: perDay,
		Repeat:      domain.Repeat{Kind: kind, SelectedDays: req.Repeat.SelectedDays},
		StartDate:   start,
	}
	if req.EndDate != nil && *req.EndDate != "" {
		end, err := parseDate("end_date", *req.EndDate, loc)
		if err != nil {
			return nil, err
		}
		sched.EndDate = &end
	}
	return sched, nil
}

type todayResponse struct {
	PondID     string            `json:"pond_id"`
	Date       string            `json:"date"`
	Schedule   scheduleResponse  `json:"schedule"`
	Slots      []time.Time       `json:"slots"`
	NextSlot   *time.Time        `json:"next_slot,omitempty"`
	Suggestion ration.Suggestion `json:"suggestion"`
}

// HandleToday lists today's slots in the configured timezone with the ration
// suggestion that reminders would carry.
func (h *ScheduleHandler) HandleToday(c *gin.Context) {
	ctx := c.Request.Context()

	_, pond, err := access.Resolve(ctx, h.directory, c.Param("pondID"), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.clock().In(h.schedules.Location())
	slots, sched, err := h.schedules.Today(ctx, pond, now)
	if err != nil {
		respondError(c, err)
		return
	}
	if slots == nil {
		slots = []time.Time{}
	}

	suggestion, err := h.estimator.Suggest(ctx, pond)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := todayResponse{
		PondID:     pond.ID,
		Date:       now.Format(dateLayout),
		Schedule:   toScheduleResponse(sched, h.schedules.Location()),
		Slots:      slots,
		Suggestion: suggestion,
	}
	if next, ok := schedule.NextSlot(slots, now); ok {
		resp.NextSlot = &next
	}

	c.JSON(http.StatusOK, resp)
}

// HandleRation returns the current ration breakdown for the pond.
func (h *ScheduleHandler) HandleRation(c *gin.Context) {
	ctx := c.Request.Context()

	_, pond, err := access.Resolve(ctx, h.directory, c.Param("pondID"), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	suggestion, err := h.estimator.Suggest(ctx, pond)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
