package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/infra/notifier"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/ration"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/schedule"
)

type Service struct {
	directory       domain.DirectoryRepository
	schedules       *schedule.Service
	estimator       *ration.Estimator
	markers         domain.MarkerRepository
	notifier        notifier.Notifier
	resultRecorder  domain.DispatchResultRecorder
	dispatchMetrics *metrics.DispatchMetrics
	cfg             Config
}

func NewService(
	directory domain.DirectoryRepository,
	schedules *schedule.Service,
	estimator *ration.Estimator,
	markers domain.MarkerRepository,
	n notifier.Notifier,
	resultRecorder domain.DispatchResultRecorder,
	dispatchMetrics *metrics.DispatchMetrics,
	cfg Config,
) *Service {
	return &Service{
		directory:       directory,
		schedules:       schedules,
		estimator:       estimator,
		markers:         markers,
		notifier:        n,
		resultRecorder:  resultRecorder,
		dispatchMetrics: dispatchMetrics,
		cfg:             cfg.withDefaults(),
	}
}

type pondPlan struct {
	pond       *domain.Pond
	slots      []time.Time
	suggestion *ration.Suggestion
	suggested  bool
}

// Run performs one scan. It is safe to call concurrently with itself: the
// marker claim decides which caller sends a given reminder.
// The returned error is non-nil only for StatusThrottled and StatusError.
func (s *Service) Run(ctx context.Context, now time.Time, runID string) (*Response, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	startedAt := time.Now()

	resp := &Response{
		RunID:   runID,
		Status:  StatusOK,
		Now:     now,
		Results: make([]ResultItem, 0),
	}

	runCtx := ctx
	if s.cfg.MaxRunDuration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.MaxRunDuration)
		defer cancel()
	}

	runCtx, span := tracing.StartDispatchRunSpan(runCtx, runID, now, s.cfg.Window)
	err := s.scan(runCtx, now, resp)
	tracing.RecordDispatchRunResult(span, resp.Status.String(),
		resp.CandidateCount, resp.SentCount, resp.SkippedCount, resp.FailedCount, resp.Truncated, err)
	span.End()

	s.finish(ctx, resp, startedAt)

	return resp, err
}

func (s *Service) scan(ctx context.Context, now time.Time, resp *Response) error {
	users, err := s.directory.ListApprovedUsers(ctx)
	if err != nil {
		switch {
		case domain.IsThrottled(err):
			resp.Status = StatusThrottled
			return fmt.Errorf("list approved users: %w", err)
		case domain.IsNotFound(err):
			resp.Status = StatusNoApprovedUsers
			return nil
		default:
			resp.Status = StatusError
			return fmt.Errorf("list approved users: %w", err)
		}
	}
	if len(users) == 0 {
		resp.Status = StatusNoApprovedUsers
		slog.InfoContext(ctx, "no approved users to remind")
		return nil
	}

	slog.DebugContext(ctx, "scanning approved users",
		slog.Int("user_count", len(users)),
	)

	plans := make(map[string]*pondPlan)

	for i := range users {
		user := &users[i]
		if s.expired(ctx, resp) {
			return nil
		}

		ponds, err := s.directory.ListPondsForUser(ctx, user.ID)
		if err != nil {
			if s.halt(ctx, resp, err) {
				return haltErr(resp, err)
			}
			slog.WarnContext(ctx, "failed to list ponds for user",
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		for j := range ponds {
			plan, err := s.planFor(ctx, &ponds[j], now, plans)
			if err != nil {
				if s.halt(ctx, resp, err) {
					return haltErr(resp, err)
				}
				slog.WarnContext(ctx, "failed to load feeding schedule",
					slog.String("pond_id", ponds[j].ID),
					slog.String("error", err.Error()),
				)
				continue
			}

			for _, slot := range plan.slots {
				if !IsCandidate(slot, now, s.cfg.Window) {
					continue
				}
				if s.expired(ctx, resp) {
					return nil
				}

				resp.CandidateCount++
				item, err := s.dispatchCandidate(ctx, user, plan, slot)
				resp.add(item)

				if err != nil && s.halt(ctx, resp, err) {
					return haltErr(resp, err)
				}
			}
		}
	}

	return nil
}

// halt reports whether err must stop the scan. Throttling marks the run
// throttled; an expired run context marks it truncated.
func (s *Service) halt(ctx context.Context, resp *Response, err error) bool {
	if domain.IsThrottled(err) {
		resp.Status = StatusThrottled
		slog.WarnContext(ctx, "backing store throttled, stopping scan",
			slog.String("error", err.Error()),
		)
		return true
	}
	return s.expired(ctx, resp)
}

func haltErr(resp *Response, err error) error {
	if resp.Status == StatusThrottled {
		return err
	}
	return nil
}

func (s *Service) expired(ctx context.Context, resp *Response) bool {
	if ctx.Err() == nil {
		return false
	}
	if !resp.Truncated {
		resp.Truncated = true
		slog.WarnContext(ctx, "dispatch run cut short, remaining candidates wait for the next run",
			slog.Int("candidate_count", resp.CandidateCount),
			slog.String("cause", ctx.Err().Error()),
		)
	}
	return true
}

func (s *Service) planFor(ctx context.Context, pond *domain.Pond, now time.Time, cache map[string]*pondPlan) (*pondPlan, error) {
	if p, ok := cache[pond.ID]; ok {
		return p, nil
	}

	p := &pondPlan{pond: pond}
	sched, err := s.schedules.Load(ctx, pond)
	switch {
	case err == nil:
		p.slots = schedule.ExpandRange(sched, now, now.Add(s.cfg.Window), s.schedules.Location())
	case domain.IsNotFound(err):
		slog.DebugContext(ctx, "pond has no feeding schedule",
			slog.String("pond_id", pond.ID),
		)
	default:
		return nil, err
	}

	cache[pond.ID] = p
	return p, nil
}

func (s *Service) suggestionFor(ctx context.Context, p *pondPlan) *ration.Suggestion {
	if p.suggested || s.estimator == nil {
		return p.suggestion
	}
	p.suggested = true

	suggestion, err := s.estimator.Suggest(ctx, p.pond)
	if err != nil {
		slog.WarnContext(ctx, "ration suggestion unavailable for reminder",
			slog.String("pond_id", p.pond.ID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	p.suggestion = &suggestion
	return p.suggestion
}

func (s *Service) dispatchCandidate(ctx context.Context, user *domain.User, p *pondPlan, slot time.Time) (ResultItem, error) {
	marker := domain.NewReminderMarker(p.pond.ID, user.ID, slot, s.schedules.Location())

	ctx, span := tracing.StartCandidateSpan(ctx, marker.PondID, marker.UserID, marker.Key)
	defer span.End()

	item := ResultItem{
		PondID:    marker.PondID,
		UserID:    marker.UserID,
		MarkerKey: marker.Key,
		SlotTime:  slot,
	}

	item, err := s.deliver(ctx, user, p, marker, item)

	tracing.RecordCandidateResult(span, string(item.Outcome), err)
	if s.dispatchMetrics != nil {
		s.dispatchMetrics.RecordCandidate(ctx, string(item.Outcome))
	}

	return item, err
}

func (s *Service) deliver(ctx context.Context, user *domain.User, p *pondPlan, marker *domain.ReminderMarker, item ResultItem) (ResultItem, error) {
	if user.Email == "" {
		return skipped(item, OutcomeNoEmail, "user has no email address"), nil
	}

	exists, err := s.markers.Exists(ctx, marker.PondID, marker.Key)
	if err != nil {
		return failed(item, err), err
	}
	if exists {
		slog.DebugContext(ctx, "reminder already sent",
			slog.String("marker_key", marker.Key),
		)
		return skipped(item, OutcomeDuplicate, "already notified"), nil
	}

	claimed, err := s.markers.Claim(ctx, marker, s.cfg.ClaimTTL)
	if err != nil {
		return failed(item, err), err
	}
	if !claimed {
		return skipped(item, OutcomeClaimed, "claimed by a concurrent run"), nil
	}

	n := buildNotification(user, p.pond, marker.SlotTime.In(s.schedules.Location()), marker.Key, s.suggestionFor(ctx, p))

	sendStart := time.Now()
	sendErr := s.notifier.Send(ctx, n)
	if s.dispatchMetrics != nil {
		s.dispatchMetrics.RecordNotifyDuration(ctx, time.Since(sendStart))
	}

	// Marker bookkeeping must finish even when the run deadline hit mid-send.
	storeCtx := context.WithoutCancel(ctx)

	if sendErr != nil {
		if err := s.markers.Release(storeCtx, marker.PondID, marker.Key); err != nil {
			slog.WarnContext(ctx, "failed to release reminder claim, it will expire",
				slog.String("marker_key", marker.Key),
				slog.Duration("claim_ttl", s.cfg.ClaimTTL),
				slog.String("error", err.Error()),
			)
		}
		terr := domain.NewTransientIOError("send notification", sendErr)
		slog.WarnContext(ctx, "failed to send reminder, will retry on next run",
			slog.String("marker_key", marker.Key),
			slog.String("error", terr.Error()),
		)
		item.Outcome = OutcomeFailed
		item.Error = terr.Error()
		return item, terr
	}

	marker.State = domain.MarkerSent
	if err := s.commit(storeCtx, marker); err != nil {
		slog.ErrorContext(ctx, "reminder sent but marker commit failed, the claim expiry may allow a resend",
			slog.String("marker_key", marker.Key),
			slog.Duration("claim_ttl", s.cfg.ClaimTTL),
			slog.Int("attempts", commitAttempts),
			slog.String("error", err.Error()),
		)
	}

	slog.InfoContext(ctx, "reminder dispatched",
		slog.String("pond_id", marker.PondID),
		slog.String("user_id", marker.UserID),
		slog.String("marker_key", marker.Key),
		slog.Time("slot_time", marker.SlotTime),
	)

	item.Outcome = OutcomeSent
	return item, nil
}

// commit retries the marker write after a delivered send; the pending claim
// only holds other runs off for ClaimTTL.
func (s *Service) commit(ctx context.Context, marker *domain.ReminderMarker) error {
	var err error
	for attempt := 0; attempt < commitAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(commitBackoff << (attempt - 1))
		}
		if err = s.markers.Commit(ctx, marker); err == nil {
			return nil
		}
		slog.WarnContext(ctx, "marker commit failed",
			slog.String("marker_key", marker.Key),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}
	return err
}

func skipped(item ResultItem, outcome Outcome, reason string) ResultItem {
	item.Outcome = outcome
	item.Skipped = true
	item.SkipReason = reason
	return item
}

func failed(item ResultItem, err error) ResultItem {
	item.Outcome = OutcomeFailed
	if errors.Is(err, domain.ErrThrottled) {
		item.Outcome = OutcomeThrottled
	}
	item.Error = err.Error()
	return item
}

func (s *Service) finish(ctx context.Context, resp *Response, startedAt time.Time) {
	duration := time.Since(startedAt)

	if s.dispatchMetrics != nil {
		s.dispatchMetrics.RecordRun(ctx, resp.Status.String(), resp.Truncated, duration)
	}

	slog.InfoContext(ctx, "dispatch run completed",
		slog.String("run_id", resp.RunID),
		slog.String("status", resp.Status.String()),
		slog.Int("candidates", resp.CandidateCount),
		slog.Int("sent", resp.SentCount),
		slog.Int("skipped", resp.SkippedCount),
		slog.Int("failed", resp.FailedCount),
		slog.Bool("truncated", resp.Truncated),
		slog.Duration("duration", duration),
	)

	if s.resultRecorder == nil {
		return
	}

	record := domain.DispatchRunRecord{
		RunID:          resp.RunID,
		StartedAt:      startedAt,
		FinishedAt:     startedAt.Add(duration),
		Status:         resp.Status.String(),
		CandidateCount: resp.CandidateCount,
		SentCount:      resp.SentCount,
		SkippedCount:   resp.SkippedCount,
		FailedCount:    resp.FailedCount,
		Truncated:      resp.Truncated,
	}
	if err := s.resultRecorder.RecordRun(context.WithoutCancel(ctx), record); err != nil {
		slog.WarnContext(ctx, "failed to record dispatch run",
			slog.String("run_id", resp.RunID),
			slog.String("error", err.Error()),
		)
	}
}
