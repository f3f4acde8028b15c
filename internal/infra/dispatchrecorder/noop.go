package dispatchrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DispatchResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordRun(_ context.Context, _ domain.DispatchRunRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
