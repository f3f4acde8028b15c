//go:build !gcloud

package dispatchrecorder

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

func TestNewRecorder_FallsBackToNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "disabled", cfg: &Config{Disabled: true, InfluxDBToken: "t", InfluxDBOrg: "o"}},
		{name: "missing token", cfg: &Config{InfluxDBOrg: "o"}},
		{name: "missing org", cfg: &Config{InfluxDBToken: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewRecorder(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := rec.(*noopRecorder); !ok {
				t.Errorf("expected noop recorder, got %T", rec)
			}
			if err := rec.RecordRun(context.Background(), domain.DispatchRunRecord{RunID: "r"}); err != nil {
				t.Errorf("noop RecordRun returned %v", err)
			}
		})
	}
}

func TestRunPoint(t *testing.T) {
	start := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	p := runPoint(domain.DispatchRunRecord{
		StartedAt:      start,
		FinishedAt:     start.Add(1500 * time.Millisecond),
		Status:         "ok",
		CandidateCount: 3,
		SentCount:      2,
		SkippedCount:   1,
	})

	if p.Name() != "dispatch_run" {
		t.Errorf("measurement = %q", p.Name())
	}
	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	if tags["run_id"] != "default" || tags["status"] != "ok" {
		t.Errorf("tags = %v", tags)
	}
	fields := map[string]any{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	if fields["duration_ms"] != int64(1500) {
		t.Errorf("duration_ms = %v (%T)", fields["duration_ms"], fields["duration_ms"])
	}
	if !p.Time().Equal(start.Add(1500 * time.Millisecond)) {
		t.Errorf("point time = %v", p.Time())
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DISPATCH_RESULTS_DISABLED", "true")
	t.Setenv("INFLUXDB_BUCKET", "")
	t.Setenv("BIGQUERY_TABLE", "runs")

	cfg := LoadConfig()
	if !cfg.Disabled {
		t.Error("expected disabled")
	}
	if cfg.InfluxDBBucket != "dispatch_results" {
		t.Errorf("bucket = %q", cfg.InfluxDBBucket)
	}
	if cfg.BigQueryTable != "runs" {
		t.Errorf("table = %q", cfg.BigQueryTable)
	}
}
