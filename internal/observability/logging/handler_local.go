//go:build !gcloud

package logging

import (
	"context"
	"log/slog"
)

// cloudTraceAttrs is a no-op off Cloud Run.
func cloudTraceAttrs(context.Context, string) []slog.Attr { return nil }
