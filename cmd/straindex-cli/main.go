package main

import (
	"context"
	"log/slog"

	"straindex-backend/cmd/straindex-cli/commands"
	"straindex-backend/lib/serviceutil"
	"straindex-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(false)

	tel, err := telemetry.SetupFromEnv(ctx, "straindex-cli")
	if err != nil {
		slog.Error("failed to set up telemetry", "err", err)
	}
	defer func() {
		// flush buffered spans with a fresh context, ctx may already be
		// canceled by the shutdown signal
		if err := tel.Shutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown failed", "err", err)
		}
	}()

	commands.ExecuteContext(ctx)
}
