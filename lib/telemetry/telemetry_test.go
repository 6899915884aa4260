package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// a binary without a telemetry config still shuts its (absent)
// providers down on exit
func TestShutdownWithoutProviders(t *testing.T) {
	require.NoError(t, Telemetry{}.Shutdown(context.Background()))
}
