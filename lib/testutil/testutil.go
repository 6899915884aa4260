package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"straindex-backend/lib/blob"
	"straindex-backend/lib/geneticstore"
	"straindex-backend/lib/jobtrack"
	"straindex-backend/lib/telemetry"
)

type ServiceParams struct {
	Name string
	// set up a jobs ledger in a temp sqlite file
	WithJobs bool
}

type ServiceResult struct {
	Store *geneticstore.Store
	Jobs  *jobtrack.DB
}

// SetupService wires telemetry, an in-memory genetics store, and
// optionally a jobs ledger for a test. The returned cleanup shuts
// everything down.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	telemetryCleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	result := ServiceResult{
		Store: geneticstore.New(blob.NewMemory()),
	}

	if params.WithJobs {
		jobs, err := jobtrack.Open(filepath.Join(t.TempDir(), "jobs.db"))
		if err != nil {
			t.Fatal(err)
		}
		result.Jobs = jobs
	}

	return result, func() {
		if result.Jobs != nil {
			result.Jobs.Close()
		}
		telemetryCleanup()
	}
}
