package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/heybuddy/internal/backup"
	"github.com/julianstephens/heybuddy/internal/utils"
)

type DoctorCmd struct{}

// errSkipped marks a check that does not apply to the configured backend
var errSkipped = errors.New("not applicable")

type check struct {
	name         string
	warning      bool // failures are reported but do not fail the run
	needsStorage bool
	run          func(ctx *Context) error
}

var doctorChecks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion},
	{name: "Backups present", warning: true, needsStorage: true, run: checkBackupsPresent},
	{name: "Wellness data", needsStorage: true, run: checkWellnessData},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	reachable := true
	for i, chk := range doctorChecks {
		if !reachable && chk.needsStorage {
			ctx.printf("⊘ %s: SKIPPED (storage not reachable)\n", chk.name)
			continue
		}

		err := chk.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", chk.name)
		case errors.Is(err, errSkipped):
			ctx.printf("⊘ %s: SKIPPED (%v)\n", chk.name, err)
		case chk.warning:
			ctx.printf("⚠ %s: WARNING\n", chk.name)
			ctx.printf("   %v\n", err)
		default:
			ctx.printf("❌ %s: FAIL\n", chk.name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				reachable = false
			}
		}
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.GetAll(context.Background()); err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	store, ok := ctx.Store.(schemaStore)
	if !ok {
		return fmt.Errorf("%w: backend has no schema", errSkipped)
	}
	st, err := store.SchemaStatus(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d, run 'heybuddy migrate'", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	path, err := ctx.sqlitePath()
	if err != nil {
		return fmt.Errorf("%w: %v", errSkipped, err)
	}
	backups, err := backup.NewManager(path).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'heybuddy backup create'")
	}
	return nil
}

// checkWellnessData loads the ledger and fails when any stored field had to
// fall back to its default.
func checkWellnessData(ctx *Context) error {
	l, report, err := ctx.OpenLedger(context.Background())
	if err != nil {
		return err
	}
	if err := ctx.CloseLedger(l); err != nil {
		return err
	}
	if report.OK() {
		return nil
	}

	var lines []string
	for _, f := range report.Fallbacks {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Key, f.Reason))
	}
	return fmt.Errorf("%d field(s) unreadable: %s", len(report.Fallbacks), strings.Join(lines, "; "))
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		// Storage problems are reported by the earlier checks
		return nil
	}
	if settings.Timezone == "" {
		return nil
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("configured timezone %q cannot be loaded: %w", settings.Timezone, err)
	}
	return nil
}
