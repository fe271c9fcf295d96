package cli

import (
	"context"
	"fmt"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version."`
}

func (c *MigrateCmd) Run(ctx *Context) error {
	store, ok := ctx.Store.(schemaStore)
	if !ok {
		ctx.printf("Storage %s has no schema to migrate.\n", ctx.Store.GetConfigPath())
		return nil
	}
	bg := context.Background()

	if c.Status {
		st, err := store.SchemaStatus(bg)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		ctx.printf("Schema version %d of %d (%d pending)\n", st.Current, st.Latest, len(st.Pending))
		return nil
	}

	applied, err := store.Migrate(bg, func(msg string) { ctx.printf("  %s\n", msg) })
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if applied == 0 {
		ctx.println("Schema is up to date.")
		return nil
	}
	ctx.printf("✓ Applied %d migration(s)\n", applied)
	return nil
}
