package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/julianstephens/heybuddy/internal/keyring"
	"github.com/julianstephens/heybuddy/internal/storage"
	"github.com/julianstephens/heybuddy/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password hidden."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is usable."`
}

type KeyringSetCmd struct {
	ConnString string `arg:"" help:"Full connection string, password included."`
}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	if storage.DetectKind(c.ConnString) != storage.KindPostgres {
		return fmt.Errorf("%w: expected a postgres:// or postgresql:// URL", postgres.ErrInvalidConnectionString)
	}
	// The keyring is where the password is allowed to live
	if err := postgres.ValidateConnString(c.ConnString); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return err
	}
	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}
	ctx.println("✓ Connection string stored in the OS keyring")
	return nil
}

type KeyringGetCmd struct{}

func (c *KeyringGetCmd) Run(ctx *Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		return err
	}
	ctx.println(redactConnString(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	ctx.println("✓ Connection string removed from the OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		ctx.println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.println("✓ OS keyring is available")

	_, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		ctx.println("✓ Connection string is stored in keyring")
	case errors.Is(err, keyring.ErrNotFound):
		ctx.println("ℹ No connection string stored in keyring")
	default:
		return err
	}
	return nil
}

func redactConnString(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "(unparseable connection string)"
	}
	return u.Redacted()
}
