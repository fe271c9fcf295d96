package cli

import (
	"fmt"

	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone   *string `help:"IANA timezone used to decide what 'today' is (or 'Local')."`
	TrendOrder *string `help:"Entry order the mood trend is computed over (insertion|date)."`
}

func (c *SettingsCmd) Validate() error {
	if c.Timezone != nil {
		if _, err := utils.LoadLocation(*c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", *c.Timezone, err)
		}
	}
	if c.TrendOrder != nil {
		order := constants.TrendOrder(*c.TrendOrder)
		if order != constants.TrendOrderInsertion && order != constants.TrendOrderDate {
			return fmt.Errorf("trend order must be %q or %q", constants.TrendOrderInsertion, constants.TrendOrderDate)
		}
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	settings, err := ctx.settings()
	if err != nil {
		return err
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.TrendOrder != nil {
		settings.TrendOrder = constants.TrendOrder(*c.TrendOrder)
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.println("Settings updated successfully.")
	}
	if c.List || !updated {
		ctx.println("Current Settings:")
		ctx.printf("  Timezone:    %s\n", settings.Timezone)
		ctx.printf("  Trend Order: %s\n", settings.TrendOrder)
	}
	return nil
}
