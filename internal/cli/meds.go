package cli

import (
	"context"

	"github.com/julianstephens/heybuddy/internal/ledger"
)

type MedsCmd struct {
	Yes    MedsYesCmd    `cmd:"" help:"Mark today's medication as taken."`
	No     MedsNoCmd     `cmd:"" help:"Mark today's medication as not taken."`
	Status MedsStatusCmd `cmd:"" help:"Show today's medication answer." default:"1"`
}

type MedsYesCmd struct{}

func (c *MedsYesCmd) Run(ctx *Context) error {
	return setMeds(ctx, true)
}

type MedsNoCmd struct{}

func (c *MedsNoCmd) Run(ctx *Context) error {
	return setMeds(ctx, false)
}

func setMeds(ctx *Context, taken bool) error {
	return ctx.withLedger(func(bg context.Context, l *ledger.Ledger) error {
		if err := ctx.wait(bg, l.SetMedsTaken(taken)); err != nil {
			return err
		}
		if taken {
			ctx.println("✓ Meds taken today. Nice work 💊")
		} else {
			ctx.println("Noted: meds not taken yet today")
		}
		return nil
	})
}

type MedsStatusCmd struct{}

func (c *MedsStatusCmd) Run(ctx *Context) error {
	return ctx.withLedger(func(_ context.Context, l *ledger.Ledger) error {
		snap := l.Snapshot()
		switch {
		case snap.MedsTaken == nil:
			ctx.println("No answer for today yet")
		case *snap.MedsTaken:
			ctx.println("💊 Taken today")
		default:
			ctx.println("💊 Not taken today")
		}
		return nil
	})
}
