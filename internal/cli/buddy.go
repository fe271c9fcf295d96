package cli

import (
	"context"

	"github.com/julianstephens/heybuddy/internal/catalog"
	"github.com/julianstephens/heybuddy/internal/ledger"
)

type BuddyCmd struct {
	List   BuddyListCmd   `cmd:"" help:"List available buddies." default:"1"`
	Select BuddySelectCmd `cmd:"" help:"Choose your buddy."`
	Say    BuddySayCmd    `cmd:"" help:"Hear a message from your buddy."`
}

type BuddyListCmd struct{}

func (c *BuddyListCmd) Run(ctx *Context) error {
	return ctx.withLedger(func(_ context.Context, l *ledger.Ledger) error {
		current := l.Snapshot().Buddy.ID
		ctx.println("Buddies:")
		for _, b := range catalog.Buddies() {
			marker := " "
			if b.ID == current {
				marker = "*"
			}
			ctx.printf("  %s %s %-6s (%s) %s\n", marker, b.Emoji, b.Name, b.ID, b.Description)
		}
		return nil
	})
}

type BuddySelectCmd struct {
	ID string `arg:"" help:"Buddy id (see 'heybuddy buddy list')."`
}

func (c *BuddySelectCmd) Run(ctx *Context) error {
	return ctx.withLedger(func(bg context.Context, l *ledger.Ledger) error {
		commit, err := l.SelectBuddy(c.ID)
		if err != nil {
			return err
		}
		if err := ctx.wait(bg, commit); err != nil {
			return err
		}
		b := l.Snapshot().Buddy
		ctx.printf("✓ %s %s is now your buddy\n", b.Emoji, b.Name)
		ctx.printf("  %s\n", l.BuddyMessage())
		return nil
	})
}

type BuddySayCmd struct{}

func (c *BuddySayCmd) Run(ctx *Context) error {
	return ctx.withLedger(func(_ context.Context, l *ledger.Ledger) error {
		b := l.Snapshot().Buddy
		ctx.printf("%s %s: %s\n", b.Emoji, b.Name, l.BuddyMessage())
		return nil
	})
}

type JokeCmd struct{}

func (c *JokeCmd) Run(ctx *Context) error {
	ctx.printf("😄 %s\n", catalog.RandomJoke(nil))
	return nil
}
