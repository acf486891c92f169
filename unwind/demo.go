package unwind

import (
	"context"
	"errors"

	"github.com/andrebq/learn-scoped-resources/internal/logutil"
)

type (
	// Chain is the alpha/bravo/charlie demonstration. Constructing
	// charlie constructs nothing nested, but destroying it constructs
	// a bravo and then fails, destroying bravo constructs an alpha and
	// then fails, destroying alpha succeeds cleanly. The second
	// failure surfaces while the first is propagating, which is
	// unrecoverable.
	Chain struct {
		// Terminate overrides the scopes' termination step, leave
		// nil for the real thing.
		Terminate func()
	}

	alpha struct{ chain *Chain }

	bravo struct{ chain *Chain }

	charlie struct{ chain *Chain }
)

// Run executes the demonstration with default (process-killing)
// termination. Under the default hook it never returns from a
// well-formed run.
func Run(ctx context.Context) error {
	c := Chain{}
	return c.Run(ctx)
}

func (c *Chain) Run(ctx context.Context) error {
	log := logutil.Component(ctx, "unwind")
	s := c.scope("main")
	return s.Run(ctx, func(ctx context.Context) error {
		log.Info().Msg("begin main body")
		ch := c.newCharlie(ctx)
		s.Defer("charlie.destroy", ch.destroy)
		log.Info().Msg("end main body")
		return nil
	})
}

func (c *Chain) scope(name string) *Scope {
	s := NewScope(name)
	if c.Terminate != nil {
		s.OnTerminate(c.Terminate)
	}
	return s
}

func (c *Chain) newAlpha(ctx context.Context) *alpha {
	log := logutil.Component(ctx, "unwind")
	log.Info().Msg("begin construct alpha")
	log.Info().Msg("end construct alpha")
	return &alpha{chain: c}
}

func (a *alpha) destroy(ctx context.Context) error {
	log := logutil.Component(ctx, "unwind")
	log.Info().Msg("begin destroy alpha")
	log.Info().Msg("end destroy alpha")
	return nil
}

func (c *Chain) newBravo(ctx context.Context) *bravo {
	log := logutil.Component(ctx, "unwind")
	log.Info().Msg("begin construct bravo")
	log.Info().Msg("end construct bravo")
	return &bravo{chain: c}
}

func (b *bravo) destroy(ctx context.Context) error {
	s := b.chain.scope("bravo.destroy")
	return s.Run(ctx, func(ctx context.Context) error {
		log := logutil.Component(ctx, "unwind")
		log.Info().Msg("begin destroy bravo")
		a := b.chain.newAlpha(ctx)
		s.Defer("alpha.destroy", a.destroy)
		log.Info().Msg("failing from destroy bravo")
		return errors.New("deliberate failure destroying bravo")
	})
}

func (c *Chain) newCharlie(ctx context.Context) *charlie {
	log := logutil.Component(ctx, "unwind")
	log.Info().Msg("begin construct charlie")
	log.Info().Msg("end construct charlie")
	return &charlie{chain: c}
}

func (ch *charlie) destroy(ctx context.Context) error {
	s := ch.chain.scope("charlie.destroy")
	return s.Run(ctx, func(ctx context.Context) error {
		log := logutil.Component(ctx, "unwind")
		log.Info().Msg("begin destroy charlie")
		b := ch.chain.newBravo(ctx)
		s.Defer("bravo.destroy", b.destroy)
		log.Info().Msg("failing from destroy charlie")
		return errors.New("deliberate failure destroying charlie")
	})
}
