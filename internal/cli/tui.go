package cli

import (
	"context"

	"github.com/pitchmind/pitchmind/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.LoadState(context.Background()); err != nil {
		return err
	}
	return tui.Run(ctx.Store, ctx.Service, ctx.Exercises, ctx.Routines)
}
