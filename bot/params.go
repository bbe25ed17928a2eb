package bot

import (
	"strings"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/ArnaudCalmettes/dotscreen/models"
	"github.com/Necroforger/dgrouter/exrouter"
)

// formatParams lays out the current settings next to their defaults.
func formatParams(current, defaults halftone.Config) string {
	var b strings.Builder
	models.WriteTable(&b, current, defaults)
	return b.String()
}

// List the settings of the current channel
func listParams(ctx *exrouter.Context) {
	params, err := getParams(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}
	ctx.Reply("```" + formatParams(params.Config(scope(ctx)), params.Defaults()) + "```")
}

// Change one setting of the current channel
func setParam(ctx *exrouter.Context) {
	if len(ctx.Args) != 3 {
		sendUsage(ctx, "<name> <value>")
		return
	}
	params, err := getParams(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}

	name, err := params.Set(scope(ctx), ctx.Args[1], ctx.Args[2])
	if err != nil {
		sendError(ctx, err)
		markPoop(ctx)
		return
	}
	value, _ := params.Get(scope(ctx), name)
	sendInfo(ctx, "`", name, "` = `", value, "`")
	markOk(ctx)
}

// Restore the default settings of the current channel
func resetParams(ctx *exrouter.Context) {
	params, err := getParams(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}
	params.Reset(scope(ctx))
	markOk(ctx)
}
