package bot

import (
	"errors"
	"fmt"

	"github.com/ArnaudCalmettes/dotscreen/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/charmbracelet/log"
	"github.com/jinzhu/gorm"
)

var (
	errNoDB     = errors.New("couldn't get DB from context")
	errNoParams = errors.New("couldn't get parameter store from context")
)

// React with a poopy (indicate failure)
func markPoop(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "💩")
}

// React with a thumbs up (indicate success)
func markOk(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "👍")
}

// React with an hourglass (work in progress)
func markBusy(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "⏳")
}

// Report an error
func sendError(ctx *exrouter.Context, err error) error {
	ctx.Reply("📛 ", err)
	return err
}

// Report an information
func sendInfo(ctx *exrouter.Context, args ...interface{}) {
	ctx.Reply("ℹ️  ", fmt.Sprint(args...))
}

// Report a warning
func sendWarning(ctx *exrouter.Context, args ...interface{}) {
	ctx.Reply("⚠️  ", fmt.Sprint(args...))
}

// Report an internal error
func internalError(ctx *exrouter.Context, err error) error {
	getLogger(ctx).Error("internal error", "err", err)
	return sendError(ctx, fmt.Errorf("Internal error (`%w`)", err))
}

// Send correct command syntax
func sendUsage(ctx *exrouter.Context, syntax string) {
	sendWarning(ctx, fmt.Sprintf("syntax: `%s %s`", ctx.Args[0], syntax))
}

// Get database instance from the context
func getDB(ctx *exrouter.Context) (db *gorm.DB, err error) {
	db, _ = ctx.Get("db").(*gorm.DB)
	if db == nil {
		err = errNoDB
	}
	return
}

// Get the parameter store from the context
func getParams(ctx *exrouter.Context) (params *models.ParamStore, err error) {
	params, _ = ctx.Get("params").(*models.ParamStore)
	if params == nil {
		err = errNoParams
	}
	return
}

// Get the logger from the context, or the default one
func getLogger(ctx *exrouter.Context) *log.Logger {
	if l, ok := ctx.Get("logger").(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// scope is the parameter scope of a message: each channel has its own
// settings.
func scope(ctx *exrouter.Context) string {
	return ctx.Msg.ChannelID
}
