package bot

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ArnaudCalmettes/dotscreen/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/dustin/go-humanize"
)

// historyLimit is the number of renders listed by the history command.
const historyLimit = 10

func formatHistory(renders []models.Render, now time.Time) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "WHEN\tUSER\tSOURCE\tSIZE\tDOTS\tTIME\t")
	for _, r := range renders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%s\t\n",
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"),
			r.UserName, r.Source, r.Width, r.Height, r.Dots,
			r.Duration.Round(time.Millisecond),
		)
	}
	w.Flush()
	return b.String()
}

// List the latest renders of the guild
func listHistory(ctx *exrouter.Context) {
	db, err := getDB(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}
	renders, err := models.ListRenders(db, ctx.Msg.GuildID, historyLimit)
	if err != nil {
		internalError(ctx, err)
		return
	}
	if len(renders) == 0 {
		sendWarning(ctx, "Nothing was rendered on this server yet. Attach an image to `halftone` to start.")
		return
	}
	ctx.Reply("```" + formatHistory(renders, time.Now()) + "```")
}
