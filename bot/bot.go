package bot

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/ArnaudCalmettes/dotscreen/imp"
	"github.com/ArnaudCalmettes/dotscreen/input"
	"github.com/ArnaudCalmettes/dotscreen/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/jinzhu/gorm"
)

// Settings holds everything the bot needs to run.
type Settings struct {
	Token     string
	DB        string
	Prefix    string
	Defaults  halftone.Config
	Raster    imp.RasterMode
	Filter    imaging.ResampleFilter
	MaxPixels int
}

// DefaultMaxPixels bounds the working resolution of a render.
const DefaultMaxPixels = 40_000_000

// Run runs the bot until SIGINT or SIGTERM.
func Run(settings Settings, logger *log.Logger) error {
	dg, err := discordgo.New("Bot " + settings.Token)
	if err != nil {
		return fmt.Errorf("couldn't create Discord session: %w", err)
	}

	db, err := gorm.Open("sqlite3", settings.DB)
	if err != nil {
		return fmt.Errorf("couldn't connect to db: %w", err)
	}
	defer db.Close()
	if err := models.Migrate(db); err != nil {
		return fmt.Errorf("couldn't migrate db: %w", err)
	}

	params := models.NewParamStore(settings.Defaults)
	rd := &renderer{
		fetcher:   input.NewFetcher(),
		raster:    settings.Raster,
		filter:    settings.Filter,
		maxPixels: settings.MaxPixels,
	}
	if rd.maxPixels <= 0 {
		rd.maxPixels = DefaultMaxPixels
	}

	router := newRouter(db, params, rd, logger)

	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		router.FindAndExecute(s, settings.Prefix, s.State.User.ID, m.Message)
	})

	if err := dg.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	defer dg.Close()

	logger.Info("Up & running", "prefix", settings.Prefix, "db", settings.DB)
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	logger.Info("Shutting down")
	return nil
}

func newRouter(db *gorm.DB, params *models.ParamStore, rd *renderer, logger *log.Logger) *exrouter.Route {
	router := exrouter.New()
	// Middlewares wrap handlers at registration time: Use comes first.
	router.Use(logMiddleware(logger), dbMiddleware(db), paramsMiddleware(params))

	router.On("halftone", rd.halftone).
		Desc("render attached images, `name=value` args override settings once (alias: ht)").
		Alias("ht")

	router.On("params", listParams).Group(func(r *exrouter.Route) {
		r.Use(logMiddleware(logger), paramsMiddleware(params))
		r.On("list", listParams).Desc("show this channel's settings (alias: ls)").Alias("ls")
		r.On("set", setParam).Desc("change a setting")
		r.On("reset", resetParams).Desc("restore default settings")
	}).Desc("halftone settings of this channel (alias: p)").Alias("p")

	router.On("history", listHistory).Desc("list recent renders of this server (alias: hist)").Alias("hist")

	router.Default = router.On("help", func(ctx *exrouter.Context) {
		ctx.Reply("```" + helpText(router) + "```")
	}).Desc("print this help menu (aliases: [h])").Alias("h")

	return router
}

func helpText(router *exrouter.Route) string {
	var f func(depth int, r *exrouter.Route) string
	f = func(depth int, r *exrouter.Route) string {
		text := ""
		for _, v := range r.Routes {
			text += strings.Repeat("  ", depth) + v.Name + ": " + v.Description + "\n"
			text += f(depth+1, &exrouter.Route{Route: v})
		}
		return text
	}
	return f(0, router)
}
