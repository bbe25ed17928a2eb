package bot

import (
	"github.com/ArnaudCalmettes/dotscreen/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/jinzhu/gorm"
)

// Log a received message event
func logMsg(l *log.Logger, s *discordgo.Session, m *discordgo.Message) {
	guild, channel := m.GuildID, m.ChannelID
	if g, err := s.State.Guild(m.GuildID); err == nil {
		guild = g.Name
	}
	if c, err := s.State.Channel(m.ChannelID); err == nil {
		channel = c.Name
	}
	l.Info("command", "guild", guild, "channel", channel, "user", m.Author.Username, "content", m.Content)
}

// Middleware that logs processed messages and adds the logger to commands'
// context.
func logMiddleware(l *log.Logger) exrouter.MiddlewareFunc {
	return func(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
		return func(ctx *exrouter.Context) {
			ctx.Set("logger", l)
			logMsg(l, ctx.Ses, ctx.Msg)
			if fn != nil {
				fn(ctx)
			}
		}
	}
}

// Middleware that adds the database to commands' context.
func dbMiddleware(db *gorm.DB) exrouter.MiddlewareFunc {
	return func(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
		return func(ctx *exrouter.Context) {
			ctx.Set("db", db)
			if fn != nil {
				fn(ctx)
			}
		}
	}
}

// Middleware that adds the parameter store to commands' context.
func paramsMiddleware(params *models.ParamStore) exrouter.MiddlewareFunc {
	return func(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
		return func(ctx *exrouter.Context) {
			ctx.Set("params", params)
			if fn != nil {
				fn(ctx)
			}
		}
	}
}
