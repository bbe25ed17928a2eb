package models

import (
	"fmt"
	"time"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/jinzhu/gorm"
)

// A Render records one halftone produced by the bot.
type Render struct {
	gorm.Model
	GuildID   string `gorm:"index"`
	ChannelID string
	UserID    string
	UserName  string
	Source    string
	Width     int
	Height    int
	Cols      int
	Rows      int
	Dots      int
	Config    string
	Duration  time.Duration
}

// NewRender fills a Render from a pipeline result.
func NewRender(res *halftone.Result, c halftone.Config, elapsed time.Duration) Render {
	return Render{
		Width:    res.Width,
		Height:   res.Height,
		Cols:     res.Grid.Cols,
		Rows:     res.Grid.Rows,
		Dots:     len(res.Dots),
		Config:   c.String(),
		Duration: elapsed,
	}
}

func (r Render) String() string {
	return fmt.Sprintf("%s %dx%d, %dx%d cells, %d dots", r.Source, r.Width, r.Height, r.Cols, r.Rows, r.Dots)
}

// Create creates a new render record in the DB
func (r *Render) Create(db *gorm.DB) error {
	return db.Create(r).Error
}

// ListRenders returns the latest renders of a guild, newest first.
func ListRenders(db *gorm.DB, guildID string, limit int) (renders []Render, err error) {
	err = db.Where("guild_id = ?", guildID).Order("id desc").Limit(limit).Find(&renders).Error
	return
}

// Migrate creates or updates the tables used by dotscreen.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Render{}).Error
}
