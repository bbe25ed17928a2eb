package bot

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/ArnaudCalmettes/dotscreen/imp"
	"github.com/ArnaudCalmettes/dotscreen/input"
	"github.com/ArnaudCalmettes/dotscreen/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
)

// renderTimeout bounds the download and processing of one attachment.
const renderTimeout = time.Minute

type renderer struct {
	fetcher   *input.Fetcher
	raster    imp.RasterMode
	filter    imaging.ResampleFilter
	maxPixels int
}

// applyOverrides applies `name=value` arguments to c.
func applyOverrides(c halftone.Config, args []string) (halftone.Config, error) {
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return c, fmt.Errorf("invalid argument `%s`, expected `name=value`", arg)
		}
		p, err := models.LookupParam(name)
		if err != nil {
			return c, err
		}
		if c, err = p.Apply(c, value); err != nil {
			return c, err
		}
	}
	return c, nil
}

// outputName derives the name of the rendered file from the attachment name.
func outputName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "image"
	}
	return base + "_halftone.png"
}

// render downloads url and turns it into a PNG halftone.
func (rd *renderer) render(ctx context.Context, url string, c halftone.Config, logger *log.Logger) (models.Render, []byte, error) {
	start := time.Now()
	img, err := rd.fetcher.FetchImage(ctx, url)
	if err != nil {
		return models.Render{}, nil, err
	}

	src := &input.ImageSource{Image: img, Filter: rd.filter}
	w, h := src.Size()
	if pixels := w * h * c.Scale * c.Scale; pixels > rd.maxPixels {
		return models.Render{}, nil, fmt.Errorf("%dx%d at scale %d is too large (%s pixels, max %s)",
			w, h, c.Scale, humanize.Comma(int64(pixels)), humanize.Comma(int64(rd.maxPixels)))
	}

	frame, err := input.Capture(ctx, src, w, h, c.Scale)
	if err != nil {
		return models.Render{}, nil, err
	}
	res, err := halftone.Run(frame, c, halftone.WithLogger(logger))
	if err != nil {
		return models.Render{}, nil, err
	}

	var buf bytes.Buffer
	if err := imp.Encode(&buf, res, "png", rd.raster); err != nil {
		return models.Render{}, nil, err
	}
	rec := models.NewRender(res, c, time.Since(start))
	logger.Info("rendered", "url", url, "dots", len(res.Dots), "size", humanize.Bytes(uint64(buf.Len())), "elapsed", rec.Duration.Round(time.Millisecond))
	return rec, buf.Bytes(), nil
}

// Render attached images as halftones
func (rd *renderer) halftone(ctx *exrouter.Context) {
	if len(ctx.Msg.Attachments) == 0 {
		sendUsage(ctx, "[name=value]... (attach one or more images)")
		return
	}
	params, err := getParams(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}
	c, err := applyOverrides(params.Config(scope(ctx)), ctx.Args[1:])
	if err != nil {
		sendError(ctx, err)
		markPoop(ctx)
		return
	}

	markBusy(ctx)
	logger := getLogger(ctx)
	done := 0
	for _, att := range ctx.Msg.Attachments {
		rctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
		rec, data, err := rd.render(rctx, att.URL, c, logger)
		cancel()
		if err != nil {
			sendWarning(ctx, fmt.Sprintf("Couldn't render <%s>: `%s`", att.Filename, err))
			continue
		}

		_, err = ctx.Ses.ChannelMessageSendComplex(ctx.Msg.ChannelID, &discordgo.MessageSend{
			Content: fmt.Sprintf("%dx%d cells, %d dots, %s", rec.Cols, rec.Rows, rec.Dots, humanize.Bytes(uint64(len(data)))),
			Files: []*discordgo.File{{
				Name:        outputName(att.Filename),
				ContentType: "image/png",
				Reader:      bytes.NewReader(data),
			}},
		})
		if err != nil {
			internalError(ctx, err)
			continue
		}
		done++

		rec.GuildID = ctx.Msg.GuildID
		rec.ChannelID = ctx.Msg.ChannelID
		rec.UserID = ctx.Msg.Author.ID
		rec.UserName = ctx.Msg.Author.Username
		rec.Source = att.Filename
		record(ctx, &rec)
	}

	if done == 0 {
		markPoop(ctx)
		return
	}
	markOk(ctx)
}

// record stores a render in the history. Failures are only logged.
func record(ctx *exrouter.Context, rec *models.Render) {
	db, err := getDB(ctx)
	if err != nil {
		getLogger(ctx).Warn("render not recorded", "err", err)
		return
	}
	if err := rec.Create(db); err != nil {
		getLogger(ctx).Warn("render not recorded", "err", err)
	}
}
