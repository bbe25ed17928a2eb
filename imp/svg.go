package imp

import (
	"bufio"
	"io"
	"strconv"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
)

// WriteSVG writes res as an SVG document: a white background and one
// black circle per dot.
func WriteSVG(w io.Writer, res *halftone.Result) error {
	bw := bufio.NewWriter(w)
	width, height := strconv.Itoa(res.Width), strconv.Itoa(res.Height)

	bw.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="` + width + `" height="` + height +
		`" viewBox="0 0 ` + width + ` ` + height + `">` + "\n")
	bw.WriteString(`<rect width="` + width + `" height="` + height + `" fill="white"/>` + "\n")
	bw.WriteString(`<g fill="black">` + "\n")
	for _, d := range res.Dots {
		bw.WriteString(`<circle cx="` + num(d.X) + `" cy="` + num(d.Y) + `" r="` + num(d.R) + `"/>` + "\n")
	}
	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
