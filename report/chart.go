package report

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/wiless/plcalc/pathloss"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 500

	// one point per pixel
	dpi float64 = 72

	infoSize float64 = 12
	// pixels kept free under the plot for the parameter caption
	infoBar  = 28
	infoLeft = 10

	minWidth  = 200
	minHeight = 150
)

var (
	background = color.White
	ink        = color.Black
	lineColor  = colorful.Hsv(215, 0.85, 0.75)
	lineWidth  = vg.Points(2)
)

var ErrEmptySweep = errors.New("empty sweep")

// Chart draws a sweep as a line chart of path loss against distance with
// the link parameters in an info bar underneath.
// A Chart keeps font state between calls and is not safe for concurrent use
type Chart struct {
	width, height int
	context       *freetype.Context
}

func NewChart(width, height int) (*Chart, error) {
	if width < minWidth || height < minHeight {
		return nil, fmt.Errorf("chart size %dx%d below %dx%d", width, height, minWidth, minHeight)
	}
	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	context := freetype.NewContext()
	context.SetDPI(dpi)
	context.SetFont(parsedFont)
	context.SetFontSize(infoSize)
	context.SetHinting(font.HintingFull)
	context.SetSrc(image.NewUniform(ink))

	return &Chart{width: width, height: height, context: context}, nil
}

// Plot builds the line chart of s. Axis ranges follow the data
func (c *Chart) Plot(s pathloss.SweepResult) (*plot.Plot, error) {
	if s.Len() == 0 {
		return nil, ErrEmptySweep
	}

	p := plot.New()
	p.Title.Text = s.Model.Title()
	p.X.Label.Text = "Distance (km)"
	p.Y.Label.Text = "Path Loss (dB)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, s.Len())
	s.Each(func(d, loss float64) bool {
		pts = append(pts, plotter.XY{X: d, Y: loss})
		return true
	})
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("building curve: %w", err)
	}
	curve.LineStyle.Color = lineColor
	curve.LineStyle.Width = lineWidth
	p.Add(curve)
	return p, nil
}

// Render draws the sweep into a new image
func (c *Chart) Render(s pathloss.SweepResult) (*image.RGBA, error) {
	p, err := c.Plot(s)
	if err != nil {
		return nil, err
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Points(float64(c.width)), vg.Points(float64(c.height))),
		vgimg.UseDPI(int(dpi)),
		vgimg.UseBackgroundColor(background),
	)
	p.Draw(vgdraw.Crop(vgdraw.New(canvas), 0, 0, vg.Points(infoBar), 0))

	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.Draw(img, img.Bounds(), canvas.Image(), image.Point{}, draw.Src)

	if err := c.drawInfo(img, s); err != nil {
		return nil, fmt.Errorf("drawing info: %w", err)
	}
	return img, nil
}

func (c *Chart) WritePNG(w io.Writer, s pathloss.SweepResult) error {
	img, err := c.Render(s)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func (c *Chart) drawInfo(img *image.RGBA, s pathloss.SweepResult) error {
	c.context.SetClip(img.Bounds())
	c.context.SetDst(img)

	pt := freetype.Pt(infoLeft, c.height-infoBar/2+int(infoSize)/3)
	_, err := c.context.DrawString(Caption(s.Params), pt)
	return err
}
