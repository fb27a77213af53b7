package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/labels"
)

var (
	backgroundColor = color.NRGBA{R: 24, G: 28, B: 36, A: 255}
	fillColor       = color.NRGBA{R: 240, G: 236, B: 220}
	textColor       = color.NRGBA{R: 20, G: 20, B: 20}
	hiddenColor     = color.NRGBA{R: 120, G: 120, B: 130, A: 255}
	deadColor       = color.NRGBA{R: 200, G: 60, B: 60, A: 255}
)

// Overlay draws the labels of a frame report: rendered labels are filled
// with their current alpha, the rest are outlined so the diagnostic image
// shows every label the collection still holds.
type Overlay struct {
	Width, Height int
	Face          font.Face
}

// Render rasterizes rep into a new image.
func (o Overlay) Render(rep FrameReport) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, o.Width, o.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	for _, lr := range rep.Labels {
		switch {
		case lr.Rendered:
			alpha := uint8(lr.Alpha*255 + 0.5)
			fill := fillColor
			fill.A = alpha
			o.fillRect(img, lr.Bounds, fill)
			if lr.Text != "" && o.Face != nil {
				tc := textColor
				tc.A = alpha
				o.drawText(img, lr, tc)
			}
		case lr.State == labels.StateDead:
			o.strokeRect(img, lr.Bounds, deadColor)
		default:
			o.strokeRect(img, lr.Bounds, hiddenColor)
		}
	}
	return img
}

func (o Overlay) fillRect(dst draw.Image, r labels.Rect, c color.Color) {
	r = labels.Rect{
		Min: labels.Pt(max(r.Min.X, 0), max(r.Min.Y, 0)),
		Max: labels.Pt(min(r.Max.X, float64(o.Width)), min(r.Max.Y, float64(o.Height))),
	}
	if r.Size().X <= 0 || r.Size().Y <= 0 {
		return
	}
	z := vector.NewRasterizer(o.Width, o.Height)
	z.MoveTo(float32(r.Min.X), float32(r.Min.Y))
	z.LineTo(float32(r.Max.X), float32(r.Min.Y))
	z.LineTo(float32(r.Max.X), float32(r.Max.Y))
	z.LineTo(float32(r.Min.X), float32(r.Max.Y))
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func (o Overlay) strokeRect(dst draw.Image, r labels.Rect, c color.Color) {
	edges := []labels.Rect{
		{Min: r.Min, Max: labels.Pt(r.Max.X, r.Min.Y+1)},
		{Min: labels.Pt(r.Min.X, r.Max.Y-1), Max: r.Max},
		{Min: r.Min, Max: labels.Pt(r.Min.X+1, r.Max.Y)},
		{Min: labels.Pt(r.Max.X-1, r.Min.Y), Max: r.Max},
	}
	for _, e := range edges {
		o.fillRect(dst, e, c)
	}
}

func (o Overlay) drawText(dst draw.Image, lr LabelReport, c color.Color) {
	width := font.MeasureString(o.Face, lr.Text)
	center := lr.Bounds.Min.Add(lr.Bounds.Size().Mul(0.5))
	height := o.Face.Metrics().Ascent + o.Face.Metrics().Descent
	x := fixed.Int26_6(center.X*64) - width/2
	y := fixed.Int26_6(center.Y*64) - height/2 + o.Face.Metrics().Ascent
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: o.Face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	d.DrawString(lr.Text)
}

// WritePNG renders rep and writes it to path.
func (o Overlay) WritePNG(path string, rep FrameReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, o.Render(rep)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
