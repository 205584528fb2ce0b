package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/newscard/layout"
	"github.com/ByLCY/newscard/renderer"
)

// compositeLogo scales logo to the configured size and pastes it at the
// bottom-right offset, using its alpha channel as the mask when it has one.
// Every failure, including a panic from a misbehaving image, is returned as
// renderer.ErrLogoLoad.
func compositeLogo(dst *image.RGBA, logo image.Image, res *layout.Result) (err error) {
	box := res.Logo
	if box.Size <= 0 {
		return nil
	}
	if logo == nil {
		return fmt.Errorf("%w: 未提供 logo", renderer.ErrLogoLoad)
	}
	src := logo.Bounds()
	if src.Empty() {
		return fmt.Errorf("%w: logo 尺寸为空", renderer.ErrLogoLoad)
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: 合成 logo 失败: %v", renderer.ErrLogoLoad, p)
		}
	}()

	scaled := image.NewRGBA(image.Rect(0, 0, box.Size, box.Size))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), logo, src, xdraw.Src, nil)

	at := image.Pt(res.Width-box.Offset, res.Height-box.Offset)
	op := draw.Src
	if hasAlpha(logo) {
		op = draw.Over
	}
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(scaled.Bounds().Size())}, scaled, image.Point{}, op)
	return nil
}

// hasAlpha 判断图片是否带透明通道（对应“有 A 通道才用作遮罩”）。
func hasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	switch img.ColorModel() {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}
