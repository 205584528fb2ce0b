package canvasrenderer

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/newscard/layout"
	"github.com/ByLCY/newscard/renderer"
)

// Renderer paints layout results via github.com/tdewolff/canvas.
// Text is rasterized by canvas; separators and the logo are composited
// directly on the pixel buffer so they land on exact pixel rows.
type Renderer struct {
	fonts *FontSet
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer drawing with the given font set.
func NewRenderer(fonts *FontSet) *Renderer {
	return &Renderer{fonts: fonts}
}

// Render paints result onto a fresh opaque canvas and composites logo.
// A logo failure is returned in Output.LogoErr, never as the error.
func (r *Renderer) Render(result *layout.Result, logo image.Image) (*renderer.Output, error) {
	if result == nil {
		return nil, fmt.Errorf("排版结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效 %dx%d", result.Width, result.Height)
	}
	if r.fonts == nil {
		return nil, fmt.Errorf("%w: 渲染器缺少字体", renderer.ErrFontLoad)
	}

	c := canvas.New(float64(result.Width), float64(result.Height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点
	for _, block := range result.Blocks {
		if err := r.drawBlock(ctx, result, block); err != nil {
			return nil, err
		}
	}
	text := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)

	bounds := image.Rect(0, 0, result.Width, result.Height)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(toRGBA(result.Colors.Background)), image.Point{}, draw.Src)
	draw.Draw(img, bounds, text, text.Bounds().Min, draw.Over)
	drawSeparators(img, result)

	out := &renderer.Output{Image: img}
	out.LogoErr = compositeLogo(img, logo, result)
	return out, nil
}

// drawBlock 逐行绘制文本块，行起点来自 PlacedBlock.LineOrigins。
func (r *Renderer) drawBlock(ctx *canvas.Context, res *layout.Result, b layout.PlacedBlock) error {
	if len(b.Lines) == 0 {
		return nil
	}
	face, err := r.fonts.face(b.Font, res.Colors.Ink)
	if err != nil {
		return err
	}
	ascent := face.Metrics().Ascent
	origins := b.LineOrigins()
	for i, line := range b.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		x := float64(res.Padding)
		if b.Align == layout.AlignRight {
			x = float64(res.Width-res.Padding) - face.TextWidth(line)
		}
		// 基线 = 行顶 + 上升部
		ctx.DrawText(x, float64(origins[i])+ascent, canvas.NewTextLine(face, line, canvas.Left))
	}
	return nil
}

// drawSeparators 在每条分隔线位置绘制 1 像素高、横跨 [padding, width-padding] 的线段。
func drawSeparators(img *image.RGBA, res *layout.Result) {
	rule := image.NewUniform(toRGBA(res.Colors.Rule))
	for _, y := range res.Separators {
		if y < 0 || y >= res.Height {
			continue
		}
		line := image.Rect(res.Padding, y, res.Width-res.Padding+1, y+1)
		draw.Draw(img, line, rule, image.Point{}, draw.Src)
	}
}
