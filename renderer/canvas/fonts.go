package canvasrenderer

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/newscard/fonts"
	"github.com/ByLCY/newscard/layout"
	"github.com/ByLCY/newscard/renderer"
)

// FontSet resolves layout.FontSpec values to tdewolff/canvas faces.
//
// Families are loaded once at startup and never mutated afterwards; faces are
// created lazily and cached, so a FontSet is safe to share between concurrent
// renders.
type FontSet struct {
	families map[string]*canvas.FontFamily

	mu    sync.Mutex
	faces map[faceKey]*canvas.FontFace
}

var _ layout.Measurer = (*FontSet)(nil)

type faceKey struct {
	spec layout.FontSpec
	ink  layout.Color
}

// NewFontSet parses every family's regular and bold font data.
// Any parse failure is reported as renderer.ErrFontLoad.
func NewFontSet(families ...fonts.Family) (*FontSet, error) {
	if len(families) == 0 {
		return nil, fmt.Errorf("%w: 未提供任何字体", renderer.ErrFontLoad)
	}
	s := &FontSet{
		families: make(map[string]*canvas.FontFamily, len(families)),
		faces:    map[faceKey]*canvas.FontFace{},
	}
	for _, f := range families {
		family := canvas.NewFontFamily(f.Name)
		if err := family.LoadFont(f.Regular, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("%w: %s 常规字体: %v", renderer.ErrFontLoad, f.Name, err)
		}
		if err := family.LoadFont(f.Bold, 0, canvas.FontBold); err != nil {
			return nil, fmt.Errorf("%w: %s 粗体字体: %v", renderer.ErrFontLoad, f.Name, err)
		}
		s.families[f.Name] = family
	}
	return s, nil
}

// Face implements layout.Measurer. Widths are reported in pixels.
func (s *FontSet) Face(spec layout.FontSpec) (layout.Face, error) {
	face, err := s.face(spec, layout.Color{})
	if err != nil {
		return nil, err
	}
	return face, nil
}

// Preload resolves every face cfg uses so that a missing family fails at startup.
func (s *FontSet) Preload(cfg layout.Config) error {
	for _, spec := range cfg.FontSpecs() {
		if _, err := s.face(spec, cfg.Colors.Ink); err != nil {
			return err
		}
	}
	return nil
}

func (s *FontSet) face(spec layout.FontSpec, ink layout.Color) (*canvas.FontFace, error) {
	if spec.Size <= 0 {
		return nil, fmt.Errorf("%w: 字号无效 %s", renderer.ErrFontLoad, spec)
	}
	key := faceKey{spec: spec, ink: ink}
	s.mu.Lock()
	defer s.mu.Unlock()

	if face, ok := s.faces[key]; ok {
		return face, nil
	}
	family, ok := s.families[spec.Face]
	if !ok {
		return nil, fmt.Errorf("%w: 未加载字体族 %q", renderer.ErrFontLoad, spec.Face)
	}
	style := canvas.FontRegular
	if spec.Weight == layout.WeightBold {
		style = canvas.FontBold
	}
	// 一个画布单位渲染为一个像素，字体面按点创建
	face := family.Face(float64(spec.Size)*layout.PxToPt, toRGBA(ink), style, canvas.FontNormal)
	s.faces[key] = face
	return face, nil
}

func toRGBA(c layout.Color) color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}
