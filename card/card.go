// Package card ties layout planning and rendering together into a single
// Generate call that turns eight text fields into a finished PNG.
package card

import (
	"fmt"
	"image"
	"io"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/newscard/layout"
	"github.com/ByLCY/newscard/renderer"
	canvasrenderer "github.com/ByLCY/newscard/renderer/canvas"
)

// Error kinds re-exported for callers that only import card.
var (
	ErrFontLoad = renderer.ErrFontLoad
	ErrLogoLoad = renderer.ErrLogoLoad
	ErrEncoding = renderer.ErrEncoding
)

// Card is a rendered card together with the plan that produced it.
type Card struct {
	PNG  []byte
	Plan *layout.Result
	// LogoErr is set when the image was produced without its logo.
	LogoErr error
}

// Generator renders cards for one preset. It holds only read-only state
// (config, fonts, logo) and is safe for concurrent use.
type Generator struct {
	cfg      layout.Config
	fonts    *canvasrenderer.FontSet
	renderer renderer.Renderer
	logo     image.Image
	logger   *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogo sets the shared logo composited on every card.
func WithLogo(img image.Image) Option {
	return func(g *Generator) { g.logo = img }
}

// WithRenderer replaces the default canvas renderer.
func WithRenderer(r renderer.Renderer) Option {
	return func(g *Generator) { g.renderer = r }
}

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New validates cfg and resolves every face it needs. A font that cannot be
// resolved yields an error wrapping ErrFontLoad.
func New(cfg layout.Config, fonts *canvasrenderer.FontSet, opts ...Option) (*Generator, error) {
	if fonts == nil {
		return nil, fmt.Errorf("%w: 未提供字体", ErrFontLoad)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := fonts.Preload(cfg); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:    cfg,
		fonts:  fonts,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.renderer == nil {
		g.renderer = canvasrenderer.NewRenderer(fonts)
	}
	return g, nil
}

// Config returns a copy of the generator's preset.
func (g *Generator) Config() layout.Config { return g.cfg.Clone() }

// Plan computes the layout for fields without rendering it.
func (g *Generator) Plan(fields layout.Fields) (*layout.Result, error) {
	return layout.Build(fields, g.cfg, layout.BuildOptions{Measurer: g.fonts})
}

// Generate lays out and renders fields. Field limits are expected to be
// applied by the caller (see layout.Fields.Normalize); over-long fields are
// still rendered. Either a complete PNG is returned or an error.
func (g *Generator) Generate(fields layout.Fields) (*Card, error) {
	plan, err := g.Plan(fields)
	if err != nil {
		return nil, fmt.Errorf("排版失败: %w", err)
	}
	if plan.Overlaps() {
		g.logger.Warn("content collides after compression", "preset", plan.Preset, "total", plan.Total, "anchored", plan.Anchored)
	}

	out, err := g.renderer.Render(plan, g.logo)
	if err != nil {
		return nil, fmt.Errorf("渲染失败: %w", err)
	}
	data, err := out.PNG()
	if err != nil {
		return nil, err
	}
	return &Card{PNG: data, Plan: plan, LogoErr: out.LogoErr}, nil
}
