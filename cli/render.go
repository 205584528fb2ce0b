package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/newscard/layout"
)

type renderOpts struct {
	fields   layout.Fields
	preset   string
	output   string
	debug    string
	dataJSON string
	dataFile string
	raw      bool
}

func newRenderCmd(a *app) *cobra.Command {
	var o renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one card to a PNG file",
		Long: `Render lays out the eight text fields with a preset and writes a PNG.

Fields come from flags, or from JSON data (--data / --data-file) bound through
the preset's bind templates; flags override bound values.`,
		Example: `  newscard render --headline "Hello world" --brand acme -o card.png
  newscard render --preset longform --data-file article.json --debug plan.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.fields.Headline, "headline", "", "headline (right-aligned, top)")
	f.StringVar(&o.fields.Subhead, "subhead", "", "subhead")
	f.StringVar(&o.fields.Body, "body", "", "body text")
	f.StringVar(&o.fields.Brand, "brand", "", "large brand mark")
	f.StringVar(&o.fields.Annotation, "annotation", "", "side annotation next to the brand mark")
	f.StringVar(&o.fields.Caption1, "caption1", "", "first caption")
	f.StringVar(&o.fields.Caption2, "caption2", "", "second caption")
	f.StringVar(&o.fields.Question, "question", "", "closing question")
	f.StringVarP(&o.preset, "preset", "p", "", "layout preset (default from config)")
	f.StringVarP(&o.output, "output", "o", "output/card.png", "PNG output path")
	f.StringVar(&o.debug, "debug", "", "write the layout plan as JSON to this path")
	f.StringVar(&o.dataJSON, "data", "", "JSON data bound through the preset's bind templates")
	f.StringVar(&o.dataFile, "data-file", "", "file containing JSON data")
	f.BoolVar(&o.raw, "raw", false, "skip upper-casing and character limits")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, o renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	gen, cfg, err := newGenerator(a.cfg, o.preset, logger)
	if err != nil {
		return err
	}

	fields, err := collectFields(cmd, cfg, o)
	if err != nil {
		return err
	}
	if !o.raw {
		fields = fields.Normalize(cfg)
	}

	prog := newProgress(logger)
	c, err := gen.Generate(fields)
	if err != nil {
		return err
	}
	if c.LogoErr != nil {
		logger.Warn("card rendered without logo", "err", c.LogoErr)
	}

	if o.debug != "" {
		if err := os.MkdirAll(filepath.Dir(o.debug), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(c.Plan, o.debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(o.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(o.output, c.PNG, 0o644); err != nil {
		return fmt.Errorf("写入 PNG 文件失败: %w", err)
	}
	prog.done(fmt.Sprintf("Rendered %s with preset %s, compressed=%t", o.output, c.Plan.Preset, c.Plan.Compressed))
	return nil
}

// collectFields binds JSON data through the preset and lets explicit flags win.
func collectFields(cmd *cobra.Command, cfg layout.Config, o renderOpts) (layout.Fields, error) {
	var fields layout.Fields
	raw := []byte(o.dataJSON)
	if o.dataFile != "" {
		b, err := os.ReadFile(o.dataFile)
		if err != nil {
			return fields, fmt.Errorf("读取数据文件失败: %w", err)
		}
		raw = b
	}
	if len(raw) > 0 {
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return fields, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
		fields = cfg.Bind(data)
	}
	for _, role := range layout.Roles {
		if cmd.Flags().Changed(string(role)) {
			fields.Set(role, o.fields.Get(role))
		}
	}
	return fields, nil
}
