package layout

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ByLCY/newscard/dsl"
)

// Registry 按名称保存版式，内置版式总是可用，可再从 DSL 文件追加。
type Registry struct {
	presets map[string]Config
	order   []string
}

// NewRegistry 创建只包含内置版式的注册表。
func NewRegistry() *Registry {
	r := &Registry{presets: map[string]Config{}}
	for _, cfg := range Presets() {
		r.add(cfg)
	}
	return r
}

func (r *Registry) add(cfg Config) {
	if _, ok := r.presets[cfg.Name]; !ok {
		r.order = append(r.order, cfg.Name)
	}
	r.presets[cfg.Name] = cfg
}

// Get 返回名为 name 的版式副本。
func (r *Registry) Get(name string) (Config, error) {
	cfg, ok := r.presets[name]
	if !ok {
		known := append([]string(nil), r.order...)
		sort.Strings(known)
		return Config{}, fmt.Errorf("未知版式 %q（可用: %s）", name, strings.Join(known, ", "))
	}
	return cfg.Clone(), nil
}

// Names 按注册顺序返回全部版式名称。
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Load 解析 DSL 并注册其中的版式；同名版式会覆盖已有定义。
func (r *Registry) Load(src io.Reader) ([]string, error) {
	file, err := dsl.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("解析版式 DSL 失败: %w", err)
	}
	var names []string
	for _, p := range file.Presets {
		cfg, err := r.compile(p)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Pos, err)
		}
		r.add(cfg)
		names = append(names, cfg.Name)
	}
	return names, nil
}

// compile 以 extends 指定的版式（默认 classic）为基础，逐条应用语句。
func (r *Registry) compile(p *dsl.Preset) (Config, error) {
	base := p.Extends
	if base == "" {
		base = "classic"
	}
	parent, ok := r.presets[base]
	if !ok {
		return Config{}, fmt.Errorf("%s: 版式 %s 继承的 %q 不存在", p.Pos, p.Name, base)
	}
	cfg := parent.Clone()
	cfg.Name = p.Name
	for _, st := range p.Statements {
		if err := applyStatement(&cfg, st); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func applyStatement(cfg *Config, st *dsl.Statement) error {
	args := st.Args
	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s: %s 需要 %d 个参数，得到 %d", st.Pos, st.Key, n, len(args))
		}
		return nil
	}
	role := func(v *dsl.Value) (Role, error) {
		r, err := ParseRole(v.Text())
		if err != nil {
			return "", fmt.Errorf("%s: %w", v.Pos, err)
		}
		return r, nil
	}

	switch strings.ToLower(st.Key) {
	case "canvas":
		if err := want(2); err != nil {
			return err
		}
		w, err := args[0].Int()
		if err != nil {
			return err
		}
		h, err := args[1].Int()
		if err != nil {
			return err
		}
		cfg.Width, cfg.Height = w, h
	case "padding":
		if err := want(1); err != nil {
			return err
		}
		v, err := args[0].Int()
		if err != nil {
			return err
		}
		cfg.Padding = v
	case "line-spacing":
		if err := want(1); err != nil {
			return err
		}
		v, err := args[0].Float()
		if err != nil {
			return err
		}
		cfg.LineSpacing = v
	case "spacing":
		if err := want(2); err != nil {
			return err
		}
		normal, err := args[0].Int()
		if err != nil {
			return err
		}
		compressed, err := args[1].Int()
		if err != nil {
			return err
		}
		cfg.Spacing = Spacing{Normal: normal, Compressed: compressed}
	case "separator-offset":
		if err := want(1); err != nil {
			return err
		}
		v, err := args[0].Int()
		if err != nil {
			return err
		}
		cfg.SeparatorOffset = v
	case "annotation-ratio":
		if err := want(1); err != nil {
			return err
		}
		v, err := args[0].Float()
		if err != nil {
			return err
		}
		cfg.AnnotationRatio = v
	case "logo":
		if err := want(3); err != nil {
			return err
		}
		var vals [3]int
		for i := range vals {
			v, err := args[i].Int()
			if err != nil {
				return err
			}
			vals[i] = v
		}
		cfg.Logo = LogoBox{Size: vals[0], Reserved: vals[1], Offset: vals[2]}
	case "background", "ink", "rule":
		if err := want(1); err != nil {
			return err
		}
		c, err := ParseHexColor(args[0].Text())
		if err != nil {
			return fmt.Errorf("%s: %w", args[0].Pos, err)
		}
		switch strings.ToLower(st.Key) {
		case "background":
			cfg.Colors.Background = c
		case "ink":
			cfg.Colors.Ink = c
		default:
			cfg.Colors.Rule = c
		}
	case "font":
		// font ROLE WEIGHT SIZE [FACE]
		if len(args) != 3 && len(args) != 4 {
			return fmt.Errorf("%s: font 需要 3 或 4 个参数，得到 %d", st.Pos, len(args))
		}
		r, err := role(args[0])
		if err != nil {
			return err
		}
		weight, err := ParseWeight(args[1].Text())
		if err != nil {
			return fmt.Errorf("%s: %w", args[1].Pos, err)
		}
		size, err := args[2].Int()
		if err != nil {
			return err
		}
		style := cfg.Styles[r]
		style.Font.Weight = weight
		style.Font.Size = size
		if style.Font.Face == "" {
			style.Font.Face = DefaultFace
		}
		if len(args) == 4 {
			style.Font.Face = args[3].Text()
		}
		cfg.Styles[r] = style
	case "align":
		if err := want(2); err != nil {
			return err
		}
		r, err := role(args[0])
		if err != nil {
			return err
		}
		a, err := ParseAlign(args[1].Text())
		if err != nil {
			return fmt.Errorf("%s: %w", args[1].Pos, err)
		}
		style := cfg.Styles[r]
		style.Align = a
		cfg.Styles[r] = style
	case "limit":
		if err := want(2); err != nil {
			return err
		}
		r, err := role(args[0])
		if err != nil {
			return err
		}
		n, err := args[1].Int()
		if err != nil {
			return err
		}
		cfg.Limits[r] = n
	case "upper":
		cfg.Upper = map[Role]bool{}
		for _, a := range args {
			if strings.EqualFold(a.Text(), "none") {
				continue
			}
			r, err := role(a)
			if err != nil {
				return err
			}
			cfg.Upper[r] = true
		}
	case "bind":
		if err := want(2); err != nil {
			return err
		}
		r, err := role(args[0])
		if err != nil {
			return err
		}
		cfg.Bindings[r] = args[1].Text()
	default:
		return fmt.Errorf("%s: 未知语句 %q", st.Pos, st.Key)
	}
	return nil
}
