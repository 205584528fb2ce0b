package layout

import (
	"fmt"
	"sort"
)

// DefaultFace 是内置字体族的名称。
const DefaultFace = "sans"

// Spacing 是块间距的两档预设。
type Spacing struct {
	Normal     int `json:"normal"`
	Compressed int `json:"compressed"`
}

// BlockStyle 描述某个内容块的字体与对齐方式。
type BlockStyle struct {
	Font  FontSpec `json:"font"`
	Align Align    `json:"align"`
}

// Config 汇总一种卡片版式的全部常量；历史上的各个变体都只是不同的 Config。
type Config struct {
	Name            string
	Width           int
	Height          int
	Padding         int
	LineSpacing     float64
	Spacing         Spacing
	SeparatorOffset int
	AnnotationRatio float64 // annotation 折行宽度占可用宽度的比例
	Logo            LogoBox
	Colors          Palette
	Styles          map[Role]BlockStyle
	Limits          map[Role]int
	Upper           map[Role]bool
	Bindings        map[Role]string // ${path} 模板，用于从上游数据生成字段
}

// UsableWidth 返回画布宽度减去两侧内边距。
func (c Config) UsableWidth() float64 {
	return float64(c.Width - 2*c.Padding)
}

// Clone 深拷贝 map 字段，便于在 extends 时修改副本。
func (c Config) Clone() Config {
	out := c
	out.Styles = make(map[Role]BlockStyle, len(c.Styles))
	for k, v := range c.Styles {
		out.Styles[k] = v
	}
	out.Limits = make(map[Role]int, len(c.Limits))
	for k, v := range c.Limits {
		out.Limits[k] = v
	}
	out.Upper = make(map[Role]bool, len(c.Upper))
	for k, v := range c.Upper {
		out.Upper[k] = v
	}
	out.Bindings = make(map[Role]string, len(c.Bindings))
	for k, v := range c.Bindings {
		out.Bindings[k] = v
	}
	return out
}

// Validate 检查版式常量是否自洽。
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("版式 %s: 画布尺寸无效 %dx%d", c.Name, c.Width, c.Height)
	}
	if c.Padding < 0 || 2*c.Padding >= c.Width {
		return fmt.Errorf("版式 %s: 内边距 %d 超出画布宽度", c.Name, c.Padding)
	}
	if c.LineSpacing <= 0 {
		return fmt.Errorf("版式 %s: 行距倍数必须大于 0", c.Name)
	}
	if c.Spacing.Compressed < 0 || c.Spacing.Compressed > c.Spacing.Normal {
		return fmt.Errorf("版式 %s: 压缩间距 %d 必须介于 0 与常规间距 %d 之间", c.Name, c.Spacing.Compressed, c.Spacing.Normal)
	}
	if c.AnnotationRatio <= 0 || c.AnnotationRatio > 1 {
		return fmt.Errorf("版式 %s: annotation 宽度比例 %g 超出 (0, 1]", c.Name, c.AnnotationRatio)
	}
	if c.Logo.Size < 0 || c.Logo.Reserved < 0 || c.Logo.Reserved > c.Height {
		return fmt.Errorf("版式 %s: logo 区域无效", c.Name)
	}
	for _, role := range Roles {
		st, ok := c.Styles[role]
		if !ok {
			return fmt.Errorf("版式 %s: 缺少 %s 的字体", c.Name, role)
		}
		if st.Font.Size <= 0 {
			return fmt.Errorf("版式 %s: %s 的字号必须大于 0", c.Name, role)
		}
	}
	return nil
}

// Inputs 根据字段构造全部内容块的排版输入，顺序与 Roles 一致。
func (c Config) Inputs(f Fields) []TextBlockInput {
	maxWidth := c.UsableWidth()
	inputs := make([]TextBlockInput, 0, len(Roles))
	for _, role := range Roles {
		st := c.Styles[role]
		in := TextBlockInput{
			Role:     role,
			Text:     f.Get(role),
			Font:     st.Font,
			MaxWidth: maxWidth,
			Align:    st.Align,
			Limit:    c.Limits[role],
		}
		switch role {
		case RoleBrand:
			in.Unwrapped = true
		case RoleAnnotation:
			in.MaxWidth = maxWidth * c.AnnotationRatio
		}
		inputs = append(inputs, in)
	}
	return inputs
}

// FontSpecs 返回版式用到的全部不同字体，按字符串排序。
func (c Config) FontSpecs() []FontSpec {
	seen := map[FontSpec]bool{}
	var out []FontSpec
	for _, st := range c.Styles {
		if seen[st.Font] {
			continue
		}
		seen[st.Font] = true
		out = append(out, st.Font)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func regular(size int) FontSpec { return FontSpec{Face: DefaultFace, Size: size, Weight: WeightRegular} }
func bold(size int) FontSpec    { return FontSpec{Face: DefaultFace, Size: size, Weight: WeightBold} }

// Classic 返回最初的 1080×1080 版式。
func Classic() Config {
	return Config{
		Name:            "classic",
		Width:           1080,
		Height:          1080,
		Padding:         40,
		LineSpacing:     1.1,
		Spacing:         Spacing{Normal: 15, Compressed: 9},
		SeparatorOffset: 5,
		AnnotationRatio: 1.0 / 3.0,
		Logo:            LogoBox{Size: 90, Reserved: 90, Offset: 90},
		Colors: Palette{
			Background: MustHexColor("#A4A5A6"),
			Ink:        MustHexColor("#000000"),
			Rule:       MustHexColor("#8A8A8A"),
		},
		Styles: map[Role]BlockStyle{
			RoleHeadline:   {Font: bold(57), Align: AlignRight},
			RoleSubhead:    {Font: regular(37)},
			RoleBody:       {Font: regular(31)},
			RoleBrand:      {Font: bold(198)},
			RoleAnnotation: {Font: regular(43), Align: AlignRight},
			RoleCaption1:   {Font: regular(31)},
			RoleCaption2:   {Font: regular(31)},
			RoleQuestion:   {Font: bold(57)},
		},
		Limits: map[Role]int{
			RoleHeadline:   52,
			RoleSubhead:    55,
			RoleBody:       300,
			RoleBrand:      5,
			RoleAnnotation: 40,
			RoleCaption1:   200,
			RoleCaption2:   200,
			RoleQuestion:   51,
		},
		Upper: map[Role]bool{
			RoleHeadline: true,
			RoleBrand:    true,
			RoleQuestion: true,
		},
		Bindings: map[Role]string{},
	}
}

// Presets 返回全部内置版式，第一个为默认版式。
func Presets() []Config {
	classic := Classic()

	longform := Classic().Clone()
	longform.Name = "longform"
	longform.Spacing = Spacing{Normal: 12, Compressed: 6}
	longform.Styles[RoleBody] = BlockStyle{Font: regular(28)}
	longform.Limits[RoleBody] = 500
	longform.Limits[RoleCaption1] = 160
	longform.Limits[RoleCaption2] = 160

	compact := Classic().Clone()
	compact.Name = "compact"
	compact.Padding = 32
	compact.Spacing = Spacing{Normal: 12, Compressed: 8}
	compact.Limits[RoleAnnotation] = 30

	airy := Classic().Clone()
	airy.Name = "airy"
	airy.Padding = 48
	airy.Spacing = Spacing{Normal: 18, Compressed: 10}
	airy.Limits[RoleBody] = 260
	airy.Limits[RoleCaption1] = 180
	airy.Limits[RoleCaption2] = 180

	heavy := Classic().Clone()
	heavy.Name = "bold"
	heavy.Styles[RoleHeadline] = BlockStyle{Font: bold(60), Align: AlignRight}
	heavy.Styles[RoleQuestion] = BlockStyle{Font: bold(60)}
	heavy.Styles[RoleBrand] = BlockStyle{Font: bold(180)}
	heavy.Limits[RoleAnnotation] = 30
	heavy.Limits[RoleHeadline] = 48
	heavy.Limits[RoleQuestion] = 48

	return []Config{classic, longform, compact, airy, heavy}
}
