package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// stubFace 以固定比例估算宽度：每个 rune 占 ratio × size 像素。
type stubFace struct {
	size  int
	ratio float64
}

func (f stubFace) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * float64(f.size) * f.ratio
}

// stubMeasurer 是不依赖真实字体的测量后端，避免 layout 测试引入 renderer。
type stubMeasurer struct {
	fail map[string]bool
}

func (m stubMeasurer) Face(font FontSpec) (Face, error) {
	if m.fail[font.Face] {
		return nil, fmt.Errorf("no face %q", font.Face)
	}
	return stubFace{size: font.Size, ratio: 0.5}, nil
}

// filler 返回恰好 n 个 rune 的英文填充文本。
func filler(n int) string {
	const base = "the quick brown fox jumps over the lazy dog "
	s := strings.Repeat(base, n/len(base)+2)
	return s[:n]
}

// maxFields 返回每个字段都达到 cfg 字符上限的输入。
func maxFields(cfg Config) Fields {
	var f Fields
	for _, role := range Roles {
		f.Set(role, filler(cfg.Limits[role]))
	}
	return f.Normalize(cfg)
}
