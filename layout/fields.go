package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/newscard/binding"
)

// Fields 是一张卡片的八个文本字段，由上游视为不透明字符串提供。
type Fields struct {
	Headline   string `json:"headline"`
	Subhead    string `json:"subhead"`
	Body       string `json:"body"`
	Brand      string `json:"brand"`
	Annotation string `json:"annotation"`
	Caption1   string `json:"caption1"`
	Caption2   string `json:"caption2"`
	Question   string `json:"question"`
}

// Get 返回 role 对应的字段。
func (f Fields) Get(role Role) string {
	switch role {
	case RoleHeadline:
		return f.Headline
	case RoleSubhead:
		return f.Subhead
	case RoleBody:
		return f.Body
	case RoleBrand:
		return f.Brand
	case RoleAnnotation:
		return f.Annotation
	case RoleCaption1:
		return f.Caption1
	case RoleCaption2:
		return f.Caption2
	case RoleQuestion:
		return f.Question
	}
	return ""
}

// Set 写入 role 对应的字段，未知 role 被忽略。
func (f *Fields) Set(role Role, v string) {
	switch role {
	case RoleHeadline:
		f.Headline = v
	case RoleSubhead:
		f.Subhead = v
	case RoleBody:
		f.Body = v
	case RoleBrand:
		f.Brand = v
	case RoleAnnotation:
		f.Annotation = v
	case RoleCaption1:
		f.Caption1 = v
	case RoleCaption2:
		f.Caption2 = v
	case RoleQuestion:
		f.Question = v
	}
}

// Normalize 按版式转大写并截断到字符上限（按 rune 计数），与表单入口的处理一致。
// 排版本身不截断，超长字段也能被容纳，只是视觉上会退化。
func (f Fields) Normalize(cfg Config) Fields {
	var out Fields
	for _, role := range Roles {
		v := f.Get(role)
		if cfg.Upper[role] {
			v = strings.ToUpper(v)
		}
		if limit := cfg.Limits[role]; limit > 0 {
			v = truncateRunes(v, limit)
		}
		out.Set(role, v)
	}
	return out
}

// Bind 使用版式中的 bind 模板从 data 生成字段；没有模板的字段保持为空。
func (c Config) Bind(data any) Fields {
	var out Fields
	for _, role := range Roles {
		tpl, ok := c.Bindings[role]
		if !ok {
			continue
		}
		out.Set(role, binding.Render(tpl, data))
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
