package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Render 将模板中的 ${path.to.value} 替换为 data 中的值。
// 路径不存在或值为 null 时替换为空串，卡片上不应出现未解析的占位符。
func Render(text string, data any) string {
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return ""
		}
		val, ok := Resolve(data, strings.TrimSpace(groups[1]))
		if !ok {
			return ""
		}
		return Format(val)
	})
}

// Resolve 按点分路径（支持 name[0] 下标）在 JSON 解码后的数据中取值。
// 空路径返回 data 本身。
func Resolve(data any, path string) (any, bool) {
	if path == "" {
		return data, data != nil
	}
	steps, ok := compile(path)
	if !ok {
		return nil, false
	}
	current := data
	for _, st := range steps {
		if st.key != "" {
			if current, ok = descendMap(current, st.key); !ok {
				return nil, false
			}
		}
		for _, idx := range st.index {
			if current, ok = descendArray(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, current != nil
}

// step 是路径中的一段：先按 key 取字段，再依次取下标。
type step struct {
	key   string
	index []int
}

// compile 把 "a.b[0][1].c" 拆成 steps；下标不是整数或括号不闭合时失败。
func compile(path string) ([]step, bool) {
	parts := strings.Split(path, ".")
	steps := make([]step, 0, len(parts))
	for _, part := range parts {
		key, rest, _ := strings.Cut(part, "[")
		st := step{key: key}
		if rest != "" {
			if !strings.HasSuffix(rest, "]") {
				return nil, false
			}
			for _, raw := range strings.Split(strings.TrimSuffix(rest, "]"), "][") {
				n, err := strconv.Atoi(raw)
				if err != nil {
					return nil, false
				}
				st.index = append(st.index, n)
			}
		}
		steps = append(steps, st)
	}
	return steps, true
}

// Format 把 JSON 标量转换成文本；整数形式的浮点数不带小数点与指数。
func Format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
