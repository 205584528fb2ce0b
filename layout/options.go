package layout

// BuildOptions 配置布局阶段所需的依赖，例如字体测量后端。
type BuildOptions struct {
	Measurer Measurer
}

// Face 报告某个字体与字号下任意字符串的渲染宽度（像素）。
type Face interface {
	TextWidth(s string) float64
}

// Measurer 负责把 FontSpec 解析成可测量的字体面，是排版的唯一外部依赖。
type Measurer interface {
	Face(font FontSpec) (Face, error)
}
