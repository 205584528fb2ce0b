package layout

import (
	"fmt"
	"strings"
)

// 该文件定义排版计划与字体描述，供布局计算、渲染与调试 JSON 共用。

// Role 标识卡片上的一个内容块。
type Role string

const (
	RoleHeadline   Role = "headline"
	RoleSubhead    Role = "subhead"
	RoleBody       Role = "body"
	RoleBrand      Role = "brand"
	RoleAnnotation Role = "annotation"
	RoleCaption1   Role = "caption1"
	RoleCaption2   Role = "caption2"
	RoleQuestion   Role = "question"
)

// Roles 按绘制顺序列出全部内容块。
var Roles = []Role{
	RoleHeadline,
	RoleSubhead,
	RoleBody,
	RoleBrand,
	RoleAnnotation,
	RoleCaption1,
	RoleCaption2,
	RoleQuestion,
}

// flowRoles 是参与自上而下流式排版、且之后插入分隔线的块。
// annotation 与 brand 共享同一起点，不占用流高度；question 单独处理。
var flowRoles = []Role{
	RoleHeadline,
	RoleSubhead,
	RoleBody,
	RoleBrand,
	RoleCaption1,
	RoleCaption2,
}

// ParseRole 解析块名称，大小写不敏感。
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("未知内容块 %q", s)
}

// Weight 是字重，仅区分常规与粗体。
type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
)

func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "regular"
}

// MarshalText 让调试 JSON 输出可读的字重名称。
func (w Weight) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// ParseWeight 解析 regular/bold。
func ParseWeight(s string) (Weight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular", "normal":
		return WeightRegular, nil
	case "bold":
		return WeightBold, nil
	default:
		return WeightRegular, fmt.Errorf("未知字重 %q", s)
	}
}

// Align 是行的水平对齐方式。
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

func (a Align) String() string {
	if a == AlignRight {
		return "right"
	}
	return "left"
}

func (a Align) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// ParseAlign 解析 left/right（start/end 作为别名）。
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left", "start":
		return AlignLeft, nil
	case "right", "end":
		return AlignRight, nil
	default:
		return AlignLeft, fmt.Errorf("未知对齐方式 %q", s)
	}
}

// FontSpec 描述字体族、像素字号与字重，渲染期间不可变。
type FontSpec struct {
	Face   string `json:"face"`
	Size   int    `json:"size"` // 像素
	Weight Weight `json:"weight"`
}

func (f FontSpec) String() string {
	return fmt.Sprintf("%s/%s/%dpx", f.Face, f.Weight, f.Size)
}

// TextBlockInput 是单个内容块的排版输入，每次渲染请求构造一次。
type TextBlockInput struct {
	Role      Role
	Text      string
	Font      FontSpec
	MaxWidth  float64
	Align     Align
	Limit     int  // 上游已应用的字符上限，这里仅作记录
	Unwrapped bool // 单行不折行（品牌标记）
}

// WrappedBlock 是折行后的文本块，生成后不可变。
type WrappedBlock struct {
	Lines      []string `json:"lines"`
	Font       FontSpec `json:"font"`
	LineHeight int      `json:"lineHeight"` // 每行前进高度 floor(size × lineSpacing)
	Height     int      `json:"height"`
}

// PlacedBlock 是已确定起点坐标的文本块。
type PlacedBlock struct {
	Role Role `json:"role"`
	WrappedBlock
	Y        int     `json:"y"`
	Align    Align   `json:"align"`
	MaxWidth float64 `json:"maxWidth"`
}

// Bottom 返回块底边的 Y 坐标。
func (b PlacedBlock) Bottom() int { return b.Y + b.Height }

// LineOrigins 返回每一行顶部的 Y 坐标，逐行前进 LineHeight，
// 因此最后一行之后的游标恰好等于 Bottom()。
func (b PlacedBlock) LineOrigins() []int {
	origins := make([]int, len(b.Lines))
	y := b.Y
	for i := range b.Lines {
		origins[i] = y
		y += b.LineHeight
	}
	return origins
}

// LogoBox 描述右下角保留给 logo 的区域。
type LogoBox struct {
	Size     int `json:"size"`     // logo 缩放后的边长
	Reserved int `json:"reserved"` // 画布底部为 logo 保留的高度
	Offset   int `json:"offset"`   // logo 左上角距离右边与下边的距离
}

// Palette 保存背景、文字与分隔线颜色。
type Palette struct {
	Background Color `json:"background"`
	Ink        Color `json:"ink"`
	Rule       Color `json:"rule"`
}

// Result 是一次排版的完整计划，渲染器只依赖它作画。
type Result struct {
	Preset     string        `json:"preset"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Padding    int           `json:"padding"`
	Colors     Palette       `json:"colors"`
	Logo       LogoBox       `json:"logo"`
	Spacing    int           `json:"spacing"`
	Compressed bool          `json:"compressed"`
	Anchored   bool          `json:"anchored"` // question 块是否被锚定到底部
	Total      int           `json:"total"`    // 按所选间距估算的总高度
	Blocks     []PlacedBlock `json:"blocks"`
	Separators []int         `json:"separators"`
}

// Block 按角色查找已排版的块。
func (r *Result) Block(role Role) (PlacedBlock, bool) {
	if r == nil {
		return PlacedBlock{}, false
	}
	for _, b := range r.Blocks {
		if b.Role == role {
			return b, true
		}
	}
	return PlacedBlock{}, false
}

// InBounds 报告所有块的纵向范围是否都位于画布之内。
func (r *Result) InBounds() bool {
	if r == nil {
		return false
	}
	for _, b := range r.Blocks {
		if b.Y < 0 || b.Bottom() > r.Height {
			return false
		}
	}
	return true
}

// Overlaps 报告压缩与底部锚定之后仍然存在的视觉碰撞：
// question 块被上移到前面的内容之上，或有文字伸入 logo 保留区。
func (r *Result) Overlaps() bool {
	if r == nil {
		return false
	}
	limit := r.Height - r.Logo.Reserved
	flowBottom := 0
	for _, b := range r.Blocks {
		if b.Role == RoleQuestion {
			continue
		}
		if b.Bottom() > flowBottom {
			flowBottom = b.Bottom()
		}
		if len(b.Lines) > 0 && b.Bottom() > limit {
			return true
		}
	}
	q, ok := r.Block(RoleQuestion)
	if !ok || len(q.Lines) == 0 {
		return false
	}
	return q.Y < flowBottom || q.Bottom() > limit
}
