package layout

import (
	"fmt"
)

// Build 把字段排进固定画布，返回可直接渲染的计划。
//
// 先按常规间距估算总高度，超出画布时整体换用压缩间距（只降级一次，
// 不缩小字号）。随后自上而下累积游标，为每个块分配起点并在块后记录分隔线。
// 最后的 question 块若放不进 logo 保留区之上，则锚定到该边界底部。
// 压缩与锚定之后仍可能与前面的内容或 logo 区碰撞，这种情况不视为错误，
// 可通过 Result.Overlaps 检测。
func Build(fields Fields, cfg Config, opts BuildOptions) (*Result, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: 缺少字体测量后端 Measurer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	inputs := cfg.Inputs(fields)
	blocks := make(map[Role]WrappedBlock, len(inputs))
	aligns := make(map[Role]Align, len(inputs))
	widths := make(map[Role]float64, len(inputs))
	for _, in := range inputs {
		wb, err := wrapBlock(in, opts.Measurer, cfg.LineSpacing)
		if err != nil {
			return nil, fmt.Errorf("layout: %s 排版失败: %w", in.Role, err)
		}
		blocks[in.Role] = wb
		aligns[in.Role] = in.Align
		widths[in.Role] = in.MaxWidth
	}

	spacing := cfg.Spacing.Normal
	total := totalHeight(cfg, blocks, spacing)
	compressed := false
	if total > cfg.Height {
		spacing = cfg.Spacing.Compressed
		total = totalHeight(cfg, blocks, spacing)
		compressed = true
	}

	res := &Result{
		Preset:     cfg.Name,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Padding:    cfg.Padding,
		Colors:     cfg.Colors,
		Logo:       cfg.Logo,
		Spacing:    spacing,
		Compressed: compressed,
		Total:      total,
		Blocks:     make([]PlacedBlock, 0, len(Roles)),
		Separators: make([]int, 0, len(flowRoles)),
	}
	place := func(role Role, y int) {
		res.Blocks = append(res.Blocks, PlacedBlock{
			Role:         role,
			WrappedBlock: blocks[role],
			Y:            y,
			Align:        aligns[role],
			MaxWidth:     widths[role],
		})
	}

	cursor := cfg.Padding
	for _, role := range flowRoles {
		place(role, cursor)
		if role == RoleBrand {
			// annotation 与品牌标记同一起点，各自使用自己的行游标
			place(RoleAnnotation, cursor)
		}
		cursor += blocks[role].Height + spacing
		res.Separators = append(res.Separators, cursor-cfg.SeparatorOffset)
	}

	question := blocks[RoleQuestion]
	bottom := cfg.Height - cfg.Logo.Reserved
	if remaining := bottom - cursor; remaining < question.Height {
		cursor = bottom - question.Height
		res.Anchored = true
	}
	place(RoleQuestion, cursor)

	return res, nil
}

// totalHeight = padding + Σ(流式块高度 + 间距) + question 高度 + logo 保留高度。
func totalHeight(cfg Config, blocks map[Role]WrappedBlock, spacing int) int {
	total := cfg.Padding
	for _, role := range flowRoles {
		total += blocks[role].Height + spacing
	}
	return total + blocks[RoleQuestion].Height + cfg.Logo.Reserved
}
