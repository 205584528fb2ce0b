package layout

import (
	"math"
	"strings"
)

// Wrap 使用贪心算法把 text 拆成宽度不超过 maxWidth 的行。
//
// 先按显式换行切分段落，每段独立折行；文本中间的空段落保留为一个空行。
// 单词永不在词内拆分：比 maxWidth 更宽的单词独占一行并允许溢出。
// 整体为空的文本不产生任何行。
func Wrap(text string, face Face, maxWidth float64) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}

		var current []string
		currentWidth := 0.0
		for _, word := range strings.Fields(paragraph) {
			// 与绘制保持一致：每个单词按 "word " 计宽
			wordWidth := face.TextWidth(word + " ")
			if currentWidth+wordWidth > maxWidth {
				if len(current) > 0 {
					lines = append(lines, strings.Join(current, " "))
				}
				current = []string{word}
				currentWidth = wordWidth
				continue
			}
			current = append(current, word)
			currentWidth += wordWidth
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
	}
	return lines
}

// LineAdvance 返回单行的前进高度 floor(size × lineSpacing)。
// 计算总高度与逐行绘制必须使用同一取整，否则会累积误差。
func LineAdvance(size int, lineSpacing float64) int {
	return int(math.Floor(float64(size) * lineSpacing))
}

// BlockHeight 返回 lines 的总高度：行数 × LineAdvance。
func BlockHeight(lines []string, size int, lineSpacing float64) int {
	return len(lines) * LineAdvance(size, lineSpacing)
}

// wrapBlock 将单个输入块折行并计算高度。
func wrapBlock(in TextBlockInput, m Measurer, lineSpacing float64) (WrappedBlock, error) {
	face, err := m.Face(in.Font)
	if err != nil {
		return WrappedBlock{}, err
	}
	var lines []string
	if in.Unwrapped {
		lines = []string{in.Text}
	} else {
		lines = Wrap(in.Text, face, in.MaxWidth)
	}
	return WrappedBlock{
		Lines:      lines,
		Font:       in.Font,
		LineHeight: LineAdvance(in.Font.Size, lineSpacing),
		Height:     BlockHeight(lines, in.Font.Size, lineSpacing),
	}, nil
}
