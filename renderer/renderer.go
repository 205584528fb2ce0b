package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/ByLCY/newscard/layout"
)

// 错误种类，使用 errors.Is 判断。
var (
	// ErrFontLoad 表示字体无法加载或解析，属于启动期致命错误。
	ErrFontLoad = errors.New("font load failure")
	// ErrLogoLoad 表示 logo 无法加载或合成，图片照常生成但不带 logo。
	ErrLogoLoad = errors.New("logo load failure")
	// ErrEncoding 表示图片编码失败，作为渲染失败返回给调用方。
	ErrEncoding = errors.New("encoding failure")
)

// Renderer 按排版计划绘制整张卡片。
// logo 合成失败不会让 Render 返回错误，而是记录在 Output.LogoErr 中。
type Renderer interface {
	Render(result *layout.Result, logo image.Image) (*Output, error)
}

// Output 是一次渲染的结果：完整的栅格图，以及可选的 logo 合成错误。
type Output struct {
	Image   image.Image
	LogoErr error
}

// PNG 将图片无损编码为 PNG 字节。
func (o *Output) PNG() ([]byte, error) {
	if o == nil || o.Image == nil {
		return nil, fmt.Errorf("%w: 没有可编码的图片", ErrEncoding)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, o.Image); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return buf.Bytes(), nil
}
