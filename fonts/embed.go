package fonts

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 目录加载时查找的文件名，与部署时提供的 Roboto 字体一致。
const (
	RegularFile = "Roboto-Regular.ttf"
	BoldFile    = "Roboto-Bold.ttf"
)

// Family 保存同一字体族常规与粗体两种字重的字体数据。
type Family struct {
	Name    string
	Regular []byte
	Bold    []byte
}

// Builtin 返回编译进二进制的 Go 字体族，未配置字体目录时使用。
func Builtin(name string) Family {
	return Family{Name: name, Regular: goregular.TTF, Bold: gobold.TTF}
}

// LoadDir 从 dir 读取 Roboto-Regular.ttf 与 Roboto-Bold.ttf。
func LoadDir(name, dir string) (Family, error) {
	regular, err := os.ReadFile(filepath.Join(dir, RegularFile))
	if err != nil {
		return Family{}, fmt.Errorf("读取字体 %s 失败: %w", RegularFile, err)
	}
	bold, err := os.ReadFile(filepath.Join(dir, BoldFile))
	if err != nil {
		return Family{}, fmt.Errorf("读取字体 %s 失败: %w", BoldFile, err)
	}
	return Family{Name: name, Regular: regular, Bold: bold}, nil
}
