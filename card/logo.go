package card

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
)

// PlaceholderSize is the edge length of the transparent stand-in logo.
const PlaceholderSize = 40

// Placeholder returns a fully transparent logo.
func Placeholder() image.Image {
	return image.NewNRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
}

// LoadLogo reads the shared logo once at startup. An empty path or a missing
// file yields the transparent placeholder; an unreadable or undecodable file
// returns an error wrapping ErrLogoLoad, and callers continue without a logo.
func LoadLogo(path string) (image.Image, error) {
	if path == "" {
		return Placeholder(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Placeholder(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: 读取 logo %s 失败: %v", ErrLogoLoad, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: 解码 logo %s 失败: %v", ErrLogoLoad, path, err)
	}
	return img, nil
}
