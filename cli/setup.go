package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/newscard/card"
	"github.com/ByLCY/newscard/config"
	"github.com/ByLCY/newscard/fonts"
	"github.com/ByLCY/newscard/layout"
	canvasrenderer "github.com/ByLCY/newscard/renderer/canvas"
)

// loadRegistry returns the built-in presets plus those in cfg.PresetsFile.
func loadRegistry(cfg config.Config, logger *log.Logger) (*layout.Registry, error) {
	reg := layout.NewRegistry()
	if cfg.PresetsFile == "" {
		return reg, nil
	}
	f, err := os.Open(cfg.PresetsFile)
	if err != nil {
		return nil, fmt.Errorf("无法打开版式文件 %s: %w", cfg.PresetsFile, err)
	}
	defer f.Close()
	names, err := reg.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.PresetsFile, err)
	}
	logger.Debug("loaded presets", "file", cfg.PresetsFile, "names", names)
	return reg, nil
}

// loadFonts builds the shared font set. A fonts_dir that cannot be read is fatal.
func loadFonts(cfg config.Config, logger *log.Logger) (*canvasrenderer.FontSet, error) {
	family := fonts.Builtin(layout.DefaultFace)
	if cfg.FontsDir != "" {
		var err error
		family, err = fonts.LoadDir(layout.DefaultFace, cfg.FontsDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", card.ErrFontLoad, err)
		}
		logger.Debug("loaded fonts", "dir", cfg.FontsDir)
	}
	return canvasrenderer.NewFontSet(family)
}

// newGenerator loads presets, fonts and the logo, and builds a generator for preset.
// preset overrides cfg.Preset when non-empty.
func newGenerator(cfg config.Config, preset string, logger *log.Logger) (*card.Generator, layout.Config, error) {
	reg, err := loadRegistry(cfg, logger)
	if err != nil {
		return nil, layout.Config{}, err
	}
	if preset == "" {
		preset = cfg.Preset
	}
	lc, err := reg.Get(preset)
	if err != nil {
		return nil, layout.Config{}, err
	}
	fs, err := loadFonts(cfg, logger)
	if err != nil {
		return nil, layout.Config{}, err
	}

	logo, err := card.LoadLogo(cfg.Logo)
	if err != nil {
		if !errors.Is(err, card.ErrLogoLoad) {
			return nil, layout.Config{}, err
		}
		logger.Warn("continuing without logo", "err", err)
	}

	gen, err := card.New(lc, fs, card.WithLogo(logo), card.WithLogger(logger))
	if err != nil {
		return nil, layout.Config{}, err
	}
	return gen, lc, nil
}
