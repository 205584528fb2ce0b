package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/ByLCY/newscard/card"
	"github.com/ByLCY/newscard/config"
	"github.com/ByLCY/newscard/layout"
	"github.com/ByLCY/newscard/seen"
	"github.com/ByLCY/newscard/source"
)

func newFeedCmd(a *app) *cobra.Command {
	var (
		preset   string
		url      string
		outDir   string
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Render cards for upstream articles that have not been seen yet",
		Long: `Feed downloads a JSON document, binds every unseen item through the preset's
bind templates and writes one PNG per item. Seen ids are kept in Redis when
redis.addr is configured, otherwise in memory for the life of the process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			fc := a.cfg.Feed
			if url != "" {
				fc.URL = url
			}
			if outDir != "" {
				fc.OutDir = outDir
			}

			gen, cfg, err := newGenerator(a.cfg, preset, logger)
			if err != nil {
				return err
			}
			store, closeStore := newSeenStore(a.cfg)
			defer closeStore()

			feed, err := source.NewFeed(source.Options{
				URL:       fc.URL,
				ItemsPath: fc.ItemsPath,
				IDPath:    fc.IDPath,
			}, store)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			run := func() error {
				n, err := runFeedOnce(ctx, feed, gen, cfg, fc.OutDir, logger)
				if err != nil {
					return err
				}
				logger.Info("feed pass finished", "cards", n)
				return nil
			}
			if interval <= 0 {
				return run()
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				if err := run(); err != nil {
					logger.Error("feed pass failed", "err", err)
				}
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "layout preset (default from config)")
	cmd.Flags().StringVar(&url, "url", "", "feed URL (default from config)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll repeatedly at this interval; 0 runs once")
	return cmd
}

// newSeenStore returns a Redis-backed store when configured, otherwise an in-memory one.
func newSeenStore(cfg config.Config) (seen.Store, func()) {
	ttl := cfg.Feed.TTL.Duration
	if cfg.Redis.Addr == "" {
		return seen.NewMemory(ttl, nil), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	closeFn := func() { _ = client.Close() }
	return seen.NewRedis(client, cfg.Redis.Key, ttl, nil), closeFn
}

// runFeedOnce renders every fresh item and marks it once its PNG is on disk.
func runFeedOnce(ctx context.Context, feed *source.Feed, gen *card.Generator, cfg layout.Config, outDir string, logger *log.Logger) (int, error) {
	items, err := feed.Fresh(ctx)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("创建输出目录失败: %w", err)
	}
	written := 0
	for _, it := range items {
		fields := cfg.Bind(it.Data).Normalize(cfg)
		c, err := gen.Generate(fields)
		if err != nil {
			logger.Error("render failed", "id", it.ID, "err", err)
			continue
		}
		if c.LogoErr != nil {
			logger.Warn("card rendered without logo", "id", it.ID, "err", c.LogoErr)
		}
		path := filepath.Join(outDir, safeName(it.ID)+".png")
		if err := os.WriteFile(path, c.PNG, 0o644); err != nil {
			return written, fmt.Errorf("写入 %s 失败: %w", path, err)
		}
		if err := feed.Mark(ctx, it.ID); err != nil {
			return written, err
		}
		logger.Debug("card written", "id", it.ID, "path", path)
		written++
	}
	return written, nil
}

// safeName maps an item id to a file name, replacing path separators and
// other characters that are awkward in file names.
func safeName(id string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, id)
	name = strings.Trim(name, ".")
	if name == "" {
		return "item"
	}
	return name
}
