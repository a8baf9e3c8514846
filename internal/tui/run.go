package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/quickcap/internal/clipwatch"
	"github.com/studiowebux/quickcap/internal/config"
	"golang.org/x/sync/errgroup"
)

// Run starts the overlay with the settings watcher and the clipboard
// monitor alongside it. Worker failures are logged and never stop the
// overlay. Run returns when the user quits or ctx is cancelled, and the
// draft is saved on the way out.
func Run(ctx context.Context, opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.send = p.Send

	g, gctx := errgroup.WithContext(ctx)
	workers, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		defer stop()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})

	if opts.SettingsPath != "" {
		g.Go(func() error {
			err := config.WatchSettings(workers, opts.SettingsPath, m.logger, func(s config.Settings) {
				p.Send(settingsReloadedMsg{settings: s})
			})
			if err != nil {
				m.logger.Printf("settings hot reload disabled: %v", err)
			}
			return nil
		})
	}

	if opts.Watch != nil {
		maxEntries := m.settings.MaxEntries
		monitor := clipwatch.New(opts.Watch, func(ctx context.Context, content string) error {
			if err := m.store.Record(ctx, content, maxEntries); err != nil {
				return err
			}
			p.Send(clipboardCapturedMsg{})
			return nil
		}, m.settings.MonitorInterval(), m.logger)

		g.Go(func() error {
			if err := monitor.Run(workers); err != nil {
				m.logger.Printf("clipboard monitor stopped: %v", err)
			}
			return nil
		})
	}

	err = g.Wait()
	m.Cleanup()
	return err
}
