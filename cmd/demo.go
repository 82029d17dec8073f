package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/genie/internal/config"
	"github.com/marcus/genie/internal/output"
	"github.com/marcus/genie/internal/playground"
	"github.com/marcus/genie/pkg/overlay"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive overlay playground",
	Long: `Run a full-screen playground exercising every overlay path: click, hover and context-menu triggers, themes, variants, backdrops, auto-close and size constraints.

Keys: ? help, ctrl+p palette, s settings, i inspector, t theme, tab switch view, q quit. The playground logs to .genie/debug.log at the configured level.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			err := fmt.Errorf("demo needs a terminal")
			output.Error("%v", err)
			return err
		}

		base := getBaseDir()

		themeName, _ := cmd.Flags().GetString("theme")
		if themeName != "" {
			if _, ok := overlay.LookupTheme(themeName); !ok {
				err := unknownThemeError(themeName)
				output.Error("%v", err)
				return err
			}
		}

		logger, closeLog, err := demoLogger(base)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer closeLog()

		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width, height = 0, 0
		}

		model, err := playground.New(playground.Options{
			BaseDir: base,
			Logger:  logger,
			Theme:   themeName,
			Width:   width,
			Height:  height,
		})
		if err != nil {
			output.Error("%v", err)
			return err
		}

		opts := []tea.ProgramOption{tea.WithAltScreen()}
		mouse, err := config.GetMouseCapture(base)
		if err != nil {
			mouse = true
		}
		if mouse {
			opts = append(opts, tea.WithMouseCellMotion())
		}

		p := tea.NewProgram(model, opts...)
		if _, err := p.Run(); err != nil {
			output.Error("%v", err)
			return err
		}
		return nil
	},
}

// demoLogger writes to .genie/debug.log so the alt screen stays clean.
func demoLogger(base string) (*log.Logger, func(), error) {
	logPath := filepath.Join(base, ".genie", "debug.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	levelName, err := config.GetLogLevel(base)
	if err != nil {
		levelName = config.DefaultLogLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().String("theme", "", "Start with this theme (default: configured theme)")
}
