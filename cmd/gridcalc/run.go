package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gridcalc/internal/config"
	"gridcalc/internal/engine"
	"gridcalc/internal/session"
	"gridcalc/internal/sheet"
	"gridcalc/internal/ui"
)

func runSheet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rows, cols := cfg.Sheet.Rows, cfg.Sheet.Cols
	if len(args) == 2 {
		rows, cols, err = sheet.ParseDimensions(args[0], args[1])
		if err != nil {
			return err
		}
	}

	eng, err := engine.New(rows, cols)
	if err != nil {
		return err
	}
	sess := session.New(eng)
	sess.SetWindow(cfg.View.Size)

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	if uiFlag == "" {
		uiFlag = cfg.UI.Mode
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	if shouldUseTUI(mode) {
		program := tea.NewProgram(ui.NewModel(sess), tea.WithOutput(os.Stdout), tea.WithAltScreen())
		_, err := program.Run()
		return err
	}
	return runPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), sess)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

// runPrompt is the plain line-oriented loop: grid, status prompt, one command
// per line until q or end of input.
func runPrompt(in io.Reader, out io.Writer, sess *session.Session) error {
	scanner := bufio.NewScanner(in)
	for {
		if grid, ok := sess.Grid(); ok {
			fmt.Fprint(out, grid)
		}
		fmt.Fprint(out, sess.Prompt())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if sess.HandleLine(scanner.Text()) {
			return nil
		}
	}
}
