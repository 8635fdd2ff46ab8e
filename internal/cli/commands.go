package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/wipboard/internal/app"
	"github.com/riordanpawley/wipboard/internal/config"
	"github.com/riordanpawley/wipboard/internal/core/wip"
	"github.com/riordanpawley/wipboard/internal/store"
	"github.com/riordanpawley/wipboard/internal/ui/board"
	"github.com/riordanpawley/wipboard/internal/ui/styles"
)

// Dependencies holds everything the commands need
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger
	Out    io.Writer
	Now    func() time.Time

	closer io.Closer
}

// NewDependencies opens the configured log file and bundles it with cfg.
// An empty log path discards logs.
func NewDependencies(cfg *config.Config, out io.Writer) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Out:    out,
		Now:    time.Now,
	}

	if cfg.Log.Path == "" {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return deps, nil
	}

	logger, closer, err := config.OpenLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	deps.Logger = logger
	deps.closer = closer
	return deps, nil
}

// Close releases the log file
func (d *Dependencies) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// RunCommand starts the interactive board
func RunCommand(deps *Dependencies) error {
	cfg := deps.Config

	doc, err := store.LoadOrDefault(cfg.Board.Path, deps.Now())
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	deps.Logger.Info("board loaded", "path", cfg.Board.Path, "columns", len(doc.Columns), "tasks", len(doc.Tasks))

	st := store.NewMemory(doc, deps.Logger)
	model := app.New(cfg, st, deps.Logger)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !cfg.UI.DisableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// ShowCommand prints the board once, without starting the TUI
func ShowCommand(deps *Dependencies, width, height int) error {
	cfg := deps.Config

	doc, err := store.LoadFile(cfg.Board.Path)
	if err != nil {
		return err
	}

	view := board.View{
		CursorColumn:   -1,
		Now:            deps.Now(),
		MaxColumnWidth: cfg.UI.ColumnWidth,
	}
	fmt.Fprintln(deps.Out, board.Render(doc.Board, view, styles.New(), width, height))
	return nil
}

// ValidateCommand loads the board and reports each column's WIP usage.
// Any broken invariant is returned as the error.
func ValidateCommand(deps *Dependencies) error {
	path := deps.Config.Board.Path

	doc, err := store.LoadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tTASKS\tSTATUS")
	fmt.Fprintln(w, "------\t-----\t------")
	for _, col := range doc.Columns {
		usage := wip.UsageOf(doc.Board, col)
		count := fmt.Sprintf("%d", usage.Count)
		if usage.Limited() {
			count = fmt.Sprintf("%d/%d", usage.Count, usage.Limit)
		}
		status := "open"
		switch {
		case col.Collapsed:
			status = "collapsed"
		case usage.Reached():
			status = "full"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", col.Title, count, status)
	}
	w.Flush()

	fmt.Fprintf(deps.Out, "\n✓ %s is valid (%d columns, %d tasks)\n", path, len(doc.Columns), len(doc.Tasks))
	return nil
}

// BoardsListCommand prints the registered boards, marking the default
func BoardsListCommand(out io.Writer) error {
	reg, err := config.LoadBoardsRegistry()
	if err != nil {
		return fmt.Errorf("failed to load boards: %w", err)
	}

	if len(reg.Boards) == 0 {
		fmt.Fprintln(out, "No boards registered")
		fmt.Fprintln(out, "Use 'wipboard boards add <name> <path>' to register one")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tNAME\tPATH")
	for _, b := range reg.Boards {
		marker := ""
		if b.Name == reg.DefaultBoard {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", marker, b.Name, b.Path)
	}
	return w.Flush()
}

// BoardsAddCommand registers a board file under name
func BoardsAddCommand(out io.Writer, name, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	return updateRegistry(func(reg *config.BoardsRegistry) error {
		if err := reg.Add(name, abs); err != nil {
			return fmt.Errorf("failed to add board %q: %w", name, err)
		}
		fmt.Fprintf(out, "✓ Added board %s → %s\n", name, abs)
		return nil
	})
}

// BoardsRemoveCommand unregisters a board. The file itself is kept.
func BoardsRemoveCommand(out io.Writer, name string) error {
	return updateRegistry(func(reg *config.BoardsRegistry) error {
		if err := reg.Remove(name); err != nil {
			return fmt.Errorf("failed to remove board %q: %w", name, err)
		}
		fmt.Fprintf(out, "✓ Removed board %s\n", name)
		return nil
	})
}

// BoardsDefaultCommand marks a registered board as the default
func BoardsDefaultCommand(out io.Writer, name string) error {
	return updateRegistry(func(reg *config.BoardsRegistry) error {
		if err := reg.SetDefault(name); err != nil {
			return fmt.Errorf("failed to set default board %q: %w", name, err)
		}
		fmt.Fprintf(out, "✓ Default board is now %s\n", name)
		return nil
	})
}

func updateRegistry(fn func(*config.BoardsRegistry) error) error {
	reg, err := config.LoadBoardsRegistry()
	if err != nil {
		return fmt.Errorf("failed to load boards: %w", err)
	}
	if err := fn(reg); err != nil {
		return err
	}
	if err := config.SaveBoardsRegistry(reg); err != nil {
		return fmt.Errorf("failed to save boards: %w", err)
	}
	return nil
}
