// Package cli wires the wipboard commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/riordanpawley/wipboard/internal/config"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// options are the flags shared by the board commands
type options struct {
	board      string
	configPath string
	noMouse    bool
	readOnly   bool
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the TUI.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "wipboard",
		Short: "A terminal Kanban board with WIP limits",
		Long: `wipboard is a terminal Kanban board. Tasks move between columns with
the keyboard or by dragging them with the mouse, and a column at its
WIP limit refuses new tasks.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := opts.dependencies(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer deps.Close()
			return RunCommand(deps)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.board, "board", "b", "", "registered board name or path to a board file")
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: "+config.FileName+" in the working directory)")
	root.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse drag and drop")
	root.Flags().BoolVar(&opts.readOnly, "read-only", false, "never write changes back to the board file")

	root.AddCommand(
		newShowCommand(opts),
		newValidateCommand(opts),
		newBoardsCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newShowCommand(opts *options) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := opts.dependencies(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer deps.Close()
			return ShowCommand(deps, width, height)
		},
	}
	cmd.Flags().IntVar(&width, "width", 120, "output width in cells")
	cmd.Flags().IntVar(&height, "height", 30, "output height in lines")
	return cmd
}

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a board file and report WIP usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := opts.dependencies(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer deps.Close()
			return ValidateCommand(deps)
		},
	}
}

func newBoardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage the registry of named boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return BoardsListCommand(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List registered boards",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return BoardsListCommand(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "add <name> <path>",
			Short: "Register a board file under a name",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return BoardsAddCommand(cmd.OutOrStdout(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Unregister a board (the file is kept)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return BoardsRemoveCommand(cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "default <name>",
			Short: "Set the board opened when --board is not given",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return BoardsDefaultCommand(cmd.OutOrStdout(), args[0])
			},
		},
	)
	return cmd
}

// loadConfig resolves the effective config. The board path comes from, in
// order: --board, the config file or environment, the registry default.
func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	reg, err := config.LoadBoardsRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load boards: %w", err)
	}

	switch {
	case o.board != "":
		cfg.Board.Path = reg.Resolve(o.board)
	case !cfg.Board.PathSet:
		if def := reg.GetDefault(); def != nil {
			cfg.Board.Path = def.Path
		}
	}

	if o.noMouse {
		cfg.UI.DisableMouse = true
	}
	if o.readOnly {
		cfg.Board.ReadOnly = true
	}
	return cfg, nil
}

func (o *options) dependencies(out io.Writer) (*Dependencies, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return NewDependencies(cfg, out)
}
