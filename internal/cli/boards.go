package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dfb/gmtools/pkg/boards"
	"github.com/dfb/gmtools/pkg/types"
)

// mustLoad returns the board with the given id or ErrNotFound.
func mustLoad(ctx context.Context, svc *boards.Service, id string) (*types.Board, error) {
	b, err := svc.LoadBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("board %q: %w", id, types.ErrNotFound)
	}
	return b, nil
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, userError(fmt.Errorf("%s must be an integer, got %q", name, s))
	}
	return n, nil
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []types.BoardSummary
			err := a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				var err error
				list, err = svc.ListBoards(ctx)
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, list, func(w io.Writer) {
				if len(list) == 0 {
					fmt.Fprintln(w, "no boards")
					return
				}
				for _, s := range list {
					fmt.Fprintf(w, "%s\t%s\n", s.ID, s.Name)
				}
			})
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		name string
		w, h int
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board of default tiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b *types.Board
			err := a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				var err error
				b, err = svc.CreateBoard(ctx, name, w, h)
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, b.Summary(), func(out io.Writer) {
				fmt.Fprintf(out, "created %s (%s, %dx%d)\n", b.ID, b.Name, b.W, b.H)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "New Board", "board name")
	cmd.Flags().IntVarP(&w, "width", "W", 10, "number of columns")
	cmd.Flags().IntVarP(&h, "height", "H", 10, "number of rows")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Draw a board as a text map",
		Long:  "Draw a board as a text map. Each cell shows the number of units on it,\nX for unpassable ground, or a terrain symbol (. empty, g grass, ~ water,\nf forest, l lava, m mountain, , field, C castle, s sand).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var b *types.Board
			err := a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				var err error
				b, err = mustLoad(ctx, svc, args[0])
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, b, func(w io.Writer) { renderBoard(w, b) })
		},
	}
}

func newResizeCmd(a *app) *cobra.Command {
	var w, h int
	cmd := &cobra.Command{
		Use:   "resize <id>",
		Short: "Change a board's dimensions, keeping the tiles that still fit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var b *types.Board
			err := a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				old, err := mustLoad(ctx, svc, args[0])
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("width") {
					w = old.W
				}
				if !cmd.Flags().Changed("height") {
					h = old.H
				}
				b, err = svc.ResizeBoard(ctx, old, w, h)
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, b.Summary(), func(out io.Writer) {
				fmt.Fprintf(out, "resized %s to %dx%d\n", b.ID, b.W, b.H)
			})
		},
	}
	cmd.Flags().IntVarP(&w, "width", "W", 0, "new number of columns (default: unchanged)")
	cmd.Flags().IntVarP(&h, "height", "H", 0, "new number of rows (default: unchanged)")
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var b *types.Board
			err := a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				var err error
				b, err = svc.RenameBoard(ctx, args[0], args[1])
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, b.Summary(), func(w io.Writer) {
				fmt.Fprintf(w, "renamed %s to %s\n", b.ID, b.Name)
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			err := a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				// A board whose blob no longer decodes can still be deleted.
				b, err := svc.LoadBoard(ctx, id)
				if err != nil && !errors.Is(err, types.ErrMalformedStorage) {
					return err
				}
				if b == nil && err == nil {
					return fmt.Errorf("board %q: %w", id, types.ErrNotFound)
				}
				return svc.DeleteBoard(ctx, id)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, map[string]string{"deleted": id}, func(w io.Writer) {
				fmt.Fprintf(w, "deleted %s\n", id)
			})
		},
	}
}
