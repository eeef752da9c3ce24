package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dfb/gmtools/internal/paths"
	"github.com/dfb/gmtools/pkg/boards"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and the board store",
		Long:  "Write a default config.yaml if there is none, then create the data directory\nand an empty board store. Running init again changes nothing.\n\nThe backend must be sqlite. The memory backend is for tests of the Go\npackages and keeps nothing between gmboard commands.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wrote, err := writeDefaultConfig(a.configDir, "")
			if err != nil {
				return systemError(err)
			}
			if wrote {
				// Pick up the file we just wrote.
				cfg, err := loadConfig(a.configDir)
				if err != nil {
					return systemError(err)
				}
				a.cfg = cfg
			}

			var count int
			err = a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				list, err := svc.ListBoards(ctx)
				count = len(list)
				return err
			})
			if err != nil {
				return err
			}

			result := map[string]any{
				"config": paths.ConfigFile(a.configDir),
				"data":   a.dataDir,
				"boards": count,
			}
			return a.emit(cmd, result, func(w io.Writer) {
				fmt.Fprintln(w, "gmboard initialized")
				fmt.Fprintln(w, "  config:", paths.ConfigFile(a.configDir))
				fmt.Fprintln(w, "  data:  ", a.dataDir)
				fmt.Fprintln(w, "  boards:", count)
			})
		},
	}
}
