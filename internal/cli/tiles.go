package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dfb/gmtools/pkg/boards"
	"github.com/dfb/gmtools/pkg/types"
)

// parseCoords reads the <id> <x> <y> prefix shared by the tile commands.
func parseCoords(args []string) (id string, x, y int, err error) {
	id = args[0]
	if x, err = parseInt("x", args[1]); err != nil {
		return
	}
	y, err = parseInt("y", args[2])
	return
}

func newTileCmd(a *app) *cobra.Command {
	var terrain, light, movement string
	cmd := &cobra.Command{
		Use:   "tile <id> <x> <y>",
		Short: "Show or edit one tile",
		Long:  "Show one tile. With --type, --light or --movement the tile is changed and\nthe board saved first.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, x, y, err := parseCoords(args)
			if err != nil {
				return err
			}

			var tile types.Tile
			err = a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				b, err := mustLoad(ctx, svc, id)
				if err != nil {
					return err
				}
				t, err := b.Tile(x, y)
				if err != nil {
					return err
				}

				edited := false
				if cmd.Flags().Changed("type") {
					t.Type, edited = terrain, true
				}
				if cmd.Flags().Changed("light") {
					t.Light, edited = light, true
				}
				if cmd.Flags().Changed("movement") {
					t.Movement, edited = movement, true
				}
				tile = *t
				if !edited {
					return nil
				}
				return svc.SaveBoard(ctx, b)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, boards.TileMatch{X: x, Y: y, Tile: tile}, func(w io.Writer) {
				describeTile(w, x, y, tile)
			})
		},
	}
	cmd.Flags().StringVar(&terrain, "type", "", "terrain (empty, grass, water, forest, lava, mtn, field, castle, sand)")
	cmd.Flags().StringVar(&light, "light", "", "lighting")
	cmd.Flags().StringVar(&movement, "movement", "", `movement rule ("", restricted, unpassable)`)
	return cmd
}

func newPlaceCmd(a *app) *cobra.Command {
	var (
		health     int
		conditions []string
	)
	cmd := &cobra.Command{
		Use:   "place <id> <x> <y> <unit>",
		Short: "Place a catalog unit on a tile",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, x, y, err := parseCoords(args)
			if err != nil {
				return err
			}
			units, err := a.catalog()
			if err != nil {
				return err
			}

			var placed types.UnitInstance
			err = a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				b, err := mustLoad(ctx, svc, id)
				if err != nil {
					return err
				}
				t, err := b.Tile(x, y)
				if err != nil {
					return err
				}

				placed, err = units.Spawn(args[3], boards.NewUnitIDsFor(b).Next())
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("health") {
					placed.Health = health
				}
				if len(conditions) > 0 {
					placed.Conditions = conditions
				}
				t.Units = append(t.Units, placed)
				return svc.SaveBoard(ctx, b)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, placed, func(w io.Writer) {
				fmt.Fprintf(w, "placed %s #%d at (%d,%d)\n", placed.Unit, placed.ID, x, y)
			})
		},
	}
	cmd.Flags().IntVar(&health, "health", 0, "starting health (default: the catalog value)")
	cmd.Flags().StringSliceVar(&conditions, "condition", nil, "condition to apply (repeatable)")
	return cmd
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <id> <expr>",
		Short: "List the tiles matching an expression",
		Long: `List the tiles for which a boolean expression holds. The expression sees
x, y, terrain, light, movement, units (unit names) and unitCount:

  gmboard find 1700000000000 'terrain == "water" && unitCount > 0'
  gmboard find 1700000000000 '"Archer" in units'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var matches []boards.TileMatch
			err := a.withService(cmd, func(ctx context.Context, svc *boards.Service) error {
				b, err := mustLoad(ctx, svc, args[0])
				if err != nil {
					return err
				}
				matches, err = boards.FindTiles(b, args[1])
				return err
			})
			if err != nil {
				return err
			}
			if matches == nil {
				matches = []boards.TileMatch{}
			}
			return a.emit(cmd, matches, func(w io.Writer) {
				for _, m := range matches {
					describeTile(w, m.X, m.Y, m.Tile)
				}
				fmt.Fprintf(w, "%d tiles\n", len(matches))
			})
		},
	}
}
