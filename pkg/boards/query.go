package boards

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/dfb/gmtools/pkg/types"
)

// TileMatch is a tile selected by FindTiles.
type TileMatch struct {
	X    int        `json:"x"`
	Y    int        `json:"y"`
	Tile types.Tile `json:"tile"`
}

// tileEnv is the environment a tile query is evaluated against.
type tileEnv struct {
	X         int      `expr:"x"`
	Y         int      `expr:"y"`
	Terrain   string   `expr:"terrain"`
	Light     string   `expr:"light"`
	Movement  string   `expr:"movement"`
	Units     []string `expr:"units"`
	UnitCount int      `expr:"unitCount"`
}

// FindTiles returns the tiles of board for which the boolean expression where
// holds, in column-major order. The expression sees x, y, terrain, light,
// movement, units (catalog keys) and unitCount, e.g.
//
//	terrain == "water" && unitCount > 0
//	"Archer" in units
func FindTiles(board *types.Board, where string) ([]TileMatch, error) {
	if where == "" {
		return nil, fmt.Errorf("%w: empty expression", types.ErrInvalidQuery)
	}
	if board == nil {
		return nil, fmt.Errorf("nil board: %w", types.ErrMalformedBoard)
	}
	if err := board.Validate(); err != nil {
		return nil, err
	}

	program, err := expr.Compile(where, expr.Env(tileEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", types.ErrInvalidQuery, where, err)
	}

	var matches []TileMatch
	for x := 0; x < board.W; x++ {
		for y := 0; y < board.H; y++ {
			tile := board.Tiles[x][y]
			env := tileEnv{
				X:         x,
				Y:         y,
				Terrain:   tile.Type,
				Light:     tile.Light,
				Movement:  tile.Movement,
				Units:     make([]string, len(tile.Units)),
				UnitCount: len(tile.Units),
			}
			for i, u := range tile.Units {
				env.Units[i] = u.Unit
			}

			out, err := expr.Run(program, env)
			if err != nil {
				return nil, fmt.Errorf("%w: %q at (%d,%d): %v", types.ErrInvalidQuery, where, x, y, err)
			}
			if ok, _ := out.(bool); ok {
				matches = append(matches, TileMatch{X: x, Y: y, Tile: tile})
			}
		}
	}
	return matches, nil
}
