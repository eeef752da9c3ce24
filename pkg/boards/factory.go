package boards

import (
	"fmt"

	"github.com/dfb/gmtools/pkg/types"
)

// Factory constructs in-memory boards, either fresh or from a reference
// board whose overlapping region is preserved.
type Factory struct {
	ids IDGenerator
}

// NewFactory returns a Factory drawing new ids from ids.
func NewFactory(ids IDGenerator) *Factory {
	return &Factory{ids: ids}
}

// Build returns a w×h board named name.
//
// Without a reference the board gets a new id and default tiles. With a
// reference it keeps reference.ID, and every (x, y) inside both boards gets a
// copy of the reference tile; cells outside the reference get defaults and
// reference cells outside the new bounds are dropped. Unit slices are cloned,
// so edits to the result never reach the reference.
func (f *Factory) Build(name string, w, h int, reference *types.Board) (*types.Board, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", w, h, types.ErrInvalidDimensions)
	}
	if reference != nil {
		if err := reference.Validate(); err != nil {
			return nil, fmt.Errorf("reference board: %w", err)
		}
	}

	board := &types.Board{Name: name, W: w, H: h}
	if reference != nil {
		board.ID = reference.ID
	} else {
		board.ID = f.ids.NextID()
	}

	// x indexes columns, like the screen.
	board.Tiles = make([][]types.Tile, w)
	for x := 0; x < w; x++ {
		col := make([]types.Tile, h)
		for y := 0; y < h; y++ {
			if reference != nil && x < reference.W && y < reference.H {
				col[y] = reference.Tiles[x][y].Clone()
			} else {
				col[y] = types.DefaultTile()
			}
		}
		board.Tiles[x] = col
	}
	return board, nil
}
