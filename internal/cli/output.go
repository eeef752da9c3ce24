package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dfb/gmtools/pkg/types"
)

// emit writes v as indented JSON in --json mode, otherwise calls human.
func (a *app) emit(cmd *cobra.Command, v any, human func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return systemError(fmt.Errorf("encode JSON: %w", err))
		}
		return nil
	}
	human(w)
	return nil
}

// terrainGlyphs are the one-letter map symbols for known terrain.
var terrainGlyphs = map[string]byte{
	types.TileTypeEmpty:  '.',
	types.TileTypeGrass:  'g',
	types.TileTypeWater:  '~',
	types.TileTypeForest: 'f',
	types.TileTypeLava:   'l',
	types.TileTypeMtn:    'm',
	types.TileTypeField:  ',',
	types.TileTypeCastle: 'C',
	types.TileTypeSand:   's',
}

// tileGlyph is the map symbol for t: the unit count when units stand on it,
// an X for unpassable ground, otherwise the terrain glyph.
func tileGlyph(t types.Tile) byte {
	switch n := len(t.Units); {
	case n > 9:
		return '+'
	case n > 0:
		return byte('0' + n)
	}
	if t.Movement == types.MovementUnpassable {
		return 'X'
	}
	if g, ok := terrainGlyphs[t.Type]; ok {
		return g
	}
	return '?'
}

// renderBoard draws b as a text map, one line per row, x growing rightwards.
func renderBoard(w io.Writer, b *types.Board) {
	fmt.Fprintf(w, "%s  %s  %dx%d\n", b.ID, b.Name, b.W, b.H)
	var line strings.Builder
	for y := 0; y < b.H; y++ {
		line.Reset()
		for x := 0; x < b.W; x++ {
			line.WriteByte(tileGlyph(b.Tiles[x][y]))
		}
		fmt.Fprintln(w, line.String())
	}
}

func describeTile(w io.Writer, x, y int, t types.Tile) {
	fmt.Fprintf(w, "(%d,%d) type=%s light=%s", x, y, t.Type, t.Light)
	if t.Movement != "" {
		fmt.Fprintf(w, " movement=%s", t.Movement)
	}
	fmt.Fprintln(w)
	for _, u := range t.Units {
		fmt.Fprintf(w, "  #%d %s hp=%d", u.ID, u.Unit, u.Health)
		if len(u.Conditions) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(u.Conditions, ", "))
		}
		fmt.Fprintln(w)
	}
}
