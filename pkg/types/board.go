package types

import "fmt"

// Tile defaults.
const (
	TileTypeEmpty   = "empty"
	LightNormal     = "normal"
	MovementDefault = ""
)

// Terrain kinds known to the editor. The core does not validate Tile.Type
// against this list.
const (
	TileTypeGrass  = "grass"
	TileTypeWater  = "water"
	TileTypeForest = "forest"
	TileTypeLava   = "lava"
	TileTypeMtn    = "mtn"
	TileTypeField  = "field"
	TileTypeCastle = "castle"
	TileTypeSand   = "sand"
)

// Movement modifiers known to the editor.
const (
	MovementRestricted = "restricted"
	MovementUnpassable = "unpassable"
)

// BoardSummary is the lightweight directory entry for a board.
type BoardSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Board is a named rectangular grid of tiles. Tiles has exactly W columns,
// each of exactly H rows.
type Board struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	W     int      `json:"w"`
	H     int      `json:"h"`
	Tiles [][]Tile `json:"tiles"`
}

// Tile is one cell of a board.
type Tile struct {
	Type     string         `json:"type"`
	Light    string         `json:"light"`
	Movement string         `json:"movement"`
	Units    []UnitInstance `json:"units"`

	// Selected is editor state. It is never persisted.
	Selected bool `json:"-"`
}

// UnitInstance is a unit placed on a tile. Unit is a catalog key; the board
// engine does not check it against any catalog.
type UnitInstance struct {
	ID         int      `json:"id"`
	Unit       string   `json:"unit"`
	Health     int      `json:"health"`
	Conditions []string `json:"conditions,omitempty"`
}

// DefaultTile returns a tile with default attributes and no units.
func DefaultTile() Tile {
	return Tile{
		Type:     TileTypeEmpty,
		Light:    LightNormal,
		Movement: MovementDefault,
		Units:    []UnitInstance{},
	}
}

// Clone returns a copy of the unit whose Conditions slice is not shared.
func (u UnitInstance) Clone() UnitInstance {
	if u.Conditions != nil {
		u.Conditions = append([]string(nil), u.Conditions...)
	}
	return u
}

// Clone returns a copy of the tile's persisted attributes. Units are cloned
// one by one; Selected is dropped.
func (t Tile) Clone() Tile {
	units := make([]UnitInstance, len(t.Units))
	for i, u := range t.Units {
		units[i] = u.Clone()
	}
	return Tile{
		Type:     t.Type,
		Light:    t.Light,
		Movement: t.Movement,
		Units:    units,
	}
}

// Summary returns the directory entry for the board.
func (b *Board) Summary() BoardSummary {
	return BoardSummary{ID: b.ID, Name: b.Name}
}

// Contains reports whether (x, y) lies on the board.
func (b *Board) Contains(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Tile returns a pointer to the tile at (x, y) so callers can edit it in
// place. Returns ErrOutOfBounds for coordinates off the board.
func (b *Board) Tile(x, y int) (*Tile, error) {
	if !b.Contains(x, y) {
		return nil, fmt.Errorf("tile (%d,%d) on %dx%d board: %w", x, y, b.W, b.H, ErrOutOfBounds)
	}
	return &b.Tiles[x][y], nil
}

// Validate checks the dimension invariant: positive W and H, and a tiles
// grid of exactly W columns of H rows.
func (b *Board) Validate() error {
	if b.W <= 0 || b.H <= 0 {
		return fmt.Errorf("%dx%d: %w", b.W, b.H, ErrInvalidDimensions)
	}
	if len(b.Tiles) != b.W {
		return fmt.Errorf("board %s has %d columns, want %d: %w", b.ID, len(b.Tiles), b.W, ErrMalformedBoard)
	}
	for x, col := range b.Tiles {
		if len(col) != b.H {
			return fmt.Errorf("board %s column %d has %d rows, want %d: %w", b.ID, x, len(col), b.H, ErrMalformedBoard)
		}
	}
	return nil
}
