package boards

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dfb/gmtools/pkg/types"
)

// boardRecord is the persisted schema of a board. Only these fields are ever
// written; anything else a caller attaches to a board or tile is dropped.
type boardRecord struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	W     int            `json:"w"`
	H     int            `json:"h"`
	Tiles [][]tileRecord `json:"tiles"`
}

type tileRecord struct {
	Type     string               `json:"type"`
	Light    string               `json:"light"`
	Movement string               `json:"movement"`
	Units    []types.UnitInstance `json:"units"`
}

// Serialize projects board onto the persisted schema and encodes it.
// Boards without an id, or whose tiles do not match their dimensions, are
// rejected.
func Serialize(board *types.Board) ([]byte, error) {
	if board == nil {
		return nil, fmt.Errorf("nil board: %w", types.ErrMalformedBoard)
	}
	if board.ID == "" {
		return nil, fmt.Errorf("board has no id: %w", types.ErrMalformedBoard)
	}
	if err := board.Validate(); err != nil {
		return nil, err
	}

	rec := boardRecord{
		ID:    board.ID,
		Name:  board.Name,
		W:     board.W,
		H:     board.H,
		Tiles: make([][]tileRecord, board.W),
	}
	for x := 0; x < board.W; x++ {
		col := make([]tileRecord, board.H)
		for y := 0; y < board.H; y++ {
			tile := board.Tiles[x][y]
			units := tile.Units
			if units == nil {
				units = []types.UnitInstance{}
			}
			col[y] = tileRecord{
				Type:     tile.Type,
				Light:    tile.Light,
				Movement: tile.Movement,
				Units:    units,
			}
		}
		rec.Tiles[x] = col
	}
	return json.Marshal(rec)
}

// Deserialize decodes a persisted board. Invalid JSON, a missing id, or a
// tiles grid that does not match w×h is reported as ErrMalformedStorage.
func Deserialize(blob []byte) (*types.Board, error) {
	var rec boardRecord
	if err := json.Unmarshal(blob, &rec); err != nil {
		return nil, fmt.Errorf("decoding board: %v: %w", err, types.ErrMalformedStorage)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("board has no id: %w", types.ErrMalformedStorage)
	}

	board := &types.Board{
		ID:    rec.ID,
		Name:  rec.Name,
		W:     rec.W,
		H:     rec.H,
		Tiles: make([][]types.Tile, len(rec.Tiles)),
	}
	for x, col := range rec.Tiles {
		board.Tiles[x] = make([]types.Tile, len(col))
		for y, t := range col {
			units := t.Units
			if units == nil {
				units = []types.UnitInstance{}
			}
			board.Tiles[x][y] = types.Tile{
				Type:     t.Type,
				Light:    t.Light,
				Movement: t.Movement,
				Units:    units,
			}
		}
	}

	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("board %s: %v: %w", rec.ID, err, types.ErrMalformedStorage)
	}
	return board, nil
}

// Store reads and writes whole boards under board_<id> keys.
type Store struct {
	kv types.KeyValueStore
}

// NewStore returns a Store over kv.
func NewStore(kv types.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Read loads the board with the given id. It returns (nil, nil) when no such
// board is stored.
func (s *Store) Read(ctx context.Context, id string) (*types.Board, error) {
	raw, ok, err := s.kv.Get(ctx, types.BoardKey(id))
	if err != nil {
		return nil, fmt.Errorf("reading board %s: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return Deserialize([]byte(raw))
}

// Write serializes board and stores it, overwriting any previous value.
func (s *Store) Write(ctx context.Context, board *types.Board) error {
	data, err := Serialize(board)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, types.BoardKey(board.ID), string(data)); err != nil {
		return fmt.Errorf("writing board %s: %w", board.ID, err)
	}
	return nil
}

// EraseBlob deletes the stored board; absent boards are not an error.
func (s *Store) EraseBlob(ctx context.Context, id string) error {
	if err := s.kv.Delete(ctx, types.BoardKey(id)); err != nil {
		return fmt.Errorf("erasing board %s: %w", id, err)
	}
	return nil
}
