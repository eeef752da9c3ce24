package boards

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dfb/gmtools/pkg/types"
)

// Directory maintains the newest-first list of board summaries stored under
// types.BoardListKey.
type Directory struct {
	kv types.KeyValueStore
}

// NewDirectory returns a Directory over kv.
func NewDirectory(kv types.KeyValueStore) *Directory {
	return &Directory{kv: kv}
}

// List returns the stored summaries, newest first. A missing list is empty,
// not an error.
func (d *Directory) List(ctx context.Context) ([]types.BoardSummary, error) {
	raw, ok, err := d.kv.Get(ctx, types.BoardListKey)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", types.BoardListKey, err)
	}
	if !ok {
		return []types.BoardSummary{}, nil
	}

	var list []types.BoardSummary
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", types.BoardListKey, err, types.ErrMalformedStorage)
	}
	if list == nil {
		list = []types.BoardSummary{}
	}
	return list, nil
}

// Add prepends summary and persists the list. Ids are not deduplicated.
func (d *Directory) Add(ctx context.Context, summary types.BoardSummary) error {
	list, err := d.List(ctx)
	if err != nil {
		return err
	}
	return d.write(ctx, append([]types.BoardSummary{summary}, list...))
}

// Remove drops every entry with the given id and persists the result.
// Removing an absent id is not an error.
func (d *Directory) Remove(ctx context.Context, id string) error {
	list, err := d.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, s := range list {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return d.write(ctx, kept)
}

// Rename updates the name of every entry with the given id in place, keeping
// its position.
func (d *Directory) Rename(ctx context.Context, id, name string) error {
	list, err := d.List(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list[i].Name = name
		}
	}
	return d.write(ctx, list)
}

func (d *Directory) write(ctx context.Context, list []types.BoardSummary) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", types.BoardListKey, err)
	}
	if err := d.kv.Set(ctx, types.BoardListKey, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", types.BoardListKey, err)
	}
	return nil
}
