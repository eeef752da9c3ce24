// Package boards implements board persistence and resizing: the board
// directory, the board factory, the board blob store, and the Service that
// composes them.
//
// Every Service method takes a context and returns an error so the backing
// KeyValueStore can be remote. Nothing is cached between calls and nothing
// is retried; the last write wins.
package boards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dfb/gmtools/internal/logging"
	"github.com/dfb/gmtools/pkg/types"
)

// Service is the public board API.
type Service struct {
	directory *Directory
	factory   *Factory
	store     *Store
	logger    *slog.Logger
}

type serviceOptions struct {
	ids    IDGenerator
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

// WithIDGenerator sets the generator for new board ids.
func WithIDGenerator(ids IDGenerator) Option {
	return func(o *serviceOptions) {
		o.ids = ids
	}
}

// WithClock sets the clock of the default timestamp id generator. It has no
// effect together with WithIDGenerator.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) {
		o.now = now
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService returns a Service persisting to kv.
func NewService(kv types.KeyValueStore, opts ...Option) *Service {
	o := serviceOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.ids == nil {
		o.ids = NewTimestampIDs(o.now)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	return &Service{
		directory: NewDirectory(kv),
		factory:   NewFactory(o.ids),
		store:     NewStore(kv),
		logger:    o.logger,
	}
}

// ListBoards returns the board directory, newest first.
func (s *Service) ListBoards(ctx context.Context) ([]types.BoardSummary, error) {
	return s.directory.List(ctx)
}

// CreateBoard builds a w×h board of default tiles, persists it and registers
// it in the directory. The blob is written before the directory entry; if
// registering fails the blob is erased again.
func (s *Service) CreateBoard(ctx context.Context, name string, w, h int) (*types.Board, error) {
	board, err := s.factory.Build(name, w, h, nil)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, board); err != nil {
		return nil, err
	}
	if err := s.directory.Add(ctx, board.Summary()); err != nil {
		if eraseErr := s.store.EraseBlob(ctx, board.ID); eraseErr != nil {
			s.logger.Warn("orphaned board blob", "board_id", board.ID, "error", eraseErr)
		}
		return nil, err
	}

	s.logger.Info("board created", "board_id", board.ID, "name", name, "w", w, "h", h)
	return board, nil
}

// LoadBoard returns the stored board, or (nil, nil) if there is none.
func (s *Service) LoadBoard(ctx context.Context, id string) (*types.Board, error) {
	return s.store.Read(ctx, id)
}

// SaveBoard persists board, overwriting the stored copy. Only the persisted
// schema is written.
func (s *Service) SaveBoard(ctx context.Context, board *types.Board) error {
	if err := s.store.Write(ctx, board); err != nil {
		return err
	}
	s.logger.Debug("board saved", "board_id", board.ID)
	return nil
}

// DeleteBoard removes the directory entry and the stored board. Both steps
// run even if the first fails; the errors are joined.
func (s *Service) DeleteBoard(ctx context.Context, id string) error {
	dirErr := s.directory.Remove(ctx, id)
	blobErr := s.store.EraseBlob(ctx, id)
	if err := errors.Join(dirErr, blobErr); err != nil {
		return err
	}
	s.logger.Info("board deleted", "board_id", id)
	return nil
}

// ResizeBoard builds a newW×newH copy of board that keeps its id, name and
// the tiles both sizes share, persists it and returns it. The directory is
// not touched. Editor-only tile state on board does not carry over.
func (s *Service) ResizeBoard(ctx context.Context, board *types.Board, newW, newH int) (*types.Board, error) {
	if board == nil {
		return nil, fmt.Errorf("nil board: %w", types.ErrMalformedBoard)
	}
	resized, err := s.factory.Build(board.Name, newW, newH, board)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, resized); err != nil {
		return nil, err
	}

	s.logger.Info("board resized",
		"board_id", board.ID,
		"from", fmt.Sprintf("%dx%d", board.W, board.H),
		"to", fmt.Sprintf("%dx%d", newW, newH),
	)
	return resized, nil
}

// RenameBoard changes the name of a stored board and its directory entry.
// Returns ErrNotFound if the board does not exist.
func (s *Service) RenameBoard(ctx context.Context, id, name string) (*types.Board, error) {
	board, err := s.store.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, fmt.Errorf("board %s: %w", id, types.ErrNotFound)
	}

	board.Name = name
	if err := s.store.Write(ctx, board); err != nil {
		return nil, err
	}
	if err := s.directory.Rename(ctx, id, name); err != nil {
		return nil, err
	}

	s.logger.Info("board renamed", "board_id", id, "name", name)
	return board, nil
}
