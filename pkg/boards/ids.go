package boards

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dfb/gmtools/pkg/types"
)

// IDGenerator hands out board ids.
type IDGenerator interface {
	NextID() string
}

// TimestampIDs generates ids from wall-clock milliseconds, encoded as decimal
// strings. Within one generator ids are strictly increasing: a call landing in
// the same millisecond as the previous one gets the previous value plus one.
// Separate generators (or processes) can still collide.
type TimestampIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewTimestampIDs returns a TimestampIDs reading the given clock; nil means
// time.Now.
func NewTimestampIDs(now func() time.Time) *TimestampIDs {
	if now == nil {
		now = time.Now
	}
	return &TimestampIDs{now: now}
}

// NextID returns the next id.
func (g *TimestampIDs) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// UUIDIDs generates UUID v7 ids.
type UUIDIDs struct{}

// NextID returns a new UUID v7, falling back to v4 if v7 generation fails.
func (UUIDIDs) NextID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// NewIDGenerator returns the generator for a Config id scheme. An empty
// scheme selects timestamp ids.
func NewIDGenerator(scheme string, now func() time.Time) (IDGenerator, error) {
	switch scheme {
	case "", types.IDSchemeTimestamp:
		return NewTimestampIDs(now), nil
	case types.IDSchemeUUID:
		return UUIDIDs{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", scheme, types.ErrIDSchemeUnknown)
	}
}

// FirstUnitID is the first id handed out to placed units.
const FirstUnitID = 100

// UnitIDs is a concurrency-safe counter for unit instance ids.
type UnitIDs struct {
	next atomic.Int64
}

// NewUnitIDs returns a counter starting at FirstUnitID.
func NewUnitIDs() *UnitIDs {
	u := &UnitIDs{}
	u.next.Store(FirstUnitID)
	return u
}

// NewUnitIDsFor returns a counter that continues after the highest unit id
// already placed on board.
func NewUnitIDsFor(board *types.Board) *UnitIDs {
	u := NewUnitIDs()
	for _, col := range board.Tiles {
		for _, tile := range col {
			for _, unit := range tile.Units {
				if int64(unit.ID) >= u.next.Load() {
					u.next.Store(int64(unit.ID) + 1)
				}
			}
		}
	}
	return u
}

// Next returns the next unit id.
func (u *UnitIDs) Next() int {
	return int(u.next.Add(1) - 1)
}
