package types

// Persisted key layout.
const (
	// BoardListKey holds the JSON array of BoardSummary, newest first.
	BoardListKey = "boardList"

	// BoardKeyPrefix prefixes the key of each persisted board.
	BoardKeyPrefix = "board_"
)

// BoardKey returns the store key for the board with the given id.
func BoardKey(id string) string {
	return BoardKeyPrefix + id
}
