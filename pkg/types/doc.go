// Package types defines the board data model, the KeyValueStore and Store
// interfaces, configuration, and standard errors for the gmtools board engine.
//
// Boards are column-major: Tiles[x][y] addresses column x, row y, matching
// screen coordinates.
package types
