// Package storage provides JSON file persistence for the novel collection.
//
// The collection lives in a single JSON array, written in (year, title) order
// with two-space indentation. Writes go through a temporary file and a rename
// so an interrupted save never leaves a truncated file behind. An advisory
// lock file next to the data file keeps two commands from editing it at once.
// The default location is ~/.local/share/novel-search/award_novels.json.
package storage
