// Package scraper fetches award pages and extracts nominated novels from their tables.
//
// Parsing is a best-effort heuristic over Wikipedia "wikitable" tables: the
// column headed "Year" supplies the award year, which is carried forward over
// rows where the cell is row-spanned, and every italicized element in a row is
// taken as a novel title. Retro Hugo tables and rows are skipped.
package scraper
