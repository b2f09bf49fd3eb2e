// Package cli implements the command-line interface for novel-search.
//
// The cli package provides the Cobra-based commands: scrape collects the
// award pages and merges them into the data file, process walks unannotated
// novels interactively, list and stats report on the collection, and config
// prints the sample configuration. It wires the config, scraper, novel,
// storage, annotate and filter packages together.
package cli
