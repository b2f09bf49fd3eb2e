// Package novel provides the award novel record and the merge rules used to
// fold repeated scrapes into a single collection.
//
// A record is identified by its (title, year) key. Merging two records with
// the same key unions their award labels into a sorted, pipe-joined string and
// never discards a point-of-view annotation that a human already entered.
package novel
