// Package champ implements a Compressed Hash-Array Mapped Prefix-tree: a
// persistent, copy-on-write hash map whose trie shape is a pure function of
// its current contents, never of insertion or deletion history. Two maps
// holding the same key/value pairs are always shaped identically, which lets
// equality be answered in O(1) via an incrementally maintained digest
// (AdHash) instead of a structural walk.
//
// The trie branches 32-way (5 bits of hash per level) and inlines entries at
// the shallowest level where they stop colliding, migrating them inward on
// insert and back outward on delete so the shape never depends on history.
// Nodes live in an arena that each Map creates and owns (see package arena;
// the caller only picks the backend) and are never
// mutated after being linked; every edit rewrites the path from the edited
// node to the root.
package champ

import (
	"log"
	"os"
)

// Lgr is the package logger. Invalid checkpoint tokens are reported through
// it before the engine panics; other panics (such as an invalid arena
// handle) are not logged.
var Lgr = log.New(os.Stderr, "[champ] ", log.Lshortfile)
