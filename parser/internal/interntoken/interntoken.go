// Package interntoken deduplicates identifier text so that every occurrence of
// a name in a program, or across the inputs of a REPL session, shares one
// string.
package interntoken

import (
	"strings"
	"sync"
)

// Table is a string intern table.  A nil *Table is valid and performs no
// interning.
type Table struct {
	mut    sync.RWMutex
	intern map[string]string
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		intern: make(map[string]string),
	}
}

// Get returns a string that equals s.
func (tab *Table) Get(s string) string {
	if tab == nil {
		return s
	}
	tab.mut.RLock()
	p, ok := tab.intern[s]
	tab.mut.RUnlock()
	if ok {
		return p
	}
	return tab.insert(s)
}

// Len returns the number of distinct strings in tab.
func (tab *Table) Len() int {
	if tab == nil {
		return 0
	}
	tab.mut.RLock()
	defer tab.mut.RUnlock()
	return len(tab.intern)
}

func (tab *Table) insert(s string) string {
	tab.mut.Lock()
	defer tab.mut.Unlock()
	p, ok := tab.intern[s]
	if !ok {
		// keys never alias the caller's source text
		p = strings.Clone(s)
		tab.intern[p] = p
	}
	return p
}
