package asm

import (
	"iter"
	"maps"
	"regexp"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SymbolTable maps label names to resolved addresses. Pass 2 builds it;
// from pass 3 on it is read-only.
type SymbolTable struct {
	addrs map[string]uint32
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{addrs: make(map[string]uint32, 16)}
}

// Define records a label at an address. The name must be a plain
// identifier and must not already be defined.
func (st *SymbolTable) Define(name string, addr uint32) error {
	if !identRe.MatchString(name) {
		return ErrLabelInvalid(name)
	}
	if _, ok := st.addrs[name]; ok {
		return ErrLabelDuplicate(name)
	}
	st.addrs[name] = addr
	return nil
}

// Lookup resolves a symbol to its address.
func (st *SymbolTable) Lookup(name string) (addr uint32, ok bool) {
	addr, ok = st.addrs[name]
	return
}

// Len returns the number of defined symbols.
func (st *SymbolTable) Len() int {
	return len(st.addrs)
}

// All iterates over all defined symbols.
func (st *SymbolTable) All() iter.Seq2[string, uint32] {
	return maps.All(st.addrs)
}
