package document

import (
	"fmt"
	"sort"
	"strings"
)

// SourceLocation represents a position in a source document.
// Line and Column are 1-based (matching editor conventions).
// A zero Line value indicates the location is unknown.
type SourceLocation struct {
	// Line is the 1-based line number (0 if unknown)
	Line int
	// Column is the 1-based column number (0 if unknown)
	Column int
	// File is the source file path (empty for in-memory input)
	File string
}

// IsKnown returns true if this location has valid line information.
func (s SourceLocation) IsKnown() bool {
	return s.Line > 0
}

// String returns "file:line:column", "line:column" if no file, or "<unknown>".
func (s SourceLocation) String() string {
	if !s.IsKnown() {
		if s.File != "" {
			return s.File
		}
		return "<unknown>"
	}
	if s.File != "" {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// SourceMap maps JSON Pointers to source locations.
//
// Value locations point at the start of a value; key locations point at the
// mapping key that introduces it, which is where an "unknown key" finding
// belongs. All methods are safe on a nil receiver.
type SourceMap struct {
	locations    map[string]SourceLocation
	keyLocations map[string]SourceLocation
}

// NewSourceMap creates an empty SourceMap.
func NewSourceMap() *SourceMap {
	return &SourceMap{
		locations:    make(map[string]SourceLocation),
		keyLocations: make(map[string]SourceLocation),
	}
}

// Get returns the value location for a pointer.
func (sm *SourceMap) Get(ptr string) SourceLocation {
	if sm == nil {
		return SourceLocation{}
	}
	return sm.locations[ptr]
}

// GetKey returns the location of the mapping key that introduces ptr.
func (sm *SourceMap) GetKey(ptr string) SourceLocation {
	if sm == nil {
		return SourceLocation{}
	}
	return sm.keyLocations[ptr]
}

// Locate returns the best known location for ptr: its key, then its value,
// then the nearest ancestor. Values inlined by $ref resolution have no
// entries of their own and resolve to the referencing position.
func (sm *SourceMap) Locate(ptr string) SourceLocation {
	if sm == nil {
		return SourceLocation{}
	}
	for {
		if loc := sm.keyLocations[ptr]; loc.IsKnown() {
			return loc
		}
		if loc := sm.locations[ptr]; loc.IsKnown() {
			return loc
		}
		if ptr == "" {
			return SourceLocation{}
		}
		i := strings.LastIndexByte(ptr, '/')
		if i < 0 {
			return SourceLocation{}
		}
		ptr = ptr[:i]
	}
}

// Has returns true if a value location exists for ptr.
func (sm *SourceMap) Has(ptr string) bool {
	if sm == nil {
		return false
	}
	_, ok := sm.locations[ptr]
	return ok
}

// Len returns the number of pointers with a value location.
func (sm *SourceMap) Len() int {
	if sm == nil {
		return 0
	}
	return len(sm.locations)
}

// Pointers returns all pointers with a value location, sorted.
func (sm *SourceMap) Pointers() []string {
	if sm == nil {
		return nil
	}
	ptrs := make([]string, 0, len(sm.locations))
	for p := range sm.locations {
		ptrs = append(ptrs, p)
	}
	sort.Strings(ptrs)
	return ptrs
}

// Set records the value location of ptr.
func (sm *SourceMap) Set(ptr string, loc SourceLocation) {
	if sm == nil {
		return
	}
	if sm.locations == nil {
		sm.locations = make(map[string]SourceLocation)
	}
	sm.locations[ptr] = loc
}

// SetKey records the key location of ptr.
func (sm *SourceMap) SetKey(ptr string, loc SourceLocation) {
	if sm == nil {
		return
	}
	if sm.keyLocations == nil {
		sm.keyLocations = make(map[string]SourceLocation)
	}
	sm.keyLocations[ptr] = loc
}
