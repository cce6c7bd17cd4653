package policy

import (
	"sort"
	"strings"
)

// Scope is the set of program codes a caller may access.  The zero value is
// the empty scope.
type Scope struct {
	codes []string // sorted, upper case, unique
	full  bool     // codes covers every program in the catalog
}

// Codes returns a copy of the program codes in the scope.
func (s Scope) Codes() []string { return append([]string(nil), s.codes...) }

// Empty reports whether the scope grants nothing.
func (s Scope) Empty() bool { return len(s.codes) == 0 }

// Full reports whether the scope covers every known program.
func (s Scope) Full() bool { return s.full }

// Contains reports whether code is within the scope.
func (s Scope) Contains(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	i := sort.SearchStrings(s.codes, code)
	return i < len(s.codes) && s.codes[i] == code
}

// String renders the scope for cache keys and logs.
func (s Scope) String() string {
	if s.Empty() {
		return "none"
	}
	return strings.Join(s.codes, ",")
}

// Catalog is the set of all known program codes.
type Catalog struct {
	codes []string
}

// NewCatalog normalises and deduplicates codes.
func NewCatalog(codes ...string) Catalog {
	return Catalog{codes: normalise(codes)}
}

// All returns the full scope.
func (c Catalog) All() Scope {
	return Scope{codes: append([]string(nil), c.codes...), full: len(c.codes) > 0}
}

// Of returns a scope over the given codes.  Codes absent from the catalog
// are kept so a program-chair tag still matches rows created after startup.
func (c Catalog) Of(codes ...string) Scope {
	s := Scope{codes: normalise(codes)}
	s.full = len(c.codes) > 0
	for _, code := range c.codes {
		if !s.Contains(code) {
			s.full = false
			break
		}
	}
	return s
}

func normalise(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
