package policy

import (
	"strings"
	"sync"
)

// Policy resolves program scopes against the current program catalog.
type Policy struct {
	mu      sync.RWMutex
	catalog Catalog
}

// New returns a Policy over the given program codes.
func New(codes ...string) *Policy {
	return &Policy{catalog: NewCatalog(codes...)}
}

// SetCatalog replaces the known program codes, e.g. after loading them
// from the database.
func (p *Policy) SetCatalog(codes ...string) {
	c := NewCatalog(codes...)
	p.mu.Lock()
	p.catalog = c
	p.mu.Unlock()
}

// Catalog returns the current catalog.
func (p *Policy) Catalog() Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.catalog
}

// ScopeFor resolves the programs visible to a caller.  A program scope of
// ALL grants everything whatever the role; unknown roles get nothing.
func (p *Policy) ScopeFor(role, programScope string) Scope {
	catalog := p.Catalog()
	if strings.EqualFold(strings.TrimSpace(programScope), ScopeAll) {
		return catalog.All()
	}
	r, err := ParseRole(role)
	if err != nil {
		return Scope{}
	}
	return r.ResolveScope(strings.TrimSpace(programScope), catalog)
}
