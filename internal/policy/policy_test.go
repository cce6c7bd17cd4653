package policy

import (
	"reflect"
	"testing"
)

func TestScopeFor(t *testing.T) {
	p := New("IT", "CS", "GRAD")

	cases := []struct {
		name     string
		role     string
		scope    string
		want     []string
		wantFull bool
	}{
		{"registrar without tag", RoleRegistrar, "", []string{"CS", "GRAD", "IT"}, true},
		{"registrar with odd tag", RoleRegistrar, "IT", []string{"CS", "GRAD", "IT"}, true},
		{"any role with ALL", RoleProgramChair, "ALL", []string{"CS", "GRAD", "IT"}, true},
		{"student with ALL", RoleStudent, "ALL", []string{"CS", "GRAD", "IT"}, true},
		{"dean of CCIT", RoleDean, "CCIT", []string{"CS", "IT"}, false},
		{"dean elsewhere", RoleDean, "CBA", nil, false},
		{"dean tag in lower case", RoleDean, "ccit", []string{"CS", "IT"}, false},
		{"program chair tag in lower case", RoleProgramChair, " it ", []string{"IT"}, false},
		{"program chair IT", RoleProgramChair, "IT", []string{"IT"}, false},
		{"program chair no tag", RoleProgramChair, "", nil, false},
		{"student", RoleStudent, "", nil, false},
		{"student with tag", RoleStudent, "IT", nil, false},
		{"professor", RoleProfessor, "CS", nil, false},
		{"unknown role", "janitor", "IT", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := p.ScopeFor(tc.role, tc.scope)
			got := s.Codes()
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("codes = %v, want %v", got, tc.want)
			}
			if s.Full() != tc.wantFull {
				t.Fatalf("full = %v, want %v", s.Full(), tc.wantFull)
			}
			if s.Empty() != (len(tc.want) == 0) {
				t.Fatalf("empty = %v", s.Empty())
			}
		})
	}
}

func TestScopeContains(t *testing.T) {
	s := New("IT", "CS", "GRAD").ScopeFor(RoleDean, "CCIT")
	for code, want := range map[string]bool{"IT": true, "cs": true, "GRAD": false, "": false} {
		if got := s.Contains(code); got != want {
			t.Errorf("Contains(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestChairScopeCoveringCatalogIsFull(t *testing.T) {
	p := New("IT")
	if s := p.ScopeFor(RoleProgramChair, "it"); !s.Full() {
		t.Fatalf("scope %v should be full for a single-program catalog", s)
	}
}

func TestSetCatalog(t *testing.T) {
	p := New("IT", "CS")
	p.SetCatalog("IT", "CS", "GRAD", "DS")
	if got := p.ScopeFor(RoleRegistrar, "").Codes(); len(got) != 4 {
		t.Fatalf("codes = %v, want 4 programs", got)
	}
	if p.ScopeFor(RoleDean, "CCIT").Full() {
		t.Fatal("dean scope must not be full once the catalog grows")
	}
}

func TestParseRole(t *testing.T) {
	for _, name := range []string{"student", "professor", "registrar", "dean", "program_chair"} {
		r, err := ParseRole(name)
		if err != nil || r.Name() != name {
			t.Fatalf("ParseRole(%q) = %v, %v", name, r, err)
		}
	}
	if _, err := ParseRole("admin"); err != ErrUnknownRole {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
	admin := map[string]bool{}
	for _, n := range AdminRoles() {
		admin[n] = true
	}
	for name, r := range roles {
		if r.Admin() != admin[name] {
			t.Errorf("%s Admin() = %v", name, r.Admin())
		}
	}
}
