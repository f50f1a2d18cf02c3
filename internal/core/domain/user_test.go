package domain

import "testing"

func TestRoleSetValues(t *testing.T) {
	cases := []struct {
		name  string
		roles RoleSet
		want  []int
	}{
		{"baseline", DefaultRoles(), []int{RoleUser}},
		{"editor", RoleSet{User: RoleUser, Editor: RoleEditor}, []int{RoleUser, RoleEditor}},
		{"admin", RoleSet{User: RoleUser, Admin: RoleAdmin}, []int{RoleUser, RoleAdmin}},
		{"empty", RoleSet{}, []int{}},
	}

	for _, tc := range cases {
		got := tc.roles.Values()
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
			}
		}
	}
}

func TestGrants(t *testing.T) {
	held := []int{RoleUser, RoleEditor}

	if !Grants(held, RoleEditor) {
		t.Fatalf("held role should grant")
	}
	// Holding any one of the required codes suffices.
	if !Grants(held, RoleAdmin, RoleEditor) {
		t.Fatalf("OR semantics: one match should grant")
	}
	if Grants(held, RoleAdmin) {
		t.Fatalf("unheld role should not grant")
	}
	if Grants(nil, RoleUser) {
		t.Fatalf("empty role set should never grant")
	}
	if Grants(held) {
		t.Fatalf("no required roles should not grant")
	}
}
