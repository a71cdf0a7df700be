package models

import "testing"

func TestUserStateHelpers(t *testing.T) {
	tests := []struct {
		state    AccountState
		pending  bool
		approved bool
		rejected bool
	}{
		{AccountPending, true, false, false},
		{AccountApproved, false, true, false},
		{AccountRejected, false, false, true},
	}
	for _, tt := range tests {
		u := User{State: tt.state}
		if u.IsPending() != tt.pending || u.IsApproved() != tt.approved || u.IsRejected() != tt.rejected {
			t.Errorf("state %q: got pending=%v approved=%v rejected=%v", tt.state, u.IsPending(), u.IsApproved(), u.IsRejected())
		}
	}
}

func TestUserCanLogin(t *testing.T) {
	tests := []struct {
		name   string
		state  AccountState
		active bool
		want   bool
	}{
		{"approved active", AccountApproved, true, true},
		{"approved inactive", AccountApproved, false, false},
		{"pending active", AccountPending, true, false},
		{"rejected", AccountRejected, false, false},
	}
	for _, tt := range tests {
		u := User{State: tt.state, IsActive: tt.active}
		if got := u.CanLogin(); got != tt.want {
			t.Errorf("%s: CanLogin() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUserIsReviewer(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		staff bool
		want  bool
	}{
		{"plain employee", RoleEmployee, false, false},
		{"manager", RoleManager, false, false},
		{"department chief", RoleDepartmentChief, false, false},
		{"DRH", RoleDRH, false, true},
		{"staff employee", RoleEmployee, true, true},
		{"staff DRH", RoleDRH, true, true},
	}
	for _, tt := range tests {
		u := User{Role: tt.role, IsStaff: tt.staff}
		if got := u.IsReviewer(); got != tt.want {
			t.Errorf("%s: IsReviewer() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUserInStructure(t *testing.T) {
	sid := uint(3)
	u := User{StructureID: &sid}
	if !u.InStructure(3) {
		t.Error("expected member of structure 3")
	}
	if u.InStructure(4) {
		t.Error("should not be member of structure 4")
	}
	none := User{}
	if none.InStructure(3) {
		t.Error("user without structure should not match any")
	}
}

func TestUserFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Awa", "Diop", "Awa Diop"},
		{"", "Diop", "Diop"},
		{"Awa", "", "Awa"},
		{"", "", ""},
	}
	for _, tt := range tests {
		u := User{FirstName: tt.first, LastName: tt.last}
		if got := u.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}
