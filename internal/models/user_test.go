package models

import "testing"

func TestUserRole(t *testing.T) {
	tests := []struct {
		name        string
		isStaff     bool
		isSuperuser bool
		want        UserRole
	}{
		{"müşteri", false, false, RoleCustomer},
		{"personel", true, false, RoleStaff},
		{"admin", true, true, RoleAdmin},
		// superuser flag'i tek başına da admin sayılır
		{"sadece superuser", false, true, RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{IsStaff: tt.isStaff, IsSuperuser: tt.isSuperuser}
			if got := u.Role(); got != tt.want {
				t.Errorf("Role() = %q, istenen %q", got, tt.want)
			}
		})
	}
}

func TestRoleFlags(t *testing.T) {
	tests := []struct {
		role            UserRole
		wantStaff       bool
		wantSuperuser   bool
	}{
		{RoleCustomer, false, false},
		{RoleStaff, true, false},
		{RoleAdmin, true, true},
	}

	for _, tt := range tests {
		isStaff, isSuperuser := RoleFlags(tt.role)
		if isStaff != tt.wantStaff || isSuperuser != tt.wantSuperuser {
			t.Errorf("RoleFlags(%q) = (%v, %v), istenen (%v, %v)",
				tt.role, isStaff, isSuperuser, tt.wantStaff, tt.wantSuperuser)
		}
	}
}

func TestRoleFlagsRoundTrip(t *testing.T) {
	for _, role := range []UserRole{RoleCustomer, RoleStaff, RoleAdmin} {
		isStaff, isSuperuser := RoleFlags(role)
		u := User{IsStaff: isStaff, IsSuperuser: isSuperuser}
		if got := u.Role(); got != role {
			t.Errorf("rol %q flag'lerden %q olarak geri türedi", role, got)
		}
	}
}
