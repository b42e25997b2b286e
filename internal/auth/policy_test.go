package auth

import (
	"testing"

	"github.com/projetointegrador/estoque-api/internal/domain/user"
)

const adminEmail = "admin@estoque.local"

func policyUser(id, email string, roles ...user.Role) user.User {
	return user.User{ID: id, Email: email, Roles: roles}
}

// The bootstrap admin and the ADMIN role are independent: roleAdmin below
// holds ADMIN but is not the configured bootstrap account.
var (
	bootstrap = policyUser("u-0", adminEmail, user.RoleAdmin)
	roleAdmin = policyUser("u-1", "gerente@example.com", user.RoleAdmin)
	alice     = policyUser("u-2", "alice@example.com", user.RoleUser)
	bob       = policyUser("u-3", "bob@example.com", user.RoleUser)
)

func TestCanListUsers(t *testing.T) {
	p := NewPolicy(adminEmail)

	tests := []struct {
		name   string
		caller user.User
		allow  bool
	}{
		{"bootstrap admin", bootstrap, true},
		{"admin role but not bootstrap", roleAdmin, false},
		{"plain user", alice, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CanListUsers(tt.caller.Email)

			if tt.allow && err != nil {
				t.Errorf("expected allow, got %v", err)
			}

			if !tt.allow && err != ErrAccessDenied {
				t.Errorf("expected ErrAccessDenied, got %v", err)
			}
		})
	}
}

func TestCanViewUser(t *testing.T) {
	p := NewPolicy(adminEmail)

	tests := []struct {
		name   string
		caller user.User
		target user.User
		allow  bool
	}{
		{"bootstrap admin views anyone", bootstrap, bob, true},
		{"self view", alice, alice, true},
		{"other user", alice, bob, false},
		{"admin role is not enough", roleAdmin, bob, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CanViewUser(tt.caller, tt.target)

			if tt.allow && err != nil {
				t.Errorf("expected allow, got %v", err)
			}

			if !tt.allow && err != ErrAccessDenied {
				t.Errorf("expected ErrAccessDenied, got %v", err)
			}
		})
	}
}

func TestCanDeleteUser(t *testing.T) {
	p := NewPolicy(adminEmail)

	tests := []struct {
		name   string
		caller user.User
		target user.User
		allow  bool
	}{
		{"bootstrap admin deletes a user", bootstrap, bob, true},
		{"self delete", alice, alice, true},
		{"other user", alice, bob, false},
		{"admin role deletes other", roleAdmin, bob, false},
		// The bootstrap account is protected from everyone, itself included.
		{"bootstrap admin as target, bootstrap caller", bootstrap, bootstrap, false},
		{"bootstrap admin as target, role admin caller", roleAdmin, bootstrap, false},
		{"bootstrap admin as target, plain caller", alice, bootstrap, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CanDeleteUser(tt.caller, tt.target)

			if tt.allow && err != nil {
				t.Errorf("expected allow, got %v", err)
			}

			if !tt.allow && err != ErrAccessDenied {
				t.Errorf("expected ErrAccessDenied, got %v", err)
			}
		})
	}
}

func TestCanCreateWithRoles(t *testing.T) {
	p := NewPolicy(adminEmail)

	tests := []struct {
		name      string
		caller    *user.User
		requested []user.Role
		allow     bool
	}{
		{"anonymous plain signup", nil, nil, true},
		{"anonymous explicit USER", nil, []user.Role{user.RoleUser}, true},
		{"anonymous requesting ADMIN", nil, []user.Role{user.RoleAdmin}, false},
		{"plain user requesting ADMIN", &alice, []user.Role{user.RoleAdmin}, false},
		// Any account holding ADMIN may mint admins, not just the bootstrap one.
		{"role admin requesting ADMIN", &roleAdmin, []user.Role{user.RoleAdmin}, true},
		{"bootstrap requesting ADMIN", &bootstrap, []user.Role{user.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CanCreateWithRoles(tt.caller, tt.requested)

			if tt.allow && err != nil {
				t.Errorf("expected allow, got %v", err)
			}

			if !tt.allow && err != ErrAccessDenied {
				t.Errorf("expected ErrAccessDenied, got %v", err)
			}
		})
	}
}

func TestIsBootstrapAdminEmptyConfig(t *testing.T) {
	p := NewPolicy("")

	if p.IsBootstrapAdmin("") {
		t.Error("empty configured email must never match")
	}
}
