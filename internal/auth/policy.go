package auth

import (
	"errors"

	"github.com/projetointegrador/estoque-api/internal/domain/user"
)

// ErrAccessDenied means the caller is authenticated but not allowed to act
// on the target. Maps to HTTP 403 at the boundary.
var ErrAccessDenied = errors.New("access denied")

// Policy decides who may act on which user record. The bootstrap admin is
// identified by email match against the configured admin address, NOT by
// role: an ordinary account holding the ADMIN role may create further
// admins but still cannot list all users or delete protected targets.
// The two predicates are kept separate on purpose.
type Policy struct {
	adminEmail string
}

func NewPolicy(adminEmail string) *Policy {
	return &Policy{adminEmail: adminEmail}
}

func (p *Policy) IsBootstrapAdmin(email string) bool {
	return p.adminEmail != "" && email == p.adminEmail
}

// CanListUsers: only the bootstrap admin sees the full user list.
func (p *Policy) CanListUsers(callerEmail string) error {
	if !p.IsBootstrapAdmin(callerEmail) {
		return ErrAccessDenied
	}

	return nil
}

// CanViewUser: bootstrap admin, or the caller viewing their own record.
// The target may be a stub carrying only the id (lookup by id) or only the
// email (lookup by email); the check happens before the record is fetched.
func (p *Policy) CanViewUser(caller, target user.User) error {
	if p.IsBootstrapAdmin(caller.Email) {
		return nil
	}

	if target.ID != "" && caller.ID == target.ID {
		return nil
	}

	if target.Email != "" && caller.Email == target.Email {
		return nil
	}

	return ErrAccessDenied
}

// CanDeleteUser: the bootstrap admin account itself is never deletable,
// regardless of who asks. Otherwise bootstrap admin or self-delete.
func (p *Policy) CanDeleteUser(caller, target user.User) error {
	if p.IsBootstrapAdmin(target.Email) {
		return ErrAccessDenied
	}

	if p.IsBootstrapAdmin(caller.Email) {
		return nil
	}

	if caller.ID == target.ID {
		return nil
	}

	return ErrAccessDenied
}

// CanUpdateUser follows the view rule: bootstrap admin or self.
func (p *Policy) CanUpdateUser(caller, target user.User) error {
	return p.CanViewUser(caller, target)
}

// CanCreateWithRoles guards registration. Requesting the ADMIN role needs
// an authenticated caller that already holds ADMIN (role check, not the
// bootstrap-email check). caller is nil for anonymous registration.
func (p *Policy) CanCreateWithRoles(caller *user.User, requested []user.Role) error {
	wantsAdmin := false

	for _, r := range requested {
		if r == user.RoleAdmin {
			wantsAdmin = true
		}
	}

	if !wantsAdmin {
		return nil
	}

	if caller == nil || !caller.HasRole(user.RoleAdmin) {
		return ErrAccessDenied
	}

	return nil
}

// CanGrantRoles guards role changes on update; same rule as admin creation.
func (p *Policy) CanGrantRoles(caller user.User) error {
	if !caller.HasRole(user.RoleAdmin) {
		return ErrAccessDenied
	}

	return nil
}
