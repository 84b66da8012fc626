// Package access defines the closed set of roles and the capability table
// that route guards and services consult for authorization decisions.
package access

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleIndividual        Role = "individual"
	RoleBranchCoordinator Role = "branch-coordinator"
	RoleAdmin             Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleIndividual, RoleBranchCoordinator, RoleAdmin}

// ParseRole accepts the canonical spelling plus the legacy "branch" alias.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "individual":
		return RoleIndividual, nil
	case "branch-coordinator", "branch_coordinator", "branch", "coordinator":
		return RoleBranchCoordinator, nil
	case "admin":
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RoleBranchCoordinator, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

type Capability string

const (
	CapContribute       Capability = "contribution:create"
	CapSubmit           Capability = "submission:create"
	CapProjectManage    Capability = "project:manage"
	CapSubmissionReview Capability = "submission:review"
	CapSectionManage    Capability = "section:manage"
	CapBranchManage     Capability = "branch:manage"
	CapBranchInspect    Capability = "branch:inspect"
	CapUserAdmin        Capability = "user:admin"
	// CapAllBranches lifts the own-branch restriction on scoped operations.
	CapAllBranches Capability = "branch:all"
)

var capabilities = map[Role][]Capability{
	RoleIndividual: {
		CapContribute,
		CapSubmit,
	},
	RoleBranchCoordinator: {
		CapContribute,
		CapSubmit,
		CapProjectManage,
		CapSubmissionReview,
		CapBranchInspect,
	},
	RoleAdmin: {
		CapContribute,
		CapSubmit,
		CapProjectManage,
		CapSubmissionReview,
		CapSectionManage,
		CapBranchManage,
		CapBranchInspect,
		CapUserAdmin,
		CapAllBranches,
	},
}

// Can reports whether the role holds the capability.
func Can(role Role, capability Capability) bool {
	for _, c := range capabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// RolesWith returns the roles holding the capability, in declaration order.
func RolesWith(capability Capability) []Role {
	var roles []Role
	for _, r := range Roles {
		if Can(r, capability) {
			roles = append(roles, r)
		}
	}
	return roles
}

// Principal is the authenticated caller resolved from a token and its backing user row.
type Principal struct {
	UserID    string
	Email     string
	UserName  string
	Role      Role
	BranchID  *string
	SessionID string
}

func (p *Principal) Can(capability Capability) bool {
	return p != nil && Can(p.Role, capability)
}

// InBranch reports whether the principal belongs to the given branch.
func (p *Principal) InBranch(branchID *string) bool {
	return p != nil && p.BranchID != nil && branchID != nil && *p.BranchID == *branchID
}

// ManagesBranch reports whether the principal may act on records of the given branch.
// Admin is unrestricted; a coordinator only manages their own branch.
func (p *Principal) ManagesBranch(branchID *string) bool {
	if p == nil {
		return false
	}
	if p.Can(CapAllBranches) {
		return true
	}
	return p.Role == RoleBranchCoordinator && p.InBranch(branchID)
}

// CanViewSubmission applies the submission visibility rule: admin sees all,
// a coordinator sees the own branch, an individual sees the own submissions.
func (p *Principal) CanViewSubmission(ownerID string, branchID *string) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case RoleAdmin:
		return true
	case RoleBranchCoordinator:
		return p.InBranch(branchID)
	default:
		return p.UserID == ownerID
	}
}
