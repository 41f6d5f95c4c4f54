// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"sort"
	"strings"
)

// # Permissions

// Permission is a named capability in the form "catalog.<codename>".
type Permission string

// Capability is the verb half of an entity permission.
type Capability string

const (
	CapView   Capability = "view"
	CapAdd    Capability = "add"
	CapChange Capability = "change"
	CapDelete Capability = "delete"
)

// Entity names used in permission codenames and CRUD routes.
const (
	EntityAuthor       = "author"
	EntityBook         = "book"
	EntityGenre        = "genre"
	EntityLanguage     = "language"
	EntityBookInstance = "bookinstance"
)

const (
	// PermCanMarkReturned grants access to every loan and to renewals.
	PermCanMarkReturned Permission = "catalog.can_mark_returned"

	// PermCanRenew is declared for staff tooling; the renew gate checks PermCanMarkReturned.
	PermCanRenew Permission = "catalog.can_renew"
)

// EntityPermission builds the permission for capability on entity, e.g. "catalog.add_book".
func EntityPermission(capability Capability, entity string) Permission {
	return Permission("catalog." + string(capability) + "_" + entity)
}

// # Actions

// Action names a gated workflow.
type Action string

const (
	ActionViewCatalog  Action = "view_catalog"
	ActionViewMyLoans  Action = "view_my_loans"
	ActionViewAllLoans Action = "view_all_loans"
	ActionRenew        Action = "renew_instance"
	ActionViewProfile  Action = "account_profile"
)

// EntityAction returns the gated action for a CRUD capability on entity.
func EntityAction(capability Capability, entity string) Action {
	return Action(string(capability) + "_" + entity)
}

// Gate describes what a caller must present to run an action.
type Gate struct {
	Authenticated bool
	Permission    Permission
}

// Requirement maps an action to its gate. Entity actions ("<capability>_<entity>")
// require the matching entity permission; any other unknown action requires
// authentication only.
func Requirement(action Action) Gate {
	switch action {
	case ActionViewCatalog:
		return Gate{}
	case ActionViewMyLoans, ActionViewProfile:
		return Gate{Authenticated: true}
	case ActionViewAllLoans, ActionRenew:
		return Gate{Authenticated: true, Permission: PermCanMarkReturned}
	}

	for _, capability := range []Capability{CapView, CapAdd, CapChange, CapDelete} {
		entity, found := strings.CutPrefix(string(action), string(capability)+"_")
		if found && entity != "" {
			return Gate{Authenticated: true, Permission: EntityPermission(capability, entity)}
		}
	}

	return Gate{Authenticated: true}
}

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Library staff: manages the catalog and every loan
	RoleLibrarian UserRole = "librarian"

	// Default role for registered borrowers
	RoleMember UserRole = "member"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleLibrarian, RoleMember:
		return true
	}
	return false
}

// Permissions returns the permission set granted by the role, merged with
// any explicitly granted extras. The result is sorted and de-duplicated.
func (r UserRole) Permissions(extra ...string) []string {
	set := make(map[string]struct{})

	switch r {
	case RoleAdmin, RoleLibrarian:
		set[string(PermCanMarkReturned)] = struct{}{}
		set[string(PermCanRenew)] = struct{}{}
		for _, entity := range []string{EntityAuthor, EntityBook, EntityGenre, EntityLanguage, EntityBookInstance} {
			for _, capability := range []Capability{CapView, CapAdd, CapChange, CapDelete} {
				set[string(EntityPermission(capability, entity))] = struct{}{}
			}
		}
	}

	for _, p := range extra {
		if p != "" {
			set[p] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
