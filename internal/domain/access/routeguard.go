package access

import (
	"fmt"
	"strings"
)

// Front-end routes the guard redirects to. These match the SPA's paths.
const (
	LoginRoute   = "/login"
	ProfileRoute = "/mi-perfil"
	JoinRoute    = "/hacerse-socio"
)

// RoutePolicy is the static authorization rule for a protected view.
// The zero value requires authentication and nothing else. Rules compose:
// a route may require membership AND a role at the same time.
type RoutePolicy struct {
	// Public routes skip the authentication requirement entirely.
	Public bool
	// RequireMembership admits only registered socios.
	RequireMembership bool
	// RequireNonMembership admits only users who are NOT socios (join flow).
	RequireNonMembership bool
	// AllowedRoles, when non-empty, admits only users holding at least one.
	AllowedRoles []Role
}

type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomeAllow    Outcome = "allow"
	OutcomeRedirect Outcome = "redirect"
)

// Decision is the guard's result. Authorization failure is always a redirect
// value, never an error. From carries the originally requested location so a
// post-login flow can resume there.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	Reason     string
	From       string
}

func pending() Decision { return Decision{Outcome: OutcomePending} }
func allow() Decision   { return Decision{Outcome: OutcomeAllow} }
func redirect(to, reason, from string) Decision {
	return Decision{Outcome: OutcomeRedirect, RedirectTo: to, Reason: reason, From: from}
}

// Resolve evaluates a route policy against a user snapshot. Rules are checked
// in a fixed order; the first failing rule wins, which makes overlapping
// rules deterministic:
//
//  1. auth still loading        -> pending (caller re-invokes once settled)
//  2. no user                   -> login redirect, tagging the requested path
//  3. non-members-only + member -> profile redirect
//  4. members-only + non-member -> join redirect
//  5. role required + missing   -> profile redirect with a diagnostic reason
//  6. otherwise                 -> allow
//
// A policy requiring membership and non-membership at once is a configuration
// defect; it resolves deterministically to a deny rather than ambiguously
// allowing access.
func Resolve(u *User, isLoadingAuth bool, requestedPath string, p RoutePolicy) Decision {
	if p.RequireMembership && p.RequireNonMembership {
		return redirect(ProfileRoute, "contradictory route policy: membership and non-membership required at once", requestedPath)
	}

	if isLoadingAuth {
		return pending()
	}

	if u == nil {
		if p.Public {
			return allow()
		}
		return redirect(LoginRoute, "authentication required", requestedPath)
	}

	if p.RequireNonMembership && IsMember(u) {
		return redirect(ProfileRoute, "already a member", requestedPath)
	}

	if p.RequireMembership && !IsMember(u) {
		return redirect(JoinRoute, "membership required", requestedPath)
	}

	if len(p.AllowedRoles) > 0 && !u.Roles.HasAny(p.AllowedRoles...) {
		reason := fmt.Sprintf("required roles: %s; user roles: %s",
			joinRoles(p.AllowedRoles), strings.Join(u.Roles.List(), ", "))
		return redirect(ProfileRoute, reason, requestedPath)
	}

	return allow()
}

func joinRoles(roles []Role) string {
	tags := make([]string, len(roles))
	for i, r := range roles {
		tags[i] = string(r)
	}
	return strings.Join(tags, ", ")
}
