package guard

import (
	"github.com/portfoliostudio/studio.go/session"

	studio "github.com/portfoliostudio/studio.go"
)

// State is the access decision for one navigation.
type State int

const (
	// StatePending means the session is still loading; render a neutral
	// loading state and decide again once it settles.
	StatePending State = iota
	// StateAllowed means the wrapped view may render.
	StateAllowed
	// StateDenied means the view must not render, not even transiently;
	// Decision.RedirectTo names the recovery destination.
	StateDenied
)

// Decision is the outcome of evaluating a route against the session.
type Decision struct {
	State      State
	RedirectTo string
}

// SessionView is the read-only slice of the session store the guard needs.
type SessionView interface {
	Loading() bool
	Identity() (session.Identity, bool)
}

// Evaluate gates one navigation. While the session is loading the decision
// is pending. Anonymous identities are denied toward the login entry point;
// authenticated identities missing a required role are denied toward the
// dashboard; everything else is allowed.
func Evaluate(route Route, sess SessionView) Decision {
	if route.Public {
		return Decision{State: StateAllowed}
	}
	if sess.Loading() {
		return Decision{State: StatePending}
	}

	identity, ok := sess.Identity()
	if !ok {
		return Decision{State: StateDenied, RedirectTo: session.LoginPath}
	}

	if len(route.Roles) == 0 {
		return Decision{State: StateAllowed}
	}
	for _, role := range route.Roles {
		if identity.Role == role {
			return Decision{State: StateAllowed}
		}
	}
	return Decision{State: StateDenied, RedirectTo: "/dashboard"}
}

// OwnsPortfolio reports whether user is the student who owns p. This is the
// entity-level check pages layer on top of route gating once the entity has
// been fetched; it is a UX convenience, never a security boundary.
func OwnsPortfolio(user *studio.User, p *studio.Portfolio) bool {
	return user != nil && p != nil && user.ID == p.StudentID
}

// OwnsFeedback reports whether user is the teacher who authored f.
func OwnsFeedback(user *studio.User, f *studio.Feedback) bool {
	return user != nil && f != nil && user.ID == f.TeacherID
}
