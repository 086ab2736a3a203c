package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/session"
)

// fakeSession is a canned SessionView.
type fakeSession struct {
	loading  bool
	identity *session.Identity
}

func (f fakeSession) Loading() bool { return f.loading }

func (f fakeSession) Identity() (session.Identity, bool) {
	if f.identity == nil {
		return session.Identity{}, false
	}
	return *f.identity, true
}

func anonymous() fakeSession { return fakeSession{} }

func as(role studio.Role) fakeSession {
	return fakeSession{identity: &session.Identity{Subject: "someone", Role: role}}
}

func TestTableResolve(t *testing.T) {
	table := guard.NewTable()

	tests := []struct {
		path string
		name string
		vars map[string]string
	}{
		{path: "/login", name: guard.RouteLogin},
		{path: "/register", name: guard.RouteRegister},
		{path: "/dashboard", name: guard.RouteDashboard},
		{path: "/portfolios/42", name: guard.RoutePortfolioDetail, vars: map[string]string{"id": "42"}},
		{path: "/portfolios/create", name: guard.RoutePortfolioCreate},
		{path: "/portfolios/edit/42", name: guard.RoutePortfolioEdit, vars: map[string]string{"id": "42"}},
		{path: "/portfolios/42/projects/new", name: guard.RouteProjectNew, vars: map[string]string{"id": "42"}},
		{path: "/portfolios/42/achievements/new", name: guard.RouteAchievementNew, vars: map[string]string{"id": "42"}},
		{path: "/teacher/portfolios/7", name: guard.RouteTeacherView, vars: map[string]string{"id": "7"}},
		{path: "/projects/7", name: guard.RouteProjectDetail, vars: map[string]string{"id": "7"}},
		{path: "/projects/7/edit", name: guard.RouteProjectEdit, vars: map[string]string{"id": "7"}},
		{path: "/achievements/7/edit", name: guard.RouteAchievementEdit, vars: map[string]string{"id": "7"}},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			route, vars := table.Resolve(tc.path)
			assert.Equal(t, tc.name, route.Name)
			if tc.vars != nil {
				assert.Equal(t, tc.vars, vars)
			}
		})
	}
}

func TestTableResolveHomeRedirects(t *testing.T) {
	table := guard.NewTable()
	route, _ := table.Resolve("/")
	require.Equal(t, guard.RouteHome, route.Name)
	assert.Equal(t, "/dashboard", route.Redirect)
}

func TestTableResolveUnknownPath(t *testing.T) {
	table := guard.NewTable()
	for _, path := range []string{"/nonsense", "/portfolios/abc", "/portfolios/42/unknown"} {
		route, _ := table.Resolve(path)
		assert.Equal(t, guard.RouteNotFound, route.Name, path)
		assert.True(t, route.Public)
	}
}

func TestEvaluate(t *testing.T) {
	table := guard.NewTable()
	resolve := func(path string) guard.Route {
		route, _ := table.Resolve(path)
		return route
	}

	tests := []struct {
		name     string
		path     string
		sess     fakeSession
		state    guard.State
		redirect string
	}{
		{name: "public route while anonymous", path: "/login", sess: anonymous(), state: guard.StateAllowed},
		{name: "public route while loading", path: "/login", sess: fakeSession{loading: true}, state: guard.StateAllowed},
		{name: "protected route while loading", path: "/dashboard", sess: fakeSession{loading: true}, state: guard.StatePending},
		{name: "protected route while anonymous", path: "/dashboard", sess: anonymous(), state: guard.StateDenied, redirect: session.LoginPath},
		{name: "any role on dashboard", path: "/dashboard", sess: as(studio.RoleTeacher), state: guard.StateAllowed},
		{name: "student on student route", path: "/portfolios/create", sess: as(studio.RoleStudent), state: guard.StateAllowed},
		{name: "teacher on student route", path: "/portfolios/create", sess: as(studio.RoleTeacher), state: guard.StateDenied, redirect: "/dashboard"},
		{name: "student on teacher route", path: "/teacher/portfolios/7", sess: as(studio.RoleStudent), state: guard.StateDenied, redirect: "/dashboard"},
		{name: "teacher on teacher route", path: "/teacher/portfolios/7", sess: as(studio.RoleTeacher), state: guard.StateAllowed},
		{name: "student viewing another portfolio route", path: "/portfolios/42", sess: as(studio.RoleStudent), state: guard.StateAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := guard.Evaluate(resolve(tc.path), tc.sess)
			assert.Equal(t, tc.state, decision.State)
			assert.Equal(t, tc.redirect, decision.RedirectTo)
		})
	}
}

func TestOwnsPortfolio(t *testing.T) {
	owner := &studio.User{ID: 1}
	other := &studio.User{ID: 2}
	portfolio := &studio.Portfolio{ID: 10, StudentID: 1}

	assert.True(t, guard.OwnsPortfolio(owner, portfolio))
	assert.False(t, guard.OwnsPortfolio(other, portfolio))
	assert.False(t, guard.OwnsPortfolio(nil, portfolio))
	assert.False(t, guard.OwnsPortfolio(owner, nil))
}

func TestOwnsFeedback(t *testing.T) {
	author := &studio.User{ID: 5}
	feedback := &studio.Feedback{ID: 20, TeacherID: 5}

	assert.True(t, guard.OwnsFeedback(author, feedback))
	assert.False(t, guard.OwnsFeedback(&studio.User{ID: 6}, feedback))
	assert.False(t, guard.OwnsFeedback(nil, feedback))
}
