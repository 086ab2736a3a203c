// Package guard decides, per navigation, whether the current identity may
// render a given view. Route-level gating (role sets) happens here before a
// page is instantiated; entity-level ownership is a separate pure check
// pages apply after their data resolves.
package guard

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	studio "github.com/portfoliostudio/studio.go"
)

// Route names, used by the router to select which page to build.
const (
	RouteHome            = "home"
	RouteLogin           = "login"
	RouteRegister        = "register"
	RouteDashboard       = "dashboard"
	RoutePortfolioDetail = "portfolio-detail"
	RoutePortfolioCreate = "portfolio-create"
	RoutePortfolioEdit   = "portfolio-edit"
	RouteProjectNew      = "project-new"
	RouteAchievementNew  = "achievement-new"
	RouteTeacherView     = "teacher-portfolio"
	RouteProjectDetail   = "project-detail"
	RouteProjectEdit     = "project-edit"
	RouteAchievementEdit = "achievement-edit"
	RouteNotFound        = "not-found"
)

// Route is one navigable view and its access rule. Public routes render for
// anyone. Non-public routes with a nil role set render for any authenticated
// identity; otherwise the identity's role must be in Roles.
type Route struct {
	Name     string
	Pattern  string
	Public   bool
	Roles    []studio.Role
	Redirect string
}

var students = []studio.Role{studio.RoleStudent}
var teachers = []studio.Role{studio.RoleTeacher}

// routes is the full navigable surface. Order matters: literal segments
// ("create", "edit") register before the numeric id patterns they would
// otherwise collide with.
var routes = []Route{
	{Name: RouteHome, Pattern: "/", Redirect: "/dashboard"},
	{Name: RouteLogin, Pattern: "/login", Public: true},
	{Name: RouteRegister, Pattern: "/register", Public: true},
	{Name: RouteDashboard, Pattern: "/dashboard"},
	{Name: RoutePortfolioCreate, Pattern: "/portfolios/create", Roles: students},
	{Name: RoutePortfolioEdit, Pattern: "/portfolios/edit/{id:[0-9]+}", Roles: students},
	{Name: RouteProjectNew, Pattern: "/portfolios/{id:[0-9]+}/projects/new", Roles: students},
	{Name: RouteAchievementNew, Pattern: "/portfolios/{id:[0-9]+}/achievements/new", Roles: students},
	{Name: RoutePortfolioDetail, Pattern: "/portfolios/{id:[0-9]+}"},
	{Name: RouteTeacherView, Pattern: "/teacher/portfolios/{id:[0-9]+}", Roles: teachers},
	{Name: RouteProjectEdit, Pattern: "/projects/{id:[0-9]+}/edit", Roles: students},
	{Name: RouteProjectDetail, Pattern: "/projects/{id:[0-9]+}"},
	{Name: RouteAchievementEdit, Pattern: "/achievements/{id:[0-9]+}/edit", Roles: students},
}

// Table matches navigation paths against the route surface. It uses a mux
// router purely as a matcher so path parsing and variable extraction are
// not reimplemented per page.
type Table struct {
	router *mux.Router
	byName map[string]Route
}

// NewTable builds the table over the full navigable surface.
func NewTable() *Table {
	t := &Table{
		router: mux.NewRouter(),
		byName: make(map[string]Route, len(routes)),
	}
	for _, r := range routes {
		t.router.Path(r.Pattern).Name(r.Name)
		t.byName[r.Name] = r
	}
	return t
}

// Resolve matches path to a route, extracting its path variables. Unmatched
// paths resolve to the not-found route.
func (t *Table) Resolve(path string) (Route, map[string]string) {
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path}}
	var match mux.RouteMatch
	if !t.router.Match(req, &match) || match.Route == nil {
		return Route{Name: RouteNotFound, Pattern: path, Public: true}, nil
	}
	return t.byName[match.Route.GetName()], match.Vars
}
