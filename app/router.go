// Package app wires the client, session store, and guard into page
// controllers, one per navigable view. Pages consume entity fetchers
// through the view state machines and never talk HTTP directly.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/session"
)

// Page is one mounted view controller. Pages carrying data implement
// Loader; public form-only pages do not.
type Page interface {
	RouteName() string
}

// Loader is implemented by pages that fetch data on mount.
type Loader interface {
	Load(ctx context.Context)
}

// Router resolves paths through the route table, applies the guard, and
// mounts the page for the winning route. It is the module's
// session.Navigator: forced logouts land here like any other navigation.
type Router struct {
	mu      sync.Mutex
	table   *guard.Table
	app     *App
	logger  zerolog.Logger
	current Page
	path    string
	pending string
}

func newRouter(table *guard.Table, logger zerolog.Logger) *Router {
	return &Router{table: table, logger: logger}
}

// NavigateTo implements session.Navigator.
func (r *Router) NavigateTo(path string) {
	r.Navigate(context.Background(), path)
}

// Navigate resolves path, gates it, and mounts the resulting page. Denied
// navigations mount the redirect target instead; the denied view's content
// is never mounted, not even transiently. While the session is still
// loading, the navigation is parked and replayed by Resume.
func (r *Router) Navigate(ctx context.Context, path string) {
	route, params := r.table.Resolve(path)
	if route.Redirect != "" {
		r.Navigate(ctx, route.Redirect)
		return
	}

	decision := guard.Evaluate(route, r.app.Session)
	switch decision.State {
	case guard.StatePending:
		r.mu.Lock()
		r.pending = path
		r.current = nil
		r.path = path
		r.mu.Unlock()
		return
	case guard.StateDenied:
		r.logger.Debug().Str("path", path).Str("redirect", decision.RedirectTo).Msg("navigation denied")
		r.Navigate(ctx, decision.RedirectTo)
		return
	}

	page := r.app.buildPage(route, params)

	r.mu.Lock()
	r.current = page
	r.path = path
	r.pending = ""
	r.mu.Unlock()

	if loader, ok := page.(Loader); ok {
		loader.Load(ctx)
	}
}

// Resume replays a navigation parked while the session was loading.
func (r *Router) Resume(ctx context.Context) {
	r.mu.Lock()
	path := r.pending
	r.pending = ""
	r.mu.Unlock()
	if path != "" {
		r.Navigate(ctx, path)
	}
}

// Current returns the mounted page and its path. The page is nil while a
// navigation is parked behind session loading.
func (r *Router) Current() (Page, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.path
}

// ownerLookup returns the signed-in account once its profile has resolved,
// for the entity-level ownership checks pages apply after their own data
// loads.
type ownerLookup func() *studio.User

var _ session.Navigator = (*Router)(nil)
