// The [studio] package implements a Go client for the Portfolio Studio
// platform, a digital portfolio service where students publish portfolios of
// projects and achievements and teachers browse them and leave feedback.
//
// # Gateway
//
// [Client] is the single HTTP dispatch point for the whole module. Every
// entity operation funnels through one interception stage that attaches the
// current bearer token, tags the request for log correlation, normalizes
// failures into [*APIError], and escalates authorization failures (HTTP 401)
// to the configured unauthorized handler. Callers never handle 401
// themselves; that escalation is global and intentional.
//
// # Sessions and access control
//
// The [github.com/portfoliostudio/studio.go/session] package owns the
// persisted token and the identity decoded from it, and the
// [github.com/portfoliostudio/studio.go/guard] package decides, per
// navigation, whether that identity may render a given view.
//
// # Pages
//
// The [github.com/portfoliostudio/studio.go/app] package wires fetchers,
// session, and guard into page controllers that all follow one shared
// loading/ready/error lifecycle, built on
// [github.com/portfoliostudio/studio.go/view].
package studio
