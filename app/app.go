package app

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/session"
	"github.com/portfoliostudio/studio.go/view"
)

// Config configures an App.
type Config struct {
	// BaseURL of the backend; defaults to studio.BaseURLFromEnv().
	BaseURL string
	// Storage for the persisted session token; defaults to the
	// conventional token file.
	Storage session.TokenStorage
	Logger  zerolog.Logger
}

// App owns the process-wide wiring: one session store, one gateway client,
// one router, and the signed-in account's profile.
type App struct {
	Client  *studio.Client
	Session *session.Store
	Router  *Router

	// Account is the signed-in user's profile, loaded after the session is
	// established. Ownership checks compare against its resolved value.
	Account *view.Resource[*studio.User]

	logger   zerolog.Logger
	validate *validator.Validate
}

// New wires an App. Call Start before navigating.
func New(cfg Config) (*App, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = studio.BaseURLFromEnv()
	}
	if cfg.Storage == nil {
		path, err := session.DefaultTokenPath()
		if err != nil {
			return nil, err
		}
		cfg.Storage = session.NewFileStorage(path)
	}

	router := newRouter(guard.NewTable(), cfg.Logger)
	store := session.NewStore(cfg.Storage, router, cfg.Logger)
	client := studio.NewClient(cfg.BaseURL,
		studio.WithTokenSource(store),
		studio.WithUnauthorizedHandler(store.HandleUnauthorized),
		studio.WithLogger(cfg.Logger),
	)

	a := &App{
		Client:   client,
		Session:  store,
		Router:   router,
		Account:  view.NewResource[*studio.User](),
		logger:   cfg.Logger,
		validate: validator.New(),
	}
	router.app = a
	return a, nil
}

// Start terminates the session's initial loading state, loads the profile
// when a persisted session survived, and replays any navigation parked
// behind the load.
func (a *App) Start(ctx context.Context) {
	a.Session.Initialize()
	if _, ok := a.Session.Identity(); ok {
		a.loadAccount(ctx)
	}
	a.Router.Resume(ctx)
}

// loadAccount fetches the signed-in profile. A 401 here escalates through
// the gateway like any other call; other failures keep the decoded
// identity usable and only leave the profile unresolved.
func (a *App) loadAccount(ctx context.Context) {
	loadID := a.Account.Begin()
	user, err := a.Client.Profile(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("profile load failed")
		a.Account.Fail(loadID, err)
		return
	}
	a.Account.Resolve(loadID, user)
}

// account is the ownerLookup shared by pages.
func (a *App) account() *studio.User {
	user, ok := a.Account.Value()
	if !ok {
		return nil
	}
	return user
}

// establishSession installs a freshly issued token and loads its profile.
// Used by the login and register pages.
func (a *App) establishSession(ctx context.Context, token string) error {
	if err := a.Session.Login(token); err != nil {
		return err
	}
	a.loadAccount(ctx)
	return nil
}

func (a *App) buildPage(route guard.Route, params map[string]string) Page {
	id := func() int64 {
		n, _ := strconv.ParseInt(params["id"], 10, 64)
		return n
	}

	switch route.Name {
	case guard.RouteLogin:
		return newLoginPage(a)
	case guard.RouteRegister:
		return newRegisterPage(a)
	case guard.RouteDashboard:
		return newDashboardPage(a)
	case guard.RoutePortfolioDetail:
		return newPortfolioDetailPage(a, id())
	case guard.RoutePortfolioCreate:
		return newCreatePortfolioPage(a)
	case guard.RoutePortfolioEdit:
		return newEditPortfolioPage(a, id())
	case guard.RouteProjectNew:
		return newAddProjectPage(a, id())
	case guard.RouteAchievementNew:
		return newAddAchievementPage(a, id())
	case guard.RouteTeacherView:
		return newTeacherPortfolioPage(a, id())
	case guard.RouteProjectDetail:
		return newProjectDetailPage(a, id())
	case guard.RouteProjectEdit:
		return newEditProjectPage(a, id())
	case guard.RouteAchievementEdit:
		return newEditAchievementPage(a, id())
	default:
		return &NotFoundPage{}
	}
}

// NotFoundPage renders for unmatched paths.
type NotFoundPage struct{}

func (p *NotFoundPage) RouteName() string { return guard.RouteNotFound }
