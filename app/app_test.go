package app_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/app"
	"github.com/portfoliostudio/studio.go/internal/fakeapi"
	"github.com/portfoliostudio/studio.go/session"
	"github.com/portfoliostudio/studio.go/view"
)

// newTestApp starts an App against a fake backend, optionally with a
// persisted session token.
func newTestApp(t *testing.T, backend *fakeapi.Server, token string) *app.App {
	t.Helper()
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)

	a, err := app.New(app.Config{
		BaseURL: ts.URL,
		Storage: session.NewMemoryStorage(token),
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	a.Start(context.Background())
	return a
}

func TestLoginWrongPasswordShowsMessage(t *testing.T) {
	backend := fakeapi.New()
	backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	a := newTestApp(t, backend, "")
	ctx := context.Background()

	a.Router.Navigate(ctx, "/login")
	login, ok := currentAs[*app.LoginPage](a)
	require.True(t, ok)

	login.Submit(ctx, studio.Credentials{Username: "alice", Password: "wrong"})

	assert.Equal(t, "Invalid credentials", login.Form.Error())
	_, authed := a.Session.Identity()
	assert.False(t, authed)
	assert.Empty(t, a.Session.Token())

	// Still on the login view; no navigation happened.
	_, path := a.Router.Current()
	assert.Equal(t, "/login", path)
}

func TestLoginNavigatesToDashboard(t *testing.T) {
	backend := fakeapi.New()
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	backend.AddPortfolio(alice, "Robotics", "")
	a := newTestApp(t, backend, "")
	ctx := context.Background()

	a.Router.Navigate(ctx, "/login")
	login, _ := currentAs[*app.LoginPage](a)
	login.Submit(ctx, studio.Credentials{Username: "alice", Password: "secret"})

	dashboard, ok := currentAs[*app.DashboardPage](a)
	require.True(t, ok, "login should land on the dashboard")
	require.Equal(t, view.PhaseReady, dashboard.Portfolios.Phase())
	require.Len(t, dashboard.Portfolios.Items(), 1)

	assert.True(t, a.Session.IsRole(studio.RoleStudent))
	account, ok := a.Account.Value()
	require.True(t, ok)
	assert.Equal(t, alice.ID, account.ID)
}

func TestRegisterEstablishesSession(t *testing.T) {
	backend := fakeapi.New()
	a := newTestApp(t, backend, "")
	ctx := context.Background()

	a.Router.Navigate(ctx, "/register")
	register, ok := currentAs[*app.RegisterPage](a)
	require.True(t, ok)

	register.Submit(ctx, studio.Registration{
		Username: "bruno",
		Password: "secret",
		Email:    "bruno@example.edu",
		Role:     studio.RoleStudent,
	})

	_, ok = currentAs[*app.DashboardPage](a)
	assert.True(t, ok)
	assert.True(t, a.Session.IsRole(studio.RoleStudent))
}

func TestAnonymousNavigationRedirectsToLogin(t *testing.T) {
	a := newTestApp(t, fakeapi.New(), "")
	ctx := context.Background()

	a.Router.Navigate(ctx, "/dashboard")

	_, ok := currentAs[*app.LoginPage](a)
	assert.True(t, ok, "protected content must never mount for an anonymous session")
	_, path := a.Router.Current()
	assert.Equal(t, "/login", path)
}

func TestNavigationParkedUntilSessionSettles(t *testing.T) {
	backend := fakeapi.New()
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	backend.AddPortfolio(alice, "Robotics", "")

	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)
	a, err := app.New(app.Config{
		BaseURL: ts.URL,
		Storage: session.NewMemoryStorage(backend.TokenFor(alice)),
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	ctx := context.Background()

	// Before Start the session is still loading: the navigation parks and
	// nothing mounts.
	a.Router.Navigate(ctx, "/dashboard")
	page, _ := a.Router.Current()
	require.Nil(t, page)

	a.Start(ctx)

	dashboard, ok := currentAs[*app.DashboardPage](a)
	require.True(t, ok, "parked navigation should replay once the session settles")
	assert.Len(t, dashboard.Portfolios.Items(), 1)
}

func TestHomeRedirectsToDashboard(t *testing.T) {
	backend := fakeapi.New()
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	a := newTestApp(t, backend, backend.TokenFor(alice))

	a.Router.Navigate(context.Background(), "/")

	_, ok := currentAs[*app.DashboardPage](a)
	assert.True(t, ok)
	_, path := a.Router.Current()
	assert.Equal(t, "/dashboard", path)
}

func TestRoleMismatchRedirectsToDashboard(t *testing.T) {
	backend := fakeapi.New()
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	portfolio := backend.AddPortfolio(alice, "Robotics", "")
	a := newTestApp(t, backend, backend.TokenFor(alice))

	a.Router.Navigate(context.Background(), fmt.Sprintf("/teacher/portfolios/%d", portfolio.ID))

	_, ok := currentAs[*app.DashboardPage](a)
	assert.True(t, ok, "a student must not mount the teacher view")
}

func TestStudentCreatesPortfolio(t *testing.T) {
	backend := fakeapi.New()
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	a := newTestApp(t, backend, backend.TokenFor(alice))
	ctx := context.Background()

	a.Router.Navigate(ctx, "/portfolios/create")
	create, ok := currentAs[*app.CreatePortfolioPage](a)
	require.True(t, ok)

	create.Submit(ctx, studio.PortfolioInput{Title: "Robotics", Description: "Year one"})

	detail, ok := currentAs[*app.PortfolioDetailPage](a)
	require.True(t, ok, "creation should land on the new portfolio")
	_, path := a.Router.Current()
	assert.Equal(t, fmt.Sprintf("/portfolios/%d", detail.ID()), path)

	portfolio, ok := detail.Portfolio.Value()
	require.True(t, ok)
	assert.Equal(t, "Robotics", portfolio.Title)
	assert.True(t, detail.IsOwner())
}

func TestTeacherSearchFiltersWithoutFetching(t *testing.T) {
	backend := fakeapi.New()
	mercer := backend.AddUser("mercer", "secret", studio.RoleTeacher, "Dana Mercer")
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	anand := backend.AddUser("anand", "secret", studio.RoleStudent, "Anand Rao")
	backend.AddPortfolio(alice, "Watercolors", "")
	backend.AddPortfolio(anand, "Robotics", "")

	a := newTestApp(t, backend, backend.TokenFor(mercer))
	a.Router.Navigate(context.Background(), "/dashboard")

	dashboard, ok := currentAs[*app.DashboardPage](a)
	require.True(t, ok)
	require.Len(t, dashboard.Portfolios.Items(), 2)
	require.Equal(t, view.PhaseReady, dashboard.Students.Phase())

	before := backend.Requests()
	dashboard.SetSearch("ana")
	visible := dashboard.VisiblePortfolios()

	require.Len(t, visible, 1)
	assert.Equal(t, "anand", visible[0].StudentUsername)
	assert.Equal(t, before, backend.Requests(), "search must not touch the network")

	dashboard.SetSearch("")
	assert.Len(t, dashboard.VisiblePortfolios(), 2)
}

func TestEditOfForeignPortfolioIsPermissionDenied(t *testing.T) {
	backend := fakeapi.New()
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	bruno := backend.AddUser("bruno", "secret", studio.RoleStudent, "Bruno Vega")
	portfolio := backend.AddPortfolio(alice, "Robotics", "")

	a := newTestApp(t, backend, backend.TokenFor(bruno))
	a.Router.Navigate(context.Background(), fmt.Sprintf("/portfolios/edit/%d", portfolio.ID))

	edit, ok := currentAs[*app.EditPortfolioPage](a)
	require.True(t, ok, "route gating passes; ownership is decided after the fetch")
	require.Equal(t, view.PhaseReady, edit.Portfolio.Phase())
	assert.False(t, edit.CanEdit())
	assert.True(t, edit.PermissionDenied())
}

func TestServerRejectedTokenForcesLogout(t *testing.T) {
	// A token that decodes client-side but belongs to no account on this
	// backend: the profile load 401s and the session is torn down.
	other := fakeapi.New()
	ghost := other.AddUser("ghost", "secret", studio.RoleStudent, "Ghost")
	token := other.TokenFor(ghost)

	a := newTestApp(t, fakeapi.New(), token)

	_, authed := a.Session.Identity()
	assert.False(t, authed)
	assert.Empty(t, a.Session.Token())
	_, ok := currentAs[*app.LoginPage](a)
	assert.True(t, ok, "forced logout lands on the login view")
}

func TestFeedbackSubmissionRefreshesList(t *testing.T) {
	backend := fakeapi.New()
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	mercer := backend.AddUser("mercer", "secret", studio.RoleTeacher, "Dana Mercer")
	portfolio := backend.AddPortfolio(alice, "Robotics", "")

	a := newTestApp(t, backend, backend.TokenFor(mercer))
	ctx := context.Background()
	a.Router.Navigate(ctx, fmt.Sprintf("/portfolios/%d", portfolio.ID))

	detail, ok := currentAs[*app.PortfolioDetailPage](a)
	require.True(t, ok)
	require.Equal(t, view.PhaseEmpty, detail.Feedbacks.Phase())

	detail.SubmitFeedback(ctx, "Strong work this term")

	require.Equal(t, view.FormIdle, detail.FeedbackForm.State())
	feedbacks := detail.Feedbacks.Items()
	require.Len(t, feedbacks, 1)
	assert.Equal(t, "Strong work this term", feedbacks[0].Comment)
	assert.Equal(t, mercer.ID, feedbacks[0].TeacherID)
}

func TestTeacherViewFeedbackRoundTrip(t *testing.T) {
	backend := fakeapi.New()
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	mercer := backend.AddUser("mercer", "secret", studio.RoleTeacher, "Dana Mercer")
	portfolio := backend.AddPortfolio(alice, "Robotics", "")

	a := newTestApp(t, backend, backend.TokenFor(mercer))
	ctx := context.Background()
	a.Router.Navigate(ctx, fmt.Sprintf("/teacher/portfolios/%d", portfolio.ID))

	page, ok := currentAs[*app.TeacherPortfolioPage](a)
	require.True(t, ok)

	page.SubmitFeedback(ctx, "Solid progress")
	loaded, ok := page.Portfolio.Value()
	require.True(t, ok)
	require.Len(t, loaded.Feedbacks, 1)
	require.True(t, page.CanDelete(&loaded.Feedbacks[0]))

	page.DeleteFeedback(ctx, &loaded.Feedbacks[0])
	loaded, ok = page.Portfolio.Value()
	require.True(t, ok)
	assert.Empty(t, loaded.Feedbacks)
}

func TestRapidNavigationShowsLatestEntity(t *testing.T) {
	backend := fakeapi.New()
	alice := backend.AddUser("alice", "secret", studio.RoleStudent, "Alice River")
	first := backend.AddPortfolio(alice, "First", "")
	second := backend.AddPortfolio(alice, "Second", "")

	a := newTestApp(t, backend, backend.TokenFor(alice))
	ctx := context.Background()

	release := backend.Hold(fmt.Sprintf("/portfolios/%d", first.ID))
	seen := backend.Requests()

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Router.Navigate(ctx, fmt.Sprintf("/portfolios/%d", first.ID))
	}()

	// Wait until the first portfolio fetch is in flight behind the gate.
	require.Eventually(t, func() bool {
		return backend.Requests() > seen
	}, 2*time.Second, 5*time.Millisecond)

	a.Router.Navigate(ctx, fmt.Sprintf("/portfolios/%d", second.ID))
	release()
	<-done

	detail, ok := currentAs[*app.PortfolioDetailPage](a)
	require.True(t, ok)
	assert.Equal(t, second.ID, detail.ID())
	portfolio, ok := detail.Portfolio.Value()
	require.True(t, ok)
	assert.Equal(t, "Second", portfolio.Title)
	_, path := a.Router.Current()
	assert.Equal(t, fmt.Sprintf("/portfolios/%d", second.ID), path)
}

func TestUnknownPathMountsNotFound(t *testing.T) {
	a := newTestApp(t, fakeapi.New(), "")
	a.Router.Navigate(context.Background(), "/no/such/view")

	_, ok := currentAs[*app.NotFoundPage](a)
	assert.True(t, ok)
}

func currentAs[P app.Page](a *app.App) (P, bool) {
	page, _ := a.Router.Current()
	p, ok := page.(P)
	return p, ok
}
