package app

import (
	"context"
	"errors"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/view"
)

// LoginPage is the unauthenticated entry point.
type LoginPage struct {
	app  *App
	Form *view.Form
}

func newLoginPage(a *App) *LoginPage {
	return &LoginPage{app: a, Form: view.NewForm()}
}

func (p *LoginPage) RouteName() string { return guard.RouteLogin }

// Submit exchanges credentials for a session and navigates to the
// dashboard. Re-triggering while a submission is in flight is a no-op.
func (p *LoginPage) Submit(ctx context.Context, creds studio.Credentials) {
	if !p.Form.Begin() {
		return
	}
	if err := p.app.validate.Struct(creds); err != nil {
		p.Form.Fail(msgRequiredFields)
		return
	}

	resp, err := p.app.Client.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, studio.ErrUnauthorized) || errors.Is(err, studio.ErrValidation) {
			p.Form.Fail(msgInvalidCredentials)
		} else {
			p.Form.Fail(submitMessage(err, msgSubmitFailed))
		}
		return
	}

	if err := p.app.establishSession(ctx, resp.Token); err != nil {
		p.Form.Fail(msgSubmitFailed)
		return
	}
	p.Form.Succeed()
	p.app.Router.Navigate(ctx, "/dashboard")
}
