package app

import (
	"context"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/view"
)

// RegisterPage creates an account. The chosen role is immutable once
// registered.
type RegisterPage struct {
	app  *App
	Form *view.Form
}

func newRegisterPage(a *App) *RegisterPage {
	return &RegisterPage{app: a, Form: view.NewForm()}
}

func (p *RegisterPage) RouteName() string { return guard.RouteRegister }

// Submit registers the account and establishes its first session.
func (p *RegisterPage) Submit(ctx context.Context, reg studio.Registration) {
	if !p.Form.Begin() {
		return
	}
	if err := p.app.validate.Struct(reg); err != nil {
		p.Form.Fail(msgRequiredFields)
		return
	}

	resp, err := p.app.Client.Register(ctx, reg)
	if err != nil {
		p.Form.Fail(submitMessage(err, msgSubmitFailed))
		return
	}

	if err := p.app.establishSession(ctx, resp.Token); err != nil {
		p.Form.Fail(msgSubmitFailed)
		return
	}
	p.Form.Succeed()
	p.app.Router.Navigate(ctx, "/dashboard")
}
