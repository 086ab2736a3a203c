package app

import (
	"context"
	"fmt"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/view"
)

// CreatePortfolioPage creates a portfolio for the signed-in student.
type CreatePortfolioPage struct {
	app  *App
	Form *view.Form
}

func newCreatePortfolioPage(a *App) *CreatePortfolioPage {
	return &CreatePortfolioPage{app: a, Form: view.NewForm()}
}

func (p *CreatePortfolioPage) RouteName() string { return guard.RoutePortfolioCreate }

// Submit creates the portfolio and navigates to its detail view.
func (p *CreatePortfolioPage) Submit(ctx context.Context, in studio.PortfolioInput) {
	if !p.Form.Begin() {
		return
	}
	if err := p.app.validate.Struct(in); err != nil {
		p.Form.Fail(msgRequiredFields)
		return
	}

	created, err := p.app.Client.CreatePortfolio(ctx, in)
	if err != nil {
		p.Form.Fail(submitMessage(err, msgSubmitFailed))
		return
	}
	p.Form.Succeed()
	p.app.Router.Navigate(ctx, fmt.Sprintf("/portfolios/%d", created.ID))
}

// EditPortfolioPage edits a portfolio. The route guard admits any student;
// whether this student owns this portfolio is only knowable after the fetch
// resolves, so the editable form stays hidden until ownership is confirmed
// and a non-owner gets a permission-denied panel, not a redirect.
type EditPortfolioPage struct {
	app *App
	id  int64

	Portfolio *view.Resource[*studio.Portfolio]
	Form      *view.Form
}

func newEditPortfolioPage(a *App, id int64) *EditPortfolioPage {
	return &EditPortfolioPage{
		app:       a,
		id:        id,
		Portfolio: view.NewResource[*studio.Portfolio](),
		Form:      view.NewForm(),
	}
}

func (p *EditPortfolioPage) RouteName() string { return guard.RoutePortfolioEdit }

func (p *EditPortfolioPage) Load(ctx context.Context) {
	loadID := p.Portfolio.Begin()
	portfolio, err := p.app.Client.GetPortfolio(ctx, p.id)
	if err != nil {
		p.Portfolio.Fail(loadID, err)
		return
	}
	p.Portfolio.Resolve(loadID, portfolio)
}

// CanEdit reports whether the editable form may render: the portfolio has
// resolved and the signed-in account owns it.
func (p *EditPortfolioPage) CanEdit() bool {
	portfolio, ok := p.Portfolio.Value()
	if !ok {
		return false
	}
	return guard.OwnsPortfolio(p.app.account(), portfolio)
}

// PermissionDenied reports whether the fetch resolved to a portfolio this
// account does not own.
func (p *EditPortfolioPage) PermissionDenied() bool {
	portfolio, ok := p.Portfolio.Value()
	if !ok {
		return false
	}
	return !guard.OwnsPortfolio(p.app.account(), portfolio)
}

// Submit saves the edit and returns to the portfolio's detail view.
func (p *EditPortfolioPage) Submit(ctx context.Context, in studio.PortfolioInput) {
	if !p.Form.Begin() {
		return
	}
	if !p.CanEdit() {
		p.Form.Fail("You do not have permission to edit this portfolio")
		return
	}
	if err := p.app.validate.Struct(in); err != nil {
		p.Form.Fail(msgRequiredFields)
		return
	}

	if _, err := p.app.Client.UpdatePortfolio(ctx, p.id, in); err != nil {
		p.Form.Fail(submitMessage(err, msgSubmitFailed))
		return
	}
	p.Form.Succeed()
	p.app.Router.Navigate(ctx, fmt.Sprintf("/portfolios/%d", p.id))
}
