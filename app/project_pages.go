package app

import (
	"context"
	"fmt"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/view"
)

// ProjectDetailPage shows one project. Owner-only affordances (edit,
// delete) require the parent portfolio's owner to match the signed-in
// account.
type ProjectDetailPage struct {
	app *App
	id  int64

	Project *view.Resource[*studio.Project]
	// Parent is the owning portfolio, fetched for the ownership check.
	Parent     *view.Resource[*studio.Portfolio]
	DeleteForm *view.Form
}

func newProjectDetailPage(a *App, id int64) *ProjectDetailPage {
	return &ProjectDetailPage{
		app:        a,
		id:         id,
		Project:    view.NewResource[*studio.Project](),
		Parent:     view.NewResource[*studio.Portfolio](),
		DeleteForm: view.NewForm(),
	}
}

func (p *ProjectDetailPage) RouteName() string { return guard.RouteProjectDetail }

func (p *ProjectDetailPage) Load(ctx context.Context) {
	loadID := p.Project.Begin()
	project, err := p.app.Client.GetProject(ctx, p.id)
	if err != nil {
		p.Project.Fail(loadID, err)
		return
	}
	if !p.Project.Resolve(loadID, project) {
		return
	}

	parentID := p.Parent.Begin()
	portfolio, err := p.app.Client.GetPortfolio(ctx, project.PortfolioID)
	if err != nil {
		p.Parent.Fail(parentID, err)
		return
	}
	p.Parent.Resolve(parentID, portfolio)
}

// IsOwner reports whether the signed-in account owns the parent portfolio.
func (p *ProjectDetailPage) IsOwner() bool {
	portfolio, ok := p.Parent.Value()
	if !ok {
		return false
	}
	return guard.OwnsPortfolio(p.app.account(), portfolio)
}

// Delete removes the project and returns to its portfolio.
func (p *ProjectDetailPage) Delete(ctx context.Context) {
	if !p.DeleteForm.Begin() {
		return
	}
	project, ok := p.Project.Value()
	if !ok || !p.IsOwner() {
		p.DeleteForm.Fail("You do not have permission to delete this project")
		return
	}
	if err := p.app.Client.DeleteProject(ctx, p.id); err != nil {
		p.DeleteForm.Fail(submitMessage(err, msgSubmitFailed))
		return
	}
	p.DeleteForm.Succeed()
	p.app.Router.Navigate(ctx, fmt.Sprintf("/portfolios/%d", project.PortfolioID))
}

// EditProjectPage edits a project. Ownership resolves through the parent
// portfolio; the form stays hidden until that comparison settles.
type EditProjectPage struct {
	app *App
	id  int64

	Project *view.Resource[*studio.Project]
	Parent  *view.Resource[*studio.Portfolio]
	Form    *view.Form
}

func newEditProjectPage(a *App, id int64) *EditProjectPage {
	return &EditProjectPage{
		app:     a,
		id:      id,
		Project: view.NewResource[*studio.Project](),
		Parent:  view.NewResource[*studio.Portfolio](),
		Form:    view.NewForm(),
	}
}

func (p *EditProjectPage) RouteName() string { return guard.RouteProjectEdit }

func (p *EditProjectPage) Load(ctx context.Context) {
	loadID := p.Project.Begin()
	project, err := p.app.Client.GetProject(ctx, p.id)
	if err != nil {
		p.Project.Fail(loadID, err)
		return
	}
	if !p.Project.Resolve(loadID, project) {
		return
	}

	parentID := p.Parent.Begin()
	portfolio, err := p.app.Client.GetPortfolio(ctx, project.PortfolioID)
	if err != nil {
		p.Parent.Fail(parentID, err)
		return
	}
	p.Parent.Resolve(parentID, portfolio)
}

func (p *EditProjectPage) CanEdit() bool {
	portfolio, ok := p.Parent.Value()
	if !ok {
		return false
	}
	return guard.OwnsPortfolio(p.app.account(), portfolio)
}

func (p *EditProjectPage) PermissionDenied() bool {
	portfolio, ok := p.Parent.Value()
	if !ok {
		return false
	}
	return !guard.OwnsPortfolio(p.app.account(), portfolio)
}

// Submit saves the edit and returns to the project's detail view.
func (p *EditProjectPage) Submit(ctx context.Context, in studio.ProjectInput) {
	if !p.Form.Begin() {
		return
	}
	if !p.CanEdit() {
		p.Form.Fail("You do not have permission to edit this project")
		return
	}
	if err := p.app.validate.Struct(in); err != nil {
		p.Form.Fail(msgRequiredFields)
		return
	}

	if _, err := p.app.Client.UpdateProject(ctx, p.id, in); err != nil {
		p.Form.Fail(submitMessage(err, msgSubmitFailed))
		return
	}
	p.Form.Succeed()
	p.app.Router.Navigate(ctx, fmt.Sprintf("/projects/%d", p.id))
}

// AddProjectPage adds a project to a portfolio the signed-in student owns.
type AddProjectPage struct {
	app         *App
	portfolioID int64

	// Parent is fetched so a non-owner sees permission denied instead of a
	// form whose submission is doomed.
	Parent *view.Resource[*studio.Portfolio]
	Form   *view.Form
}

func newAddProjectPage(a *App, portfolioID int64) *AddProjectPage {
	return &AddProjectPage{
		app:         a,
		portfolioID: portfolioID,
		Parent:      view.NewResource[*studio.Portfolio](),
		Form:        view.NewForm(),
	}
}

func (p *AddProjectPage) RouteName() string { return guard.RouteProjectNew }

func (p *AddProjectPage) Load(ctx context.Context) {
	loadID := p.Parent.Begin()
	portfolio, err := p.app.Client.GetPortfolio(ctx, p.portfolioID)
	if err != nil {
		p.Parent.Fail(loadID, err)
		return
	}
	p.Parent.Resolve(loadID, portfolio)
}

func (p *AddProjectPage) CanEdit() bool {
	portfolio, ok := p.Parent.Value()
	if !ok {
		return false
	}
	return guard.OwnsPortfolio(p.app.account(), portfolio)
}

// Submit creates the project and returns to the portfolio's detail view.
func (p *AddProjectPage) Submit(ctx context.Context, in studio.ProjectInput) {
	if !p.Form.Begin() {
		return
	}
	if !p.CanEdit() {
		p.Form.Fail("You do not have permission to modify this portfolio")
		return
	}
	if err := p.app.validate.Struct(in); err != nil {
		p.Form.Fail(msgRequiredFields)
		return
	}

	if _, err := p.app.Client.CreateProject(ctx, p.portfolioID, in); err != nil {
		p.Form.Fail(submitMessage(err, msgSubmitFailed))
		return
	}
	p.Form.Succeed()
	p.app.Router.Navigate(ctx, fmt.Sprintf("/portfolios/%d", p.portfolioID))
}
