package app

import (
	"context"
	"fmt"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/view"
)

// AddAchievementPage records an achievement on a portfolio the signed-in
// student owns.
type AddAchievementPage struct {
	app         *App
	portfolioID int64

	Parent *view.Resource[*studio.Portfolio]
	Form   *view.Form
}

func newAddAchievementPage(a *App, portfolioID int64) *AddAchievementPage {
	return &AddAchievementPage{
		app:         a,
		portfolioID: portfolioID,
		Parent:      view.NewResource[*studio.Portfolio](),
		Form:        view.NewForm(),
	}
}

func (p *AddAchievementPage) RouteName() string { return guard.RouteAchievementNew }

func (p *AddAchievementPage) Load(ctx context.Context) {
	loadID := p.Parent.Begin()
	portfolio, err := p.app.Client.GetPortfolio(ctx, p.portfolioID)
	if err != nil {
		p.Parent.Fail(loadID, err)
		return
	}
	p.Parent.Resolve(loadID, portfolio)
}

func (p *AddAchievementPage) CanEdit() bool {
	portfolio, ok := p.Parent.Value()
	if !ok {
		return false
	}
	return guard.OwnsPortfolio(p.app.account(), portfolio)
}

// Submit records the achievement and returns to the portfolio's detail view.
func (p *AddAchievementPage) Submit(ctx context.Context, in studio.AchievementInput) {
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

	if _, err := p.app.Client.CreateAchievement(ctx, p.portfolioID, in); err != nil {
		p.Form.Fail(submitMessage(err, msgSubmitFailed))
		return
	}
	p.Form.Succeed()
	p.app.Router.Navigate(ctx, fmt.Sprintf("/portfolios/%d", p.portfolioID))
}

// EditAchievementPage edits an achievement, ownership resolving through
// its parent portfolio.
type EditAchievementPage struct {
	app *App
	id  int64

	Achievement *view.Resource[*studio.Achievement]
	Parent      *view.Resource[*studio.Portfolio]
	Form        *view.Form
}

func newEditAchievementPage(a *App, id int64) *EditAchievementPage {
	return &EditAchievementPage{
		app:         a,
		id:          id,
		Achievement: view.NewResource[*studio.Achievement](),
		Parent:      view.NewResource[*studio.Portfolio](),
		Form:        view.NewForm(),
	}
}

func (p *EditAchievementPage) RouteName() string { return guard.RouteAchievementEdit }

func (p *EditAchievementPage) Load(ctx context.Context) {
	loadID := p.Achievement.Begin()
	achievement, err := p.app.Client.GetAchievement(ctx, p.id)
	if err != nil {
		p.Achievement.Fail(loadID, err)
		return
	}
	if !p.Achievement.Resolve(loadID, achievement) {
		return
	}

	parentID := p.Parent.Begin()
	portfolio, err := p.app.Client.GetPortfolio(ctx, achievement.PortfolioID)
	if err != nil {
		p.Parent.Fail(parentID, err)
		return
	}
	p.Parent.Resolve(parentID, portfolio)
}

func (p *EditAchievementPage) CanEdit() bool {
	portfolio, ok := p.Parent.Value()
	if !ok {
		return false
	}
	return guard.OwnsPortfolio(p.app.account(), portfolio)
}

func (p *EditAchievementPage) PermissionDenied() bool {
	portfolio, ok := p.Parent.Value()
	if !ok {
		return false
	}
	return !guard.OwnsPortfolio(p.app.account(), portfolio)
}

// Submit saves the edit and returns to the portfolio's detail view.
func (p *EditAchievementPage) Submit(ctx context.Context, in studio.AchievementInput) {
	if !p.Form.Begin() {
		return
	}
	if !p.CanEdit() {
		p.Form.Fail("You do not have permission to edit this achievement")
		return
	}
	if err := p.app.validate.Struct(in); err != nil {
		p.Form.Fail(msgRequiredFields)
		return
	}

	achievement, _ := p.Achievement.Value()
	if _, err := p.app.Client.UpdateAchievement(ctx, p.id, in); err != nil {
		p.Form.Fail(submitMessage(err, msgSubmitFailed))
		return
	}
	p.Form.Succeed()
	p.app.Router.Navigate(ctx, fmt.Sprintf("/portfolios/%d", achievement.PortfolioID))
}
