package app

import (
	"context"
	"fmt"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/view"
)

// PortfolioDetailPage shows one portfolio with its projects, achievements,
// and feedback. Any authenticated identity may view it; mutating
// affordances are gated by ownership, matching the platform's broad
// student-to-student viewing model.
type PortfolioDetailPage struct {
	app *App
	id  int64

	Portfolio    *view.Resource[*studio.Portfolio]
	Projects     *view.List[studio.Project]
	Achievements *view.List[studio.Achievement]
	Feedbacks    *view.List[studio.Feedback]

	// FeedbackForm serializes teacher feedback submissions on this view.
	FeedbackForm *view.Form
	DeleteForm   *view.Form
}

func newPortfolioDetailPage(a *App, id int64) *PortfolioDetailPage {
	return &PortfolioDetailPage{
		app:          a,
		id:           id,
		Portfolio:    view.NewResource[*studio.Portfolio](),
		Projects:     view.NewList[studio.Project](),
		Achievements: view.NewList[studio.Achievement](),
		Feedbacks:    view.NewList[studio.Feedback](),
		FeedbackForm: view.NewForm(),
		DeleteForm:   view.NewForm(),
	}
}

func (p *PortfolioDetailPage) RouteName() string { return guard.RoutePortfolioDetail }

// ID returns the portfolio id this view instance was mounted for.
func (p *PortfolioDetailPage) ID() int64 { return p.id }

// Load fetches the portfolio and its child collections.
func (p *PortfolioDetailPage) Load(ctx context.Context) {
	loadID := p.Portfolio.Begin()
	portfolio, err := p.app.Client.GetPortfolio(ctx, p.id)
	if err != nil {
		p.Portfolio.Fail(loadID, err)
		return
	}
	if !p.Portfolio.Resolve(loadID, portfolio) {
		// Superseded by a later navigation; the child fetches below would
		// belong to the wrong view instance.
		return
	}

	projectsID := p.Projects.Begin()
	if projects, err := p.app.Client.ListProjectsByPortfolio(ctx, p.id); err != nil {
		p.Projects.Fail(projectsID, err)
	} else {
		p.Projects.Resolve(projectsID, projects)
	}

	achievementsID := p.Achievements.Begin()
	if achievements, err := p.app.Client.ListAchievementsByPortfolio(ctx, p.id); err != nil {
		p.Achievements.Fail(achievementsID, err)
	} else {
		p.Achievements.Resolve(achievementsID, achievements)
	}

	feedbackID := p.Feedbacks.Begin()
	if feedbacks, err := p.app.Client.ListFeedbackByPortfolio(ctx, p.id); err != nil {
		p.Feedbacks.Fail(feedbackID, err)
	} else {
		p.Feedbacks.Resolve(feedbackID, feedbacks)
	}
}

// IsOwner reports whether the signed-in account owns this portfolio. False
// until both the portfolio and the profile have resolved, so owner-only
// affordances never flash for non-owners.
func (p *PortfolioDetailPage) IsOwner() bool {
	portfolio, ok := p.Portfolio.Value()
	if !ok {
		return false
	}
	return guard.OwnsPortfolio(p.app.account(), portfolio)
}

// SubmitFeedback leaves a teacher comment and refreshes the feedback list.
func (p *PortfolioDetailPage) SubmitFeedback(ctx context.Context, comment string) {
	if !p.FeedbackForm.Begin() {
		return
	}
	in := studio.FeedbackInput{Comment: comment}
	if err := p.app.validate.Struct(in); err != nil {
		p.FeedbackForm.Fail(msgRequiredFields)
		return
	}

	if _, err := p.app.Client.CreateFeedback(ctx, p.id, in); err != nil {
		p.FeedbackForm.Fail(submitMessage(err, msgSubmitFailed))
		return
	}
	p.FeedbackForm.Succeed()

	feedbackID := p.Feedbacks.Begin()
	if feedbacks, err := p.app.Client.ListFeedbackByPortfolio(ctx, p.id); err != nil {
		p.Feedbacks.Fail(feedbackID, err)
	} else {
		p.Feedbacks.Resolve(feedbackID, feedbacks)
	}
}

// Delete removes the portfolio and returns to the dashboard. The server
// cascades to children; the client only navigates.
func (p *PortfolioDetailPage) Delete(ctx context.Context) {
	if !p.DeleteForm.Begin() {
		return
	}
	if err := p.app.Client.DeletePortfolio(ctx, p.id); err != nil {
		p.DeleteForm.Fail(submitMessage(err, fmt.Sprintf("Failed to delete portfolio %d", p.id)))
		return
	}
	p.DeleteForm.Succeed()
	p.app.Router.Navigate(ctx, "/dashboard")
}
