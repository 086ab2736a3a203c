package app

import (
	"context"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/view"
)

// TeacherPortfolioPage is the teacher's review view of a student portfolio:
// the portfolio with its work, plus a feedback composer. Teachers may
// delete only their own feedback.
type TeacherPortfolioPage struct {
	app *App
	id  int64

	Portfolio    *view.Resource[*studio.Portfolio]
	FeedbackForm *view.Form
	DeleteForm   *view.Form
}

func newTeacherPortfolioPage(a *App, id int64) *TeacherPortfolioPage {
	return &TeacherPortfolioPage{
		app:          a,
		id:           id,
		Portfolio:    view.NewResource[*studio.Portfolio](),
		FeedbackForm: view.NewForm(),
		DeleteForm:   view.NewForm(),
	}
}

func (p *TeacherPortfolioPage) RouteName() string { return guard.RouteTeacherView }

// Load fetches the portfolio with its nested projects, achievements, and
// feedback in one call.
func (p *TeacherPortfolioPage) Load(ctx context.Context) {
	loadID := p.Portfolio.Begin()
	portfolio, err := p.app.Client.GetPortfolio(ctx, p.id)
	if err != nil {
		p.Portfolio.Fail(loadID, err)
		return
	}
	p.Portfolio.Resolve(loadID, portfolio)
}

// SubmitFeedback leaves a comment and refreshes the portfolio so the new
// feedback renders.
func (p *TeacherPortfolioPage) SubmitFeedback(ctx context.Context, comment string) {
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
	p.Load(ctx)
}

// CanDelete reports whether the signed-in teacher authored the feedback.
func (p *TeacherPortfolioPage) CanDelete(f *studio.Feedback) bool {
	return guard.OwnsFeedback(p.app.account(), f)
}

// DeleteFeedback removes one of the signed-in teacher's own comments.
func (p *TeacherPortfolioPage) DeleteFeedback(ctx context.Context, f *studio.Feedback) {
	if !p.DeleteForm.Begin() {
		return
	}
	if !p.CanDelete(f) {
		p.DeleteForm.Fail("You may only delete your own feedback")
		return
	}
	if err := p.app.Client.DeleteFeedback(ctx, f.ID); err != nil {
		p.DeleteForm.Fail(submitMessage(err, msgSubmitFailed))
		return
	}
	p.DeleteForm.Succeed()
	p.Load(ctx)
}
