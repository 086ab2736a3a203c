package app

import (
	"context"
	"strings"
	"sync"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/guard"
	"github.com/portfoliostudio/studio.go/view"
)

// DashboardPage is the landing view for any authenticated identity.
// Students see their portfolios; teachers additionally see the student
// roster and a search box that filters portfolios without touching the
// network.
type DashboardPage struct {
	app        *App
	Portfolios *view.List[studio.Portfolio]
	Students   *view.List[studio.User]

	mu     sync.Mutex
	search string
}

func newDashboardPage(a *App) *DashboardPage {
	return &DashboardPage{
		app:        a,
		Portfolios: view.NewList[studio.Portfolio](),
		Students:   view.NewList[studio.User](),
	}
}

func (p *DashboardPage) RouteName() string { return guard.RouteDashboard }

// Load fetches the dashboard data for the current role.
func (p *DashboardPage) Load(ctx context.Context) {
	if p.app.Session.IsRole(studio.RoleTeacher) {
		studentsID := p.Students.Begin()
		students, err := p.app.Client.ListStudents(ctx)
		if err != nil {
			p.Students.Fail(studentsID, err)
		} else {
			p.Students.Resolve(studentsID, students)
		}
	}

	loadID := p.Portfolios.Begin()
	portfolios, err := p.app.Client.ListPortfolios(ctx)
	if err != nil {
		p.Portfolios.Fail(loadID, err)
		return
	}
	p.Portfolios.Resolve(loadID, portfolios)
}

// SetSearch updates the teacher search term. This never triggers a fetch;
// filtering operates on data already loaded.
func (p *DashboardPage) SetSearch(term string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.search = term
}

// VisiblePortfolios returns the portfolios matching the current search
// term, case-insensitively, against student username, student display name,
// and portfolio title with OR semantics. An empty term shows everything.
func (p *DashboardPage) VisiblePortfolios() []studio.Portfolio {
	p.mu.Lock()
	term := strings.ToLower(strings.TrimSpace(p.search))
	p.mu.Unlock()

	items := p.Portfolios.Items()
	if term == "" {
		return items
	}

	var out []studio.Portfolio
	for _, portfolio := range items {
		if strings.Contains(strings.ToLower(portfolio.StudentUsername), term) ||
			strings.Contains(strings.ToLower(portfolio.StudentName), term) ||
			strings.Contains(strings.ToLower(portfolio.Title), term) {
			out = append(out, portfolio)
		}
	}
	return out
}
