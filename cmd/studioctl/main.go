// Command studioctl is a minimal terminal client for the Portfolio Studio
// platform: sign in, browse the dashboard, and inspect a portfolio. It
// exists to exercise the client end to end; presentation is deliberately
// plain text.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	studio "github.com/portfoliostudio/studio.go"
	"github.com/portfoliostudio/studio.go/app"
	"github.com/portfoliostudio/studio.go/pkg/logger"
	"github.com/portfoliostudio/studio.go/view"
)

func main() {
	// .env is optional; the base URL falls back to the documented default.
	_ = godotenv.Load()

	username := flag.String("username", "", "username to sign in with")
	password := flag.String("password", "", "password to sign in with")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log, err := logger.New().Level(level).Console().Make()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	if err := run(context.Background(), log, *username, *password, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "studioctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log zerolog.Logger, username, password string, args []string) error {
	a, err := app.New(app.Config{Logger: log})
	if err != nil {
		return err
	}
	a.Start(ctx)

	if username != "" {
		a.Router.Navigate(ctx, "/login")
		login, ok := currentPage(a).(*app.LoginPage)
		if !ok {
			return fmt.Errorf("unexpected page after navigating to login")
		}
		login.Submit(ctx, studio.Credentials{Username: username, Password: password})
		if msg := login.Form.Error(); msg != "" {
			return fmt.Errorf("login failed: %s", msg)
		}
	}

	target := "/dashboard"
	if len(args) > 0 {
		target = args[0]
	}
	a.Router.Navigate(ctx, target)

	return render(a)
}

func currentPage(a *app.App) app.Page {
	page, _ := a.Router.Current()
	return page
}

func render(a *app.App) error {
	page, path := a.Router.Current()
	fmt.Println("at", path)

	switch p := page.(type) {
	case *app.LoginPage:
		fmt.Println("sign in required")
	case *app.DashboardPage:
		renderDashboard(p)
	case *app.PortfolioDetailPage:
		renderPortfolio(p)
	case *app.NotFoundPage:
		fmt.Println("no such page")
	default:
		fmt.Printf("view %s\n", page.RouteName())
	}
	return nil
}

func renderDashboard(p *app.DashboardPage) {
	switch p.Portfolios.Phase() {
	case view.PhaseEmpty:
		fmt.Println("no portfolios yet")
	case view.PhaseLoadError:
		fmt.Println("error:", p.Portfolios.Err())
	case view.PhaseReady:
		for _, portfolio := range p.VisiblePortfolios() {
			fmt.Printf("#%d  %-30s  %s\n", portfolio.ID, portfolio.Title, portfolio.StudentUsername)
		}
	}
}

func renderPortfolio(p *app.PortfolioDetailPage) {
	portfolio, ok := p.Portfolio.Value()
	if !ok {
		if err := p.Portfolio.Err(); err != nil {
			fmt.Println("error:", err)
		}
		return
	}
	fmt.Printf("%s — %s\n", portfolio.Title, portfolio.StudentUsername)
	if portfolio.Description != "" {
		fmt.Println(portfolio.Description)
	}
	for _, project := range p.Projects.Items() {
		fmt.Printf("  project     #%d %s\n", project.ID, project.Title)
	}
	for _, achievement := range p.Achievements.Items() {
		fmt.Printf("  achievement #%d %s\n", achievement.ID, achievement.Title)
	}
	for _, feedback := range p.Feedbacks.Items() {
		fmt.Printf("  feedback    %s: %s\n", feedback.TeacherName, feedback.Comment)
	}
}
