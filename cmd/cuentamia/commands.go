package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	appcli "cuentamia/internal/cli"
	"cuentamia/internal/core"
	"cuentamia/internal/middleware/trace"
	"cuentamia/internal/session"
)

// runner carries what every command action needs.
type runner struct {
	app *appcli.App
	out io.Writer
	now func() time.Time
}

func newCLI(app *appcli.App, out io.Writer, now func() time.Time) *cli.App {
	r := &runner{app: app, out: out, now: now}

	cliApp := &cli.App{
		Name:            "cuentamia",
		Usage:           "personal finance tracker",
		Writer:          out,
		HideHelpCommand: true,
		Commands: []*cli.Command{
			r.registerCommand(),
			r.loginCommand(),
			{Name: "logout", Usage: "end the active session", Action: r.logout},
			{Name: "whoami", Usage: "print the active user", Action: r.whoami},
			{Name: "users", Usage: "list registered users", Action: r.users},
			{
				Name:   "switch",
				Usage:  "switch to another registered user",
				Flags:  []cli.Flag{userFlag()},
				Action: r.switchUser,
			},
			{
				Name:   "passwd",
				Usage:  "change the active user's password",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "password", Required: true}},
				Action: r.passwd,
			},
			{Name: "delete-account", Usage: "remove the active user and all their data", Action: r.deleteAccount},
			{Name: "summary", Usage: "print the financial summary", Action: r.summary},
			r.transactionCommands(),
			r.cardCommands(),
			r.purchaseCommands(),
			r.salaryCommands(),
			r.recurringCommands(),
			r.periodCommands(),
			{
				Name:  "calendar",
				Usage: "list the events of a month",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "month", Usage: "YYYY-MM, defaults to the current month"},
				},
				Action: r.calendar,
			},
		},
	}
	traceCommands(trace.NewMiddleware(app.Logger), "", cliApp.Commands)
	return cliApp
}

// traceCommands wraps every action so each run gets its own command id.
func traceCommands(mw *trace.Middleware, parent string, commands []*cli.Command) {
	for _, cmd := range commands {
		name := cmd.Name
		if parent != "" {
			name = parent + " " + cmd.Name
		}
		if action := cmd.Action; action != nil {
			cmd.Action = func(c *cli.Context) error {
				return mw.Run(c.Context, name, func(ctx context.Context) error {
					c.Context = ctx
					return action(c)
				})
			}
		}
		traceCommands(mw, name, cmd.Subcommands)
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true}
}

func idFlag() cli.Flag {
	return &cli.StringFlag{Name: "id", Required: true}
}

func cardFlag() cli.Flag {
	return &cli.StringFlag{Name: "card", Usage: "card id", Required: true}
}

func kindFlag() cli.Flag {
	return &cli.StringFlag{Name: "kind", Usage: "expense or income", Value: string(session.RecurringExpense)}
}

func (r *runner) session(c *cli.Context) (*session.Session, error) {
	if s, err := r.app.Sessions.Session(); err == nil {
		return s, nil
	}
	s, err := r.app.Sessions.Restore(c.Context)
	if err != nil {
		return nil, fmt.Errorf("%w: run login first", err)
	}
	return s, nil
}

func (r *runner) today() core.Date {
	return core.DateOf(r.now())
}

// dateFlag parses a YYYY-MM-DD flag, defaulting to today when unset.
func (r *runner) dateFlag(c *cli.Context, name string) (core.Date, error) {
	if !c.IsSet(name) {
		return r.today(), nil
	}
	return core.ParseDate(c.String(name))
}

func amountFlag(c *cli.Context, name string) (float64, error) {
	v, err := core.ParseAmount(c.String(name))
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return v, nil
}

func (r *runner) registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create a user",
		Flags: []cli.Flag{userFlag(), &cli.StringFlag{Name: "password", Required: true}},
		Action: func(c *cli.Context) error {
			if err := r.app.Sessions.Register(c.Context, c.String("user"), c.String("password")); err != nil {
				return err
			}
			fmt.Fprintf(r.out, "registered %s, log in to start\n", c.String("user"))
			return nil
		},
	}
}

func (r *runner) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in as a user",
		Flags: []cli.Flag{userFlag(), &cli.StringFlag{Name: "password", Required: true}},
		Action: func(c *cli.Context) error {
			s, err := r.app.Sessions.Login(c.Context, c.String("user"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Fprintf(r.out, "logged in as %s\n", s.User())
			return nil
		},
	}
}

func (r *runner) logout(c *cli.Context) error {
	r.app.Sessions.Logout(c.Context)
	fmt.Fprintln(r.out, "logged out")
	return nil
}

func (r *runner) whoami(c *cli.Context) error {
	name, ok := r.app.Sessions.Directory().Current(c.Context)
	if !ok {
		return session.ErrNoSession
	}
	fmt.Fprintln(r.out, name)
	return nil
}

func (r *runner) users(c *cli.Context) error {
	current, _ := r.app.Sessions.Directory().Current(c.Context)
	for _, u := range r.app.Sessions.Directory().Users(c.Context) {
		marker := " "
		if u.Username == current {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %s\n", marker, u.Username)
	}
	return nil
}

func (r *runner) switchUser(c *cli.Context) error {
	s, err := r.app.Sessions.SwitchUser(c.Context, c.String("user"))
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "switched to %s\n", s.User())
	return nil
}

func (r *runner) passwd(c *cli.Context) error {
	if _, err := r.session(c); err != nil {
		return err
	}
	if err := r.app.Sessions.ChangePassword(c.Context, c.String("password")); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "password changed")
	return nil
}

func (r *runner) deleteAccount(c *cli.Context) error {
	if _, err := r.session(c); err != nil {
		return err
	}
	if err := r.app.Sessions.DeleteAccount(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "account deleted")
	return nil
}

func (r *runner) summary(c *cli.Context) error {
	s, err := r.session(c)
	if err != nil {
		return err
	}
	printSummary(r.out, s.Summary())
	return nil
}

func (r *runner) calendar(c *cli.Context) error {
	s, err := r.session(c)
	if err != nil {
		return err
	}

	year, month := r.now().Year(), r.now().Month()
	if c.IsSet("month") {
		t, err := time.Parse("2006-01", c.String("month"))
		if err != nil {
			return fmt.Errorf("--month: %w", core.ErrInvalidDate)
		}
		year, month = t.Year(), t.Month()
	}

	events, err := r.app.Calendar.Month(year, month, s.Snapshot(), r.today())
	if err != nil {
		return err
	}
	printEvents(r.out, events)
	return nil
}
