package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"cuentamia/internal/core"
	"cuentamia/internal/session"
)

func transactionFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "type", Usage: "income or expense", Required: required},
		&cli.StringFlag{Name: "desc", Required: required},
		&cli.StringFlag{Name: "amount", Required: required},
		&cli.StringFlag{Name: "category", Required: required},
		&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD, defaults to today"},
		&cli.StringFlag{Name: "notes"},
	}
}

// transactionFromFlags overlays the set flags on base.
func (r *runner) transactionFromFlags(c *cli.Context, base core.Transaction) (core.Transaction, error) {
	t := base
	if c.IsSet("type") {
		t.Type = core.TransactionType(c.String("type"))
	}
	if c.IsSet("desc") {
		t.Description = c.String("desc")
	}
	if c.IsSet("amount") {
		amount, err := amountFlag(c, "amount")
		if err != nil {
			return t, err
		}
		t.Amount = amount
	}
	if c.IsSet("category") {
		t.Category = c.String("category")
	}
	if c.IsSet("date") || t.Date.IsZero() {
		d, err := r.dateFlag(c, "date")
		if err != nil {
			return t, err
		}
		t.Date = d
	}
	if c.IsSet("notes") {
		t.Notes = c.String("notes")
	}
	return t, nil
}

func (r *runner) transactionCommands() *cli.Command {
	return &cli.Command{
		Name:  "tx",
		Usage: "manage transactions",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Flags: transactionFlags(true),
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					t, err := r.transactionFromFlags(c, core.Transaction{})
					if err != nil {
						return err
					}
					t, err = s.AddTransaction(c.Context, t)
					if err != nil {
						return err
					}
					fmt.Fprintln(r.out, t.ID)
					return nil
				},
			},
			{
				Name:  "update",
				Flags: append([]cli.Flag{idFlag()}, transactionFlags(false)...),
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					var base core.Transaction
					for _, t := range s.Transactions() {
						if t.ID == c.String("id") {
							base = t
						}
					}
					if base.ID == "" {
						return session.ErrNotFound
					}
					t, err := r.transactionFromFlags(c, base)
					if err != nil {
						return err
					}
					return s.UpdateTransaction(c.Context, t)
				},
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{idFlag()},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					return s.DeleteTransaction(c.Context, c.String("id"))
				},
			},
			{
				Name: "list",
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					printTransactions(r.out, s.Transactions())
					return nil
				},
			},
		},
	}
}

func (r *runner) cardCommands() *cli.Command {
	return &cli.Command{
		Name:  "card",
		Usage: "manage credit cards",
		Subcommands: []*cli.Command{
			{
				Name: "add",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "limit", Required: true},
					&cli.IntFlag{Name: "closing", Usage: "closing day of month", Required: true},
				},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					limit, err := amountFlag(c, "limit")
					if err != nil {
						return err
					}
					card, err := s.AddCard(c.Context, core.Card{Name: c.String("name"), Limit: limit, ClosingDay: c.Int("closing")})
					if err != nil {
						return err
					}
					fmt.Fprintln(r.out, card.ID)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "delete a card and all its purchases",
				Flags: []cli.Flag{idFlag()},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					return s.DeleteCard(c.Context, c.String("id"))
				},
			},
			{
				Name: "list",
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					printCards(r.out, s.Cards())
					return nil
				},
			},
		},
	}
}

func (r *runner) purchaseCommands() *cli.Command {
	return &cli.Command{
		Name:  "purchase",
		Usage: "manage installment purchases",
		Subcommands: []*cli.Command{
			{
				Name: "add",
				Flags: []cli.Flag{
					cardFlag(),
					&cli.StringFlag{Name: "desc", Required: true},
					&cli.StringFlag{Name: "amount", Required: true},
					&cli.IntFlag{Name: "installments", Required: true},
					&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD, defaults to today"},
					&cli.StringFlag{Name: "installment-value", Usage: "custom installment value, computed when unset"},
				},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					amount, err := amountFlag(c, "amount")
					if err != nil {
						return err
					}
					date, err := r.dateFlag(c, "date")
					if err != nil {
						return err
					}
					var plan core.InstallmentPlan = core.ComputedInstallment{}
					if c.IsSet("installment-value") {
						value, err := amountFlag(c, "installment-value")
						if err != nil {
							return err
						}
						plan = core.FixedInstallment{Value: value}
					}
					p, err := s.AddPurchase(c.Context, c.String("card"), core.Purchase{
						Description:  c.String("desc"),
						Amount:       amount,
						Installments: c.Int("installments"),
						Date:         date,
					}, plan)
					if err != nil {
						return err
					}
					fmt.Fprintf(r.out, "%s\t%s per installment\n", p.ID, core.FormatAmount(p.InstallmentValue))
					return nil
				},
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{cardFlag(), idFlag()},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					return s.DeletePurchase(c.Context, c.String("card"), c.String("id"))
				},
			},
			{
				Name:  "pay",
				Usage: "mark the next installment as paid",
				Flags: []cli.Flag{cardFlag(), idFlag()},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					p, err := s.PayInstallment(c.Context, c.String("card"), c.String("id"))
					if err != nil {
						return err
					}
					fmt.Fprintf(r.out, "paid %d/%d, remaining debt %s\n", p.PaidInstallments, p.Installments, core.FormatAmount(p.Debt()))
					return nil
				},
			},
		},
	}
}

func (r *runner) salaryCommands() *cli.Command {
	return &cli.Command{
		Name:  "salary",
		Usage: "manage salary records",
		Subcommands: []*cli.Command{
			{
				Name: "add",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "amount", Required: true},
					&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD, defaults to today"},
					&cli.StringFlag{Name: "notes"},
				},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					amount, err := amountFlag(c, "amount")
					if err != nil {
						return err
					}
					date, err := r.dateFlag(c, "date")
					if err != nil {
						return err
					}
					sal, err := s.AddSalary(c.Context, core.Salary{Amount: amount, Date: date, Notes: c.String("notes")})
					if err != nil {
						return err
					}
					fmt.Fprintln(r.out, sal.ID)
					return nil
				},
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{idFlag()},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					return s.DeleteSalary(c.Context, c.String("id"))
				},
			},
			{
				Name: "list",
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					printSalaries(r.out, s.Salaries())
					return nil
				},
			},
		},
	}
}

func (r *runner) recurringCommands() *cli.Command {
	return &cli.Command{
		Name:  "recurring",
		Usage: "manage recurring expenses and incomes",
		Subcommands: []*cli.Command{
			{
				Name: "add",
				Flags: []cli.Flag{
					kindFlag(),
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "amount", Required: true},
					&cli.StringFlag{Name: "frequency", Usage: "weekly, monthly or yearly", Value: string(core.Monthly)},
					&cli.StringFlag{Name: "due", Usage: "next due date YYYY-MM-DD, defaults to today"},
				},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					amount, err := amountFlag(c, "amount")
					if err != nil {
						return err
					}
					due, err := r.dateFlag(c, "due")
					if err != nil {
						return err
					}
					item, err := s.AddRecurring(c.Context, session.RecurringKind(c.String("kind")), core.RecurringItem{
						Name:        c.String("name"),
						Amount:      amount,
						Frequency:   core.Frequency(c.String("frequency")),
						NextDueDate: due,
					})
					if err != nil {
						return err
					}
					fmt.Fprintln(r.out, item.ID)
					return nil
				},
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{kindFlag(), idFlag()},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					return s.DeleteRecurring(c.Context, session.RecurringKind(c.String("kind")), c.String("id"))
				},
			},
			{
				Name:  "list",
				Flags: []cli.Flag{kindFlag()},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					printRecurring(r.out, s.Recurring(session.RecurringKind(c.String("kind"))))
					return nil
				},
			},
		},
	}
}

func (r *runner) periodCommands() *cli.Command {
	return &cli.Command{
		Name:  "period",
		Usage: "manage the reporting period",
		Subcommands: []*cli.Command{
			{
				Name: "set",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "start", Required: true},
					&cli.StringFlag{Name: "end", Required: true},
				},
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					start, err := core.ParseDate(c.String("start"))
					if err != nil {
						return err
					}
					end, err := core.ParseDate(c.String("end"))
					if err != nil {
						return err
					}
					p, err := s.SetCurrentPeriod(c.Context, core.Period{Name: c.String("name"), StartDate: start, EndDate: end})
					if err != nil {
						return err
					}
					printPeriod(r.out, p)
					return nil
				},
			},
			{
				Name:  "archive",
				Usage: "append the current period to the history",
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					p, err := s.ArchivePeriod(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(r.out, "archived %s\n", p.Name)
					return nil
				},
			},
			{
				Name: "show",
				Action: func(c *cli.Context) error {
					s, err := r.session(c)
					if err != nil {
						return err
					}
					printPeriod(r.out, s.CurrentPeriod())
					for _, p := range s.History() {
						fmt.Fprint(r.out, "history: ")
						printPeriod(r.out, p)
					}
					return nil
				},
			},
		},
	}
}
