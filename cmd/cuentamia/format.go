package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"cuentamia/internal/core"
	"cuentamia/internal/services"
)

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func printSummary(out io.Writer, s core.Summary) {
	w := table(out)
	fmt.Fprintf(w, "Income\t%s\n", core.FormatAmount(s.TotalIncome))
	fmt.Fprintf(w, "Expenses\t%s\n", core.FormatAmount(s.TotalExpenses))
	fmt.Fprintf(w, "Card debt\t%s\n", core.FormatAmount(s.TotalCardDebt))
	fmt.Fprintf(w, "Recurring expenses\t%s\n", core.FormatAmount(s.TotalRecurringExpenses))
	fmt.Fprintf(w, "Balance\t%s\n", core.FormatAmount(s.TotalBalance))
	w.Flush()
}

func printTransactions(out io.Writer, txs []core.Transaction) {
	w := table(out)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, t := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Type, core.FormatAmount(t.Amount), t.Category, t.Description)
	}
	w.Flush()
}

func printCards(out io.Writer, cards []core.Card) {
	w := table(out)
	for _, c := range cards {
		fmt.Fprintf(w, "%s\t%s\tcloses %d\tlimit %s\tdebt %s\tavailable %s\n",
			c.ID, c.Name, c.ClosingDay,
			core.FormatAmount(c.Limit), core.FormatAmount(c.Debt()), core.FormatAmount(c.Available()))
		for _, p := range c.Purchases {
			fmt.Fprintf(w, "  %s\t%s\t%d/%d paid\t%s each\tdebt %s\t\n",
				p.ID, p.Description, p.PaidInstallments, p.Installments,
				core.FormatAmount(p.InstallmentValue), core.FormatAmount(p.Debt()))
		}
	}
	w.Flush()
}

func printSalaries(out io.Writer, salaries []core.Salary) {
	w := table(out)
	for _, s := range salaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Date, core.FormatAmount(s.Amount), s.Notes)
	}
	w.Flush()
}

func printRecurring(out io.Writer, items []core.RecurringItem) {
	w := table(out)
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\tnext %s\tmonthly %s\n",
			item.ID, item.Name, core.FormatAmount(item.Amount), item.Frequency, item.NextDueDate,
			core.FormatAmount(core.NormalizeToMonthly(item.Amount, item.Frequency)))
	}
	w.Flush()
}

func printPeriod(out io.Writer, p core.Period) {
	fmt.Fprintf(out, "%s: %s to %s\n", p.Name, p.StartDate, p.EndDate)
}

func printEvents(out io.Writer, events []services.Event) {
	w := table(out)
	for _, e := range events {
		amount := ""
		if e.Amount != 0 {
			amount = core.FormatAmount(e.Amount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date, e.Type, e.Title, amount)
	}
	w.Flush()
}
