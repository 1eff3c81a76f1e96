package gateway

import (
	"fmt"
	"strings"
)

// Collection names one persisted per-user record.
type Collection string

const (
	Transactions      Collection = "transactions"
	Cards             Collection = "cards"
	Salaries          Collection = "salaries"
	RecurringExpenses Collection = "recurring_expenses"
	RecurringIncomes  Collection = "recurring_incomes"
	CurrentPeriod     Collection = "current_period"
	PeriodsHistory    Collection = "periods_history"
)

// Unscoped keys shared by every user.
const (
	UsersKey       = "users"
	CurrentUserKey = "current_user"
)

// AllCollections lists every per-user collection in load order.
func AllCollections() []Collection {
	return []Collection{
		Transactions,
		Cards,
		Salaries,
		RecurringExpenses,
		RecurringIncomes,
		CurrentPeriod,
		PeriodsHistory,
	}
}

// IsValid reports whether c is one of the known collections.
func (c Collection) IsValid() bool {
	switch c {
	case Transactions, Cards, Salaries, RecurringExpenses, RecurringIncomes, CurrentPeriod, PeriodsHistory:
		return true
	}
	return false
}

var userEscaper = strings.NewReplacer("%", "%25", "_", "%5F")

// EscapeUser makes a username safe to embed in a key: the result never
// contains the '_' separator and distinct usernames stay distinct.
func EscapeUser(username string) string {
	return userEscaper.Replace(username)
}

// NamespacedKey builds the key of a user's collection. The prefix must not
// contain '_'.
func NamespacedKey(prefix, username string, c Collection) string {
	return fmt.Sprintf("%s_%s_%s", prefix, EscapeUser(username), c)
}

// GlobalKey builds an unscoped key such as the user list.
func GlobalKey(prefix, name string) string {
	return prefix + "_" + name
}
