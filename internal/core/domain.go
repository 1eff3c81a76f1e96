package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// DateLayout is the calendar-date format used for persisted records.
const DateLayout = "2006-01-02"

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	TransactionType string

	// Frequency tags a recurring item. Values outside the known set are kept
	// as-is and contribute nothing to monthly totals.
	Frequency string

	Date struct {
		time.Time
	}

	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type" validate:"oneof=income expense"`
		Description string          `json:"description" validate:"notblank,max=200"`
		Amount      float64         `json:"amount" validate:"gt=0"`
		Category    string          `json:"category" validate:"notblank"`
		Date        Date            `json:"date"`
		Notes       string          `json:"notes"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	Card struct {
		ID         string     `json:"id"`
		Name       string     `json:"name" validate:"notblank,max=200"`
		Limit      float64    `json:"limit" validate:"gt=0"`
		ClosingDay int        `json:"closingDay" validate:"min=1,max=31"`
		Purchases  []Purchase `json:"purchases"`
	}

	Purchase struct {
		ID                       string  `json:"id"`
		Description              string  `json:"description" validate:"notblank,max=200"`
		Amount                   float64 `json:"amount" validate:"gt=0"`
		Installments             int     `json:"installments" validate:"gt=0"`
		PaidInstallments         int     `json:"paidInstallments" validate:"gte=0,ltefield=Installments"`
		Date                     Date    `json:"date"`
		AutoCalculateInstallment bool    `json:"autoCalculateInstallment"`
		InstallmentValue         float64 `json:"installmentValue" validate:"gt=0"`
	}

	Salary struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount" validate:"gt=0"`
		Date   Date    `json:"date"`
		Notes  string  `json:"notes"`
	}

	// RecurringItem is a scheduled expense or income that has not been
	// materialized into a Transaction.
	RecurringItem struct {
		ID          string    `json:"id"`
		Name        string    `json:"name" validate:"notblank,max=200"`
		Amount      float64   `json:"amount" validate:"gt=0"`
		Frequency   Frequency `json:"frequency" validate:"oneof=weekly monthly yearly"`
		NextDueDate Date      `json:"nextDueDate"`
	}

	Period struct {
		ID        string `json:"id"`
		Name      string `json:"name" validate:"notblank,max=200"`
		StartDate Date   `json:"startDate"`
		EndDate   Date   `json:"endDate"`
	}

	User struct {
		Username string `json:"username" validate:"notblank,max=100"`
		Password string `json:"password" validate:"notblank"`
	}

	// Collections is the full per-user state.
	Collections struct {
		Transactions      []Transaction
		Cards             []Card
		Salaries          []Salary
		RecurringExpenses []RecurringItem
		RecurringIncomes  []RecurringItem
		CurrentPeriod     Period
		PeriodsHistory    []Period
	}
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidDay    = errors.New("invalid day")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// ValidationError lists every failed field with the rule it broke.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s (%s)", name, e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// check runs the struct tags and merges in rule failures the tags cannot
// express (dates, cross-field date ordering).
func check(v any, extra map[string]string) error {
	fields := map[string]string{}
	if err := validate.Struct(v); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return err
		}
		for _, fe := range ves {
			fields[fe.Field()] = fe.Tag()
		}
	}
	for k, rule := range extra {
		fields[k] = rule
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func requireDate(extra map[string]string, field string, d Date) {
	if err := d.Validate(); err != nil {
		extra[field] = "required"
	}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Time.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		// Older records may carry a full timestamp.
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	d.Time = t
	return nil
}

func (t Transaction) Validate() error {
	extra := map[string]string{}
	requireDate(extra, "date", t.Date)
	return check(t, extra)
}

func (c Card) Validate() error {
	return check(c, nil)
}

func (p Purchase) Validate() error {
	extra := map[string]string{}
	requireDate(extra, "date", p.Date)
	return check(p, extra)
}

func (s Salary) Validate() error {
	extra := map[string]string{}
	requireDate(extra, "date", s.Date)
	return check(s, extra)
}

func (r RecurringItem) Validate() error {
	extra := map[string]string{}
	requireDate(extra, "nextDueDate", r.NextDueDate)
	return check(r, extra)
}

func (p Period) Validate() error {
	extra := map[string]string{}
	requireDate(extra, "startDate", p.StartDate)
	requireDate(extra, "endDate", p.EndDate)
	if len(extra) == 0 && p.EndDate.Before(p.StartDate.Time) {
		extra["endDate"] = "gtefield"
	}
	return check(p, extra)
}

func (u User) Validate() error {
	return check(u, nil)
}
