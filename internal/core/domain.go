package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Expense categories the assistant knows how to infer. Manual entry still
// accepts free-form categories.
const (
	CategorySaude       = "Saúde"
	CategoryAlimentacao = "Alimentação"
	CategoryTransporte  = "Transporte"
	CategoryOutros      = "Outros"
	CategoryPoupanca    = "Poupança"
)

type (
	// Date is a calendar date; the time-of-day portion is ignored.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID          string
		OwnerID     string
		Date        Date
		Description string
		Amount      Money
		Category    string
	}

	Goal struct {
		ID            string
		OwnerID       string
		Title         string
		TargetAmount  Money
		CurrentAmount Money
		Category      string
		Deadline      Date
		Color         string
	}

	Investment struct {
		ID           string
		OwnerID      string
		Ticker       string
		Name         string
		Shares       decimal.Decimal
		Price        decimal.Decimal
		Sector       string
		PurchaseDate Date
	}

	Asset struct {
		ID          string
		OwnerID     string
		Name        string
		Type        string
		Value       Money
		Description string
	}

	Liability struct {
		ID             string
		OwnerID        string
		Name           string
		Type           string
		Balance        Money
		InterestRate   decimal.Decimal // annual percentage, e.g. 12.5
		MonthlyPayment Money
	}

	Profile struct {
		ID       string
		Email    string
		FullName string
		Currency string
	}

	// ChatEntry is one assistant exchange: the user message and the reply.
	ChatEntry struct {
		ID        string
		OwnerID   string
		Message   string
		Response  string
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyTitle       = errors.New("empty title")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyTicker      = errors.New("empty ticker")
	ErrEmptyOwner       = errors.New("empty owner")
	ErrInvalidShares    = errors.New("invalid share quantity")
	ErrInvalidPrice     = errors.New("invalid price")
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today truncates t to its calendar date.
func Today(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// TodayNow is Today(time.Now()); injectable call sites keep a func of this
// shape so tests can pin the clock.
func TodayNow() Date {
	return Today(time.Now())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// String renders the date in ISO form, the format used on the wire and in
// storage.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(g.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.Cents > g.TargetAmount.Cents {
		return errors.New("current amount exceeds target")
	}
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (i Investment) Validate() error {
	if strings.TrimSpace(i.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(i.Ticker) == "" {
		return ErrEmptyTicker
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Shares.Sign() <= 0 {
		return ErrInvalidShares
	}
	if i.Price.Sign() <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// MarketValue returns shares × price.
func (i Investment) MarketValue() decimal.Decimal {
	return i.Shares.Mul(i.Price)
}

func (a Asset) Validate() error {
	if strings.TrimSpace(a.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if a.Value.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (l Liability) Validate() error {
	if strings.TrimSpace(l.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if l.Balance.Cents < 0 {
		return ErrInvalidAmount
	}
	if l.InterestRate.Sign() < 0 {
		return errors.New("negative interest rate")
	}
	return nil
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return errors.New("empty email")
	}
	if !strings.Contains(p.Email, "@") {
		return errors.New("malformed email")
	}
	return nil
}
