package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// MaxDescriptionRunes caps description length. Counted in runes so
// multibyte text is not penalized.
const MaxDescriptionRunes = 200

type (
	// Kind is one of the two disjoint transaction kinds.
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense record. Records are
	// immutable after creation: there is no update path, only delete.
	Transaction struct {
		ID          string
		OwnerID     string
		Kind        Kind
		Amount      Money
		Description string
		Category    string // opaque name, matched against Category by string only
		Date        Date
		ReceiptRef  string // optional reference to an externally stored image
	}

	Category struct {
		ID      string
		OwnerID string
		Name    string
		Kind    Kind
	}
)

var (
	ErrInvalidKind        = errors.New("invalid kind")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyOwner         = errors.New("empty owner")
	ErrEmptyName          = errors.New("empty name")
)

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO "2006-01-02" calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
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

// Truncated drops any time-of-day component a caller smuggled in.
// Date comparisons are by calendar day only.
func (d Date) Truncated() Date {
	return DateOf(d.Time)
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Truncated().Time.Before(other.Truncated().Time)
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Truncated().Time.After(other.Truncated().Time)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionRunes {
		return ErrDescriptionTooLong
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if err := c.Kind.Validate(); err != nil {
		return err
	}
	return nil
}
