// Package validate checks raw user input for new items and quantity edits.
//
// Item creation reports a single aggregate message when two or more fields
// are bad, and otherwise the most specific message for the one bad field.
// Every failure is an *Error carrying exactly one user-facing message.
package validate

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dukerupert/pantry/internal/model"
)

// Messages shown to the user. Callers and tests match on these.
const (
	MsgMultipleInvalid = "There are empty and/or invalid inputs, no item added."
	MsgNameEmpty       = "Item name cannot be empty."
	MsgNameTooLong     = "Item Name exceeds character length (50)."
	MsgQuantityInvalid = "Please enter a valid number for quantity (has to be an integer greater than 0)."
	MsgExpiryEmpty     = "Date cannot be empty."
	MsgExpiryFormat    = "Please enter the expiry date in the correct format (dd-MMM-yyyy)."
	MsgExpiryPassed    = "Expired item, please discard."

	MsgFoodGroupUnknown = "Please choose one of the listed food groups."

	MsgQuantityEmpty    = "Quantity cannot be empty!"
	MsgQuantityNotInt   = "Not a valid number!"
	MsgQuantityNegative = "You can't have a negative quantity!"
)

// Error is a recoverable input error with one message for the user.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func fail(msg string) *Error { return &Error{Message: msg} }

type expiryStatus int

const (
	expiryOK expiryStatus = iota
	expiryEmpty
	expiryBadFormat
	expiryPassed
)

// fields holds the outcome of checking each creation input independently.
type fields struct {
	name     string
	quantity int
	expiry   time.Time

	nameEmpty       bool
	nameTooLong     bool
	quantityInvalid bool
	expiryState     expiryStatus
}

func (f fields) nameInvalid() bool   { return f.nameEmpty || f.nameTooLong }
func (f fields) expiryInvalid() bool { return f.expiryState != expiryOK }

// rule pairs a failure predicate with its message. Order is priority.
type rule struct {
	failed  func(fields) bool
	message string
}

var creationRules = []rule{
	{func(f fields) bool { return f.nameEmpty }, MsgNameEmpty},
	{func(f fields) bool { return f.nameTooLong }, MsgNameTooLong},
	{func(f fields) bool { return f.quantityInvalid }, MsgQuantityInvalid},
	{func(f fields) bool { return f.expiryState == expiryEmpty }, MsgExpiryEmpty},
	{func(f fields) bool { return f.expiryState == expiryBadFormat }, MsgExpiryFormat},
	{func(f fields) bool { return f.expiryState == expiryPassed }, MsgExpiryPassed},
}

// NewItem validates the raw inputs for a new item. Inputs are trimmed first.
// On success it returns an untagged item ready to insert.
func NewItem(name, quantityText, expiryText string, now time.Time) (model.Item, error) {
	f := check(name, quantityText, expiryText, now)

	invalid := 0
	for _, bad := range []bool{f.nameInvalid(), f.quantityInvalid, f.expiryInvalid()} {
		if bad {
			invalid++
		}
	}
	if invalid > 1 {
		return model.Item{}, fail(MsgMultipleInvalid)
	}
	for _, r := range creationRules {
		if r.failed(f) {
			return model.Item{}, fail(r.message)
		}
	}
	return model.NewItem(f.name, f.quantity, f.expiry), nil
}

// Item checks an item that was built in code rather than parsed from form
// input, applying the same name and quantity rules as NewItem plus food
// group membership. Expiry and freshness are not checked here.
func Item(item model.Item) error {
	f := fields{
		name:            item.Name,
		quantity:        item.Quantity,
		nameEmpty:       strings.TrimSpace(item.Name) == "",
		nameTooLong:     utf8.RuneCountInString(item.Name) > model.MaxItemNameLength,
		quantityInvalid: item.Quantity <= 0,
	}
	group, set := item.FoodGroup.Value()
	groupUnknown := set && !model.FoodGroups.Contains(group)

	invalid := 0
	for _, bad := range []bool{f.nameInvalid(), f.quantityInvalid, groupUnknown} {
		if bad {
			invalid++
		}
	}
	if invalid > 1 {
		return fail(MsgMultipleInvalid)
	}
	for _, r := range creationRules {
		if r.failed(f) {
			return fail(r.message)
		}
	}
	if groupUnknown {
		return fail(MsgFoodGroupUnknown)
	}
	return nil
}

func check(name, quantityText, expiryText string, now time.Time) fields {
	f := fields{
		name: strings.TrimSpace(name),
	}
	f.nameEmpty = f.name == ""
	f.nameTooLong = utf8.RuneCountInString(f.name) > model.MaxItemNameLength

	q, err := parseInt(strings.TrimSpace(quantityText))
	f.quantityInvalid = err != nil || q <= 0
	f.quantity = q

	f.expiry, f.expiryState = checkExpiry(strings.TrimSpace(expiryText), now)
	return f
}

// Expiry dates are day-month-year with an English month name, for example
// "2-Oct-2099" or "20-june-2099". Month names match case-insensitively.
var expiryLayouts = []string{"2-Jan-2006", "2-January-2006"}

// ParseExpiry parses an expiry date strictly. Out-of-range days such as
// 31-Feb are rejected rather than rolled over.
func ParseExpiry(s string, loc *time.Location) (time.Time, error) {
	var err error
	for _, layout := range expiryLayouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func checkExpiry(s string, now time.Time) (time.Time, expiryStatus) {
	if s == "" {
		return time.Time{}, expiryEmpty
	}
	t, err := ParseExpiry(s, now.Location())
	if err != nil {
		return time.Time{}, expiryBadFormat
	}
	endOfDay := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	if endOfDay.Before(now) {
		return t, expiryPassed
	}
	return t, expiryOK
}

// QuantityAction is what a valid quantity edit asks for.
type QuantityAction int

const (
	// QuantityUpdate stores the new positive quantity.
	QuantityUpdate QuantityAction = iota
	// QuantityDelete removes the item; a zero quantity is never stored.
	QuantityDelete
)

func (a QuantityAction) String() string {
	if a == QuantityDelete {
		return "delete"
	}
	return "update"
}

// QuantityEdit is a validated quantity change.
type QuantityEdit struct {
	Action   QuantityAction
	Quantity int
}

// Quantity validates a raw quantity edit for an existing item.
func Quantity(input string) (QuantityEdit, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return QuantityEdit{}, fail(MsgQuantityEmpty)
	}
	q, err := parseInt(input)
	if err != nil {
		return QuantityEdit{}, fail(MsgQuantityNotInt)
	}
	switch {
	case q < 0:
		return QuantityEdit{}, fail(MsgQuantityNegative)
	case q == 0:
		return QuantityEdit{Action: QuantityDelete}, nil
	default:
		return QuantityEdit{Action: QuantityUpdate, Quantity: q}, nil
	}
}

// parseInt accepts base-10 integers that fit in 32 bits.
func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
