package order

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"storefront-be/internal/apperror"
)

type Status string

const (
	StatusPlaced         Status = "Order Placed"
	StatusConfirmed      Status = "Confirmed"
	StatusPacking        Status = "Packing"
	StatusShipped        Status = "Shipped"
	StatusOutForDelivery Status = "Out For Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusPlaced,
	StatusConfirmed,
	StatusPacking,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

var (
	customerEditable = map[Status]bool{
		StatusPlaced:    true,
		StatusConfirmed: true,
		StatusPacking:   true,
	}
	adminEditable = map[Status]bool{
		StatusPlaced:         true,
		StatusConfirmed:      true,
		StatusPacking:        true,
		StatusShipped:        true,
		StatusOutForDelivery: true,
	}
)

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal statuses end the order's life: nothing may change afterwards.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus normalises free text ("  out for   DELIVERY") to a known status.
func ParseStatus(raw string) (Status, error) {
	words := strings.Fields(raw)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}

	s := Status(strings.Join(words, " "))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// CanEdit reports whether an actor of the given kind may change address or
// items while the order is in status s.
func CanEdit(s Status, admin bool) bool {
	if admin {
		return adminEditable[s]
	}
	return customerEditable[s]
}

// CheckEdit enforces ownership and the edit window for address and item edits.
func CheckEdit(o *Order, actor Actor) error {
	if !actor.Admin && !actor.owns(o) {
		return ErrNotOwner
	}
	if !CanEdit(o.Status, actor.Admin) {
		return apperror.Forbidden("Order can no longer be edited (status: %s)", o.Status)
	}
	return nil
}

// CheckTransition rejects any status change on a closed order.
func CheckTransition(o *Order) error {
	if o.Status.Terminal() {
		return apperror.Validation("Order is already %s", strings.ToLower(string(o.Status)))
	}
	return nil
}

func CheckCancel(o *Order, actor Actor) error {
	if !actor.owns(o) {
		return ErrNotOwner
	}
	if o.Status.Terminal() {
		return apperror.Validation("Cannot cancel an order that is %s", strings.ToLower(string(o.Status)))
	}
	return nil
}
