package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentCOD     = "cod"
	DefaultCountry = "India"
)

type Address struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

func (a Address) trimmed() Address {
	return Address{
		Name:    strings.TrimSpace(a.Name),
		Phone:   strings.TrimSpace(a.Phone),
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		Pincode: strings.TrimSpace(a.Pincode),
		Country: strings.TrimSpace(a.Country),
	}
}

// Item is a product snapshot taken when the order was placed. Later product
// or policy changes do not touch it.
type Item struct {
	ProductID  uuid.UUID       `json:"productId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	FinalPrice decimal.Decimal `json:"finalPrice"`
	Quantity   int             `json:"quantity"`
	Size       string          `json:"size"`
	Image      string          `json:"image"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uint            `json:"userId"`
	Customer          *Customer       `json:"user,omitempty"`
	Items             []Item          `json:"items"`
	Amount            decimal.Decimal `json:"amount"`
	Address           Address         `json:"address"`
	Status            Status          `json:"status"`
	PaymentMethod     string          `json:"paymentMethod"`
	Payment           bool            `json:"payment"`
	EstimatedDelivery string          `json:"estimatedDelivery"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// Line references a product in the customer's cart at checkout.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

type PlaceInput struct {
	Items         []Line  `json:"items"`
	Address       Address `json:"address"`
	PaymentMethod string  `json:"paymentMethod"`
}

// StatusInput sets the status, the delivery estimate, or both. Clients send
// the estimate as either field name.
type StatusInput struct {
	OrderID           string  `json:"orderId"`
	Status            *string `json:"status"`
	EstimatedDelivery *string `json:"estimatedDelivery"`
	ExpectedDelivery  *string `json:"expectedDelivery"`
}

type AddressPatch struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Pincode *string `json:"pincode"`
	Country *string `json:"country"`
}

type ItemPatch struct {
	ProductID string  `json:"productId"`
	Quantity  *int    `json:"quantity"`
	Size      *string `json:"size"`
}

// DetailsInput is a partial edit of contact, address and item fields. Only
// fields present in the request are applied.
type DetailsInput struct {
	OrderID string        `json:"orderId"`
	Name    *string       `json:"name"`
	Phone   *string       `json:"phone"`
	Address *AddressPatch `json:"address"`
	Items   []ItemPatch   `json:"items"`
}

// Actor is who is acting on an order.
type Actor struct {
	UserID uint
	Admin  bool
}

func (a Actor) owns(o *Order) bool {
	return o.UserID == a.UserID
}
