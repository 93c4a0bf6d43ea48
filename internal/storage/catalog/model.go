package catalog

import "context"

// Payment-method tags seeded by the migrations. The billing-cycle shift only
// applies to credit purchases, so the tag names are part of the contract.
const (
	MethodNameCredit = "credit"
	MethodNameDebit  = "debit"
)

// Method is a payment-method reference row.
type Method struct {
	ID   int16
	Name string
}

// Category is a payment-category reference row.
type Category struct {
	ID   int16
	Name string
}

// ITable defines lookups over the fixed payment_methods and
// payment_categories reference tables.
type ITable interface {
	MethodByID(ctx context.Context, id int16) (*Method, error)
	CategoryByID(ctx context.Context, id int16) (*Category, error)
	ListMethods(ctx context.Context) ([]*Method, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}
