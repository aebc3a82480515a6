package features

import (
	"fmt"
	"slices"
)

// Reference schemas for the known artifact bundle generations. A bundle's
// manifest is authoritative; these exist for tooling and for bundles that name
// a variant instead of listing fields.
const (
	VariantCore5      = "core-5"
	VariantFull17     = "full-17"
	VariantExtended24 = "extended-24"
)

func zero() *float64 { v := 0.0; return &v }
func one() *float64  { v := 1.0; return &v }

func amount(key, label string) Field {
	return Field{Key: key, Label: label, Min: zero(), Step: 100}
}

func frequency(key, label string) Field {
	return Field{Key: key, Label: label, Min: zero(), Max: one(), Step: 0.01, Help: "0 = never, 1 = always"}
}

func count(key, label string) Field {
	return Field{Key: key, Label: label, Min: zero(), Step: 1}
}

var core5 = []Field{
	amount("BALANCE", "Balance"),
	amount("PURCHASES", "Purchases"),
	amount("CASH_ADVANCE", "Cash Advance"),
	amount("CREDIT_LIMIT", "Credit Limit"),
	amount("PAYMENTS", "Payments"),
}

var full17 = []Field{
	amount("BALANCE", "Balance"),
	frequency("BALANCE_FREQUENCY", "Balance Frequency"),
	amount("PURCHASES", "Purchases"),
	amount("ONEOFF_PURCHASES", "One-off Purchases"),
	amount("INSTALLMENTS_PURCHASES", "Installment Purchases"),
	amount("CASH_ADVANCE", "Cash Advance"),
	frequency("PURCHASES_FREQUENCY", "Purchases Frequency"),
	frequency("ONEOFF_PURCHASES_FREQUENCY", "One-off Purchases Frequency"),
	frequency("PURCHASES_INSTALLMENTS_FREQUENCY", "Installment Purchases Frequency"),
	frequency("CASH_ADVANCE_FREQUENCY", "Cash Advance Frequency"),
	count("CASH_ADVANCE_TRX", "Cash Advance Transactions"),
	count("PURCHASES_TRX", "Purchase Transactions"),
	amount("CREDIT_LIMIT", "Credit Limit"),
	amount("PAYMENTS", "Payments"),
	amount("MINIMUM_PAYMENTS", "Minimum Payments"),
	frequency("PRC_FULL_PAYMENT", "Full Payment Ratio"),
	{Key: "TENURE", Label: "Tenure (months)", Min: one(), Step: 1},
}

var derived7 = []Field{
	amount("MONTHLY_AVG_PURCHASE", "Monthly Average Purchase"),
	amount("MONTHLY_CASH_ADVANCE", "Monthly Cash Advance"),
	{Key: "LIMIT_USAGE", Label: "Limit Usage", Min: zero(), Step: 0.01, Help: "balance / credit limit"},
	{Key: "PAYMENT_MINPAY_RATIO", Label: "Payment to Minimum Payment Ratio", Min: zero(), Step: 0.1},
	frequency("ONEOFF_SHARE", "One-off Share of Purchases"),
	frequency("INSTALLMENT_SHARE", "Installment Share of Purchases"),
	amount("AVG_PURCHASE_TRX_AMOUNT", "Average Purchase Transaction"),
}

var variants = map[string][]Field{
	VariantCore5:      core5,
	VariantFull17:     full17,
	VariantExtended24: slices.Concat(full17, derived7),
}

// Variant returns the reference schema with the given name.
func Variant(name string) (Schema, error) {
	fields, ok := variants[name]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %s", ErrUnknownVariant, name)
	}
	return Schema{Name: name, Fields: slices.Clone(fields)}, nil
}

// Variants returns the reference schema names in sorted order.
func Variants() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
