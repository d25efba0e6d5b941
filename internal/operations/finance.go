package operations

import "github.com/shopspring/decimal"

// DeriveFinancials computes the invoice tax amount and total from the
// subtotal and the tax rate in percent. Rounding is half-away-from-zero to
// two decimal places and is applied once per formula, never per intermediate
// term, so create and update paths always agree.
func DeriveFinancials(subtotal, taxRate float64) (taxAmount, amount float64) {
	sub := decimal.NewFromFloat(subtotal)
	tax := sub.Mul(decimal.NewFromFloat(taxRate)).Div(decimal.NewFromInt(100)).Round(2)
	total := sub.Add(tax).Round(2)
	return tax.InexactFloat64(), total.InexactFloat64()
}

// NetSalary computes basic + bonus - deductions, rounded to two decimals.
func NetSalary(basic, bonus, deductions float64) float64 {
	return decimal.NewFromFloat(basic).
		Add(decimal.NewFromFloat(bonus)).
		Sub(decimal.NewFromFloat(deductions)).
		Round(2).
		InexactFloat64()
}
