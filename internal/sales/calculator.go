package sales

import (
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/pkg/config"
)

// TaxBreakdown holds the five sale taxes, each already rounded to cents.
type TaxBreakdown struct {
	ICMS   decimal.Decimal `json:"icms"`
	PIS    decimal.Decimal `json:"pis"`
	COFINS decimal.Decimal `json:"cofins"`
	CSLL   decimal.Decimal `json:"csll"`
	IRPJ   decimal.Decimal `json:"irpj"`
	Total  decimal.Decimal `json:"total"`
}

// Calculator derives tax figures from configured rates. It carries no state
// beyond the rates and is safe for concurrent use.
type Calculator struct {
	rates config.TaxConfig
}

// NewCalculator builds a calculator from the configured tax rates.
func NewCalculator(rates config.TaxConfig) *Calculator {
	return &Calculator{rates: rates}
}

// CalculateTaxes decomposes a sale into its tax components. ICMS is levied on
// the selling price over the reduced base; the other four apply to the
// taxable margin. Each component is rounded to cents before the total is
// summed, so the total always equals the sum of the displayed components.
func (c *Calculator) CalculateTaxes(sellingPrice, taxableMargin decimal.Decimal) TaxBreakdown {
	if !sellingPrice.IsPositive() {
		return TaxBreakdown{
			ICMS:   roundCents(decimal.Zero),
			PIS:    roundCents(decimal.Zero),
			COFINS: roundCents(decimal.Zero),
			CSLL:   roundCents(decimal.Zero),
			IRPJ:   roundCents(decimal.Zero),
			Total:  roundCents(decimal.Zero),
		}
	}
	if taxableMargin.IsNegative() {
		taxableMargin = decimal.Zero
	}

	breakdown := TaxBreakdown{
		ICMS:   roundCents(sellingPrice.Mul(c.rates.ICMSBaseRate).Mul(c.rates.ICMSRate)),
		PIS:    roundCents(taxableMargin.Mul(c.rates.PISRate)),
		COFINS: roundCents(taxableMargin.Mul(c.rates.COFINSRate)),
		CSLL:   roundCents(taxableMargin.Mul(c.rates.CSLLRate)),
		IRPJ:   roundCents(taxableMargin.Mul(c.rates.IRPJRate)),
	}
	breakdown.Total = roundCents(
		breakdown.ICMS.
			Add(breakdown.PIS).
			Add(breakdown.COFINS).
			Add(breakdown.CSLL).
			Add(breakdown.IRPJ),
	)
	return breakdown
}

// CommissionIncomeTax computes the income tax withheld on the buyer's agent
// commission, rounded to cents.
func (c *Calculator) CommissionIncomeTax(purchaseCommission decimal.Decimal) decimal.Decimal {
	if !purchaseCommission.IsPositive() {
		return roundCents(decimal.Zero)
	}
	return roundCents(purchaseCommission.Mul(c.rates.CommissionTaxRate))
}

// roundCents rounds half-up to 2 decimal places.
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
