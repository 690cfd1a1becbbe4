package domain

import "github.com/shopspring/decimal"

// Balance is an expert's withdrawable position at a point in time.
// GrossAvailable = completed bookings − refunded bookings − non-rejected
// withdrawals, floored at zero. Net = gross minus platform commission.
type Balance struct {
	GrossAvailable    decimal.Decimal `json:"gross_available"`
	CommissionPortion decimal.Decimal `json:"commission_portion"`
	NetAvailable      decimal.Decimal `json:"net_available"`
	Currency          string          `json:"currency"`
}
