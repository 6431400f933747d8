// Package currency resolves the currency of a ledger sheet from its name.
// Bank sheets are named "<bank>-<code>" ("HSBC-USD"); everything else
// reports in the home currency.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// Home is the reporting currency all foreign-currency sheets convert into.
const Home = money.HKD

// aliases maps name suffixes that are not ISO 4217 codes.
var aliases = map[string]string{
	"RMB": money.CNY,
}

// ForSheet returns the currency a sheet is denominated in. The code is taken
// from the segment after the last "-" in the sheet name; names without a
// recognized code fall back to the home currency.
func ForSheet(name string) *money.Currency {
	if i := strings.LastIndex(name, "-"); i >= 0 {
		code := strings.ToUpper(name[i+1:])
		if alias, ok := aliases[code]; ok {
			code = alias
		}
		if c := money.GetCurrency(code); c != nil {
			return c
		}
	}
	return money.GetCurrency(Home)
}
