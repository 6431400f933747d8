package model

// TimeSlot is an optional allowed editing window. Present in the data model
// but not enforced; the access-control dialog was disabled in the latest UI
// revision.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Settings is the process-wide configuration saved alongside the workbook.
// ExchangeRates maps a bank sheet name to its currency-to-home-currency rate
// as a decimal string.
type Settings struct {
	CompanyName   string            `json:"companyName"`
	Period        string            `json:"period"`
	ExchangeRates map[string]string `json:"exchangeRates"`
	Password      string            `json:"password,omitempty"`
	TimeSlot      *TimeSlot         `json:"timeSlot,omitempty"`
}

// DefaultSettings returns an empty Settings with an initialized rate map.
func DefaultSettings() Settings {
	return Settings{ExchangeRates: map[string]string{}}
}

// RateFor returns the configured exchange rate string for a bank sheet, or
// "1.00" when none is set.
func (s Settings) RateFor(sheet string) string {
	if r, ok := s.ExchangeRates[sheet]; ok && r != "" {
		return r
	}
	return "1.00"
}
