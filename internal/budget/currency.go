package budget

import "strings"

// Currency is a display symbol plus ISO code.
type Currency struct {
	Symbol string
	Code   string
}

var usd = Currency{Symbol: "$", Code: "USD"}

// locationCurrency maps known city names (lowercased) to their local
// currency. Unknown locations default to USD.
var locationCurrency = map[string]Currency{
	// US cities
	"new york":      usd,
	"los angeles":   usd,
	"chicago":       usd,
	"houston":       usd,
	"phoenix":       usd,
	"philadelphia":  usd,
	"san antonio":   usd,
	"san diego":     usd,
	"dallas":        usd,
	"san jose":      usd,
	"austin":        usd,
	"seattle":       usd,
	"atlanta":       usd,
	"miami":         usd,
	"boston":        usd,
	"portland":      usd,
	"denver":        usd,
	"san francisco": usd,
	"las vegas":     usd,

	// Other countries
	"london":    {Symbol: "£", Code: "GBP"},
	"paris":     {Symbol: "€", Code: "EUR"},
	"berlin":    {Symbol: "€", Code: "EUR"},
	"rome":      {Symbol: "€", Code: "EUR"},
	"madrid":    {Symbol: "€", Code: "EUR"},
	"amsterdam": {Symbol: "€", Code: "EUR"},
	"tokyo":     {Symbol: "¥", Code: "JPY"},
	"osaka":     {Symbol: "¥", Code: "JPY"},
	"sydney":    {Symbol: "A$", Code: "AUD"},
	"melbourne": {Symbol: "A$", Code: "AUD"},
	"toronto":   {Symbol: "C$", Code: "CAD"},
	"vancouver": {Symbol: "C$", Code: "CAD"},
	"mumbai":    {Symbol: "₹", Code: "INR"},
	"delhi":     {Symbol: "₹", Code: "INR"},
	"bangalore": {Symbol: "₹", Code: "INR"},
	"dubai":     {Symbol: "AED", Code: "AED"},
	"singapore": {Symbol: "S$", Code: "SGD"},
}

// CurrencyFor returns the currency for a location, defaulting to USD
// for unrecognized locations.
func CurrencyFor(location string) Currency {
	if c, ok := locationCurrency[strings.ToLower(strings.TrimSpace(location))]; ok {
		return c
	}
	return usd
}
