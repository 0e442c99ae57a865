package session

// Accepted promo codes. The set is fixed; codes are validated by the
// presentation layer before it applies a discount.
var promoCodes = map[string]struct{}{
	"123456789": {},
	"122222222": {},
}

// ValidPromoCode reports whether code is one of the accepted promo codes.
func ValidPromoCode(code string) bool {
	_, ok := promoCodes[code]
	return ok
}
