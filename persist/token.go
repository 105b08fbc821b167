package persist

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Token is a watched contract: its address, display metadata, and the
// standard that determines which decoder and event signatures apply to it.
type Token struct {
	ID          int64
	Address     string
	Name        string
	Strategy    string
	Standard    TokenStandard
	TotalSupply decimal.Decimal
	Volume      decimal.Decimal
	NetworkID   int64
}

// NormalizeAddress lower-cases a hex address string for case-insensitive
// comparison and canonical storage.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// MatchesAddress reports whether address (in any case) refers to this token,
// per the case-insensitive address comparison invariant.
func (t Token) MatchesAddress(address string) bool {
	return NormalizeAddress(t.Address) == NormalizeAddress(address)
}
