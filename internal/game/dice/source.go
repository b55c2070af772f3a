package dice

import (
	"crypto/rand"
	"math/big"
)

// cryptoSource draws from crypto/rand so live games cannot be predicted
// or replayed from a seed.
type cryptoSource struct{}

// NewCryptoSource returns the production Source.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a uniform int in [0, n).
//
// Precondition: n > 0. A crypto/rand failure is unrecoverable and
// panics rather than degrading to biased rolls.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}
