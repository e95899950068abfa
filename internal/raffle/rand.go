package raffle

import (
	"crypto/rand"
	"math/big"
)

// Rand supplies uniform random integers for winner selection. Injected so
// tests can script the pick.
type Rand interface {
	Intn(n int) int
}

// CryptoRand draws from crypto/rand.
type CryptoRand struct{}

func (CryptoRand) Intn(n int) int {
	if n <= 0 {
		panic("raffle: Intn with non-positive bound")
	}
	value, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the process is in no shape to
		// continue picking winners.
		panic("raffle: random source unavailable: " + err.Error())
	}
	return int(value.Int64())
}
