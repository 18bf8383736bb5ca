// Package randompkg provides functionality for generating random test data items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// IntBetween generates a random integer between min and max.
func IntBetween(min, max int) int {
	return int(Intn(max-min)) + min
}

// FloatBetween generates a random decimal number between min and max rounded to 4 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*10_000) / 10_000
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

func capitalized(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// Username generates a random username of valid length.
func Username() string {
	return String(6) + fmt.Sprint(Intn(1000))
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

// FullName generates a random two-part name.
func FullName() string {
	return capitalized(String(5)) + " " + capitalized(String(7))
}

// PhoneNumber generates a random E.164-looking phone number.
func PhoneNumber() string {
	return fmt.Sprintf("+1%d", IntBetween(2_000_000_000, 9_999_999_999))
}

// Password generates a random password with letters, digits and a symbol.
func Password() string {
	return fmt.Sprintf("%s%d!", capitalized(String(6)), IntBetween(10, 99))
}

// Sentence generates a short random description.
func Sentence() string {
	words := make([]string, 4)
	for i := range words {
		words[i] = String(IntBetween(3, 8))
	}

	return strings.Join(words, " ")
}

// MoneyBetween generates a random amount of money between min and max rounded to 4 decimals.
func MoneyBetween(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(FloatBetween(min, max))
}

// Currency generates a random currency code.
func Currency() string {
	currencies := []string{"USD", "EUR", "GBP"}
	return currencies[Intn(len(currencies))]
}

// Pick returns one of the given options.
func Pick(options ...string) string {
	return options[Intn(len(options))]
}
