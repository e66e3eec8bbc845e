package lib

import (
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

const (
	// Base36Charset digits used when rendering numbers in base 36
	Base36Charset = "0123456789abcdefghijklmnopqrstuvwxyz"

	// TokenOffset and TokenLength select the token from the base 36 rendering of 1+rand
	TokenOffset = 7
	TokenLength = 5

	// base36FractionDigits is the amount of fractional digits rendered, float64 carries about ten of them
	base36FractionDigits = 11
)

func LocalFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// FormatBase36 renders a non negative float in base 36 with the given amount of fractional digits
func FormatBase36(value float64, fractionDigits int) string {
	integer, fraction := math.Modf(value)
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(int64(integer), 36))
	if fractionDigits <= 0 {
		return sb.String()
	}
	sb.WriteByte('.')
	for i := 0; i < fractionDigits; i++ {
		fraction *= 36
		digit, rest := math.Modf(fraction)
		sb.WriteByte(Base36Charset[int(digit)])
		fraction = rest
	}
	return sb.String()
}

// Base36Token derives a token from a random value in [0, 1)
func Base36Token(random float64) string {
	rendered := FormatBase36(random+1, base36FractionDigits)
	return rendered[TokenOffset : TokenOffset+TokenLength]
}

// GenerateBase36Token returns a short random alphanumeric token
func GenerateBase36Token() string {
	return Base36Token(rand.Float64())
}
