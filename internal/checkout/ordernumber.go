package checkout

import (
	"math/rand"
	"strconv"
	"time"
)

const suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// orderNumber builds a human-legible order label from the clock and a
// short random suffix. Uniqueness is best effort: a collision is a
// display inconvenience, not a financial error, because deduplication
// keys on the payment transaction id.
func orderNumber(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return "FAU-" + millis + "-" + string(suffix)
}
