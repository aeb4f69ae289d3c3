package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"studyhub/internal/platform/clock"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID issues random RFC 4122 identifiers.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Timestamped issues "<unix millis>-<6 base36 chars>" identifiers, the format
// used for locally generated notifications.
type Timestamped struct {
	Clock clock.Clock
}

func (t Timestamped) New() string {
	c := t.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return fmt.Sprintf("%s-%s", strconv.FormatInt(c.Now().UnixMilli(), 10), randomSuffix(6))
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(base36)))
	for i := range buf {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			buf[i] = base36[i%len(base36)]
			continue
		}
		buf[i] = base36[v.Int64()]
	}
	return string(buf)
}
