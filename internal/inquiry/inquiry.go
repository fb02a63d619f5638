// Package inquiry generates the reference codes users quote to the support
// channel. Codes are not secrets and collisions are tolerated.
package inquiry

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	Prefix = "TCL"

	suffixRange = 100
	// millisecond timestamp (13 digits today) plus up to two suffix digits
	maxDigits = 20
)

type Generator struct {
	now  func() time.Time
	intn func(int) int
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithRand(intn func(int) int) Option {
	return func(g *Generator) { g.intn = intn }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now, intn: rand.Intn}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns Prefix, the current Unix time in milliseconds and a
// suffix in [0, 99] without zero padding.
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(len(Prefix) + maxDigits)
	b.WriteString(Prefix)
	b.WriteString(strconv.FormatInt(g.now().UnixMilli(), 10))
	b.WriteString(strconv.Itoa(g.intn(suffixRange)))
	return b.String()
}

// Valid reports whether id has the shape Generate produces.
func Valid(id string) bool {
	digits, ok := strings.CutPrefix(id, Prefix)
	if !ok || digits == "" || len(digits) > maxDigits {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}
