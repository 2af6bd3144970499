package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLitPackingAndNegation(t *testing.T) {
	cases := []struct {
		name    string
		v       Var
		negated bool
	}{
		{"positive var 0", 0, false},
		{"negative var 0", 0, true},
		{"positive var 41", 41, false},
		{"negative var 41", 41, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := NewLit(c.v, c.negated)
			assert.Equal(t, c.v, l.Var())
			assert.Equal(t, c.negated, l.IsNegative())
			assert.Equal(t, !c.negated, l.IsPositive())

			neg := l.Negate()
			assert.Equal(t, c.v, neg.Var())
			assert.NotEqual(t, l.IsNegative(), neg.IsNegative())
			assert.Equal(t, l, neg.Negate())
		})
	}
}

func TestDimacsRoundTrip(t *testing.T) {
	for _, n := range []int{1, -1, 42, -42, 1000000} {
		lit := LitFromDimacs(n)
		require.Equal(t, n, lit.DimacsInt())
	}
}

func TestLitValue(t *testing.T) {
	pos := NewLit(3, false)
	neg := NewLit(3, true)

	assert.Equal(t, LUnassigned, litValue(pos, LUnassigned))
	assert.Equal(t, LTrue, litValue(pos, LTrue))
	assert.Equal(t, LFalse, litValue(pos, LFalse))

	assert.Equal(t, LFalse, litValue(neg, LTrue))
	assert.Equal(t, LTrue, litValue(neg, LFalse))
}
