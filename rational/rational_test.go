package rational_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacationdb/rational"
)

func TestParseRoundTrip(t *testing.T) {
	cases := map[string]string{
		"-1":             "-1",
		"0":              "0",
		"1":              "1",
		"-2/2":           "-1",
		"1/2":            "1/2",
		"2/-2":           "-1",
		"-3.1":           "-31/10",
		"-2.6":           "-13/5",
		"0.1":            "1/10",
		"3.1/12.532":     "775/3133",
		"-3.1/-12.532":   "775/3133",
		"0.1/-12.532":    "-25/3133",
		"-0":             "0",
	}

	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			q, err := rational.Parse(in)
			require.NoError(t, err)
			assert.Equal(t, want, q.String())
		})
	}
}

func TestParseRejectsInvalidShapes(t *testing.T) {
	invalid := []string{"", " ", "1 ", " 1", "1.", ".1", "1//2", "1/2/3", "abc", "1-2", "1/", "/1", "1.2.3"}
	for _, in := range invalid {
		t.Run(in, func(t *testing.T) {
			_, err := rational.Parse(in)
			assert.ErrorIs(t, err, rational.ErrInvalidNumber)
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := rational.MustParse("1/2")
	b := rational.MustParse("1/3")

	assert.Equal(t, "5/6", a.Add(b).String())
	assert.Equal(t, "1/6", a.Sub(b).String())
	assert.Equal(t, "1/6", a.Mul(b).String())
	assert.Equal(t, "3/2", a.Div(b).String())
	assert.Equal(t, "-1/2", a.Neg().String())
	assert.True(t, a.Neg().Abs().Equal(a))
	assert.True(t, b.LessThan(a))
	assert.True(t, a.GreaterThan(b))
	assert.Equal(t, b, a.Min(b))
	assert.Equal(t, a, a.Max(b))
}

func TestWithin(t *testing.T) {
	x := rational.MustParse("75")
	target := rational.MustParse("75")
	eps := rational.MustParse("1/2")
	assert.True(t, rational.Within(x, target, eps))
	assert.True(t, rational.Within(rational.MustParse("75.4"), target, eps))
	assert.False(t, rational.Within(rational.MustParse("76"), target, eps))
}

func TestZeroIsNotNegativeOrPositive(t *testing.T) {
	z := rational.Zero()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsNegative())
	assert.False(t, z.IsPositive())
}
