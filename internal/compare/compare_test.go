package compare_test

import (
	"testing"

	"github.com/programme-lv/batchjudge/internal/compare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitespace(t *testing.T) {
	c := compare.WhitespaceComparator{}
	tests := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"identical", "1 2\n3\n", "1 2\n3\n", true},
		{"missing trailing newline", "5\n", "5", true},
		{"trailing spaces and blank lines", "1 2\n3\n", "1 2   \n3\n\n\n", true},
		{"collapsed inner spacing", "1 2 3", "1\t 2  3", true},
		{"windows line endings", "a\nb\n", "a\r\nb\r\n", true},
		{"different token", "1 2\n", "1 3\n", false},
		{"tokens split across lines", "1 2\n", "1\n2\n", false},
		{"extra line", "1\n", "1\n2\n", false},
		{"empty vs blank", "", "\n\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Compare([]byte(tt.expected), []byte(tt.actual)))
		})
	}
}

func TestExact(t *testing.T) {
	c := compare.ExactComparator{}
	assert.True(t, c.Compare([]byte("5\n"), []byte("5\n")))
	assert.False(t, c.Compare([]byte("5\n"), []byte("5")))
}

func TestExactImpliesWhitespace(t *testing.T) {
	samples := []string{"", "1", "a b\n", "  x\t\ny  \n\n", "3.14\r\n"}
	for _, s := range samples {
		require.True(t, compare.ExactComparator{}.Compare([]byte(s), []byte(s)))
		assert.True(t, compare.WhitespaceComparator{}.Compare([]byte(s), []byte(s)), "%q", s)
	}
}

func TestNumeric(t *testing.T) {
	loose := compare.NumericComparator{AbsEpsilon: 1e-3, RelEpsilon: 1e-3}
	tight := compare.NumericComparator{AbsEpsilon: 1e-6, RelEpsilon: 1e-6}

	assert.True(t, loose.Compare([]byte("3.14159"), []byte("3.14160")))
	assert.False(t, tight.Compare([]byte("3.14159"), []byte("3.14160")))

	assert.True(t, tight.Compare([]byte("1000000"), []byte("1000000.5")), "relative bound")
	assert.True(t, tight.Compare([]byte("YES 1.0"), []byte("YES   1")))
	assert.False(t, tight.Compare([]byte("YES 1"), []byte("NO 1")))
	assert.False(t, tight.Compare([]byte("1 2"), []byte("1")))
	assert.True(t, tight.Compare([]byte("nan"), []byte("NaN")))
	assert.False(t, tight.Compare([]byte("nan"), []byte("1")))
	assert.True(t, tight.Compare([]byte("inf"), []byte("+Inf")))
	assert.False(t, tight.Compare([]byte("inf"), []byte("-inf")))

	strict := compare.NumericComparator{}
	assert.True(t, strict.Compare([]byte("2.50"), []byte("2.5")))
	assert.False(t, strict.Compare([]byte("2.5"), []byte("2.5000001")))
}

func TestParseMode(t *testing.T) {
	m, err := compare.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, compare.Whitespace, m)

	m, err = compare.ParseMode(" Numeric ")
	require.NoError(t, err)
	assert.Equal(t, compare.Numeric, m)

	_, err = compare.ParseMode("checker")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	c, err := compare.New(compare.Numeric, 0.5, 0)
	require.NoError(t, err)
	assert.True(t, c.Compare([]byte("1"), []byte("1.4")))

	_, err = compare.New("bogus", 0, 0)
	assert.Error(t, err)
}
