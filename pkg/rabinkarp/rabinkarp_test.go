package rabinkarp

import (
	"math"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		pattern  string
		expected int
	}{
		{"sample", "abcxabcaby", "abcaby", 4},
		{"at start", "abcaby", "abc", 0},
		{"at end", "xxxxab", "ab", 4},
		{"whole haystack", "abc", "abc", 0},
		{"first of many", "abababab", "bab", 1},
		{"missing", "abcxabcaby", "abd", NotFound},
		{"longer than haystack", "ab", "abc", NotFound},
		{"empty pattern", "abc", "", NotFound},
		{"empty haystack", "", "a", NotFound},
		{"arbitrary bytes", "\x00\xff\x10\xff\x10", "\xff\x10", 1},
		{"long pattern", "the quick brown fox jumps over the lazy dog", "jumps over the lazy", 20},
		{"long pattern missing", "the quick brown fox jumps over the lazy dog", "jumps over the lazy cat", NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Index(tt.haystack, tt.pattern))
		})
	}
}

func TestExactBound(t *testing.T) {
	limit := new(big.Int).SetUint64(math.MaxUint64)
	worst := func(m int64) *big.Int {
		// 255 * (26^m - 1) / 25
		p := new(big.Int).Exp(big.NewInt(Base), big.NewInt(m), nil)
		p.Sub(p, big.NewInt(1))
		p.Div(p, big.NewInt(Base-1))
		return p.Mul(p, big.NewInt(255))
	}
	assert.True(t, worst(MaxExactPatternLen).Cmp(limit) <= 0)
	assert.True(t, worst(MaxExactPatternLen+1).Cmp(limit) > 0)

	ffs := strings.Repeat("\xff", MaxExactPatternLen)
	fp, ok := Fingerprint(ffs)
	assert.True(t, ok)
	assert.Equal(t, worst(MaxExactPatternLen).Uint64(), fp)

	_, ok = Fingerprint(ffs + "\xff")
	assert.False(t, ok)
}

func TestFingerprint(t *testing.T) {
	fp, ok := Fingerprint("ab")
	assert.True(t, ok)
	assert.Equal(t, uint64('a')+uint64('b')*Base, fp)

	fp, ok = Fingerprint("")
	assert.True(t, ok)
	assert.Zero(t, fp)
}

func TestWindowRoll(t *testing.T) {
	haystack := "abcxabcaby\x00\xffzz"
	for size := 1; size <= MaxExactPatternLen && size <= len(haystack); size++ {
		w, ok := NewWindow(haystack[:size])
		require.True(t, ok, "size %d", size)
		assert.Equal(t, size, w.Size())
		for i := 0; i+size < len(haystack); i++ {
			w.Roll(haystack[i], haystack[i+size])
			expected, _ := Fingerprint(haystack[i+1 : i+1+size])
			assert.Equal(t, expected, w.Sum(), "size %d offset %d", size, i+1)
		}
	}
}

func TestWindowExactBound(t *testing.T) {
	full := strings.Repeat("\xff", MaxExactPatternLen+2)

	w, ok := NewWindow(full[:MaxExactPatternLen])
	require.True(t, ok)
	w.Roll(0xff, 0xff)
	expected, ok := Fingerprint(full[1 : MaxExactPatternLen+1])
	require.True(t, ok)
	assert.Equal(t, expected, w.Sum())

	// a 13-byte window of 0xff no longer fits uint64
	w, ok = NewWindow(full[:MaxExactPatternLen+1])
	assert.False(t, ok)
	assert.Nil(t, w)

	// Index still handles such patterns through the wrapping path
	assert.Equal(t, 1, Index("a"+full, full[:MaxExactPatternLen+1]))
}

func TestIndexMatchesStringsIndex(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	gen := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = "ab"[r.Intn(2)]
		}
		return string(b)
	}
	for i := 0; i < 2000; i++ {
		haystack := gen(r.Intn(40))
		pattern := gen(1 + r.Intn(20))
		assert.Equal(t, strings.Index(haystack, pattern), Index(haystack, pattern),
			"haystack %q pattern %q", haystack, pattern)
	}
}

func BenchmarkIndex(b *testing.B) {
	haystack := strings.Repeat("abcxabcab", 1000) + "abcaby"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Index(haystack, "abcaby")
	}
}
