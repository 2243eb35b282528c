// Package rabinkarp 滚动指纹查找模式串第一次出现的位置，指纹相等后逐字节确认，
// 返回的下标一定是真实匹配
package rabinkarp

const (
	// NotFound 未找到
	NotFound = -1

	Base = 26

	// MaxExactPatternLen 不取模的加权和不会溢出 uint64 的最大窗口长度：
	// 255*(26^12-1)/25 < 2^64，255*(26^13-1)/25 已经溢出
	MaxExactPatternLen = 12
)

// Fingerprint 返回 Σ window[i]*26^i，窗口超过 MaxExactPatternLen 时 ok 为 false（结果可能已溢出）
func Fingerprint(window string) (fp uint64, ok bool) {
	w := uint64(1)
	for i := 0; i < len(window); i++ {
		fp += uint64(window[i]) * w
		w *= Base
	}
	return fp, len(window) <= MaxExactPatternLen
}

// Window 固定长度窗口的精确指纹
type Window struct {
	fp   uint64
	high uint64 // 26^(size-1)
	size int
}

// NewWindow 窗口长度为 len(s)。超过 MaxExactPatternLen 时指纹会溢出，Roll 中的除法不再成立，
// 返回 nil, false
func NewWindow(s string) (*Window, bool) {
	fp, ok := Fingerprint(s)
	if !ok {
		return nil, false
	}
	return &Window{fp: fp, high: pow(len(s) - 1), size: len(s)}, true
}

// Roll 窗口右移一位：减去权重为 26^0 的 out，整体除以 26，再加上权重为 26^(size-1) 的 in。
// 减去 out 之后剩余部分是 Base 的整数倍，除法没有精度损失
func (w *Window) Roll(out, in byte) {
	w.fp = (w.fp-uint64(out))/Base + uint64(in)*w.high
}

func (w *Window) Sum() uint64 {
	return w.fp
}

func (w *Window) Size() int {
	return w.size
}

// Index 返回 pattern 在 haystack 中第一次出现的下标，空模式串或模式串比 haystack 长时返回 NotFound
func Index(haystack, pattern string) int {
	m := len(pattern)
	if m == 0 || m > len(haystack) {
		return NotFound
	}
	if m > MaxExactPatternLen {
		return indexWrapping(haystack, pattern)
	}

	want, _ := Fingerprint(pattern)
	w, _ := NewWindow(haystack[:m])
	for i := 0; ; i++ {
		if w.Sum() == want && haystack[i:i+m] == pattern {
			return i
		}
		if i+m >= len(haystack) {
			return NotFound
		}
		w.Roll(haystack[i], haystack[i+m])
	}
}

// indexWrapping 处理超过 MaxExactPatternLen 的模式串：Horner 顺序（首字节权重最高），
// 按 2^64 自然溢出，溢出后除法不再成立，所以用乘法滚动
func indexWrapping(haystack, pattern string) int {
	m := len(pattern)
	high := pow(m - 1)
	var want, fp uint64
	for i := 0; i < m; i++ {
		want = want*Base + uint64(pattern[i])
		fp = fp*Base + uint64(haystack[i])
	}
	for i := 0; ; i++ {
		if fp == want && haystack[i:i+m] == pattern {
			return i
		}
		if i+m >= len(haystack) {
			return NotFound
		}
		fp = (fp-uint64(haystack[i])*high)*Base + uint64(haystack[i+m])
	}
}

func pow(e int) uint64 {
	p := uint64(1)
	for ; e > 0; e-- {
		p *= Base
	}
	return p
}
