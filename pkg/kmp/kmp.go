// Package kmp 基于失配表（前缀函数）的子串查找
package kmp

// NotFound 未找到
const NotFound = -1

// FailureTable 第 k 项为 pattern[:k+1] 的最长相等真前缀与后缀的长度
func FailureTable(pattern string) []int {
	table := make([]int, len(pattern))
	length := 0
	for i := 1; i < len(pattern); i++ {
		for length > 0 && pattern[i] != pattern[length] {
			length = table[length-1]
		}
		if pattern[i] == pattern[length] {
			length++
		}
		table[i] = length
	}
	return table
}

// Search 按升序返回所有出现位置（包括重叠的），空模式串或没有匹配时返回 nil
func Search(haystack, pattern string) []int {
	var found []int
	scan(haystack, pattern, func(start int) bool {
		found = append(found, start)
		return true
	})
	return found
}

// Index 返回第一次出现的位置，找到即停止
func Index(haystack, pattern string) int {
	idx := NotFound
	scan(haystack, pattern, func(start int) bool {
		idx = start
		return false
	})
	return idx
}

// scan 每找到一处匹配调用一次 emit，emit 返回 false 时停止
func scan(haystack, pattern string, emit func(start int) bool) {
	m := len(pattern)
	if m == 0 || m > len(haystack) {
		return
	}
	table := FailureTable(pattern)
	for i, j := 0, 0; i < len(haystack); {
		if haystack[i] == pattern[j] {
			i++
			j++
			if j == m {
				if !emit(i - j) {
					return
				}
				j = table[j-1]
			}
			continue
		}
		if j > 0 {
			j = table[j-1]
		} else {
			i++
		}
	}
}
