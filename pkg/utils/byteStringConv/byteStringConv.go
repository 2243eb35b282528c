package byteStringConv

import (
	"unsafe"
)

// BytesToString 零拷贝转换，注意内存安全：返回的 string 与 b 共享内存，之后不能再修改 b
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes 零拷贝转换，返回的切片只读，写入会破坏 string 的不可变性
func StringToBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
