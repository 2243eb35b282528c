package matcher

import (
	"EH-Matcher/pkg/kmp"
	"EH-Matcher/pkg/rabinkarp"
	"EH-Matcher/pkg/system/sysPrint"
	"EH-Matcher/pkg/utils/byteStringConv"
	"EH-Matcher/pkg/utils/datastructure"
	"strconv"
	"strings"
)

const (
	trueString  = "true"
	falseString = "false"
)

var (
	errWrongNumberArgs = []byte(sysPrint.ErrWrongNumberArgs.Error())
)

func boolReply(b bool) []byte {
	if b {
		return []byte(trueString)
	}
	return []byte(falseString)
}

// formatIndices 格式化为 [i j k]
func formatIndices(indices []int) []byte {
	b := strings.Builder{}
	b.WriteByte('[')
	for i, idx := range indices {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	b.WriteByte(']')
	return []byte(b.String())
}

// execInfo info 命令
// 获取 matcher 相关信息
func execInfo(c *client, args [][]byte) error {
	if len(args) != 1 {
		return c.Reply(errWrongNumberArgs)
	}
	mm := c.mm
	mm.dictLock.RLock()
	words, nodes := mm.dict.Len(), mm.dict.Nodes()
	mm.dictLock.RUnlock()

	builder := strings.Builder{}
	builder.WriteString("[INFO]\n")
	builder.WriteString("manager address: " + mm.Addr() + "\n")
	builder.WriteString("connected clients: " + strconv.Itoa(mm.ClientCount()) + "\n")
	builder.WriteString("query buffer size: " + strconv.Itoa(mm.config.QueryBufferSize) + "\n")
	builder.WriteString("dictionary words: " + strconv.Itoa(words) + "\n")
	builder.WriteString("dictionary nodes: " + strconv.Itoa(nodes) + "\n")
	builder.WriteString("rabin-karp exact pattern length: " + strconv.Itoa(rabinkarp.MaxExactPatternLen) + "\n")
	return c.Reply(byteStringConv.StringToBytes(builder.String()))
}

// execRabinKarp 查找第一次出现的位置
// 输入格式：RK [haystack] [pattern]
// 示例：RK abcxabcaby abcaby
// 找到返回下标，否则返回 -1
func execRabinKarp(c *client, args [][]byte) error {
	if len(args) != 3 {
		return c.Reply(errWrongNumberArgs)
	}
	idx := rabinkarp.Index(byteStringConv.BytesToString(args[1]), byteStringConv.BytesToString(args[2]))
	return c.Reply([]byte(strconv.Itoa(idx)))
}

// execKMP 查找所有出现的位置（包括重叠）
// 输入格式：KMP [haystack] [pattern]
// 示例：KMP abcxabcabcaby abcaby
func execKMP(c *client, args [][]byte) error {
	if len(args) != 3 {
		return c.Reply(errWrongNumberArgs)
	}
	indices := kmp.Search(byteStringConv.BytesToString(args[1]), byteStringConv.BytesToString(args[2]))
	return c.Reply(formatIndices(indices))
}

// execFailureTable 输出模式串的失配表
// 输入格式：LPS [pattern]
func execFailureTable(c *client, args [][]byte) error {
	if len(args) != 2 {
		return c.Reply(errWrongNumberArgs)
	}
	return c.Reply(formatIndices(kmp.FailureTable(byteStringConv.BytesToString(args[1]))))
}

// execInsert 向词典插入单词
// 输入格式：Insert [word]...
// 示例：Insert zbc abgl cdf
// 单词只能包含小写字母 a-z，任一单词非法时整条命令不生效
func execInsert(c *client, args [][]byte) error {
	if len(args) < 2 {
		return c.Reply(errWrongNumberArgs)
	}
	for _, w := range args[1:] {
		if err := datastructure.ValidateWord(byteStringConv.BytesToString(w)); err != nil {
			return sysPrint.ErrorMsg(err.Error())
		}
	}
	mm := c.mm
	mm.dictLock.Lock()
	for _, w := range args[1:] {
		// 已经校验过，不会出错
		_ = mm.dict.Insert(byteStringConv.BytesToString(w))
	}
	mm.dictLock.Unlock()
	return c.Reply(ReplyOK)
}

// execContains 查询单词是否在词典中（完全匹配）
// 输入格式：Contains [word]
func execContains(c *client, args [][]byte) error {
	if len(args) != 2 {
		return c.Reply(errWrongNumberArgs)
	}
	mm := c.mm
	mm.dictLock.RLock()
	ok, err := mm.dict.Contains(byteStringConv.BytesToString(args[1]))
	mm.dictLock.RUnlock()
	if err != nil {
		return sysPrint.ErrorMsg(err.Error())
	}
	return c.Reply(boolReply(ok))
}

// execPrefix 查询词典中是否有以 prefix 开头的单词
// 输入格式：Prefix [prefix]
func execPrefix(c *client, args [][]byte) error {
	if len(args) != 2 {
		return c.Reply(errWrongNumberArgs)
	}
	mm := c.mm
	mm.dictLock.RLock()
	ok, err := mm.dict.HasPrefix(byteStringConv.BytesToString(args[1]))
	mm.dictLock.RUnlock()
	if err != nil {
		return sysPrint.ErrorMsg(err.Error())
	}
	return c.Reply(boolReply(ok))
}

// execShutdown 关闭 matcher manager 命令
// 输入格式：Shutdown
func execShutdown(c *client, args [][]byte) error {
	if len(args) != 1 {
		return c.Reply(errWrongNumberArgs)
	}
	if err := c.Reply(ReplyOK); err != nil {
		return err
	}
	c.mm.Shutdown()
	return nil
}

func (mm *matcherManager) registerCommands() {
	mm.RegisterCommand("info", execInfo)
	mm.RegisterCommand("rk", execRabinKarp)
	mm.RegisterCommand("kmp", execKMP)
	mm.RegisterCommand("lps", execFailureTable)
	mm.RegisterCommand("insert", execInsert)
	mm.RegisterCommand("contains", execContains)
	mm.RegisterCommand("prefix", execPrefix)
	mm.RegisterCommand("shutdown", execShutdown)
}
