package datastructure

import (
	"strconv"

	"github.com/pkg/errors"
)

const alphabetSize = 26

// ErrInvalidCharacter 单词中出现 'a'-'z' 以外的字符
var ErrInvalidCharacter = errors.New("invalid character, only lowercase letters a-z are allowed")

// NodeID 节点在 arena 中的下标，根节点固定为 0
type NodeID int32

const (
	RootID NodeID = 0
	noNode NodeID = 0 // 根节点不会成为子节点，0 可以表示空槽
)

type TrieNode struct {
	children [alphabetSize]NodeID
	isEnd    bool
}

// Trie 小写字母前缀树，节点存放在 arena 中，只增不删。
// 非并发安全，并发使用时需由调用方加锁
type Trie struct {
	nodes []TrieNode
	words int
}

func NewTrie() *Trie {
	t := &Trie{}
	t.newNode()
	return t
}

// newNode 在 arena 中分配一个空节点（26 个空槽，isEnd 为 false）
func (t *Trie) newNode() NodeID {
	t.nodes = append(t.nodes, TrieNode{})
	return NodeID(len(t.nodes) - 1)
}

// ValidateWord 检查整个单词，保证插入失败时不会留下半截路径
func ValidateWord(word string) error {
	for i := 0; i < len(word); i++ {
		if ch := word[i]; ch < 'a' || ch > 'z' {
			return errors.Wrapf(ErrInvalidCharacter, "%s at offset %d in %q", strconv.QuoteRune(rune(ch)), i, word)
		}
	}
	return nil
}

// Insert 插入单词，重复插入不影响结果
func (t *Trie) Insert(word string) error {
	if err := ValidateWord(word); err != nil {
		return err
	}
	node := RootID
	for i := 0; i < len(word); i++ {
		idx := word[i] - 'a'
		if t.nodes[node].children[idx] == noNode {
			child := t.newNode()
			t.nodes[node].children[idx] = child
		}
		node = t.nodes[node].children[idx]
	}
	if !t.nodes[node].isEnd {
		t.nodes[node].isEnd = true
		t.words++
	}
	return nil
}

// walk 沿单词路径下降，路径不存在时 ok 为 false
func (t *Trie) walk(word string) (node NodeID, ok bool, err error) {
	if err = ValidateWord(word); err != nil {
		return RootID, false, err
	}
	for i := 0; i < len(word); i++ {
		next := t.nodes[node].children[word[i]-'a']
		if next == noNode {
			return node, false, nil
		}
		node = next
	}
	return node, true, nil
}

// Contains 完全匹配，只是已插入单词的前缀时返回 false
func (t *Trie) Contains(word string) (bool, error) {
	node, ok, err := t.walk(word)
	if err != nil || !ok {
		return false, err
	}
	return t.nodes[node].isEnd, nil
}

// HasPrefix 是否存在以 prefix 开头的单词
func (t *Trie) HasPrefix(prefix string) (bool, error) {
	node, ok, err := t.walk(prefix)
	if err != nil || !ok {
		return false, err
	}
	return t.nodes[node].isEnd || t.hasChild(node), nil
}

func (t *Trie) hasChild(node NodeID) bool {
	for _, c := range t.nodes[node].children {
		if c != noNode {
			return true
		}
	}
	return false
}

// PrefixSearch 已插入的单词中是否有 word 的前缀
func (t *Trie) PrefixSearch(word string) (bool, error) {
	if err := ValidateWord(word); err != nil {
		return false, err
	}
	node := RootID
	if t.nodes[node].isEnd {
		return true, nil
	}
	for i := 0; i < len(word); i++ {
		node = t.nodes[node].children[word[i]-'a']
		if node == noNode {
			return false, nil
		}
		if t.nodes[node].isEnd {
			return true, nil
		}
	}
	return false, nil
}

// Len 返回不同单词的数目
func (t *Trie) Len() int {
	return t.words
}

// Nodes 返回 arena 中的节点数（含根节点）
func (t *Trie) Nodes() int {
	return len(t.nodes)
}
