package isa

import (
	"fmt"
	"sync"
)

// DecodeTree is a binary trie over the opcode patterns. Nodes live in one
// slice and refer to their children by index.
type DecodeTree struct {
	nodes []treeNode
}

type treeNode struct {
	next [2]int32 // child index per bit, 0 when absent (the root is never a child)
	op   Op
	leaf bool
}

// NewDecodeTree builds the trie for the opcode table. It fails if the
// patterns are not prefix-free.
func NewDecodeTree() (*DecodeTree, error) {
	t := &DecodeTree{nodes: make([]treeNode, 1, 64)}
	for op := range opCount {
		if err := t.insert(op, descriptors[op].Pattern); err != nil {
			return nil, err
		}
	}
	return t, nil
}

var (
	defaultTree     *DecodeTree
	defaultTreeOnce sync.Once
)

// Tree returns the shared decode trie for the opcode table.
func Tree() *DecodeTree {
	defaultTreeOnce.Do(func() {
		t, err := NewDecodeTree()
		if err != nil {
			panic(err)
		}
		defaultTree = t
	})
	return defaultTree
}

func (t *DecodeTree) insert(op Op, pattern string) error {
	if pattern == "" {
		return fmt.Errorf("opcode %s has an empty pattern", op)
	}
	n := int32(0)
	for i := 0; i < len(pattern); i++ {
		if t.nodes[n].leaf {
			return fmt.Errorf("opcode %s pattern %s extends %s", op, pattern, t.nodes[n].op)
		}
		bit := pattern[i] - '0'
		if bit > 1 {
			return fmt.Errorf("opcode %s pattern %s is not binary", op, pattern)
		}
		child := t.nodes[n].next[bit]
		if child == 0 {
			child = int32(len(t.nodes))
			t.nodes = append(t.nodes, treeNode{})
			t.nodes[n].next[bit] = child
		}
		n = child
	}
	node := &t.nodes[n]
	if node.leaf || node.next[0] != 0 || node.next[1] != 0 {
		return fmt.Errorf("opcode %s pattern %s collides with another pattern", op, pattern)
	}
	node.op = op
	node.leaf = true
	return nil
}

// Cursor walks the trie one bit at a time.
type Cursor struct {
	tree  *DecodeTree
	node  int32
	depth int
}

// Start returns a cursor positioned at the root.
func (t *DecodeTree) Start() Cursor {
	return Cursor{tree: t}
}

// Step consumes one bit. It returns the opcode and done=true once a full
// pattern has been read, and ok=false when the bits read so far match no
// pattern.
func (c *Cursor) Step(bit bool) (op Op, done, ok bool) {
	idx := 0
	if bit {
		idx = 1
	}
	next := c.tree.nodes[c.node].next[idx]
	if next == 0 {
		return 0, false, false
	}
	c.node = next
	c.depth++
	n := c.tree.nodes[next]
	if n.leaf {
		return n.op, true, true
	}
	return 0, false, true
}

// Depth returns the number of bits consumed.
func (c *Cursor) Depth() int {
	return c.depth
}
