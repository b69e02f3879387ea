package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// NodeID is a handle to a node within a Tree.
type NodeID int32

// InvalidNode is returned by some methods to clearly indicate that no node
// is being returned.
const InvalidNode = NodeID(-1)

// Tree is a Huffman code tree.  Nodes live in a single arena and refer to
// their children by NodeID.  Leaves occupy the first NumSymbols() IDs in
// ascending symbol order; every merged node is appended after them in the
// order it was created, and the last node is the root.
type Tree struct {
	nodes      []treeNode
	numSymbols int
}

type treeNode struct {
	symbol Symbol
	freq   uint64
	left   NodeID
	right  NodeID
}

// BuildTree builds the Huffman tree for the given frequency table.  Symbols
// with a count of 0 are left out of the tree.  An *EmptyAlphabetError is
// returned if no symbol remains, and a *FrequencyOverflowError if the counts
// sum to more than a uint64 holds.
//
// The result is a pure function of the table.  Nodes are merged in order of
// (frequency, NodeID) ascending: equal frequencies resolve to the smaller
// symbol first, and leaves win over merged nodes of the same frequency.  The
// first node popped becomes the left child, the second the right child.
//
func BuildTree(freqs FrequencyTable) (*Tree, error) {
	symbols := freqs.Symbols()

	// Every merged frequency is bounded by the total, so checking the total
	// once rules out overflow while merging.
	var total uint64
	t := &Tree{nodes: make([]treeNode, 0, 2*len(symbols))}
	for _, symbol := range symbols {
		freq := freqs[symbol]
		if freq == 0 {
			continue
		}
		if total+freq < total {
			return nil, &FrequencyOverflowError{Symbol: symbol, Count: freq}
		}
		total += freq
		t.nodes = append(t.nodes, treeNode{symbol, freq, InvalidNode, InvalidNode})
	}
	t.numSymbols = len(t.nodes)

	if t.numSymbols == 0 {
		return nil, &EmptyAlphabetError{}
	}

	// Step 1: build a minheap of leaves.

	h := nodeHeap{tree: t, list: make([]NodeID, t.numSymbols)}
	for index := range h.list {
		h.list[index] = NodeID(index)
	}
	h.Init()

	// Step 2: pop the two lightest nodes, join them under a new node, and
	// push that back until a single node (the root) remains.

	for h.Len() > 1 {
		a := heap.Pop(&h).(NodeID)
		b := heap.Pop(&h).(NodeID)

		freqA, freqB := t.nodes[a].freq, t.nodes[b].freq
		freqSum := freqA + freqB
		assert.Assertf(freqSum >= freqA && freqSum <= total, "frequency overflow: %d + %d", freqA, freqB)

		t.nodes = append(t.nodes, treeNode{symbol: -1, freq: freqSum, left: a, right: b})
		heap.Push(&h, NodeID(len(t.nodes)-1))
	}

	assert.Assertf(len(t.nodes) == 2*t.numSymbols-1, "tree has %d nodes for %d symbols", len(t.nodes), t.numSymbols)
	return t, nil
}

// Root returns the ID of the root node.
func (t *Tree) Root() NodeID {
	return NodeID(len(t.nodes) - 1)
}

// Len returns the total number of nodes, leaves included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumSymbols returns the number of leaves.
func (t *Tree) NumSymbols() int {
	return t.numSymbols
}

// IsLeaf reports whether the node has no children.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.nodes[id].left == InvalidNode
}

// Symbol returns the symbol of a leaf, or -1 for a merged node.
func (t *Tree) Symbol(id NodeID) Symbol {
	return t.nodes[id].symbol
}

// Freq returns the frequency of the node: the symbol count for a leaf, the
// sum of its children's frequencies otherwise.
func (t *Tree) Freq(id NodeID) uint64 {
	return t.nodes[id].freq
}

// Children returns the left and right children of the node, or InvalidNode
// twice for a leaf.
func (t *Tree) Children(id NodeID) (left NodeID, right NodeID) {
	node := t.nodes[id]
	return node.left, node.right
}

// Step follows one bit from the given node: 0 goes left, 1 goes right.
func (t *Tree) Step(id NodeID, bit bool) NodeID {
	if bit {
		return t.nodes[id].right
	}
	return t.nodes[id].left
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.Root())
	for id := NodeID(0); id < NodeID(len(t.nodes)); id++ {
		node := t.nodes[id]
		if node.left == InvalidNode {
			fmt.Fprintf(&buf, "\tNode(%d) = %s x%d\n", id, strconv.QuoteRune(node.symbol), node.freq)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = {%d, %d} x%d\n", id, node.left, node.right, node.freq)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeHeap {{{

type nodeHeap struct {
	tree *Tree
	list []NodeID
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	fa, fb := h.tree.nodes[a].freq, h.tree.nodes[b].freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(NodeID))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
