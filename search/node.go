package search

import (
	"fmt"

	"github.com/katalvlaran/itineria/core"
)

// Node is a search-tree node wrapping a graph location.
//
// Cost and Priority are deliberately separate: Cost is always the actual cost
// accumulated from the root under the active metric, while Priority is the
// frontier key (cost for uniform-cost, heuristic for greedy, cost + heuristic
// for A*, zero for the uninformed strategies).
//
// A Node is created once per generation step and never mutated afterwards.
// Nodes form a tree owned by a single search.
type Node struct {
	// State is the location this node stands for.
	State *core.Location

	// Parent is the tree parent; nil only for the root.
	Parent *Node

	// Link is the link used to reach State from Parent.State; nil only for the root.
	Link *core.Link

	// Cost is the accumulated path cost from the root.
	Cost float64

	// Priority is the key the node was pushed with.
	Priority float64

	// Depth is the number of links between the root and this node.
	Depth int
}

// newRoot creates the root node of a search at loc.
func newRoot(loc *core.Location, priority float64) *Node {
	return &Node{State: loc, Priority: priority}
}

// newChild creates the node reached from parent through adj.
func newChild(parent *Node, adj core.Adjacent, cost, priority float64) *Node {
	return &Node{
		State:    adj.Location,
		Parent:   parent,
		Link:     adj.Link,
		Cost:     cost,
		Priority: priority,
		Depth:    parent.Depth + 1,
	}
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.Parent == nil }

// Path returns the locations from the root to n, in order.
func (n *Node) Path() []*core.Location {
	if n == nil {
		return nil
	}
	path := make([]*core.Location, n.Depth+1)
	for cur, i := n, n.Depth; cur != nil; cur, i = cur.Parent, i-1 {
		path[i] = cur.State
	}

	return path
}

func (n *Node) String() string {
	if n == nil {
		return "<no path>"
	}

	return fmt.Sprintf("%s (cost=%g, depth=%d)", n.State.Name, n.Cost, n.Depth)
}

// ReconstructPath walks parent links from goal back to the root, collecting
// the link used at each step, and returns them in start→goal order together
// with the total cost.
//
// The total cost is goal.Cost for every strategy; it is never a heuristic value.
// A nil node yields (nil, 0). A root node yields an empty, non-nil slice.
func ReconstructPath(goal *Node) ([]*core.Link, float64) {
	if goal == nil {
		return nil, 0
	}
	links := make([]*core.Link, 0, goal.Depth)
	for cur := goal; cur.Parent != nil; cur = cur.Parent {
		links = append(links, cur.Link)
	}
	// reverse to get start → goal
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}

	return links, goal.Cost
}
