package searcher

import (
	"isolation/game"
	"math"
	"sync"
)

// node is a position in the MCTS tree. Children are expanded in action order and
// share the tree between goroutines; a selected child carries a virtual loss until
// its result is backed up.
type node struct {
	sync.RWMutex
	parent   *node
	player   int // Player who moved into this node; rewards are from their perspective
	actions  []game.Action
	children []*node
	rewards  float64
	visits   float64
}

func newNode(parent *node, state game.State) *node {
	var actions []game.Action
	if !state.Terminal() {
		actions = state.Actions()
	}
	return &node{
		parent:   parent,
		player:   1 - state.Player(),
		actions:  actions,
		children: make([]*node, 0, len(actions)),
	}
}

// selectOrExpand returns the next node on the path down the tree with its state.
// selected is false when the returned node was just expanded, or is the terminal
// node itself.
func (n *node) selectOrExpand(state game.State) (child *node, childState game.State, selected bool) {
	n.Lock()
	defer n.Unlock()

	if len(n.actions) == 0 { // Terminal node
		return n, state, false
	}

	if len(n.actions) > len(n.children) { // Expandable node
		next := result(state, n.actions[len(n.children)])
		child := newNode(n, next)
		n.children = append(n.children, child)
		child.applyLoss()
		return child, next, false
	}

	// Fully expanded node
	ith := n.pickChild()
	child = n.children[ith]
	child.applyLoss()
	return child, result(state, n.actions[ith]), true
}

// pickChild normalizes by the children's visits, virtual losses included, since the
// root only gains visits on backup.
func (n *node) pickChild() int {
	visits := 0.0
	for _, child := range n.children {
		visits += child.value()
	}
	if visits == 0 {
		panic("node has children but no visits")
	}

	normalizer := C_SQUARED * math.Log(visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		score := child.score(normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (n *node) applyLoss() {
	n.Lock()
	defer n.Unlock()

	n.rewards += LOSS
	n.visits++
}

func (n *node) score(normalizer float64) float64 {
	n.RLock()
	defer n.RUnlock()

	return ucb1(n.rewards, n.visits, normalizer)
}

// backup records the playout won by winner and returns the parent.
func (n *node) backup(winner int) *node {
	n.Lock()
	defer n.Unlock()

	if n.parent != nil { // Non-root node
		n.rewards -= LOSS
		n.visits--
	}

	n.rewards += reward(winner, n.player)
	n.visits++

	return n.parent
}

func (n *node) value() float64 {
	n.RLock()
	defer n.RUnlock()

	return n.visits
}

// bestAction returns the action of the most visited child, the first one on ties.
func (n *node) bestAction() (game.Action, bool) {
	n.RLock()
	defer n.RUnlock()

	if len(n.children) == 0 {
		return 0, false
	}

	bestIndex := 0
	maxValue := n.children[0].value()
	for i, child := range n.children[1:] {
		if v := child.value(); v > maxValue {
			maxValue = v
			bestIndex = i + 1
		}
	}
	return n.actions[bestIndex], true
}
