// Package ostree implements an order-statistics AVL tree: a height
// balanced search tree whose nodes carry subtree sizes, giving rank
// queries and k-th element access in O(log n). A side map from item id
// to node makes point lookups and score updates O(log n) without a
// search by key.
//
// The before func must define a strict total order. Callers whose
// natural ordering allows ties break them by id before handing the
// comparator to New.
package ostree

// Tree is an order-statistics AVL tree over items of type T.
// Zero value is not usable; construct with New.
type Tree[T any] struct {
	root   *node[T]
	byID   map[string]*node[T]
	before func(T, T) bool
	idOf   func(T) string
}

type node[T any] struct {
	item   T
	height int
	size   int
	left   *node[T]
	right  *node[T]
}

// New builds an empty tree ordered by before, with identity given by
// idOf.
func New[T any](before func(T, T) bool, idOf func(T) string) *Tree[T] {
	return &Tree[T]{
		byID:   make(map[string]*node[T]),
		before: before,
		idOf:   idOf,
	}
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int {
	return size(t.root)
}

// Height returns the height of the tree, 0 when empty.
func (t *Tree[T]) Height() int {
	return height(t.root)
}

func size[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.size
}

func height[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node[T]) recompute() {
	n.height = max(height(n.left), height(n.right)) + 1
	n.size = size(n.left) + size(n.right) + 1
}

func balanceFactor[T any](n *node[T]) int {
	return height(n.left) - height(n.right)
}

func rotateRight[T any](n *node[T]) *node[T] {
	l := n.left
	n.left = l.right
	l.right = n
	n.recompute()
	l.recompute()
	return l
}

func rotateLeft[T any](n *node[T]) *node[T] {
	r := n.right
	n.right = r.left
	r.left = n
	n.recompute()
	r.recompute()
	return r
}

// rebalance restores the AVL invariant at n after an insert or delete
// in one of its subtrees.
func rebalance[T any](n *node[T]) *node[T] {
	n.recompute()
	bf := balanceFactor(n)
	switch {
	case bf > 1:
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

// Insert adds item to the tree. An existing item with the same id is
// removed first, so Insert doubles as upsert.
func (t *Tree[T]) Insert(item T) {
	id := t.idOf(item)
	if _, ok := t.byID[id]; ok {
		t.RemoveByID(id)
	}
	n := &node[T]{item: item, height: 1, size: 1}
	t.byID[id] = n
	t.root = t.insert(t.root, n)
}

func (t *Tree[T]) insert(cur, n *node[T]) *node[T] {
	if cur == nil {
		return n
	}
	if t.before(n.item, cur.item) {
		cur.left = t.insert(cur.left, n)
	} else {
		cur.right = t.insert(cur.right, n)
	}
	return rebalance(cur)
}

// FindByID returns the item stored under id.
func (t *Tree[T]) FindByID(id string) (T, bool) {
	if n, ok := t.byID[id]; ok {
		return n.item, true
	}
	var zero T
	return zero, false
}

// RemoveByID deletes the item stored under id and reports whether it
// was present.
func (t *Tree[T]) RemoveByID(id string) bool {
	n, ok := t.byID[id]
	if !ok {
		return false
	}
	t.root = t.remove(t.root, n.item, id)
	delete(t.byID, id)
	return true
}

func (t *Tree[T]) remove(cur *node[T], item T, id string) *node[T] {
	if cur == nil {
		return nil
	}
	switch {
	case t.before(item, cur.item):
		cur.left = t.remove(cur.left, item, id)
	case t.before(cur.item, item):
		cur.right = t.remove(cur.right, item, id)
	default:
		if cur.left == nil {
			return cur.right
		}
		if cur.right == nil {
			return cur.left
		}
		// Two children: pull up the in-order successor and delete it
		// from the right subtree. The node object survives with a new
		// item, so the id map entry for the moved item must follow.
		succ := leftmost(cur.right)
		cur.item = succ.item
		t.byID[t.idOf(succ.item)] = cur
		cur.right = t.remove(cur.right, succ.item, t.idOf(succ.item))
	}
	return rebalance(cur)
}

func leftmost[T any](n *node[T]) *node[T] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// Update replaces the item stored under id, repositioning it in the
// ordering. Reports whether the id was present.
func (t *Tree[T]) Update(id string, item T) bool {
	if !t.RemoveByID(id) {
		return false
	}
	t.Insert(item)
	return true
}

// Kth returns the k-th ranked item, 1-based. The first-ranked item is
// the leftmost in the ordering.
func (t *Tree[T]) Kth(k int) (T, bool) {
	var zero T
	if k < 1 || k > size(t.root) {
		return zero, false
	}
	cur := t.root
	for {
		left := size(cur.left)
		switch {
		case k <= left:
			cur = cur.left
		case k == left+1:
			return cur.item, true
		default:
			k -= left + 1
			cur = cur.right
		}
	}
}

// RankOf returns the 1-based rank of the item stored under id.
func (t *Tree[T]) RankOf(id string) (int, bool) {
	n, ok := t.byID[id]
	if !ok {
		return 0, false
	}
	rank := 1
	cur := t.root
	for cur != nil {
		switch {
		case t.before(n.item, cur.item):
			cur = cur.left
		case t.before(cur.item, n.item):
			rank += size(cur.left) + 1
			cur = cur.right
		default:
			return rank + size(cur.left), true
		}
	}
	return 0, false
}

// TopK returns the first k items of the ordering without walking the
// whole tree.
func (t *Tree[T]) TopK(k int) []T {
	if k <= 0 || t.root == nil {
		return nil
	}
	k = min(k, size(t.root))
	out := make([]T, 0, k)
	t.root.inOrder(func(item T) bool {
		out = append(out, item)
		return len(out) < k
	})
	return out
}

// InOrder visits every item in ranking order until fn returns false.
func (t *Tree[T]) InOrder(fn func(T) bool) {
	if t.root != nil {
		t.root.inOrder(fn)
	}
}

func (n *node[T]) inOrder(fn func(T) bool) bool {
	if n.left != nil && !n.left.inOrder(fn) {
		return false
	}
	if !fn(n.item) {
		return false
	}
	if n.right != nil && !n.right.inOrder(fn) {
		return false
	}
	return true
}
