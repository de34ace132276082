package queue

import (
	"github.com/pkg/errors"

	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

var (
	// ErrDuplicateKey signals an insert for a key already present in the queue.
	ErrDuplicateKey = errors.New("duplicate key in priority queue")
	// ErrKeyNotFound signals an update/remove for a key not present in the queue.
	ErrKeyNotFound = errors.New("key not found in priority queue")
)

type node struct {
	key   string
	value *num.Uint

	prev *node
	next *node
}

// Queue ranks parties by scaled balance, biggest first. Only a bounded
// prefix of the list is kept strictly sorted: an insert walks at most
// maxSorted nodes from the head, and a party whose position could not be
// found within that walk is parked in the unordered tail. Head() is
// therefore the maximum of the sorted region, which is all the matching
// loop ever needs.
type Queue struct {
	head *node
	tail *node

	lookup    map[string]*node
	maxSorted uint64
}

// New returns an empty queue keeping at most maxSorted entries in strict
// order. maxSorted == 0 degenerates to insert-at-tail, which keeps the
// structure usable but unordered.
func New(maxSorted uint64) *Queue {
	return &Queue{
		lookup:    map[string]*node{},
		maxSorted: maxSorted,
	}
}

// SetMaxSorted updates the sorted-region bound. Existing entries are not
// reshuffled, the new bound applies to subsequent inserts.
func (q *Queue) SetMaxSorted(maxSorted uint64) {
	q.maxSorted = maxSorted
}

func (q *Queue) Len() int {
	return len(q.lookup)
}

// Insert adds a new (key, value) entry. The value must be a positive
// scaled balance, a zero value entry has no business being ranked.
func (q *Queue) Insert(key string, value *num.Uint) error {
	if _, ok := q.lookup[key]; ok {
		return ErrDuplicateKey
	}
	if value.IsZero() {
		// nothing to rank
		return nil
	}
	q.insert(&node{key: key, value: value.Clone()})
	return nil
}

// Update repositions the entry for key with its new value. A zero value
// is equivalent to Remove.
func (q *Queue) Update(key string, value *num.Uint) error {
	n, ok := q.lookup[key]
	if !ok {
		return ErrKeyNotFound
	}
	q.unlink(n)
	if value.IsZero() {
		return nil
	}
	q.insert(&node{key: key, value: value.Clone()})
	return nil
}

// Remove drops the entry for key.
func (q *Queue) Remove(key string) error {
	n, ok := q.lookup[key]
	if !ok {
		return ErrKeyNotFound
	}
	q.unlink(n)
	return nil
}

// Head returns the key holding the greatest value of the sorted region,
// or false when the queue is empty.
func (q *Queue) Head() (string, bool) {
	if q.head == nil {
		return "", false
	}
	return q.head.key, true
}

// Next returns the key following the given one in traversal order. Used
// for inspection only, the matching loop always re-reads Head after each
// state transition.
func (q *Queue) Next(key string) (string, bool) {
	n, ok := q.lookup[key]
	if !ok || n.next == nil {
		return "", false
	}
	return n.next.key, true
}

// Value returns a copy of the ranked value for key, zero when absent.
func (q *Queue) Value(key string) *num.Uint {
	n, ok := q.lookup[key]
	if !ok {
		return num.UintZero()
	}
	return n.value.Clone()
}

// Clone returns a deep copy of the queue, preserving order.
func (q *Queue) Clone() *Queue {
	cpy := New(q.maxSorted)
	for n := q.head; n != nil; n = n.next {
		nn := &node{key: n.key, value: n.value.Clone()}
		cpy.append(nn)
	}
	return cpy
}

// insert walks from the head looking for the first node ranked below the
// new value. If that position is not found within maxSorted visited
// nodes, the entry is parked at the tail, outside the sorted region.
func (q *Queue) insert(n *node) {
	var visited uint64
	cur := q.head
	for cur != nil && visited < q.maxSorted && cur.value.GTE(n.value) {
		cur = cur.next
		visited++
	}
	if cur == nil || visited >= q.maxSorted {
		q.append(n)
		return
	}
	q.insertBefore(n, cur)
}

func (q *Queue) append(n *node) {
	if q.tail == nil {
		q.head, q.tail = n, n
	} else {
		n.prev = q.tail
		q.tail.next = n
		q.tail = n
	}
	q.lookup[n.key] = n
}

func (q *Queue) insertBefore(n, at *node) {
	n.next = at
	n.prev = at.prev
	if at.prev == nil {
		q.head = n
	} else {
		at.prev.next = n
	}
	at.prev = n
	q.lookup[n.key] = n
}

func (q *Queue) unlink(n *node) {
	if n.prev == nil {
		q.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		q.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
	delete(q.lookup, n.key)
}
