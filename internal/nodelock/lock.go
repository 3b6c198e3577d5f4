// Package nodelock implements the per-folder synchronization state used by the tree.
//
// A Lock admits three roles. Readers share the node with each other, a writer
// holds it alone, and a mover holds it alone once nothing is active anywhere
// in the subtree below it. Activity is tracked separately from roles with
// Mark and Unmark so that an operation passing through a node keeps a mover
// out of that subtree after it has moved on to a descendant.
//
// Writers are served in arrival order. Once a writer is waiting, newly arriving
// readers queue behind it, and when a writer leaves, every reader waiting at
// that moment is admitted as one batch before the next writer.
package nodelock

import (
	"fmt"
	"sync"
)

// Role is the kind of access an operation holds on a node.
type Role int

const (
	Reader Role = iota
	Writer
	Mover
)

func (r Role) String() string {
	switch r {
	case Reader:
		return "reader"
	case Writer:
		return "writer"
	case Mover:
		return "mover"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Lock is the synchronization state of a single node. Create with New.
type Lock struct {
	mu        sync.Mutex
	readCond  *sync.Cond
	writeCond *sync.Cond
	moveCond  *sync.Cond

	readers int
	writers int
	movers  int

	readersWaiting int
	writersWaiting int
	moversWaiting  int

	// Readers admitted by the last departing writer that have not entered yet.
	readerQuota int
	// Bumped whenever a reader batch is admitted.
	readGen uint64

	nextTicket uint64
	serving    uint64

	// Operations holding or passing through something in this subtree.
	active int
}

func New() *Lock {
	l := &Lock{}
	l.readCond = sync.NewCond(&l.mu)
	l.writeCond = sync.NewCond(&l.mu)
	l.moveCond = sync.NewCond(&l.mu)
	return l
}

// Enter blocks until the role can be held and takes it. It reports whether it had to wait.
func (l *Lock) Enter(role Role) (waited bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch role {
	case Reader:
		return l.enterRead()
	case Writer:
		return l.enterWrite()
	case Mover:
		return l.enterMove()
	default:
		panic(fmt.Sprintf("nodelock: enter with unknown %s", role))
	}
}

func (l *Lock) enterRead() bool {
	if l.writers == 0 && l.movers == 0 && l.writersWaiting == 0 {
		l.readers++
		return false
	}

	gen := l.readGen
	l.readersWaiting++
	for {
		l.readCond.Wait()
		if l.writers != 0 || l.movers != 0 {
			continue
		}
		if l.readGen != gen {
			// part of the batch admitted by a departing writer
			l.readerQuota--
			break
		}
		if l.writersWaiting == 0 {
			break
		}
	}
	l.readersWaiting--
	l.readers++
	return true
}

func (l *Lock) enterWrite() bool {
	ticket := l.nextTicket
	l.nextTicket++
	if l.canWrite(ticket) {
		l.writers++
		return false
	}

	l.writersWaiting++
	for !l.canWrite(ticket) {
		l.writeCond.Wait()
	}
	l.writersWaiting--
	l.writers++
	return true
}

func (l *Lock) canWrite(ticket uint64) bool {
	return l.readers == 0 && l.writers == 0 && l.movers == 0 &&
		l.readerQuota == 0 && l.serving == ticket
}

func (l *Lock) enterMove() bool {
	if l.canMove() {
		l.movers++
		return false
	}

	l.moversWaiting++
	for !l.canMove() {
		l.moveCond.Wait()
	}
	l.moversWaiting--
	l.movers++
	return true
}

func (l *Lock) canMove() bool {
	return l.readers == 0 && l.writers == 0 && l.movers == 0 &&
		l.readerQuota == 0 && l.active == 0
}

// Exit releases a held role. With unmark set it also drops one unit of
// activity, exactly as a following Unmark would.
func (l *Lock) Exit(role Role, unmark bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch role {
	case Reader:
		if l.readers <= 0 {
			panic("nodelock: reader exit without a reader")
		}
		l.readers--
		if l.readers == 0 {
			l.writeCond.Broadcast()
			l.wakeMover()
		}
	case Writer:
		if l.writers != 1 {
			panic("nodelock: writer exit without a writer")
		}
		l.writers--
		l.serving++
		if l.readersWaiting > 0 {
			l.readerQuota = l.readersWaiting
			l.readGen++
			l.readCond.Broadcast()
		}
		l.writeCond.Broadcast()
		l.wakeMover()
	case Mover:
		if l.movers != 1 {
			panic("nodelock: mover exit without a mover")
		}
		l.movers--
		l.readCond.Broadcast()
		l.writeCond.Broadcast()
		l.wakeMover()
	default:
		panic(fmt.Sprintf("nodelock: exit with unknown %s", role))
	}

	if unmark {
		l.unmark()
	}
}

// Mark records one more operation active in the subtree.
func (l *Lock) Mark() {
	l.mu.Lock()
	l.active++
	l.mu.Unlock()
}

// Unmark records that an operation has left the subtree.
func (l *Lock) Unmark() {
	l.mu.Lock()
	l.unmark()
	l.mu.Unlock()
}

func (l *Lock) unmark() {
	if l.active <= 0 {
		panic("nodelock: unmark of an inactive subtree")
	}
	l.active--
	if l.active == 0 {
		l.wakeMover()
	}
}

func (l *Lock) wakeMover() {
	if l.moversWaiting > 0 {
		l.moveCond.Broadcast()
	}
}

// Active returns the current subtree activity.
func (l *Lock) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// State is a point-in-time copy of the counters, for diagnostics.
type State struct {
	Readers, Writers, Movers                      int
	ReadersWaiting, WritersWaiting, MoversWaiting int
	Active                                        int
}

func (l *Lock) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State{
		Readers:        l.readers,
		Writers:        l.writers,
		Movers:         l.movers,
		ReadersWaiting: l.readersWaiting,
		WritersWaiting: l.writersWaiting,
		MoversWaiting:  l.moversWaiting,
		Active:         l.active,
	}
}
