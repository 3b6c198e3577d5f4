// Package tree implements a concurrent in-memory folder tree.
//
// Every folder carries its own [nodelock.Lock]. Operations walk down from the
// root hand over hand, holding the reader role on at most one folder at a time
// until they reach the folder they act on, and mark each folder they pass so
// that a subtree is never moved while anything is active inside it.
package tree

import (
	"fmt"
	"time"

	"github.com/brettbedarf/foldertree"
	"github.com/brettbedarf/foldertree/config"
	"github.com/brettbedarf/foldertree/internal/nodelock"
	"github.com/brettbedarf/foldertree/internal/util"
	"github.com/brettbedarf/foldertree/metrics"
	"github.com/brettbedarf/foldertree/pathutil"
)

const (
	opList   = "list"
	opCreate = "create"
	opRemove = "remove"
	opMove   = "move"
)

// Tree is a folder tree safe for use by any number of goroutines.
type Tree struct {
	root    *Node
	limits  pathutil.Limits
	logger  util.Logger
	metrics metrics.Recorder
}

var _ foldertree.Operator = (*Tree)(nil)

// Option configures a Tree.
type Option func(*Tree)

// WithMetrics reports operations and lock waits to r.
func WithMetrics(r metrics.Recorder) Option {
	return func(t *Tree) {
		if r != nil {
			t.metrics = r
		}
	}
}

// WithLogger replaces the default "tree" component logger.
func WithLogger(l util.Logger) Option {
	return func(t *Tree) {
		t.logger = l
	}
}

// New creates a tree holding only the root folder. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) *Tree {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	t := &Tree{
		root:    newNode(nil),
		limits:  cfg.Limits(),
		logger:  util.GetLogger("tree"),
		metrics: metrics.New(nil),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Close tears the tree down, leaving only an empty root.
//
// It must not race with any operation: Close panics if one is in flight.
func (t *Tree) Close() {
	if active := t.root.lock.Active(); active != 0 {
		panic(fmt.Sprintf("tree: close with %d operations in flight", active))
	}

	// Reverse pre-order visits every child before its parent.
	order := []*Node{t.root}
	for i := 0; i < len(order); i++ {
		order[i].children.Range(func(_ string, ch *Node) bool {
			order = append(order, ch)
			return true
		})
	}
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		n.children.Clear()
		if n != t.root {
			n.parent = nil
		}
	}
	t.logger.Info().Int("folders", len(order)-1).Msg("Tree closed")
}

// enter takes role on n, reporting the acquisition if it blocked
func (t *Tree) enter(n *Node, role nodelock.Role) {
	if n.lock.Enter(role) {
		t.metrics.RecordLockWait(role.String())
		t.logger.Trace().Stringer("role", role).Msg("Waited for node lock")
	}
}

// track starts observing op and returns the function that finishes it
func (t *Tree) track(op string) func(err error) {
	t.metrics.OperationStarted(op)
	start := time.Now()
	return func(err error) {
		t.metrics.RecordOperation(op, time.Since(start), err)
		if err != nil {
			t.logger.Debug().Err(err).Str("op", op).Msg("Operation rejected")
		}
	}
}

func pathError(op, path string, err error) error {
	return &foldertree.PathError{Op: op, Path: path, Err: err}
}

func moveError(source, target string, err error) error {
	return &foldertree.PathError{Op: opMove, Path: source, Target: target, Err: err}
}
