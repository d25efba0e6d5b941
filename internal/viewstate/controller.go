// Package viewstate implements the data-binding contract shared by every
// entity view: a held list, loading flag, error value, modal flag and a form
// draft, kept in an explicit observable controller that views subscribe to.
package viewstate

import (
	"context"
	"strings"
	"sync"

	"github.com/Harshverma1208/smartech/internal/fault"
	"github.com/Harshverma1208/smartech/internal/session"
)

// ListFunc fetches the view's full working set.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// FieldsFunc names the text fields the client-side search matches against.
type FieldsFunc[T any] func(T) []string

// Snapshot is the published view state.
type Snapshot[T any] struct {
	List      []T
	Loading   bool
	Err       string
	ModalOpen bool
	Draft     T
}

type Controller[T any] struct {
	listFn ListFunc[T]
	fields FieldsFunc[T]

	mu        sync.Mutex
	list      []T
	loading   bool
	errMsg    string
	modalOpen bool
	draft     T
	fetchSeq  uint64
	closed    bool
	subs      map[int]chan Snapshot[T]
	nextSub   int
	unbind    func()
}

func New[T any](list ListFunc[T], fields FieldsFunc[T]) *Controller[T] {
	return &Controller[T]{
		listFn: list,
		fields: fields,
		list:   make([]T, 0),
		subs:   make(map[int]chan Snapshot[T]),
	}
}

// Refresh fetches the full working set and replaces the held list. Only the
// most recently initiated fetch is authoritative: a result arriving for an
// older fetch, or after Close, is discarded rather than applied. On failure
// the previously displayed list stays untouched and the error is surfaced.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.fetchSeq++
	seq := c.fetchSeq
	c.publishLocked()
	c.mu.Unlock()

	rows, err := c.listFn(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.fetchSeq {
		// Stale result: a newer fetch owns the list now, or the view is gone.
		return nil
	}
	c.loading = false
	if err != nil {
		c.errMsg = fault.Message(err)
		c.publishLocked()
		return err
	}
	c.list = rows
	c.errMsg = ""
	c.publishLocked()
	return nil
}

// Submit runs a create/update operation and then always re-fetches the full
// list, so displayed rows carry server-computed derived fields rather than
// client-guessed values.
func (c *Controller[T]) Submit(ctx context.Context, op func(ctx context.Context) error) error {
	if err := op(ctx); err != nil {
		c.setError(fault.Message(err))
		return err
	}
	c.CloseModal()
	return c.Refresh(ctx)
}

// Delete invokes op only after confirm returns true. It reports whether the
// delete was attempted; on success the list is re-fetched, on failure the
// held list stays unchanged and the error is surfaced.
func (c *Controller[T]) Delete(ctx context.Context, confirm func() bool, op func(ctx context.Context) error) (bool, error) {
	if confirm != nil && !confirm() {
		return false, nil
	}
	if err := op(ctx); err != nil {
		c.setError(fault.Message(err))
		return true, err
	}
	return true, c.Refresh(ctx)
}

// Filter applies a pure, case-insensitive substring predicate over the
// designated text fields of the currently held list. It never fetches.
func (c *Controller[T]) Filter(term string) []T {
	c.mu.Lock()
	held := c.list
	c.mu.Unlock()
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]T(nil), held...)
	}
	out := make([]T, 0)
	for _, row := range held {
		for _, f := range c.fields(row) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func (c *Controller[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.list...)
}

func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller[T]) DismissError() {
	c.mu.Lock()
	c.errMsg = ""
	c.publishLocked()
	c.mu.Unlock()
}

// OpenModal opens the form with the given draft (zero value for a create).
func (c *Controller[T]) OpenModal(draft T) {
	c.mu.Lock()
	c.modalOpen = true
	c.draft = draft
	c.publishLocked()
	c.mu.Unlock()
}

func (c *Controller[T]) CloseModal() {
	c.mu.Lock()
	var zero T
	c.modalOpen = false
	c.draft = zero
	c.publishLocked()
	c.mu.Unlock()
}

func (c *Controller[T]) SetDraft(draft T) {
	c.mu.Lock()
	c.draft = draft
	c.publishLocked()
	c.mu.Unlock()
}

func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers an observer of view-state changes.
func (c *Controller[T]) Subscribe() (<-chan Snapshot[T], func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan Snapshot[T], 16)
	c.subs[id] = ch
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// BindSession resets and closes the controller when the session becomes
// Anonymous, so an in-flight fetch resolving after sign-out can never
// populate an authenticated-only view.
func (c *Controller[T]) BindSession(col *session.Collaborator) {
	ch, cancel := col.Subscribe()
	c.mu.Lock()
	c.unbind = cancel
	c.mu.Unlock()
	go func() {
		for snap := range ch {
			if snap.State == session.Anonymous {
				c.Close()
				return
			}
		}
	}()
}

// Close tears the view down: pending fetch results are discarded and the held
// state is cleared.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.list = make([]T, 0)
	c.loading = false
	var zero T
	c.draft = zero
	c.modalOpen = false
	if c.unbind != nil {
		unbind := c.unbind
		c.unbind = nil
		go unbind()
	}
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

func (c *Controller[T]) setError(msg string) {
	c.mu.Lock()
	if !c.closed {
		c.errMsg = msg
		c.publishLocked()
	}
	c.mu.Unlock()
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		List:      append([]T(nil), c.list...),
		Loading:   c.loading,
		Err:       c.errMsg,
		ModalOpen: c.modalOpen,
		Draft:     c.draft,
	}
}

func (c *Controller[T]) publishLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
