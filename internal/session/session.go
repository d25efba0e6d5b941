// Package session owns the current-user state machine. The collaborator is an
// explicit, injected object: consumers subscribe to state changes instead of
// reading ambient globals or polling the remote service.
package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type State int

const (
	// Unknown is the initial state, before the first session check resolves.
	Unknown State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return "unknown"
}

type User struct {
	ID    uint
	Email string
	Name  string
}

// Snapshot is one observed state of the collaborator. User is set only when
// State is Authenticated; Err carries the last sign-in failure message.
type Snapshot struct {
	State State
	User  *User
	Err   string
}

// Change is an asynchronous session notification from the remote service
// (token expiry, concurrent sign-out). A nil User means the session ended.
type Change struct {
	User *User
}

// Provider is the remote service's session surface. CurrentSession returns
// (nil, nil) when no session exists.
type Provider interface {
	CurrentSession(ctx context.Context) (*User, error)
	SignIn(ctx context.Context, email, password string) (*User, error)
	SignOut(ctx context.Context) error
	Changes() <-chan Change
}

type Collaborator struct {
	provider Provider
	log      *logrus.Logger

	mu      sync.Mutex
	state   State
	user    *User
	errMsg  string
	subs    map[int]chan Snapshot
	nextSub int

	done      chan struct{}
	closeOnce sync.Once
}

func New(p Provider, log *logrus.Logger) *Collaborator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Collaborator{
		provider: p,
		log:      log,
		state:    Unknown,
		subs:     make(map[int]chan Snapshot),
		done:     make(chan struct{}),
	}
}

// Start kicks off the asynchronous initial session check and the watch of the
// provider's change stream. The initial check must not be assumed synchronous:
// consumers stay in Unknown until it resolves.
func (c *Collaborator) Start(ctx context.Context) {
	go func() {
		u, err := c.provider.CurrentSession(ctx)
		if err != nil {
			c.log.WithError(err).Warn("initial session check failed")
			c.transition(Anonymous, nil, "")
			return
		}
		if u != nil {
			c.transition(Authenticated, u, "")
		} else {
			c.transition(Anonymous, nil, "")
		}
	}()
	go c.watch()
}

func (c *Collaborator) watch() {
	changes := c.provider.Changes()
	for {
		select {
		case ch, ok := <-changes:
			if !ok {
				return
			}
			if ch.User != nil {
				c.transition(Authenticated, ch.User, "")
			} else {
				c.transition(Anonymous, nil, "")
			}
		case <-c.done:
			return
		}
	}
}

// SignIn attempts a credential exchange. On failure the current state is kept
// and the error message never reveals which of email/password was wrong.
func (c *Collaborator) SignIn(ctx context.Context, email, password string) (*User, error) {
	u, err := c.provider.SignIn(ctx, email, password)
	if err != nil {
		c.setError(err.Error())
		return nil, err
	}
	c.transition(Authenticated, u, "")
	return u, nil
}

// SignOut invalidates the remote session and always transitions to Anonymous,
// even when invalidation fails: the UI must never trap a user in a stale
// authenticated view because the remote call failed.
func (c *Collaborator) SignOut(ctx context.Context) {
	if err := c.provider.SignOut(ctx); err != nil {
		c.log.WithError(err).Warn("remote sign-out failed, continuing locally")
	}
	c.transition(Anonymous, nil, "")
}

func (c *Collaborator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, User: c.user, Err: c.errMsg}
}

// Subscribe registers an observer of state changes. The returned cancel func
// must be called when the observer goes away.
func (c *Collaborator) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan Snapshot, 16)
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

func (c *Collaborator) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		defer c.mu.Unlock()
		for id, ch := range c.subs {
			delete(c.subs, id)
			close(ch)
		}
	})
}

func (c *Collaborator) transition(state State, u *User, errMsg string) {
	c.mu.Lock()
	c.state = state
	c.user = u
	c.errMsg = errMsg
	snap := Snapshot{State: c.state, User: c.user, Err: c.errMsg}
	c.publishLocked(snap)
	c.mu.Unlock()
}

func (c *Collaborator) setError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	snap := Snapshot{State: c.state, User: c.user, Err: c.errMsg}
	c.publishLocked(snap)
	c.mu.Unlock()
}

// publishLocked fans the snapshot out without blocking: a slow observer drops
// intermediate snapshots rather than stalling the state machine.
func (c *Collaborator) publishLocked(snap Snapshot) {
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
