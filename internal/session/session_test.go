package session

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshverma1208/smartech/internal/fault"
)

type fakeProvider struct {
	current    *User
	currentErr error
	signInUser *User
	signInErr  error
	signOutErr error
	changes    chan Change
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{changes: make(chan Change, 8)}
}

func (f *fakeProvider) CurrentSession(context.Context) (*User, error) { return f.current, f.currentErr }
func (f *fakeProvider) SignIn(context.Context, string, string) (*User, error) {
	return f.signInUser, f.signInErr
}
func (f *fakeProvider) SignOut(context.Context) error { return f.signOutErr }
func (f *fakeProvider) Changes() <-chan Change        { return f.changes }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// waitForState polls until the collaborator reaches want or the deadline hits.
func waitForState(t *testing.T, c *Collaborator, want State) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := c.Snapshot(); snap.State == want {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state never became %v, last %v", want, c.Snapshot().State)
	return Snapshot{}
}

func TestInitialCheckIsAsynchronous(t *testing.T) {
	p := newFakeProvider()
	p.current = &User{ID: 1, Email: "u@t.dev"}
	c := New(p, quietLogger())
	defer c.Close()

	assert.Equal(t, Unknown, c.Snapshot().State, "state starts Unknown before the check resolves")
	c.Start(context.Background())
	snap := waitForState(t, c, Authenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "u@t.dev", snap.User.Email)
}

func TestInitialCheckNoSession(t *testing.T) {
	p := newFakeProvider()
	c := New(p, quietLogger())
	defer c.Close()

	c.Start(context.Background())
	waitForState(t, c, Anonymous)
}

func TestInitialCheckFailureFallsBackToAnonymous(t *testing.T) {
	p := newFakeProvider()
	p.currentErr = errors.New("network down")
	c := New(p, quietLogger())
	defer c.Close()

	c.Start(context.Background())
	waitForState(t, c, Anonymous)
}

func TestSignInSuccess(t *testing.T) {
	p := newFakeProvider()
	p.signInUser = &User{ID: 2, Email: "admin@t.dev"}
	c := New(p, quietLogger())
	defer c.Close()
	c.Start(context.Background())
	waitForState(t, c, Anonymous)

	u, err := c.SignIn(context.Background(), "admin@t.dev", "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(2), u.ID)

	snap := c.Snapshot()
	assert.Equal(t, Authenticated, snap.State)
	assert.Empty(t, snap.Err)
}

func TestSignInFailureKeepsStateAndNeutralMessage(t *testing.T) {
	p := newFakeProvider()
	p.signInErr = fault.Unauthorized("invalid email or password")
	c := New(p, quietLogger())
	defer c.Close()
	c.Start(context.Background())
	waitForState(t, c, Anonymous)

	_, err := c.SignIn(context.Background(), "admin@t.dev", "wrong")
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, Anonymous, snap.State, "failed sign-in keeps the prior state")
	assert.Equal(t, "invalid email or password", snap.Err)
	assert.NotContains(t, snap.Err, "password was", "message must not reveal which field was wrong")
}

func TestSignOutTransitionsEvenWhenRemoteFails(t *testing.T) {
	p := newFakeProvider()
	p.signInUser = &User{ID: 3, Email: "x@t.dev"}
	p.signOutErr = errors.New("service unavailable")
	c := New(p, quietLogger())
	defer c.Close()
	c.Start(context.Background())
	waitForState(t, c, Anonymous)

	_, err := c.SignIn(context.Background(), "x@t.dev", "pw")
	require.NoError(t, err)
	require.Equal(t, Authenticated, c.Snapshot().State)

	c.SignOut(context.Background())
	assert.Equal(t, Anonymous, c.Snapshot().State, "local transition must not be blocked by the remote failure")
}

func TestRemoteChangeNotificationsDriveState(t *testing.T) {
	p := newFakeProvider()
	c := New(p, quietLogger())
	defer c.Close()
	c.Start(context.Background())
	waitForState(t, c, Anonymous)

	// Token refresh / sign-in from another tab.
	p.changes <- Change{User: &User{ID: 9, Email: "tab2@t.dev"}}
	snap := waitForState(t, c, Authenticated)
	assert.Equal(t, "tab2@t.dev", snap.User.Email)

	// Expiry / concurrent sign-out.
	p.changes <- Change{}
	waitForState(t, c, Anonymous)
}

func TestSubscribeObservesTransitions(t *testing.T) {
	p := newFakeProvider()
	p.signInUser = &User{ID: 5, Email: "s@t.dev"}
	c := New(p, quietLogger())
	defer c.Close()

	ch, cancel := c.Subscribe()
	defer cancel()

	c.Start(context.Background())
	_, err := c.SignIn(context.Background(), "s@t.dev", "pw")
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-ch:
			if snap.State == Authenticated {
				require.NotNil(t, snap.User)
				assert.Equal(t, uint(5), snap.User.ID)
				return
			}
		case <-deadline:
			t.Fatal("never observed Authenticated snapshot")
		}
	}
}
