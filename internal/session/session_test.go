package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	sessionUser *User
	probeErr    error
	signOutErr  error
}

func (b *fakeBackend) CurrentSession(ctx context.Context) (*User, error) {
	return b.sessionUser, b.probeErr
}

func (b *fakeBackend) SignUp(ctx context.Context, email, password string) (*User, error) {
	if password == "" {
		return nil, errors.New("password required")
	}
	return &User{ID: "new", Email: email}, nil
}

func (b *fakeBackend) SignIn(ctx context.Context, email, password string) (*User, error) {
	if password != "secret" {
		return nil, errors.New("invalid credentials")
	}
	return &User{ID: "u1", Email: email}, nil
}

func (b *fakeBackend) SignOut(ctx context.Context) error {
	return b.signOutErr
}

func TestNewPanicsWithoutBackend(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestStartResolvesLoading(t *testing.T) {
	t.Run("ExistingSession", func(t *testing.T) {
		s := New(&fakeBackend{sessionUser: &User{ID: "u1"}})
		assert.True(t, s.IsLoading())

		s.Start(context.Background())
		assert.False(t, s.IsLoading())
		id, ok := s.CurrentUserID()
		assert.True(t, ok)
		assert.Equal(t, "u1", id)
	})

	t.Run("ProbeFailureMeansSignedOut", func(t *testing.T) {
		s := New(&fakeBackend{probeErr: errors.New("network down")})
		s.Start(context.Background())

		assert.False(t, s.IsLoading())
		_, ok := s.CurrentUserID()
		assert.False(t, ok)
	})
}

func TestSignInUpdatesSubscribers(t *testing.T) {
	s := New(&fakeBackend{})
	s.Start(context.Background())

	ch, cancel := s.Subscribe()
	defer cancel()

	user, err := s.SignIn(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	got := <-ch
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)

	require.NoError(t, s.SignOut(context.Background()))
	assert.Nil(t, <-ch)
	_, ok := s.CurrentUserID()
	assert.False(t, ok)
}

func TestSignInFailureKeepsState(t *testing.T) {
	s := New(&fakeBackend{})
	s.Start(context.Background())

	_, err := s.SignIn(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	_, ok := s.CurrentUserID()
	assert.False(t, ok)
}

func TestSignOutClearsUserEvenOnBackendError(t *testing.T) {
	backend := &fakeBackend{sessionUser: &User{ID: "u1"}, signOutErr: errors.New("network down")}
	s := New(backend)
	s.Start(context.Background())

	err := s.SignOut(context.Background())
	assert.Error(t, err)
	_, ok := s.CurrentUserID()
	assert.False(t, ok)
}

func TestCloseReleasesSubscriptions(t *testing.T) {
	s := New(&fakeBackend{})
	s.Start(context.Background())

	ch, _ := s.Subscribe()
	s.Close()

	_, open := <-ch
	assert.False(t, open)

	// Subscriptions after Close are immediately closed
	ch2, cancel := s.Subscribe()
	defer cancel()
	_, open = <-ch2
	assert.False(t, open)
}

func TestCancelReleasesOneSubscription(t *testing.T) {
	s := New(&fakeBackend{})
	s.Start(context.Background())

	ch1, cancel1 := s.Subscribe()
	ch2, cancel2 := s.Subscribe()
	defer cancel2()

	cancel1()
	_, open := <-ch1
	assert.False(t, open)

	_, err := s.SignIn(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	got := <-ch2
	assert.Equal(t, "u1", got.ID)
}
