package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	values map[string]string
	err    error
}

func newStubStore() *stubStore {
	return &stubStore{values: map[string]string{}}
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	value, ok := s.values[key]
	if !ok {
		return "", errors.New("not found")
	}
	return value, nil
}

func (s *stubStore) Put(_ context.Context, key, value string) error {
	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	return nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.values, key)
	return nil
}

func TestNewStoreRequiresBothBackends(t *testing.T) {
	_, err := NewStore(nil, newStubStore())
	assert.Error(t, err)
	_, err = NewStore(newStubStore(), nil)
	assert.Error(t, err)
}

func TestPrimaryIsPreferred(t *testing.T) {
	primary := newStubStore()
	fallback := newStubStore()
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "key", "value"))

	assert.Equal(t, "value", primary.values["key"])
	assert.Empty(t, fallback.values)
}

func TestFallbackOnPrimaryFailure(t *testing.T) {
	primary := newStubStore()
	primary.err = errors.New("pass is not installed")
	fallback := newStubStore()
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "key", "value"))
	assert.Equal(t, "value", fallback.values["key"])

	value, err := store.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	require.NoError(t, store.Delete(context.Background(), "key"))
	assert.Empty(t, fallback.values)
}

func TestBothBackendsFailingSurfacesBothErrors(t *testing.T) {
	primary := newStubStore()
	primary.err = errors.New("primary down")
	fallback := newStubStore()
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary down")
	assert.Contains(t, err.Error(), "not found")
}

func TestContextErrorsSkipFallback(t *testing.T) {
	primary := newStubStore()
	primary.err = context.Canceled
	fallback := newStubStore()
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	assert.ErrorIs(t, store.Put(context.Background(), "key", "value"), context.Canceled)
	assert.Empty(t, fallback.values, "fallback must not run for a cancelled request")
}
