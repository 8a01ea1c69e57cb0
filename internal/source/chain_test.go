package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProvider is a mock implementation of Provider for testing
type MockProvider struct {
	mock.Mock
	name string
	kind Kind
}

func (m *MockProvider) Name() string { return m.name }

func (m *MockProvider) Kind() Kind { return m.kind }

func (m *MockProvider) Match(ctx context.Context, track Track) (*Lyrics, error) {
	args := m.Called(ctx, track)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*Lyrics), args.Error(1)
}

var chainTrack = Track{Title: "Song", Artist: "Band"}

func TestChainLocalFirst(t *testing.T) {
	local := &MockProvider{name: "local", kind: KindLocal}
	remote := &MockProvider{name: "remote", kind: KindRemote}
	local.On("Match", mock.Anything, chainTrack).Return(&Lyrics{Text: "cached", Kind: KindLocal}, nil)

	got, err := NewChain(local, remote).Match(context.Background(), chainTrack)

	require.NoError(t, err)
	assert.Equal(t, "cached", got.Text)
	local.AssertExpectations(t)
	remote.AssertNotCalled(t, "Match", mock.Anything, mock.Anything)
}

func TestChainFallsThroughNotFound(t *testing.T) {
	local := &MockProvider{name: "local", kind: KindLocal}
	remote := &MockProvider{name: "remote", kind: KindRemote}
	local.On("Match", mock.Anything, chainTrack).Return(nil, ErrNotFound)
	remote.On("Match", mock.Anything, chainTrack).Return(&Lyrics{Text: "fetched", Kind: KindRemote}, nil)

	got, err := NewChain(local, remote).Match(context.Background(), chainTrack)

	require.NoError(t, err)
	assert.Equal(t, "fetched", got.Text)
	local.AssertExpectations(t)
	remote.AssertExpectations(t)
}

func TestChainAllNotFound(t *testing.T) {
	local := &MockProvider{name: "local", kind: KindLocal}
	local.On("Match", mock.Anything, chainTrack).Return(nil, ErrNotFound)

	_, err := NewChain(local).Match(context.Background(), chainTrack)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChainReportsProviderErrors(t *testing.T) {
	boom := errors.New("connection refused")
	remote := &MockProvider{name: "remote", kind: KindRemote}
	remote.On("Match", mock.Anything, chainTrack).Return(nil, boom)

	_, err := NewChain(remote).Match(context.Background(), chainTrack)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "remote")
}

func TestChainRefreshSkipsLocal(t *testing.T) {
	local := &MockProvider{name: "local", kind: KindLocal}
	remote := &MockProvider{name: "remote", kind: KindRemote}
	remote.On("Match", mock.Anything, chainTrack).Return(&Lyrics{Text: "fresh", Kind: KindRemote}, nil)

	c := NewChain(local, remote)
	got, err := c.Refresh(context.Background(), chainTrack)

	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Text)
	assert.True(t, c.HasRemote())
	local.AssertNotCalled(t, "Match", mock.Anything, mock.Anything)
}

func TestChainCancelledContext(t *testing.T) {
	remote := &MockProvider{name: "remote", kind: KindRemote}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChain(remote).Match(ctx, chainTrack)

	assert.ErrorIs(t, err, context.Canceled)
	remote.AssertNotCalled(t, "Match", mock.Anything, mock.Anything)
}

func TestTrackHelpers(t *testing.T) {
	assert.True(t, Track{Title: "T", Artist: "A"}.Complete())
	assert.False(t, Track{Title: "T", Artist: " "}.Complete())
	assert.Equal(t, "A - T", Track{Title: "T", Artist: "A"}.String())
	assert.Equal(t, "T", Track{Title: "T"}.String())
	assert.Equal(t, "remote", KindRemote.String())
}
