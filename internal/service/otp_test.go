package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seva/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

func TestAuthenticator_IssueFormat(t *testing.T) {
	a := NewAuthenticator(memory.New(), 0)
	for i := 0; i < 200; i++ {
		code, err := a.Issue(context.Background(), "9876543210")
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}

func TestAuthenticator_IssueThenValidateOnce(t *testing.T) {
	ctx := context.Background()
	a := NewAuthenticator(memory.New(), 0)

	code, err := a.Issue(ctx, "9876543210")
	require.NoError(t, err)
	assert.True(t, a.Validate(ctx, "9876543210", code))
	assert.False(t, a.Validate(ctx, "9876543210", code), "a code is single use")
}

func TestAuthenticator_MismatchKeepsCode(t *testing.T) {
	ctx := context.Background()
	a := NewAuthenticator(memory.New(), 0)

	code, err := a.Issue(ctx, "9876543210")
	require.NoError(t, err)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	assert.False(t, a.Validate(ctx, "9876543210", wrong))
	assert.True(t, a.Validate(ctx, "9876543210", code))
}

func TestAuthenticator_ReissueReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	a := NewAuthenticator(memory.New(), 0)

	var first, second string
	var err error
	for first == second {
		first, err = a.Issue(ctx, "9876543210")
		require.NoError(t, err)
		second, err = a.Issue(ctx, "9876543210")
		require.NoError(t, err)
	}
	assert.False(t, a.Validate(ctx, "9876543210", first))
	assert.True(t, a.Validate(ctx, "9876543210", second))
}

func TestAuthenticator_UnknownPhone(t *testing.T) {
	a := NewAuthenticator(memory.New(), 0)
	assert.False(t, a.Validate(context.Background(), "9000000000", "123456"))
}

func TestAuthenticator_PhonesAreIndependent(t *testing.T) {
	ctx := context.Background()
	a := NewAuthenticator(memory.New(), 0)

	c1, err := a.Issue(ctx, "9000000001")
	require.NoError(t, err)
	c2, err := a.Issue(ctx, "9000000002")
	require.NoError(t, err)

	assert.True(t, a.Validate(ctx, "9000000002", c2))
	assert.True(t, a.Validate(ctx, "9000000001", c1))
}

func TestAuthenticator_ConcurrentValidateSingleWinner(t *testing.T) {
	ctx := context.Background()
	a := NewAuthenticator(memory.New(), 0)
	code, err := a.Issue(ctx, "9876543210")
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if a.Validate(ctx, "9876543210", code) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

type failingStore struct{}

func (failingStore) SetOTP(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func (failingStore) ConsumeOTP(context.Context, string, string) (bool, error) {
	return false, errors.New("connection refused")
}

func (failingStore) Close() error { return nil }

func TestAuthenticator_BackendErrors(t *testing.T) {
	a := NewAuthenticator(failingStore{}, 0)
	_, err := a.Issue(context.Background(), "9876543210")
	assert.Error(t, err)
	assert.False(t, a.Validate(context.Background(), "9876543210", "123456"))
}
