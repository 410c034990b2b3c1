// Package storagetest holds behaviour checks shared by every storage.OTPStore backend.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seva/internal/storage"
)

// RunOTPStore exercises s. phonePrefix keeps keys of parallel runs apart on shared backends.
func RunOTPStore(t *testing.T, s storage.OTPStore, phonePrefix string) {
	ctx := context.Background()

	t.Run("consume once", func(t *testing.T) {
		phone := phonePrefix + "9000000001"
		require.NoError(t, s.SetOTP(ctx, phone, "123456", 0))
		ok, err := s.ConsumeOTP(ctx, phone, "123456")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = s.ConsumeOTP(ctx, phone, "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("mismatch keeps entry", func(t *testing.T) {
		phone := phonePrefix + "9000000002"
		require.NoError(t, s.SetOTP(ctx, phone, "654321", 0))
		ok, err := s.ConsumeOTP(ctx, phone, "000000")
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = s.ConsumeOTP(ctx, phone, "654321")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("overwrite", func(t *testing.T) {
		phone := phonePrefix + "9000000003"
		require.NoError(t, s.SetOTP(ctx, phone, "111111", 0))
		require.NoError(t, s.SetOTP(ctx, phone, "222222", 0))
		ok, err := s.ConsumeOTP(ctx, phone, "111111")
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = s.ConsumeOTP(ctx, phone, "222222")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing", func(t *testing.T) {
		ok, err := s.ConsumeOTP(ctx, phonePrefix+"9000000004", "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("single winner under contention", func(t *testing.T) {
		phone := phonePrefix + "9000000005"
		require.NoError(t, s.SetOTP(ctx, phone, "777777", 0))
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := s.ConsumeOTP(ctx, phone, "777777")
				if err == nil && ok {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})

	t.Run("keys are independent", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				phone := fmt.Sprintf("%s8%09d", phonePrefix, i)
				assert.NoError(t, s.SetOTP(ctx, phone, fmt.Sprintf("%06d", i), 0))
			}(i)
		}
		wg.Wait()
		for i := 0; i < 20; i++ {
			phone := fmt.Sprintf("%s8%09d", phonePrefix, i)
			other := fmt.Sprintf("%06d", (i+1)%20)
			ok, err := s.ConsumeOTP(ctx, phone, other)
			require.NoError(t, err)
			assert.False(t, ok, "phone %s accepted another phone's code", phone)
			ok, err = s.ConsumeOTP(ctx, phone, fmt.Sprintf("%06d", i))
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})
}
