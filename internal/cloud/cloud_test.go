package cloud

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_5_study_keep/internal/config"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlobStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore()

	_, err := store.Get(ctx, "user-abc")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, store.Put(ctx, "user-abc", []byte(`{"studySets":[]}`)))
	got, err := store.Get(ctx, "user-abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"studySets":[]}`, string(got))
}

func TestMemoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(func() time.Time { return now })

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 30*time.Second))

	now = now.Add(29 * time.Second)
	got, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(got))

	now = now.Add(time.Second)
	_, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "TTL を過ぎたら期限切れ")
}

func TestNewBlobStore(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		sync     config.SyncConfig
		wantNil  bool
		wantErr  bool
		wantType any
	}{
		{name: "同期無効", sync: config.SyncConfig{Enabled: false, Provider: "s3"}, wantNil: true},
		{name: "provider none", sync: config.SyncConfig{Enabled: true, Provider: "none"}, wantNil: true},
		{name: "memory", sync: config.SyncConfig{Enabled: true, Provider: "memory"}, wantType: &MemoryBlobStore{}},
		{name: "s3 でバケット未設定", sync: config.SyncConfig{Enabled: true, Provider: "s3"}, wantErr: true},
		{name: "未知の provider", sync: config.SyncConfig{Enabled: true, Provider: "ftp"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewBlobStore(ctx, &config.Config{Sync: tt.sync})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, store)
				return
			}
			assert.IsType(t, tt.wantType, store)
		})
	}
}

func TestIsS3NotFound(t *testing.T) {
	assert.True(t, isS3NotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.True(t, isS3NotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.False(t, isS3NotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isS3NotFound(errors.New("network down")))
}
