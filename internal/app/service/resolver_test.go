package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
	"github.com/atinyakov/go-link-tracker/internal/storage"
)

type failingStore struct {
	*storage.MemoryStorage
	err error
}

func (f failingStore) FindLinkByToken(context.Context, string) (*models.Link, error) {
	return nil, f.err
}

func TestBase16ToBase62(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"0", "0"},
		{"3d", "Z"},
		{"3e", "10"},
		{"ff", "47"},
		{"zz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			assert.Equal(t, tt.want, base16ToBase62(tt.hex))
		})
	}
}

func TestTokenResolver_NewToken(t *testing.T) {
	r := NewTokenResolver(8, storage.NewMemoryStorage())

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token := r.NewToken()
		require.Len(t, token, 8)
		assert.Regexp(t, `^[0-9a-zA-Z]{8}$`, token)
		seen[token] = struct{}{}
	}
	assert.Len(t, seen, 100)

	assert.Equal(t, r.hashToToken("same seed"), r.hashToToken("same seed"))
	assert.Equal(t, DefaultTokenLength, NewTokenResolver(0, nil).tokenLength)
}

func TestTokenResolver_Resolve(t *testing.T) {
	store := storage.NewMemoryStorage()
	_, err := store.CreateLink(context.Background(), models.Link{
		ID: "l1", Token: "Ab12Cd34", UserID: "u1", Name: "Docs", URL: "https://example.com", CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	r := NewTokenResolver(8, store)

	tests := []struct {
		name    string
		token   string
		wantID  string
		wantErr error
	}{
		{name: "exact match", token: "Ab12Cd34", wantID: "l1"},
		{name: "case differs", token: "ab12cd34", wantErr: apperr.ErrNotFound},
		{name: "empty", token: "", wantErr: apperr.ErrNotFound},
		{name: "hostile text", token: "' OR 1=1; --", wantErr: apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := r.Resolve(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, link)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, link.ID)
		})
	}
}

func TestTokenResolver_StoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	r := NewTokenResolver(8, failingStore{MemoryStorage: storage.NewMemoryStorage(), err: boom})

	_, err := r.Resolve(context.Background(), "Ab12Cd34")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, apperr.KindTransient, apperr.KindOf(err))
}
