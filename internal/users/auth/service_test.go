// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package auth_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/internal/platform/sec"
	"github.com/treadstock/treadstock/internal/users/account"
	"github.com/treadstock/treadstock/internal/users/auth"
)

// memoryAccountRepo is an in-memory account.Repository for service tests.
type memoryAccountRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*account.Account
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{items: make(map[int64]*account.Account)}
}

func (repo *memoryAccountRepo) Create(_ context.Context, acc *account.Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.items {
		if existing.Email == acc.Email {
			return apperr.DuplicateEmail()
		}
	}
	for _, existing := range repo.items {
		if existing.Username == acc.Username {
			return apperr.DuplicateUsername()
		}
	}

	repo.nextID++
	acc.ID = repo.nextID
	acc.CreatedAt = time.Now().UTC()

	stored := *acc
	repo.items[acc.ID] = &stored
	return nil
}

func (repo *memoryAccountRepo) FindByID(_ context.Context, id int64) (*account.Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if acc, ok := repo.items[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, apperr.NotFound("Account")
}

func (repo *memoryAccountRepo) FindByEmail(_ context.Context, email string) (*account.Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, acc := range repo.items {
		if acc.Email == email {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (repo *memoryAccountRepo) FindByUsername(_ context.Context, username string) (*account.Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, acc := range repo.items {
		if acc.Username == username {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (repo *memoryAccountRepo) delete(id int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.items, id)
}

// testService wires a Service over an in-memory repo and a real HMAC codec.
func testService(t *testing.T, lifetime time.Duration) (*auth.Service, *memoryAccountRepo) {
	t.Helper()

	codec, err := sec.NewTokenCodec("unit-test-signing-secret", "HS256", "treadstock.app")
	require.NoError(t, err)

	repo := newMemoryAccountRepo()
	service := auth.NewService(repo, codec, lifetime, slog.Default())
	return service, repo
}

func register(t *testing.T, service *auth.Service, email, username, password string) *auth.Credentials {
	t.Helper()

	credentials, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    email,
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	return credentials
}

/*
TestService_Register verifies account creation and first-token issuance.
*/
func TestService_Register(t *testing.T) {
	service, _ := testService(t, 30*time.Minute)

	credentials := register(t, service, "alice@example.com", "alice", "s3cret-pass")

	require.NotNil(t, credentials.Account)
	assert.Positive(t, credentials.Account.ID)
	assert.Equal(t, "alice@example.com", credentials.Account.Email)
	assert.True(t, credentials.Account.IsActive)
	assert.NotEmpty(t, credentials.Token)

	// The stored verifier is never the plain password.
	assert.NotEqual(t, "s3cret-pass", credentials.Account.PasswordHash)
	assert.NotContains(t, credentials.Account.PasswordHash, "s3cret-pass")

	// The token resolves straight back to the created account.
	resolved, err := service.ResolveIdentity(context.Background(), credentials.Token)
	require.NoError(t, err)
	assert.Equal(t, credentials.Account.ID, resolved.ID)
}

/*
TestService_Register_Duplicates verifies the conflict checks and their fixed
precedence: email is reported before username when both are taken.
*/
func TestService_Register_Duplicates(t *testing.T) {
	service, _ := testService(t, 30*time.Minute)
	register(t, service, "alice@example.com", "alice", "s3cret-pass")

	tests := []struct {
		name     string
		email    string
		username string
		wantCode string
	}{
		{"email_taken", "alice@example.com", "newname", "DUPLICATE_EMAIL"},
		{"username_taken", "new@example.com", "alice", "DUPLICATE_USERNAME"},
		{"both_taken_email_wins", "alice@example.com", "alice", "DUPLICATE_EMAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), auth.RegisterInput{
				Email:    tt.email,
				Username: tt.username,
				Password: "another-pass",
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

/*
TestService_Login verifies credential checks and the generic rejection: an
unknown username and a wrong password must be indistinguishable.
*/
func TestService_Login(t *testing.T) {
	service, _ := testService(t, 30*time.Minute)
	register(t, service, "alice@example.com", "alice", "s3cret-pass")

	t.Run("success", func(t *testing.T) {
		credentials, err := service.Login(context.Background(), "alice", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "alice", credentials.Account.Username)
		assert.NotEmpty(t, credentials.Token)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Login(context.Background(), "alice", "wrong-pass")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
		assert.Equal(t, "Incorrect username or password", ae.Message)
	})

	t.Run("unknown_username", func(t *testing.T) {
		_, err := service.Login(context.Background(), "nobody", "s3cret-pass")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
		assert.Equal(t, "Incorrect username or password", ae.Message)
	})
}

/*
TestService_Login_MalformedVerifier verifies that a corrupted stored verifier
surfaces as an internal failure, never as a credential rejection.
*/
func TestService_Login_MalformedVerifier(t *testing.T) {
	service, repo := testService(t, 30*time.Minute)

	corrupted := &account.Account{
		Email:        "bob@example.com",
		Username:     "bob",
		PasswordHash: "not-a-bcrypt-verifier",
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), corrupted))

	_, err := service.Login(context.Background(), "bob", "whatever")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
}

/*
TestService_ResolveIdentity covers the identity gate: valid tokens resolve to
accounts, and every rejection path collapses to the same generic error.
*/
func TestService_ResolveIdentity(t *testing.T) {
	service, repo := testService(t, 30*time.Minute)
	credentials := register(t, service, "alice@example.com", "alice", "s3cret-pass")

	t.Run("valid_token", func(t *testing.T) {
		resolved, err := service.ResolveIdentity(context.Background(), credentials.Token)
		require.NoError(t, err)
		assert.Equal(t, credentials.Account.ID, resolved.ID)
		assert.Equal(t, "alice", resolved.Username)
	})

	t.Run("expired_token", func(t *testing.T) {
		shortLived, _ := testService(t, -time.Minute)
		expired := register(t, shortLived, "carol@example.com", "carol", "s3cret-pass")

		_, err := shortLived.ResolveIdentity(context.Background(), expired.Token)
		require.Error(t, err)
		assertGenericRejection(t, err)
	})

	t.Run("foreign_signature", func(t *testing.T) {
		// A token signed under a different key is rejected even though its
		// claims are well-formed.
		foreignCodec, err := sec.NewTokenCodec("some-other-signing-secret", "HS256", "treadstock.app")
		require.NoError(t, err)

		foreign, err := foreignCodec.Encode("alice", time.Hour)
		require.NoError(t, err)

		_, err = service.ResolveIdentity(context.Background(), foreign)
		require.Error(t, err)
		assertGenericRejection(t, err)
	})

	t.Run("garbage_token", func(t *testing.T) {
		_, err := service.ResolveIdentity(context.Background(), "definitely.not.a-token")
		require.Error(t, err)
		assertGenericRejection(t, err)
	})

	t.Run("deleted_subject", func(t *testing.T) {
		doomed := register(t, service, "dave@example.com", "dave", "s3cret-pass")
		repo.delete(doomed.Account.ID)

		_, err := service.ResolveIdentity(context.Background(), doomed.Token)
		require.Error(t, err)
		assertGenericRejection(t, err)
	})
}

/*
TestService_TokensAreStateless verifies that issuing a new token does not
invalidate earlier ones: both of alice's tokens resolve until they expire.
*/
func TestService_TokensAreStateless(t *testing.T) {
	codec, err := sec.NewTokenCodec("unit-test-signing-secret", "HS256", "treadstock.app")
	require.NoError(t, err)

	// Two services over the same accounts and signing key, with different
	// token lifetimes: the expiry claim guarantees the login token differs
	// from the registration token even when both are minted within jwt's
	// one-second timestamp granularity.
	repo := newMemoryAccountRepo()
	service := auth.NewService(repo, codec, 30*time.Minute, slog.Default())
	longService := auth.NewService(repo, codec, 60*time.Minute, slog.Default())

	first := register(t, service, "alice@example.com", "alice", "s3cret-pass")

	second, err := longService.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	for _, token := range []string{first.Token, second.Token} {
		resolved, err := service.ResolveIdentity(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "alice", resolved.Username)
	}
}

// assertGenericRejection asserts the one rejection shape every failed
// resolution produces.
func assertGenericRejection(t *testing.T, err error) {
	t.Helper()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Equal(t, "Could not validate credentials", ae.Message)
}
