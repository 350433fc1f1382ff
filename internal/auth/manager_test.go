package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/informdirect/internal/auth"
	idhttp "github.com/fivetwenty-io/informdirect/internal/http"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthServer serves the three auth endpoints. Each endpoint answers with
// its configured status; 200 responses carry a fresh numbered token pair.
type fakeAuthServer struct {
	*httptest.Server

	authenticateStatus atomic.Int32
	refreshStatus      atomic.Int32
	logoutStatus       atomic.Int32

	authenticateHits atomic.Int32
	refreshHits      atomic.Int32
	logoutHits       atomic.Int32
	issued           atomic.Int32

	lastRefreshToken atomic.Value
	lastAPIKey       atomic.Value
}

func newFakeAuthServer(t *testing.T) *fakeAuthServer {
	t.Helper()

	fake := &fakeAuthServer{}
	fake.authenticateStatus.Store(http.StatusOK)
	fake.refreshStatus.Store(http.StatusOK)
	fake.logoutStatus.Store(http.StatusOK)

	fake.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Empty(t, request.Header.Get("Authorization"))
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		var body map[string]string
		_ = json.NewDecoder(request.Body).Decode(&body)

		var status int32

		switch request.URL.Path {
		case "/authenticate":
			fake.authenticateHits.Add(1)
			fake.lastAPIKey.Store(body["ApiKey"])
			status = fake.authenticateStatus.Load()
		case "/refresh":
			fake.refreshHits.Add(1)
			fake.lastRefreshToken.Store(body["RefreshToken"])
			status = fake.refreshStatus.Load()
		case "/logout":
			fake.logoutHits.Add(1)
			fake.lastRefreshToken.Store(body["RefreshToken"])
			writer.WriteHeader(int(fake.logoutStatus.Load()))

			return
		default:
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		if status != http.StatusOK {
			writer.WriteHeader(int(status))
			_, _ = writer.Write([]byte("denied"))

			return
		}

		n := fake.issued.Add(1)
		_ = json.NewEncoder(writer).Encode(map[string]string{
			"AccessToken":  fmt.Sprintf("access-%d", n),
			"RefreshToken": fmt.Sprintf("refresh-%d", n),
		})
	}))
	t.Cleanup(fake.Close)

	return fake
}

func newManager(server *fakeAuthServer) *auth.Manager {
	return auth.NewManager("test-key", idhttp.NewClient(server.URL, nil), nil)
}

func TestManager_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("stores the pair", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)
		assert.False(t, manager.IsAuthenticated())

		pair, err := manager.Authenticate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &informdirect.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, pair)
		assert.Equal(t, pair, manager.Tokens())
		assert.True(t, manager.IsAuthenticated())
		assert.Equal(t, "test-key", server.lastAPIKey.Load())
	})

	t.Run("failure is an authentication error and clears the pair", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Authenticate(context.Background())
		require.NoError(t, err)

		server.authenticateStatus.Store(http.StatusForbidden)

		_, err = manager.Authenticate(context.Background())
		require.Error(t, err)

		idErr, ok := informdirect.AsError(err)
		require.True(t, ok)
		assert.Equal(t, informdirect.KindAuthentication, idErr.Kind)
		assert.Equal(t, http.StatusForbidden, idErr.Status)
		assert.Equal(t, "Authentication failed: 403", idErr.Message)
		assert.Equal(t, "denied", idErr.Body)
		assert.False(t, manager.IsAuthenticated())
		assert.Nil(t, manager.Tokens())
	})

	t.Run("network failure is not an API error", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)
		server.Close()

		_, err := manager.Authenticate(context.Background())
		require.Error(t, err)
		assert.False(t, informdirect.IsAuthentication(err))
		assert.Contains(t, err.Error(), "authenticating")
	})
}

func TestManager_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("without a pair fails client side", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Refresh(context.Background())
		require.ErrorIs(t, err, informdirect.ErrNoRefreshToken)
		assert.True(t, informdirect.IsAuthentication(err))
		assert.Equal(t, 0, informdirect.StatusCode(err))
		assert.Equal(t, int32(0), server.refreshHits.Load())
	})

	t.Run("replaces the pair", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Authenticate(context.Background())
		require.NoError(t, err)

		pair, err := manager.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "access-2", pair.AccessToken)
		assert.Equal(t, "refresh-1", server.lastRefreshToken.Load())
		assert.Equal(t, "refresh-2", manager.Tokens().RefreshToken)
	})

	t.Run("failure clears the pair", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Authenticate(context.Background())
		require.NoError(t, err)

		server.refreshStatus.Store(http.StatusUnauthorized)

		_, err = manager.Refresh(context.Background())
		require.Error(t, err)
		assert.True(t, informdirect.IsAuthentication(err))
		assert.Equal(t, http.StatusUnauthorized, informdirect.StatusCode(err))
		assert.Equal(t, "Token refresh failed: 401", err.Error())
		assert.False(t, manager.IsAuthenticated())
	})
}

func TestManager_Logout(t *testing.T) {
	t.Parallel()

	t.Run("no pair is a no-op", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		manager.Logout(context.Background())
		assert.Equal(t, int32(0), server.logoutHits.Load())
	})

	t.Run("revokes and clears", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Authenticate(context.Background())
		require.NoError(t, err)

		manager.Logout(context.Background())
		assert.Equal(t, int32(1), server.logoutHits.Load())
		assert.Equal(t, "refresh-1", server.lastRefreshToken.Load())
		assert.False(t, manager.IsAuthenticated())
	})

	t.Run("server failure still clears", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Authenticate(context.Background())
		require.NoError(t, err)

		server.logoutStatus.Store(http.StatusInternalServerError)

		assert.NotPanics(t, func() { manager.Logout(context.Background()) })
		assert.False(t, manager.IsAuthenticated())
	})

	t.Run("network failure still clears", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Authenticate(context.Background())
		require.NoError(t, err)

		server.Close()

		manager.Logout(context.Background())
		assert.False(t, manager.IsAuthenticated())
	})
}

func TestManager_GetToken(t *testing.T) {
	t.Parallel()

	server := newFakeAuthServer(t)
	manager := newManager(server)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)
	assert.Equal(t, int32(1), server.authenticateHits.Load())
}

func TestManager_RefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("refresh succeeds", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Authenticate(context.Background())
		require.NoError(t, err)

		require.NoError(t, manager.RefreshToken(context.Background()))
		assert.Equal(t, int32(1), server.refreshHits.Load())
		assert.Equal(t, int32(1), server.authenticateHits.Load())
		assert.Equal(t, "access-2", manager.Tokens().AccessToken)
	})

	t.Run("falls back to re-authentication", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Authenticate(context.Background())
		require.NoError(t, err)

		server.refreshStatus.Store(http.StatusUnauthorized)

		require.NoError(t, manager.RefreshToken(context.Background()))
		assert.Equal(t, int32(2), server.authenticateHits.Load())
		assert.Equal(t, "access-2", manager.Tokens().AccessToken)
	})

	t.Run("falls back when no pair is held", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		require.NoError(t, manager.RefreshToken(context.Background()))
		assert.Equal(t, int32(0), server.refreshHits.Load())
		assert.Equal(t, int32(1), server.authenticateHits.Load())
	})

	t.Run("both failing yields one 401 with the cause", func(t *testing.T) {
		t.Parallel()

		server := newFakeAuthServer(t)
		manager := newManager(server)

		_, err := manager.Authenticate(context.Background())
		require.NoError(t, err)

		server.refreshStatus.Store(http.StatusUnauthorized)
		server.authenticateStatus.Store(http.StatusForbidden)

		err = manager.RefreshToken(context.Background())
		require.Error(t, err)

		idErr, ok := informdirect.AsError(err)
		require.True(t, ok)
		assert.Equal(t, informdirect.KindAuthentication, idErr.Kind)
		assert.Equal(t, http.StatusUnauthorized, idErr.Status)
		assert.Equal(t, "Token refresh and re-authentication both failed", idErr.Message)

		cause, ok := informdirect.AsError(idErr.Cause)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, cause.Status)
		assert.False(t, manager.IsAuthenticated())
	})
}

func TestTokenStore(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	assert.Nil(t, store.Get())
	assert.False(t, store.Has())

	pair := &informdirect.TokenPair{AccessToken: "a", RefreshToken: "r"}
	store.Set(pair)
	pair.AccessToken = "mutated"

	assert.Equal(t, "a", store.Get().AccessToken)
	assert.True(t, store.Has())

	got := store.Get()
	got.RefreshToken = "mutated"
	assert.Equal(t, "r", store.Get().RefreshToken)

	store.Clear()
	assert.Nil(t, store.Get())
}
