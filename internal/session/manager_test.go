package session

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jobdash/internal/models"
	"jobdash/internal/providers"
	"jobdash/internal/storage"
	"jobdash/internal/structures"
	"jobdash/internal/testutil"
	"jobdash/internal/transport"
)

// fakeAuthAPI mimics the auth endpoints of the job API.
type fakeAuthAPI struct {
	validToken  string
	profileHits int32
	jobsHits    int32
	lastAuth    atomic.Value
	lastBody    atomic.Value
	loginStatus int
	// profile requests signal profileEntered and wait for profileGate, when set
	profileEntered chan struct{}
	profileGate    chan struct{}
}

func (f *fakeAuthAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lastAuth.Store(r.Header.Get("Authorization"))
	body, _ := io.ReadAll(r.Body)
	f.lastBody.Store(body)

	switch r.URL.Path {
	case "/auth/login/":
		if f.loginStatus != 0 {
			w.WriteHeader(f.loginStatus)
			w.Write([]byte(`{"non_field_errors":["Invalid credentials."]}`))
			return
		}
		w.Write([]byte(`{"access":"` + f.validToken + `","refresh":"r1","user":{"id":1,"email":"ada@example.com","username":"ada"}}`))
	case "/auth/register/":
		var reg models.Registration
		_ = json.Unmarshal(body, &reg)
		if reg.Password != reg.PasswordConfirm {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"non_field_errors":["Passwords don't match."]}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"access":"` + f.validToken + `","refresh":"r1","user":{"id":2,"email":"` + reg.Email + `","username":"` + reg.Username + `"}}`))
	case "/auth/profile/":
		atomic.AddInt32(&f.profileHits, 1)
		if f.profileGate != nil {
			f.profileEntered <- struct{}{}
			<-f.profileGate
		}
		if r.Header.Get("Authorization") != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
			return
		}
		if r.Method == http.MethodPut {
			var upd models.ProfileUpdate
			_ = json.Unmarshal(body, &upd)
			w.Write([]byte(`{"id":1,"email":"` + *upd.Email + `","username":"` + *upd.Username + `","first_name":"` + *upd.FirstName + `"}`))
			return
		}
		w.Write([]byte(`{"id":1,"email":"ada@example.com","username":"ada","first_name":"Ada"}`))
	default:
		atomic.AddInt32(&f.jobsHits, 1)
		w.Write([]byte(`[]`))
	}
}

type managerFixture struct {
	api     *fakeAuthAPI
	baseURL string
	kv      *testutil.MemoryStorage
	store   *Store
	client  *transport.Client
	manager *Manager
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()
	api := &fakeAuthAPI{validToken: "tok-1"}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	conf := &structures.Config{Api: structures.ApiConfig{BaseURL: srv.URL}}
	logger := &testutil.MockLogger{}
	kv := testutil.NewMemoryStorage(storage.ErrKeyNotFound)
	store := NewStore(conf, kv, logger)
	client := transport.NewClient(conf, store, testutil.NewMockMetrics(), logger)
	return &managerFixture{
		api:     api,
		baseURL: srv.URL,
		kv:      kv,
		store:   store,
		client:  client,
		manager: NewManager(store, client, logger),
	}
}

func TestManager_SignInStoresAndPersists(t *testing.T) {
	f := newManagerFixture(t)

	pair, err := f.manager.SignIn(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", pair.Access)
	assert.True(t, f.manager.Authenticated())
	assert.Contains(t, f.kv.Data, providers.DefaultSessionKey)
	assert.Empty(t, f.api.lastAuth.Load(), "login must be anonymous")

	user, ok := f.manager.Identity()
	require.True(t, ok)
	assert.Equal(t, "ada", user.Username)
}

func TestManager_SignInInvalidCredentialsKeepsPriorState(t *testing.T) {
	f := newManagerFixture(t)
	require.NoError(t, f.store.Replace(samplePair("previous")))
	f.api.loginStatus = http.StatusBadRequest

	_, err := f.manager.SignIn(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, transport.ErrInvalidCredentials)

	tok, ok := f.store.AccessToken()
	assert.True(t, ok)
	assert.Equal(t, "previous", tok)
}

func TestManager_SignInUnauthorizedIsInvalidCredentials(t *testing.T) {
	f := newManagerFixture(t)
	f.api.loginStatus = http.StatusUnauthorized

	_, err := f.manager.SignIn(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, transport.ErrInvalidCredentials)
	assert.False(t, f.manager.Authenticated())
}

func TestManager_SignInNetworkError(t *testing.T) {
	logger := &testutil.MockLogger{}
	conf := &structures.Config{Api: structures.ApiConfig{BaseURL: "http://127.0.0.1:1"}}
	store := NewStore(conf, testutil.NewMemoryStorage(storage.ErrKeyNotFound), logger)
	m := NewManager(store, transport.NewClient(conf, store, testutil.NewMockMetrics(), logger), logger)

	_, err := m.SignIn(context.Background(), "ada@example.com", "secret")
	assert.ErrorIs(t, err, transport.ErrNetwork)
	assert.NotErrorIs(t, err, transport.ErrInvalidCredentials)
}

func TestManager_SignUp(t *testing.T) {
	f := newManagerFixture(t)

	pair, err := f.manager.SignUp(context.Background(), models.Registration{
		Email: "grace@example.com", Username: "grace", Password: "longpassword", PasswordConfirm: "longpassword",
	})
	require.NoError(t, err)
	assert.Equal(t, "grace", pair.User.Username)
	assert.True(t, f.manager.Authenticated())
}

func TestManager_SignUpValidationError(t *testing.T) {
	f := newManagerFixture(t)

	_, err := f.manager.SignUp(context.Background(), models.Registration{
		Email: "grace@example.com", Username: "grace", Password: "longpassword", PasswordConfirm: "different",
	})
	var ve *transport.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Passwords don't match."}, ve.Fields["non_field_errors"])
	assert.False(t, f.manager.Authenticated())
}

func TestManager_SignOutBlocksAuthenticatedCalls(t *testing.T) {
	f := newManagerFixture(t)
	_, err := f.manager.SignIn(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	f.manager.SignOut()
	f.manager.SignOut()

	_, err = f.client.Request(context.Background(), http.MethodGet, "/jobs/", nil, nil)
	assert.ErrorIs(t, err, transport.ErrUnauthorized)
	assert.Zero(t, atomic.LoadInt32(&f.api.jobsHits))
	assert.NotContains(t, f.kv.Data, providers.DefaultSessionKey)
}

// restart builds a fresh store, client and manager over the fixture's
// persisted state, as a new process would.
func (f *managerFixture) restart() (*Store, *transport.Client, *Manager) {
	logger := &testutil.MockLogger{}
	conf := &structures.Config{Api: structures.ApiConfig{BaseURL: f.baseURL}}
	store := NewStore(conf, f.kv, logger)
	client := transport.NewClient(conf, store, testutil.NewMockMetrics(), logger)
	return store, client, NewManager(store, client, logger)
}

func TestManager_RestoreValidSession(t *testing.T) {
	f := newManagerFixture(t)
	require.NoError(t, f.store.Replace(models.CredentialPair{Access: "tok-1", Refresh: "r1", User: models.User{ID: 1, Username: "old"}}))

	restarted, _, m := f.restart()
	user, ok := m.Restore(context.Background())
	require.True(t, ok)
	assert.Equal(t, "Ada", user.FirstName)

	stored, _ := restarted.Identity()
	assert.Equal(t, "ada", stored.Username, "identity refreshed from profile")
}

func TestManager_RestoreHidesPairUntilValidated(t *testing.T) {
	f := newManagerFixture(t)
	require.NoError(t, f.store.Replace(samplePair("tok-1")))
	f.api.profileEntered = make(chan struct{})
	f.api.profileGate = make(chan struct{})

	restarted, client, m := f.restart()
	type result struct {
		user models.User
		ok   bool
	}
	done := make(chan result, 1)
	go func() {
		user, ok := m.Restore(context.Background())
		done <- result{user, ok}
	}()

	<-f.api.profileEntered
	assert.Equal(t, "Bearer tok-1", f.api.lastAuth.Load(), "validated with the persisted token")
	assert.False(t, m.Authenticated())
	_, ok := restarted.Identity()
	assert.False(t, ok)
	_, err := client.Request(context.Background(), http.MethodGet, "/jobs/", nil, nil)
	assert.ErrorIs(t, err, transport.ErrUnauthorized)
	assert.Zero(t, atomic.LoadInt32(&f.api.jobsHits))

	close(f.api.profileGate)
	res := <-done
	require.True(t, res.ok)
	assert.Equal(t, "Ada", res.user.FirstName)
	assert.True(t, m.Authenticated())
}

func TestManager_RestoreRejectedPersistedPairIsCleared(t *testing.T) {
	f := newManagerFixture(t)
	require.NoError(t, f.store.Replace(samplePair("revoked")))

	_, _, m := f.restart()
	_, ok := m.Restore(context.Background())
	assert.False(t, ok)
	assert.False(t, m.Authenticated())
	assert.NotContains(t, f.kv.Data, providers.DefaultSessionKey)
}

func TestManager_RestoreRejectedSessionIsCleared(t *testing.T) {
	f := newManagerFixture(t)
	require.NoError(t, f.store.Replace(samplePair("revoked")))

	var user models.User
	var ok bool
	assert.NotPanics(t, func() {
		user, ok = f.manager.Restore(context.Background())
	})
	assert.False(t, ok)
	assert.Zero(t, user)
	assert.False(t, f.manager.Authenticated())
	assert.NotContains(t, f.kv.Data, providers.DefaultSessionKey)
}

func TestManager_RestoreExpiredTokenNeverHitsNetwork(t *testing.T) {
	f := newManagerFixture(t)
	require.NoError(t, f.store.Replace(samplePair(testutil.SignedToken(1, time.Now().Add(-time.Hour)))))

	_, ok := f.manager.Restore(context.Background())
	assert.False(t, ok)
	assert.Zero(t, atomic.LoadInt32(&f.api.profileHits))
	assert.NotContains(t, f.kv.Data, providers.DefaultSessionKey)
}

func TestManager_RestoreWithoutPersistedSession(t *testing.T) {
	f := newManagerFixture(t)

	_, ok := f.manager.Restore(context.Background())
	assert.False(t, ok)
	assert.Zero(t, atomic.LoadInt32(&f.api.profileHits))
}

func TestManager_UpdateProfileMergesAndReplacesIdentity(t *testing.T) {
	f := newManagerFixture(t)
	_, err := f.manager.SignIn(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	first := "Augusta"
	user, err := f.manager.UpdateProfile(context.Background(), models.ProfileUpdate{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", user.FirstName)

	var sent map[string]string
	require.NoError(t, json.Unmarshal(f.api.lastBody.Load().([]byte), &sent))
	assert.Equal(t, map[string]string{
		"email": "ada@example.com", "username": "ada", "first_name": "Augusta", "last_name": "",
	}, sent)

	stored, _ := f.manager.Identity()
	assert.Equal(t, "Augusta", stored.FirstName)
	pair, _ := f.store.Credentials()
	assert.Equal(t, "tok-1", pair.Access)
}

func TestManager_ProfileRequiresSession(t *testing.T) {
	f := newManagerFixture(t)
	_, err := f.manager.Profile(context.Background())
	assert.ErrorIs(t, err, transport.ErrUnauthorized)
}
