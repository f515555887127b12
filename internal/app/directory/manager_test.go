package directory

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	evbus "github.com/vardius/message-bus"

	"github.com/hrms-project/hrms-portal/internal/adapters/idp"
	"github.com/hrms-project/hrms-portal/internal/config"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

type fakeProvider struct {
	listCalls int
	listUsers []idp.RawUser
	listErr   error

	getUser *idp.RawUser
	getErr  error

	signUpUser *idp.RawUser
	signUpErr  error

	updateUser *idp.RawUser
	updateErr  error

	deleteErr error

	selfUser *idp.RawUser
	selfErr  error
}

func (p *fakeProvider) AdminListUsers(_ context.Context) ([]idp.RawUser, error) {
	p.listCalls++
	return p.listUsers, p.listErr
}

func (p *fakeProvider) AdminGetUser(_ context.Context, _ domain.UserIdentifier) (*idp.RawUser, error) {
	return p.getUser, p.getErr
}

func (p *fakeProvider) AdminUpdateUser(
	_ context.Context,
	_ domain.UserIdentifier,
	_ domain.UserPatch,
) (*idp.RawUser, error) {
	return p.updateUser, p.updateErr
}

func (p *fakeProvider) AdminDeleteUser(_ context.Context, _ domain.UserIdentifier) error {
	return p.deleteErr
}

func (p *fakeProvider) SignUp(_ context.Context, _, _ string, _ map[string]any) (*idp.RawUser, error) {
	return p.signUpUser, p.signUpErr
}

func (p *fakeProvider) UpdateSelf(_ context.Context, _ string, _ domain.UserPatch) (*idp.RawUser, error) {
	return p.selfUser, p.selfErr
}

type noopMetrics struct{}

func (noopMetrics) CountCacheEvent(string) {}

func testManager(t *testing.T, provider DirectoryProvider) (*Manager, *MemoryUserCache) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Directory.CacheTTL = 300 * time.Second

	cache := NewMemoryUserCache()
	mgr, err := NewDirectoryManager(cfg, evbus.New(10), provider, cache, noopMetrics{})
	require.NoError(t, err)

	return mgr, cache
}

func adminCtx() context.Context {
	return domain.SetUserInfo(context.Background(), domain.SystemAdminContextUserInfo())
}

func userCtx(id domain.UserIdentifier) context.Context {
	return domain.SetUserInfo(context.Background(), &domain.ContextUserInfo{Id: id})
}

func Test_Manager_GetAllUsers_CachesSnapshot(t *testing.T) {
	provider := &fakeProvider{
		listUsers: []idp.RawUser{
			{Id: "u1", Email: "one@example.com"},
			{Id: "u2", Email: "two@example.com"},
		},
	}
	mgr, _ := testManager(t, provider)

	first, err := mgr.GetAllUsers(adminCtx())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := mgr.GetAllUsers(adminCtx())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.listCalls, "second call must be served from cache")
}

func Test_Manager_GetAllUsers_ProviderDown(t *testing.T) {
	provider := &fakeProvider{listErr: errors.New("connection refused")}
	mgr, _ := testManager(t, provider)

	_, err := mgr.GetAllUsers(adminCtx())
	assert.Error(t, err)
	assert.Equal(t, 1, provider.listCalls, "errors must not be cached")

	_, err = mgr.GetAllUsers(adminCtx())
	assert.Error(t, err)
	assert.Equal(t, 2, provider.listCalls)
}

func Test_Manager_GetAllUsers_NonAdmin(t *testing.T) {
	provider := &fakeProvider{}
	mgr, _ := testManager(t, provider)

	_, err := mgr.GetAllUsers(userCtx("u1"))
	assert.ErrorIs(t, err, domain.ErrNoPermission)
	assert.Zero(t, provider.listCalls)
}

func Test_Manager_GetUser_NotFound(t *testing.T) {
	provider := &fakeProvider{getErr: &idp.ApiError{Status: http.StatusNotFound, Msg: "user not found"}}
	mgr, _ := testManager(t, provider)

	_, err := mgr.GetUser(adminCtx(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func Test_Manager_CreateUser_InvalidatesCache(t *testing.T) {
	provider := &fakeProvider{
		listUsers:  []idp.RawUser{{Id: "u1", Email: "one@example.com"}},
		signUpUser: &idp.RawUser{Id: "u2", Email: "two@example.com"},
	}
	mgr, cache := testManager(t, provider)

	_, err := mgr.GetAllUsers(adminCtx())
	require.NoError(t, err)

	_, err = mgr.CreateUser(adminCtx(), domain.UserDraft{Email: "two@example.com", Password: "secret"})
	require.NoError(t, err)

	_, ok := cache.Get(cacheKeyAllUsers)
	assert.False(t, ok, "cache must be invalidated after a confirmed creation")
}

func Test_Manager_CreateUser_DuplicateEmail(t *testing.T) {
	provider := &fakeProvider{
		signUpErr: &idp.ApiError{Status: http.StatusUnprocessableEntity, Msg: "User already registered"},
	}
	mgr, cache := testManager(t, provider)
	cache.Set(cacheKeyAllUsers, []domain.User{{Identifier: "u1"}}, time.Minute)

	_, err := mgr.CreateUser(adminCtx(), domain.UserDraft{Email: "dup@example.com", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUserCreation)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "dup@example.com")

	_, ok := cache.Get(cacheKeyAllUsers)
	assert.True(t, ok, "cache must survive a failed creation")
}

func Test_Manager_CreateUser_NoPrincipal(t *testing.T) {
	provider := &fakeProvider{} // sign-up succeeds but returns no record
	mgr, _ := testManager(t, provider)

	_, err := mgr.CreateUser(adminCtx(), domain.UserDraft{Email: "x@example.com", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUserCreation)
}

func Test_Manager_UpdateUser_InvalidatesCache(t *testing.T) {
	provider := &fakeProvider{updateUser: &idp.RawUser{Id: "u1", Email: "new@example.com"}}
	mgr, cache := testManager(t, provider)
	cache.Set(cacheKeyAllUsers, []domain.User{{Identifier: "u1"}}, time.Minute)

	user, err := mgr.UpdateUser(adminCtx(), "u1", domain.UserPatch{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)

	_, ok := cache.Get(cacheKeyAllUsers)
	assert.False(t, ok)
}

func Test_Manager_UpdateUser_NotFound(t *testing.T) {
	provider := &fakeProvider{updateErr: &idp.ApiError{Status: http.StatusNotFound, Msg: "user not found"}}
	mgr, cache := testManager(t, provider)
	cache.Set(cacheKeyAllUsers, []domain.User{{Identifier: "u1"}}, time.Minute)

	_, err := mgr.UpdateUser(adminCtx(), "missing", domain.UserPatch{})
	assert.ErrorIs(t, err, domain.ErrUserUpdate)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, ok := cache.Get(cacheKeyAllUsers)
	assert.True(t, ok, "cache must survive a failed update")
}

func Test_Manager_DeleteUser(t *testing.T) {
	provider := &fakeProvider{}
	mgr, cache := testManager(t, provider)
	cache.Set(cacheKeyAllUsers, []domain.User{{Identifier: "u1"}}, time.Minute)

	err := mgr.DeleteUser(adminCtx(), "u1")
	require.NoError(t, err)

	_, ok := cache.Get(cacheKeyAllUsers)
	assert.False(t, ok)
}

func Test_Manager_DeleteUser_NotFound(t *testing.T) {
	provider := &fakeProvider{deleteErr: &idp.ApiError{Status: http.StatusNotFound, Msg: "user not found"}}
	mgr, _ := testManager(t, provider)

	err := mgr.DeleteUser(adminCtx(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserDeletion)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func Test_Manager_UpdateProfile(t *testing.T) {
	provider := &fakeProvider{selfUser: &idp.RawUser{Id: "u1", Email: "self@example.com"}}
	mgr, cache := testManager(t, provider)
	cache.Set(cacheKeyAllUsers, []domain.User{{Identifier: "u1"}}, time.Minute)

	user, err := mgr.UpdateProfile(userCtx("u1"), "u1", "token", domain.UserPatch{Email: "self@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "self@example.com", user.Email)

	_, ok := cache.Get(cacheKeyAllUsers)
	assert.False(t, ok, "self-service updates invalidate the directory cache as well")
}

func Test_Manager_UpdateProfile_ForeignUser(t *testing.T) {
	provider := &fakeProvider{}
	mgr, _ := testManager(t, provider)

	_, err := mgr.UpdateProfile(userCtx("u1"), "u2", "token", domain.UserPatch{})
	assert.ErrorIs(t, err, domain.ErrNoPermission)
}
