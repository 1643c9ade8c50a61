package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlinemember/portfolio-website/config"
	"github.com/starlinemember/portfolio-website/internal/mail"
)

type fakeProvider struct {
	user    *ProviderUser
	signErr error
	revoked []string
}

func (f *fakeProvider) SignInWithPassword(_ context.Context, _, _ string) (*ProviderUser, error) {
	if f.signErr != nil {
		return nil, f.signErr
	}
	return f.user, nil
}

func (f *fakeProvider) RevokeSessions(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

type fakeStore struct {
	admin    *AdminUser
	sessions map[string]*Session
}

func newFakeStore(admin *AdminUser) *fakeStore {
	return &fakeStore{admin: admin, sessions: make(map[string]*Session)}
}

func (f *fakeStore) GetActiveAdminByEmail(_ context.Context, email string) (*AdminUser, error) {
	if f.admin == nil || f.admin.Email != email {
		return nil, ErrNotAdmin
	}
	return f.admin, nil
}

func (f *fakeStore) GetAdminByID(_ context.Context, id uuid.UUID) (*AdminUser, error) {
	if f.admin == nil || f.admin.ID != id {
		return nil, ErrNotAdmin
	}
	return f.admin, nil
}

func (f *fakeStore) CreateSession(_ context.Context, token string, adminID uuid.UUID, verified bool, ttl time.Duration) (*Session, error) {
	s := &Session{
		Token:     token,
		AdminID:   adminID,
		Verified:  verified,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	f.sessions[token] = s
	return s, nil
}

func (f *fakeStore) GetSession(_ context.Context, token string) (*Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeStore) MarkSessionVerified(_ context.Context, token string) (bool, error) {
	s, ok := f.sessions[token]
	if !ok {
		return false, nil
	}
	s.Verified = true
	return true, nil
}

func (f *fakeStore) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

type attemptRow struct {
	email   string
	ip      string
	success bool
}

type fakeAttempts struct {
	rows     []attemptRow
	failures int
}

func (f *fakeAttempts) Record(_ context.Context, email, ip string, success bool) error {
	f.rows = append(f.rows, attemptRow{email: email, ip: ip, success: success})
	if !success {
		f.failures++
	}
	return nil
}

func (f *fakeAttempts) CountRecentFailures(_ context.Context, _ string, _ time.Duration) (int, error) {
	return f.failures, nil
}

type fakeBlocklist struct {
	blocked map[string]bool
}

func newFakeBlocklist() *fakeBlocklist {
	return &fakeBlocklist{blocked: make(map[string]bool)}
}

func (f *fakeBlocklist) IsBlocked(_ context.Context, ip string) (bool, error) {
	return f.blocked[ip], nil
}

func (f *fakeBlocklist) Block(_ context.Context, ip, _ string, _ time.Duration) error {
	f.blocked[ip] = true
	return nil
}

type fakeSender struct {
	calls []mail.TemplateParams
	err   error
}

func (f *fakeSender) Send(_ context.Context, params mail.TemplateParams) error {
	f.calls = append(f.calls, params)
	return f.err
}

func testSecurityConfig(twoFactor bool) config.SecurityConfig {
	return config.SecurityConfig{
		LoginFailureLimit:  3,
		LoginFailureWindow: time.Hour,
		IPBlockDuration:    24 * time.Hour,
		SessionTTL:         8 * time.Hour,
		TwoFactorEnabled:   twoFactor,
		TwoFactorTTL:       10 * time.Minute,
	}
}

func testAdmin() *AdminUser {
	return &AdminUser{
		ID:          uuid.New(),
		Email:       "admin@example.com",
		DisplayName: "Admin",
		Active:      true,
	}
}

func newTestCodes(t *testing.T) *CodeStore {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewCodeStore(rdb, 10*time.Minute, "")
}

func TestLoginDeniedWithoutMembership(t *testing.T) {
	provider := &fakeProvider{user: &ProviderUser{UID: "uid-1", Email: "someone@example.com"}}
	store := newFakeStore(nil)
	attempts := &fakeAttempts{}
	blocklist := newFakeBlocklist()
	mailer := &fakeSender{}

	svc := NewService(provider, store, nil, attempts, blocklist, mailer, testSecurityConfig(false))

	_, err := svc.Login(context.Background(), "someone@example.com", "pw", "1.2.3.4")
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, "Access denied: Admin privileges required", err.Error())

	// The provider session must not survive the refusal.
	assert.Equal(t, []string{"uid-1"}, provider.revoked)

	require.Len(t, attempts.rows, 1)
	assert.False(t, attempts.rows[0].success)
	assert.Empty(t, store.sessions)
}

func TestLoginBlockedIP(t *testing.T) {
	provider := &fakeProvider{user: &ProviderUser{UID: "uid-1", Email: "admin@example.com"}}
	blocklist := newFakeBlocklist()
	blocklist.blocked["6.6.6.6"] = true

	svc := NewService(provider, newFakeStore(testAdmin()), nil, &fakeAttempts{}, blocklist,
		&fakeSender{}, testSecurityConfig(false))

	_, err := svc.Login(context.Background(), "admin@example.com", "pw", "6.6.6.6")
	assert.ErrorIs(t, err, ErrIPBlocked)
	assert.Empty(t, provider.revoked)
}

func TestLoginInvalidCredentials(t *testing.T) {
	provider := &fakeProvider{signErr: ErrInvalidCredentials}
	attempts := &fakeAttempts{}

	svc := NewService(provider, newFakeStore(testAdmin()), nil, attempts, newFakeBlocklist(),
		&fakeSender{}, testSecurityConfig(false))

	_, err := svc.Login(context.Background(), "admin@example.com", "wrong", "1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, attempts.rows, 1)
	assert.False(t, attempts.rows[0].success)
}

func TestRepeatedFailuresBlockTheSource(t *testing.T) {
	provider := &fakeProvider{signErr: ErrInvalidCredentials}
	attempts := &fakeAttempts{}
	blocklist := newFakeBlocklist()
	mailer := &fakeSender{}
	cfg := testSecurityConfig(false)

	svc := NewService(provider, newFakeStore(testAdmin()), nil, attempts, blocklist, mailer, cfg)
	ctx := context.Background()

	for i := 0; i < cfg.LoginFailureLimit; i++ {
		_, err := svc.Login(ctx, "admin@example.com", "wrong", "6.6.6.6")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	assert.True(t, blocklist.blocked["6.6.6.6"])
	require.Len(t, mailer.calls, 1)
	assert.Equal(t, "Admin login blocked", mailer.calls[0].Subject)

	// The block now short-circuits further attempts.
	_, err := svc.Login(ctx, "admin@example.com", "wrong", "6.6.6.6")
	assert.ErrorIs(t, err, ErrIPBlocked)
}

func TestLoginWithoutTwoFactor(t *testing.T) {
	admin := testAdmin()
	provider := &fakeProvider{user: &ProviderUser{UID: "uid-1", Email: admin.Email}}
	store := newFakeStore(admin)

	svc := NewService(provider, store, nil, &fakeAttempts{}, newFakeBlocklist(),
		&fakeSender{}, testSecurityConfig(false))

	res, err := svc.Login(context.Background(), admin.Email, "pw", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.RequiresTwo)
	assert.True(t, res.Session.Verified)
	assert.Len(t, res.Session.Token, 64)
}

func TestLoginWithTwoFactor(t *testing.T) {
	admin := testAdmin()
	provider := &fakeProvider{user: &ProviderUser{UID: "uid-1", Email: admin.Email}}
	store := newFakeStore(admin)
	mailer := &fakeSender{}

	svc := NewService(provider, store, newTestCodes(t), &fakeAttempts{}, newFakeBlocklist(),
		mailer, testSecurityConfig(true))
	ctx := context.Background()

	res, err := svc.Login(ctx, admin.Email, "pw", "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, res.RequiresTwo)
	assert.False(t, res.Session.Verified)

	// The code goes to the admin, not the site inbox.
	require.Len(t, mailer.calls, 1)
	assert.Equal(t, admin.Email, mailer.calls[0].ToEmail)

	// An unverified session is refused by Check until the code clears.
	_, _, err = svc.Check(ctx, res.Session.Token)
	assert.Error(t, err)
}

func TestLoginTwoFactorDispatchFailureDropsSession(t *testing.T) {
	admin := testAdmin()
	provider := &fakeProvider{user: &ProviderUser{UID: "uid-1", Email: admin.Email}}
	store := newFakeStore(admin)
	mailer := &fakeSender{err: errors.New("provider down")}

	svc := NewService(provider, store, newTestCodes(t), &fakeAttempts{}, newFakeBlocklist(),
		mailer, testSecurityConfig(true))

	_, err := svc.Login(context.Background(), admin.Email, "pw", "1.2.3.4")
	require.Error(t, err)
	assert.Empty(t, store.sessions, "undeliverable code must not leave a pending session")
}

func TestVerifyCodeFlipsSession(t *testing.T) {
	admin := testAdmin()
	provider := &fakeProvider{user: &ProviderUser{UID: "uid-1", Email: admin.Email}}
	store := newFakeStore(admin)
	codes := newTestCodes(t)
	mailer := &fakeSender{}

	svc := NewService(provider, store, codes, &fakeAttempts{}, newFakeBlocklist(),
		mailer, testSecurityConfig(true))
	ctx := context.Background()

	res, err := svc.Login(ctx, admin.Email, "pw", "1.2.3.4")
	require.NoError(t, err)

	_, err = svc.VerifyCode(ctx, res.Session.Token, "999999")
	assert.ErrorIs(t, err, ErrBadCode)

	// Mint a fresh code for the session; the dispatched one is only inside
	// the mail body.
	code, err := codes.Issue(ctx, res.Session.Token)
	require.NoError(t, err)

	session, err := svc.VerifyCode(ctx, res.Session.Token, code)
	require.NoError(t, err)
	assert.True(t, session.Verified)

	_, got, err := svc.Check(ctx, res.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.Email, got.Email)
}
