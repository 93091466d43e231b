package services

import (
	"context"
	"easy-shop/models"
	"easy-shop/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAdminEmail = "admin@gmail.com"

func newAuthFixture() (*AuthService, *SessionService) {
	sessions := NewSessionService(testAdminEmail, time.Hour)
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(newFakeUserStore(), sessions, tokens, time.Second, zap.NewNop()), sessions
}

func register(t *testing.T, svc *AuthService, email, password string) {
	t.Helper()
	_, err := svc.CreateAccount(context.Background(), models.RegisterRequest{
		Email: email, Password: password, ConfirmPassword: password,
	})
	require.NoError(t, err)
}

func TestSessionService_ResolveRole(t *testing.T) {
	sessions := NewSessionService(testAdminEmail, time.Hour)

	assert.Equal(t, models.RoleAdmin, sessions.ResolveRole("admin@gmail.com"))
	assert.Equal(t, models.RoleCustomer, sessions.ResolveRole("Admin@gmail.com"))
	assert.Equal(t, models.RoleCustomer, sessions.ResolveRole("x@y.com"))
	assert.Equal(t, models.RoleCustomer, NewSessionService("", time.Hour).ResolveRole(""))
}

func TestSessionService_Lifecycle(t *testing.T) {
	sessions := NewSessionService(testAdminEmail, time.Hour)

	s := sessions.Create("x@y.com")
	got, err := sessions.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, models.LandingCatalog, got.Landing())

	sessions.Destroy(s.ID)
	_, err = sessions.Get(s.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	assert.Equal(t, 0, sessions.Count())
}

func TestCreateAccount_ConfirmMismatch(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.CreateAccount(context.Background(), models.RegisterRequest{
		Email: "x@y.com", Password: "secret", ConfirmPassword: "secreT",
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "confirm_password", verr.Field)
}

func TestCreateAccount_Duplicate(t *testing.T) {
	svc, _ := newAuthFixture()
	register(t, svc, "x@y.com", "secret")

	_, err := svc.CreateAccount(context.Background(), models.RegisterRequest{
		Email: "x@y.com", Password: "other", ConfirmPassword: "other",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestSignIn_CustomerLandsOnCatalog(t *testing.T) {
	svc, sessions := newAuthFixture()
	register(t, svc, "x@y.com", "secret")

	resp, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "x@y.com", Password: "secret"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleCustomer, resp.Session.Role)
	assert.Equal(t, models.LandingCatalog, resp.Session.Landing)
	assert.Equal(t, 1, sessions.Count())
}

func TestSignIn_AdminLandsOnAdmin(t *testing.T) {
	svc, _ := newAuthFixture()
	require.NoError(t, svc.EnsureAdminAccount(context.Background(), testAdminEmail, "secret"))

	resp, err := svc.SignIn(context.Background(), models.LoginRequest{Email: testAdminEmail, Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Session.Role)
	assert.Equal(t, models.LandingAdmin, resp.Session.Landing)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	svc, sessions := newAuthFixture()
	register(t, svc, "x@y.com", "secret")

	_, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "x@y.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), models.LoginRequest{Email: "nobody@y.com", Password: "secret"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	assert.Equal(t, 0, sessions.Count())
}

func TestAuthenticate_AfterSignOut(t *testing.T) {
	svc, _ := newAuthFixture()
	register(t, svc, "x@y.com", "secret")

	resp, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "x@y.com", Password: "secret"})
	require.NoError(t, err)

	session, err := svc.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", session.Email)

	svc.SignOut(session)

	_, err = svc.Authenticate(resp.Token)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestSignIn_FreshCartPerSession(t *testing.T) {
	svc, _ := newAuthFixture()
	register(t, svc, "x@y.com", "secret")

	first, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "x@y.com", Password: "secret"})
	require.NoError(t, err)
	s1, err := svc.Authenticate(first.Token)
	require.NoError(t, err)
	_ = s1.WithCart(func(c *models.Cart) error {
		c.AddLine(productA)
		return nil
	})
	svc.SignOut(s1)

	second, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "x@y.com", Password: "secret"})
	require.NoError(t, err)
	s2, err := svc.Authenticate(second.Token)
	require.NoError(t, err)
	assert.Equal(t, 0, cartLen(s2))
}

func TestCreateAccount_AdminEmailIsReserved(t *testing.T) {
	svc, sessions := newAuthFixture()

	_, err := svc.CreateAccount(context.Background(), models.RegisterRequest{
		Email: " " + testAdminEmail, Password: "secret", ConfirmPassword: "secret",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	_, err = svc.SignIn(context.Background(), models.LoginRequest{Email: testAdminEmail, Password: "secret"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Equal(t, 0, sessions.Count())
}

func TestCreateAccount_NoAdminConfigured(t *testing.T) {
	users := newFakeUserStore()
	sessions := NewSessionService("", time.Hour)
	svc := NewAuthService(users, sessions, utils.NewTokenIssuer("test-secret", time.Hour), time.Second, zap.NewNop())
	register(t, svc, "admin@gmail.com", "secret")

	resp, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "admin@gmail.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, resp.Session.Role)
	assert.Equal(t, models.LandingCatalog, resp.Session.Landing)
}

func TestEnsureAdminAccount(t *testing.T) {
	users := newFakeUserStore()
	sessions := NewSessionService(testAdminEmail, time.Hour)
	svc := NewAuthService(users, sessions, utils.NewTokenIssuer("test-secret", time.Hour), time.Second, zap.NewNop())

	require.NoError(t, svc.EnsureAdminAccount(context.Background(), testAdminEmail, "first"))
	require.NoError(t, svc.EnsureAdminAccount(context.Background(), testAdminEmail, "second"))
	assert.Len(t, users.users, 1)

	_, err := svc.SignIn(context.Background(), models.LoginRequest{Email: testAdminEmail, Password: "second"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), models.LoginRequest{Email: testAdminEmail, Password: "first"})
	assert.NoError(t, err)

	require.NoError(t, svc.EnsureAdminAccount(context.Background(), "", "x"))
	assert.Len(t, users.users, 1)
}

func TestSessionService_ExpiredSessionsAreDropped(t *testing.T) {
	sessions := NewSessionService(testAdminEmail, time.Hour)
	now := time.Now()
	sessions.now = func() time.Time { return now }

	first := sessions.Create("x@y.com")
	for i := 0; i < 99; i++ {
		sessions.Create("x@y.com")
	}
	assert.Equal(t, now.Add(time.Hour), first.ExpiresAt)
	assert.Equal(t, 100, sessions.Count())

	now = now.Add(time.Hour)

	_, err := sessions.Get(first.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	assert.Equal(t, 99, sessions.Count())

	fresh := sessions.Create("y@y.com")
	assert.Equal(t, 1, sessions.Count())

	got, err := sessions.Get(fresh.ID)
	require.NoError(t, err)
	assert.Same(t, fresh, got)
}

func TestSessionService_Sweep(t *testing.T) {
	sessions := NewSessionService(testAdminEmail, time.Minute)
	now := time.Now()
	sessions.now = func() time.Time { return now }

	sessions.Create("x@y.com")
	sessions.Create("y@y.com")

	assert.Equal(t, 0, sessions.Sweep())
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, sessions.Sweep())
	assert.Equal(t, 0, sessions.Count())
}

func TestAuthenticate_ExpiredSession(t *testing.T) {
	users := newFakeUserStore()
	sessions := NewSessionService(testAdminEmail, 50*time.Millisecond)
	svc := NewAuthService(users, sessions, utils.NewTokenIssuer("test-secret", time.Hour), time.Second, zap.NewNop())
	register(t, svc, "x@y.com", "secret")

	resp, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "x@y.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Authenticate(resp.Token)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = svc.Authenticate(resp.Token)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	assert.Equal(t, 0, sessions.Count())
}
