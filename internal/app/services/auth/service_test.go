package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	domainauth "github.com/Grace-nduta/Airbnb-Platform/internal/domain/auth"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/security"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/storage/memory"
)

// plainHasher keeps the tests fast; bcrypt is covered by the security package.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "plain:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newService() (*Service, *memory.UserRepository, *memory.SessionStore) {
	users := memory.NewUserRepository()
	sessions := memory.NewSessionStore()
	svc := &Service{
		Users:     users,
		Sessions:  sessions,
		Passwords: plainHasher{},
		Tokens:    security.RandomTokenGenerator{},
	}
	return svc, users, sessions
}

func register(t *testing.T, svc *Service, email string, wantToHost bool) *AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), RegisterParams{
		Email:      email,
		Name:       "Jane Wanjiru",
		Password:   "correct horse",
		WantToHost: wantToHost,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return result
}

func TestRegisterCreatesGuestWithSession(t *testing.T) {
	svc, _, _ := newService()

	result := register(t, svc, "Jane@Example.com", false)
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if result.User.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", result.User.Email)
	}
	if result.User.Role != domainuser.RoleGuest {
		t.Fatalf("role = %s, want guest", result.User.Role)
	}

	resolved, err := svc.ResolveToken(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("resolve fresh token: %v", err)
	}
	if resolved.User.ID != result.User.ID {
		t.Fatalf("resolved user %s, want %s", resolved.User.ID, result.User.ID)
	}
}

func TestRegisterHostRole(t *testing.T) {
	svc, _, _ := newService()

	result := register(t, svc, "host@example.com", true)
	if result.User.Role != domainuser.RoleHost {
		t.Fatalf("role = %s, want host", result.User.Role)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newService()

	register(t, svc, "jane@example.com", false)
	_, err := svc.Register(context.Background(), RegisterParams{
		Email:    "JANE@example.com",
		Name:     "Other Jane",
		Password: "another pass",
	})
	if !errors.Is(err, domainuser.ErrEmailAlreadyUsed) {
		t.Fatalf("err = %v, want ErrEmailAlreadyUsed", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	cases := []struct {
		name   string
		params RegisterParams
		want   error
	}{
		{"missing email", RegisterParams{Name: "Jane", Password: "long enough"}, domainuser.ErrEmailRequired},
		{"missing name", RegisterParams{Email: "a@b.com", Name: "  ", Password: "long enough"}, domainuser.ErrNameRequired},
		{"short password", RegisterParams{Email: "a@b.com", Name: "Jane", Password: "seven77"}, ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.params); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc, "jane@example.com", false)
	ctx := context.Background()

	result, err := svc.Login(ctx, LoginParams{Email: "jane@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}

	if _, err := svc.Login(ctx, LoginParams{Email: "jane@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginParams{Email: "nobody@example.com", Password: "correct horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown account err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRejectsSuspendedAccount(t *testing.T) {
	svc, users, _ := newService()
	result := register(t, svc, "jane@example.com", false)

	result.User.Suspend(time.Now())
	if err := users.Save(context.Background(), result.User); err != nil {
		t.Fatalf("save suspended user: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginParams{Email: "jane@example.com", Password: "correct horse"})
	if !errors.Is(err, ErrAccountSuspended) {
		t.Fatalf("err = %v, want ErrAccountSuspended", err)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, _, _ := newService()
	result := register(t, svc, "jane@example.com", false)
	ctx := context.Background()

	if err := svc.Logout(ctx, result.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.ResolveToken(ctx, result.Token); !errors.Is(err, domainauth.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}

	// Logging out twice is harmless.
	if err := svc.Logout(ctx, result.Token); err != nil {
		t.Fatalf("repeat logout: %v", err)
	}
}

func TestResolveTokenRejectsExpiredSession(t *testing.T) {
	svc, _, sessions := newService()
	result := register(t, svc, "jane@example.com", false)
	ctx := context.Background()

	stale, err := domainauth.NewSession(domainauth.CreateSessionParams{
		Token:  domainauth.Token("stale-token"),
		UserID: result.User.ID,
		Role:   result.User.Role,
		TTL:    time.Hour,
		Now:    time.Now().Add(-48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("build session: %v", err)
	}
	if err := sessions.Save(ctx, stale); err != nil {
		t.Fatalf("save session: %v", err)
	}

	if _, err := svc.ResolveToken(ctx, "stale-token"); !errors.Is(err, domainauth.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	// Expired sessions are deleted on sight.
	if _, err := sessions.Get(ctx, domainauth.Token("stale-token")); !errors.Is(err, domainauth.ErrSessionNotFound) {
		t.Fatalf("stale session still stored, err = %v", err)
	}
}

func TestResolveTokenRequiresToken(t *testing.T) {
	svc, _, _ := newService()

	if _, err := svc.ResolveToken(context.Background(), "  "); !errors.Is(err, domainauth.ErrTokenRequired) {
		t.Fatalf("err = %v, want ErrTokenRequired", err)
	}
}

func TestSessionTokensAreUnique(t *testing.T) {
	svc, _, _ := newService()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		result := register(t, svc, fmt.Sprintf("user%d@example.com", i), false)
		if seen[result.Token] {
			t.Fatalf("duplicate token issued: %s", result.Token)
		}
		if strings.TrimSpace(result.Token) == "" {
			t.Fatal("blank token issued")
		}
		seen[result.Token] = true
	}
}
