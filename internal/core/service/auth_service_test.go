package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/staynest/rental-platform/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateFields(_ context.Context, id string, fields map[string]any) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "email":
			u.Email = v.(string)
		case "role":
			u.Role = v.(string)
		case "password_hash":
			u.PasswordHash = v.(string)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) SetBlocked(_ context.Context, id string, blocked bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsBlocked = blocked
	return nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "Alice", "a@x.com", "pw123456", domain.RoleOwner)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "pw123456" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.IsBlocked {
		t.Fatalf("new user must not be blocked")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "", "a@x.com", "pw", domain.RoleTenant); err != domain.ErrInvalidInput {
		t.Fatalf("missing name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bob", "b@x.com", "pw", "superuser"); err != domain.ErrInvalidInput {
		t.Fatalf("bad role: expected ErrInvalidInput, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be stored on validation failure")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "Bob", "bob@x.com", "pw", domain.RoleTenant); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bobby", "bob@x.com", "pw2", domain.RoleOwner); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate register must not create a record")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 24*time.Hour)

	if _, err := svc.Register(context.Background(), "Carol", "carol@x.com", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user == nil || user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["user_id"] != user.ID {
		t.Fatalf("token bound to %v, want %s", claims["user_id"], user.ID)
	}
	exp, _ := claims.GetExpirationTime()
	if exp == nil || time.Until(exp.Time) > 24*time.Hour || time.Until(exp.Time) < 23*time.Hour {
		t.Fatalf("expected ~24h expiry, got %v", exp)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "Dave", "dave@x.com", "goodpass", domain.RoleTenant)
	if _, _, err := svc.Login(context.Background(), "dave@x.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "pw"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_VerifyToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, _ := svc.Register(context.Background(), "Eve", "eve@x.com", "pw", domain.RoleOwner)
	token, _, err := svc.Login(context.Background(), "eve@x.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	id, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if id != user.ID {
		t.Fatalf("got user id %s, want %s", id, user.ID)
	}

	if _, err := svc.VerifyToken(""); err != domain.ErrUnauthenticated {
		t.Fatalf("empty token: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.VerifyToken("not.a.jwt"); err != domain.ErrUnauthenticated {
		t.Fatalf("garbage token: expected ErrUnauthenticated, got %v", err)
	}

	other := NewAuthService(repo, "other-secret", time.Hour)
	if _, err := other.VerifyToken(token); err != domain.ErrUnauthenticated {
		t.Fatalf("foreign signature: expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	repo := newStubUserRepo()

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": "user-1",
		"iat":     now.Add(-2 * time.Hour).Unix(),
		"exp":     now.Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := NewAuthService(repo, "secret", time.Hour)
	if _, err := svc.VerifyToken(token); err != domain.ErrUnauthenticated {
		t.Fatalf("expired token: expected ErrUnauthenticated, got %v", err)
	}
}
