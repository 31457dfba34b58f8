package service

import (
	"context"
	"errors"
	"testing"

	"tillpoint/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepo struct {
	users      map[string]models.User
	nextID     int
	lastRole   string
	lastHashed string
}

func (f *fakeAuthRepo) Create(ctx context.Context, businessID int, username, role, hash string) (int, error) {
	f.nextID++
	f.lastRole = role
	f.lastHashed = hash
	f.users[username] = models.User{
		ID: f.nextID, BusinessID: businessID, Username: username, Role: role, PasswordHash: hash,
	}
	return f.nextID, nil
}

func (f *fakeAuthRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func newAuthFixture() (*AuthService, *fakeAuthRepo) {
	repo := &fakeAuthRepo{users: make(map[string]models.User)}
	return NewAuthService(repo, "test-signing-key"), repo
}

func TestSignUp_HashesPasswordAndDefaultsRole(t *testing.T) {
	t.Parallel()

	svc, repo := newAuthFixture()

	id, err := svc.SignUp(context.Background(), SignUpParams{
		BusinessID: 7, Username: "till1", Password: "secret",
	})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}
	if repo.lastRole != models.RoleCashier {
		t.Fatalf("default role = %q, want cashier", repo.lastRole)
	}
	if repo.lastHashed == "secret" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.lastHashed), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestSignUp_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture()
	_, err := svc.SignUp(context.Background(), SignUpParams{
		BusinessID: 7, Username: "x", Password: "secret", Role: "owner",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestGenerateToken_RoundTripsClaims(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture()
	if _, err := svc.SignUp(context.Background(), SignUpParams{
		BusinessID: 7, Username: "admin1", Password: "secret", Role: "admin",
	}); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	token, err := svc.GenerateToken(context.Background(), "admin1", "secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 1 || claims.BusinessID != 7 || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestGenerateToken_Failures(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture()
	if _, err := svc.SignUp(context.Background(), SignUpParams{
		BusinessID: 7, Username: "u", Password: "right",
	}); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, err := svc.GenerateToken(context.Background(), "nobody", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user err = %v", err)
	}
	if _, err := svc.GenerateToken(context.Background(), "u", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := svc.ParseToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
