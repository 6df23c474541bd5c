package service

import (
	"errors"
	"testing"
	"time"

	"loadscout"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key"

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(username, hash string) (int, error)
	GetByUsernameFn func(username string) (*loadscout.User, error)

	createCalls []struct {
		username string
		hash     string
	}
}

func (m *mockAuthRepo) Create(username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockAuthRepo) GetByUsername(username string) (*loadscout.User, error) {
	return m.GetByUsernameFn(username)
}

func TestAuthService_SignUp_HashesPassword(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) {
			return 42, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	id, err := svc.SignUp("alice", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password, got the raw one")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_SignUp_EmptyPassword(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	if _, err := svc.SignUp("alice", "   "); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestAuthService_GenerateToken_RoundTripsThroughParse(t *testing.T) {
	hash, err := hashPassword("pw")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*loadscout.User, error) {
			return &loadscout.User{ID: 7, Username: username, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	token, err := svc.GenerateToken("bob", "pw")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != 7 {
		t.Fatalf("expected user 7, got %d", userID)
	}
}

func TestAuthService_GenerateToken_WrongPassword(t *testing.T) {
	hash, _ := hashPassword("right")
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*loadscout.User, error) {
			return &loadscout.User{ID: 7, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	_, err := svc.GenerateToken("bob", "wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthService_GenerateToken_UnknownUser(t *testing.T) {
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*loadscout.User, error) {
			return nil, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	_, err := svc.GenerateToken("ghost", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ParseToken_RejectsWrongKeyAndExpired(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, testSigningKey)

	// signed with a different key
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1})
	otherSigned, _ := other.SignedString([]byte("other-key"))
	if _, err := svc.ParseToken(otherSigned); err == nil {
		t.Fatalf("expected rejection of token signed with another key")
	}

	// expired token with the right key
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID: 1,
	})
	expiredSigned, _ := expired.SignedString([]byte(testSigningKey))
	if _, err := svc.ParseToken(expiredSigned); err == nil {
		t.Fatalf("expected rejection of expired token")
	}
}
