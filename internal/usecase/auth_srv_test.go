package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/dto/request"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (AuthService, *testRepos, *entity.University) {
	t.Helper()

	repo, mocks := newTestRepos()

	university := &entity.University{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:        "Universidade Metodista",
		EmailDomain: "metodista.ao",
		Active:      true,
	}
	mocks.universities.AddUniversity(university)

	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}
	svc := NewAuthService(repo, config, zap.NewNop())

	return svc, mocks, university
}

func studentRegistration(university *entity.University) *request.RegisterRequest {
	number := "2021-0042"
	universityID := university.ID.String()
	return &request.RegisterRequest{
		Email:         "joao.santos@metodista.ao",
		Password:      "s3cret-pass",
		FullName:      "Joao Santos",
		Role:          "student",
		StudentNumber: &number,
		UniversityID:  &universityID,
	}
}

func TestRegister_Student(t *testing.T) {
	t.Parallel()

	svc, _, university := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), studentRegistration(university))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.User.Role != "student" {
		t.Errorf("expected student role, got %s", resp.User.Role)
	}
	if resp.Token != "" {
		t.Error("registration should not issue a session token")
	}
}

func TestRegister_RejectsForeignEmailDomain(t *testing.T) {
	t.Parallel()

	svc, _, university := newAuthFixture(t)

	req := studentRegistration(university)
	req.Email = "joao.santos@gmail.com"

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for foreign domain, got %v", err)
	}
}

func TestRegister_StudentRequiresNumberAndUniversity(t *testing.T) {
	t.Parallel()

	svc, _, university := newAuthFixture(t)

	req := studentRegistration(university)
	req.StudentNumber = nil
	req.UniversityID = nil

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, university := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), studentRegistration(university)); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.Register(context.Background(), studentRegistration(university))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_DriverNeedsNoUniversity(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "motorista@transportes.ao",
		Password: "driver-pass-1",
		FullName: "Carlos Neto",
		Role:     "driver",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.User.Role != "driver" {
		t.Errorf("expected driver role, got %s", resp.User.Role)
	}
}

func TestLogin_IssuesSession(t *testing.T) {
	t.Parallel()

	svc, mocks, university := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), studentRegistration(university)); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "joao.santos@metodista.ao",
		Password: "s3cret-pass",
	}, "test-agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	if resp.ExpiresAt == nil || !resp.ExpiresAt.After(time.Now()) {
		t.Error("expected a future expiry")
	}

	session, err := mocks.sessions.FindValidSession(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session == nil {
		t.Fatal("expected the session to be persisted")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, _, university := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), studentRegistration(university)); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "joao.santos@metodista.ao",
		Password: "wrong-password",
	}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@metodista.ao",
		Password: "whatever-pass",
	}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	t.Parallel()

	svc, mocks, university := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), studentRegistration(university)); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "joao.santos@metodista.ao",
		Password: "s3cret-pass",
	}, "", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session, err := mocks.sessions.FindValidSession(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session != nil {
		t.Error("expected session to be revoked")
	}
}
