package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-ortus/config"
	"hotel-ortus/internal/delivery/dto"
	"hotel-ortus/internal/domain/entity"
	"hotel-ortus/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users     map[string]*entity.User
	createErr error
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func newTestUser(t *testing.T, email, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &entity.User{ID: uuid.New(), Email: email, Password: string(hash), Role: entity.RoleAdmin, IsActive: &active}
}

func newTestJWT() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: 15 * time.Minute, RefreshExpiry: time.Hour})
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db, _ := newTestDB(t)
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	repo.users["front@ortus.in"] = newTestUser(t, "front@ortus.in", "s3cret-pass", true)
	repo.users["old@ortus.in"] = newTestUser(t, "old@ortus.in", "s3cret-pass", false)

	uc := NewAuthUsecase(db, newTestLogger(), repo, &fakeAuditService{}, newTestJWT(), nil)
	ctx := context.Background()

	if _, err := uc.Login(ctx, &dto.LoginRequest{Email: "nobody@ortus.in", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := uc.Login(ctx, &dto.LoginRequest{Email: "FRONT@ortus.in", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := uc.Login(ctx, &dto.LoginRequest{Email: "old@ortus.in", Password: "s3cret-pass"}); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	db, _ := newTestDB(t)
	jwtService := newTestJWT()
	uc := NewAuthUsecase(db, newTestLogger(), &fakeUserRepo{users: map[string]*entity.User{}}, &fakeAuditService{}, jwtService, nil)

	access, _, err := jwtService.GenerateAccessToken(uuid.New(), "front@ortus.in", entity.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: access}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "garbage"}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRegisterAuditsInTransaction(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	audit := &fakeAuditService{}
	uc := NewAuthUsecase(db, newTestLogger(), repo, audit, newTestJWT(), nil)
	actor := uuid.New()

	res, err := uc.Register(context.Background(), actor, &dto.RegisterUserRequest{
		Name:     "Front Desk",
		Email:    " Desk@Ortus.in ",
		Phone:    "0123456789",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if res.Email != "desk@ortus.in" || res.Role != entity.RoleUser {
		t.Fatalf("unexpected user %+v", res)
	}
	if len(audit.calls) != 1 || audit.calls[0].action != entity.AuditActionUserRegister || *audit.calls[0].actorID != actor {
		t.Fatalf("expected a register audit entry by the actor, got %+v", audit.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeUserRepo{
		users:     map[string]*entity.User{},
		createErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
	}
	uc := NewAuthUsecase(db, newTestLogger(), repo, &fakeAuditService{}, newTestJWT(), nil)

	_, err := uc.Register(context.Background(), uuid.New(), &dto.RegisterUserRequest{
		Name:     "Front Desk",
		Email:    "desk@ortus.in",
		Phone:    "0123456789",
		Password: "s3cret-pass",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}
