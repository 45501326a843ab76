package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"syrupstore/internal/domain/model"
	repo "syrupstore/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// アクセストークンを発行する約束。実装はmain側（JWT）。
type TokenIssuer interface {
	Issue(userID int64, isStaff bool, now time.Time) (token string, expiresAt time.Time, err error)
}

type AuthUsecase struct {
	userRepo   repo.UserRepository
	issuer     TokenIssuer
	bcryptCost int
}

func NewAuthUsecase(userRepo repo.UserRepository, issuer TokenIssuer, bcryptCost int) *AuthUsecase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthUsecase{
		userRepo:   userRepo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

type UserOutput struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

type LoginOutput struct {
	User      UserOutput `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Register は会員登録。ユーザー名重複は400。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "username required")
	}
	if len(in.Password) < 8 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	exists, err := u.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserOutput(*user), nil
}

type LoginInput struct {
	Username string
	Password string
}

// Login は認証してアクセストークンを返す。
// 失敗理由は漏らさない（常に同じメッセージの401）。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	user, err := u.userRepo.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err == repo.ErrNotFound {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.IsStaff, time.Now())
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{
		User:      toUserOutput(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser はID指定でユーザーを返す（通知の宛先取得などに使う）。
func (u *AuthUsecase) GetUser(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(user), nil
}

func toUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsStaff:  u.IsStaff,
	}
}
