package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	svc      UserService
	userRepo *fakeUserRepo
	mail     *fakeMailService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		userRepo: newFakeUserRepo(),
		mail:     &fakeMailService{goodCode: "123456"},
	}
	followSvc := NewUserFollowService(newFakeFollowRepo(), &fakeNotifyService{})
	f.svc = NewUserService(f.userRepo, followSvc, f.mail)
	return f
}

func TestRegister(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	token, err := f.svc.Register(ctx, &dto.RegisterDTO{
		Username: "miyako",
		Email:    "miyako@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)

	user, err := f.userRepo.GetUserById(ctx, token.UserID)
	require.NoError(t, err)
	require.NotNil(t, user)
	// 昵称缺省取用户名，头像取默认图
	assert.Equal(t, "miyako", user.Nickname)
	assert.Equal(t, consts.DefaultAvatarURL, user.AvatarURL)
	// 密码不落明文
	assert.NotEqual(t, "secret123", *user.Password)

	claims, err := security.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, token.UserID, claims.UserID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	req := &dto.RegisterDTO{Username: "miyako", Email: "a@example.com", Password: "secret123"}
	_, err := f.svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, &dto.RegisterDTO{Username: "miyako", Email: "b@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserUsernameExist)

	_, err = f.svc.Register(ctx, &dto.RegisterDTO{Username: "other", Email: "a@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserEmailExist)
}

func TestRegister_InvalidParams(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Register(context.Background(), &dto.RegisterDTO{Username: "ab", Email: "bad", Password: "x"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestLogin(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, &dto.RegisterDTO{Username: "miyako", Email: "m@example.com", Password: "secret123"})
	require.NoError(t, err)

	username := "miyako"
	token, err := f.svc.Login(ctx, &dto.CredentialDTO{Username: &username, Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, token.UserID)

	email := "m@example.com"
	token, err = f.svc.Login(ctx, &dto.CredentialDTO{Email: &email, Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, token.UserID)
}

func TestLogin_Failures(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, &dto.RegisterDTO{Username: "miyako", Email: "m@example.com", Password: "secret123"})
	require.NoError(t, err)

	username := "miyako"
	_, err = f.svc.Login(ctx, &dto.CredentialDTO{Username: &username, Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	ghost := "ghost"
	_, err = f.svc.Login(ctx, &dto.CredentialDTO{Username: &ghost, Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.svc.Login(ctx, &dto.CredentialDTO{Password: "secret123"})
	assert.ErrorIs(t, err, ErrMissingLoginCredentials)
}

func TestLogin_BannedAndDeleted(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, &dto.RegisterDTO{Username: "banned", Email: "b@example.com", Password: "secret123"})
	require.NoError(t, err)
	user, _ := f.userRepo.GetUserByUsername(ctx, "banned")
	user.IsBan = true

	username := "banned"
	_, err = f.svc.Login(ctx, &dto.CredentialDTO{Username: &username, Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserBan)

	user.IsBan = false
	user.IsDelete = true
	_, err = f.svc.Login(ctx, &dto.CredentialDTO{Username: &username, Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, &dto.RegisterDTO{Username: "miyako", Email: "m@example.com", Password: "secret123"})
	require.NoError(t, err)

	bio := "银盐爱好者"
	require.NoError(t, f.svc.UpdateProfile(ctx, reg.UserID, &dto.UpdateUserDTO{Bio: &bio}))

	user, _ := f.userRepo.GetUserById(ctx, reg.UserID)
	assert.Equal(t, "银盐爱好者", user.Bio)
	// 未提交的字段保持不变
	assert.Equal(t, "miyako", user.Nickname)
}

func TestChangePassword(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, &dto.RegisterDTO{Username: "miyako", Email: "m@example.com", Password: "secret123"})
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, reg.UserID, &dto.ChangePasswordDTO{OldPassword: "wrong", NewPassword: "newpass123"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	require.NoError(t, f.svc.ChangePassword(ctx, reg.UserID, &dto.ChangePasswordDTO{OldPassword: "secret123", NewPassword: "newpass123"}))

	username := "miyako"
	_, err = f.svc.Login(ctx, &dto.CredentialDTO{Username: &username, Password: "newpass123"})
	assert.NoError(t, err)
}

func TestResetPasswordFlow(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, &dto.RegisterDTO{Username: "miyako", Email: "m@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, &dto.ForgotPasswordDTO{Email: "m@example.com"}))
	assert.Equal(t, []string{"m@example.com"}, f.mail.sentTo)

	err = f.svc.ForgotPassword(ctx, &dto.ForgotPasswordDTO{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, ErrUserEmailNotFound)

	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordDTO{Email: "m@example.com", Code: "000000", NewPassword: "newpass123"})
	assert.ErrorIs(t, err, ErrCodeIncorrect)

	require.NoError(t, f.svc.ResetPassword(ctx, &dto.ResetPasswordDTO{Email: "m@example.com", Code: "123456", NewPassword: "newpass123"}))

	username := "miyako"
	_, err = f.svc.Login(ctx, &dto.CredentialDTO{Username: &username, Password: "newpass123"})
	assert.NoError(t, err)
}

func TestGetUserCards_PreservesOrderAndSkipsDeleted(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		n := name
		require.NoError(t, f.userRepo.CreateUser(ctx, &model.User{Username: &n, Nickname: n}))
	}
	require.NoError(t, f.userRepo.DeleteUser(ctx, 2))

	cards, err := f.svc.GetUserCards(ctx, []uint64{3, 2, 1})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, uint64(3), cards[0].UserID)
	assert.Equal(t, uint64(1), cards[1].UserID)
}

func TestGetUserProfile_ByIdAndUsername(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	token, err := f.svc.Register(ctx, &dto.RegisterDTO{
		Username: "miyako",
		Email:    "miyako@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	byID, err := f.svc.GetUserProfile(ctx, token.UserID, 0)
	require.NoError(t, err)
	assert.Equal(t, "miyako", byID.Username)

	byName, err := f.svc.GetUserProfileByUsername(ctx, "miyako", 0)
	require.NoError(t, err)
	assert.Equal(t, byID.UserID, byName.UserID)

	_, err = f.svc.GetUserProfileByUsername(ctx, "nobody", 0)
	assert.ErrorIs(t, err, ErrUserNotFound)

	user, _ := f.userRepo.GetUserById(ctx, token.UserID)
	user.IsDelete = true
	_, err = f.svc.GetUserProfile(ctx, token.UserID, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
