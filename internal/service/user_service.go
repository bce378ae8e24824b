package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/redis"
	"Halation/internal/pkg/security"
	"Halation/internal/pkg/util"
	"Halation/internal/repository"
	"context"
	"time"

	"Halation/internal/pkg/consts"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserProfile(ctx context.Context, userID uint64, viewerID uint64) (*dto.UserDTO, error)
	GetUserProfileByUsername(ctx context.Context, username string, viewerID uint64) (*dto.UserDTO, error)
	GetUserCards(ctx context.Context, userIDs []uint64) ([]*dto.UserCardDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateUserDTO) error
	ChangePassword(ctx context.Context, userID uint64, req *dto.ChangePasswordDTO) error
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordDTO) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordDTO) error
	DeleteUser(ctx context.Context, userID uint64) error
}

type UserServiceImpl struct {
	userRepo      repository.UserRepo
	followService UserFollowService
	mailService   MailService
}

func NewUserService(userRepo repository.UserRepo, followService UserFollowService, mailService MailService) UserService {
	return &UserServiceImpl{
		userRepo:      userRepo,
		followService: followService,
		mailService:   mailService,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	// 注册加锁，避免同名并发穿透唯一索引前的预检
	lockKey := consts.UserRegisterLock + req.Username
	locked, err := redis.TryLock(ctx, lockKey, "1", 10*time.Second, 3)
	if err != nil || !locked {
		return nil, UnExpectedError
	}
	defer redis.UnLock(ctx, lockKey, "1")

	if existing, err := s.userRepo.GetUserByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUserUsernameExist
	}
	if existing, err := s.userRepo.GetUserByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUserEmailExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &model.User{
		Username:  &req.Username,
		Email:     &req.Email,
		Password:  &hashed,
		Nickname:  nickname,
		AvatarURL: consts.DefaultAvatarURL,
	}

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if repository.IsDuplicateKeyErr(err) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, UserID: user.ID}, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	var user *model.User
	var err error

	switch {
	case req.Username != nil:
		user, err = s.userRepo.GetUserByUsername(ctx, *req.Username)
	case req.Email != nil:
		user, err = s.userRepo.GetUserByEmail(ctx, *req.Email)
	default:
		return nil, ErrMissingLoginCredentials
	}
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDelete {
		return nil, ErrUserNotFound
	}
	if user.IsBan {
		return nil, ErrUserBan
	}

	if user.Password == nil || security.CheckPasswordHash(req.Password, *user.Password) != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, UserID: user.ID}, nil
}

// Logout 将 Token 签名拉黑，有效期覆盖 Token 剩余寿命
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, time.Hour*72)
}

func (s *UserServiceImpl) GetUserProfile(ctx context.Context, userID uint64, viewerID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user, viewerID)
}

// GetUserProfileByUsername 按用户名访问主页，个人页路径用
func (s *UserServiceImpl) GetUserProfileByUsername(ctx context.Context, username string, viewerID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user, viewerID)
}

func (s *UserServiceImpl) buildProfile(ctx context.Context, user *model.User, viewerID uint64) (*dto.UserDTO, error) {
	if user == nil || user.IsDelete {
		return nil, ErrUserNotFound
	}

	followerCount, _ := s.followService.GetUserFollowerCount(ctx, user.ID)
	followingCount, _ := s.followService.GetUserFollowingCount(ctx, user.ID)

	isFollowing := false
	if viewerID != 0 && viewerID != user.ID {
		isFollowing, _ = s.followService.GetSomeoneIsFollowing(ctx, viewerID, user.ID)
	}

	username := ""
	if user.Username != nil {
		username = *user.Username
	}

	createdAt := user.CreatedAt
	return &dto.UserDTO{
		UserID:         user.ID,
		Username:       username,
		Nickname:       user.Nickname,
		AvatarURL:      user.AvatarURL,
		Bio:            user.Bio,
		PostCount:      int64(user.PostCount),
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		IsFollowing:    isFollowing,
		CreatedAt:      &createdAt,
	}, nil
}

func (s *UserServiceImpl) GetUserCards(ctx context.Context, userIDs []uint64) ([]*dto.UserCardDTO, error) {
	if len(userIDs) == 0 {
		return []*dto.UserCardDTO{}, nil
	}
	users, err := s.userRepo.GetUserByIds(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	// 保持调用方给定的顺序
	cards := make([]*dto.UserCardDTO, 0, len(userIDs))
	for _, id := range userIDs {
		u, ok := byID[id]
		if !ok || u.IsDelete {
			continue
		}
		username := ""
		if u.Username != nil {
			username = *u.Username
		}
		cards = append(cards, &dto.UserCardDTO{
			UserID:    u.ID,
			Username:  username,
			Nickname:  u.Nickname,
			AvatarURL: u.AvatarURL,
			Bio:       u.Bio,
		})
	}
	return cards, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateUserDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrParamInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err = copier.CopyWithOption(user, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return err
	}

	return s.userRepo.UpdateUser(ctx, user)
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID uint64, req *dto.ChangePasswordDTO) error {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.Password == nil {
		return ErrUserNotFound
	}

	if security.CheckPasswordHash(req.OldPassword, *user.Password) != nil {
		return ErrPasswordIncorrect
	}

	hashed, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateUserPassword(ctx, userID, hashed)
}

func (s *UserServiceImpl) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordDTO) error {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserEmailNotFound
	}
	return s.mailService.SendResetCode(ctx, req.Email)
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordDTO) error {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserEmailNotFound
	}

	if err = s.mailService.CheckResetCode(ctx, req.Email, req.Code); err != nil {
		return err
	}

	hashed, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err = s.userRepo.UpdateUserPassword(ctx, user.ID, hashed); err != nil {
		return err
	}
	return s.mailService.ConsumeResetCode(ctx, req.Email)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uint64) error {
	return s.userRepo.DeleteUser(ctx, userID)
}
