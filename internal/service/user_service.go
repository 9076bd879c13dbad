package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/consts"
	"KolAnalytics/internal/pkg/redis"
	"KolAnalytics/internal/pkg/security"
	"KolAnalytics/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, credentialDTO *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo     repository.UserRepo
	tokenManager *security.TokenManager
	hasher       *security.PasswordHasher
}

func NewUserService(userRepo repository.UserRepo, tokenManager *security.TokenManager, hasher *security.PasswordHasher) UserService {
	return &UserServiceImpl{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		hasher:       hasher,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.UserDTO, error) {
	role := model.Role(regDTO.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user := &model.User{}
	if err := copier.Copy(user, regDTO); err != nil {
		return nil, err
	}
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Role = role

	passwordHash, err := s.hasher.Hash(regDTO.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExist
		}
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credentialDTO *dto.CredentialDTO) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(credentialDTO.Username))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrPasswordIncorrect
	}
	if err = s.hasher.Check(credentialDTO.Password, user.Password); err != nil {
		return "", ErrPasswordIncorrect
	}
	if s.hasher.NeedsRehash(user.Password) {
		s.rehash(ctx, user, credentialDTO.Password)
	}

	return s.tokenManager.GenerateToken(user.ID, string(user.Role))
}

// Logout 将 Token 签名加入黑名单，有效期与 Token 剩余时间一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenManager.ValidateToken(token)
	if err != nil {
		return ErrUnauthenticated
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrUnauthenticated
	}
	ttl := security.RemainingTTL(claims)
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, ttl)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}

// rehash 配置的 bcrypt cost 变化后，在登录成功时按新 cost 重新保存，失败不影响登录
func (s *UserServiceImpl) rehash(ctx context.Context, user *model.User, password string) {
	passwordHash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.userRepo.UpdatePassword(ctx, user.ID, passwordHash)
	}
	if err != nil {
		log.WarnContext(ctx, "rehash password failed", "user_id", user.ID, "err", err)
	}
}
