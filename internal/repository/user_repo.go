package repository

import (
	"KolAnalytics/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetFirstUserByRole(ctx context.Context, role model.Role) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	return s.first(ctx, s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.first(ctx, s.db.WithContext(ctx).Where("username = ?", username))
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, s.db.WithContext(ctx).Where("email = ?", email))
}

// GetFirstUserByRole 获取指定角色中最早注册的用户，定时任务以其身份写入数据
func (s *UserRepoImpl) GetFirstUserByRole(ctx context.Context, role model.Role) (*model.User, error) {
	return s.first(ctx, s.db.WithContext(ctx).Where("role = ?", role).Order("id ASC"))
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *UserRepoImpl) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", passwordHash).Error
}

func (s *UserRepoImpl) first(_ context.Context, query *gorm.DB) (*model.User, error) {
	user := &model.User{}
	result := query.First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}
