package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials 密码与哈希不匹配
var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordHasher 用户密码的 bcrypt 哈希，cost 由配置 password.bcrypt_cost 决定
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher cost 不在 bcrypt 允许范围内时使用 bcrypt.DefaultCost
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (s *PasswordHasher) Cost() int {
	return s.cost
}

func (s *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Check 不匹配时返回 ErrInvalidCredentials，哈希本身损坏时返回原始错误
func (s *PasswordHasher) Check(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	return err
}

// NeedsRehash 已存哈希的 cost 与当前配置不一致，登录成功后应重新哈希
func (s *PasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != s.cost
}
