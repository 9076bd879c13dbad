package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate 违反唯一约束
	ErrDuplicate = errors.New("repository: duplicate key")
	// ErrHasDependents 存在关联数据，拒绝删除
	ErrHasDependents = errors.New("repository: dependent rows exist")
)

// translateDeleteError 计数检查之后并发写入的关联行会触发外键 RESTRICT，同样视为存在关联数据
func translateDeleteError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrHasDependents
	}
	return err
}
