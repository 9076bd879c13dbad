package dto

import "time"

type TagDTO struct {
	Name string `json:"name" validate:"required,max=50"`
}

type TagVO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type TagUsageDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	UsageCount int64  `json:"usage_count"`
}
