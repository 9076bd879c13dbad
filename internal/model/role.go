package model

// Role 用户角色，创建后不可变更
type Role string

const (
	RoleBusiness Role = "business" // 商务
	RolePitcher  Role = "pitcher"  // 投手
)

func (r Role) Valid() bool {
	return r == RoleBusiness || r == RolePitcher
}

// DisplayName 角色中文名
func (r Role) DisplayName() string {
	switch r {
	case RoleBusiness:
		return "商务"
	case RolePitcher:
		return "投手"
	default:
		return "未知"
	}
}

// Actor 当前登录用户的身份
type Actor struct {
	ID   uint64
	Role Role
}

// GetID actor 为 nil 时返回 0
func (a *Actor) GetID() uint64 {
	if a == nil {
		return 0
	}
	return a.ID
}

// Kind 受保护的资源类型
type Kind string

const (
	KindInfluencer Kind = "influencer"
	KindMaterial   Kind = "material"
	KindPromotion  Kind = "promotion"
	KindTag        Kind = "tag"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource 一次鉴权涉及的资源
// OwnerID 为该行数据的创建者，AccountID 为其归属达人的创建者（商务账号）
type Resource struct {
	Kind      Kind
	OwnerID   uint64
	AccountID uint64
}
