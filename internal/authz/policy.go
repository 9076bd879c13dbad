package authz

import (
	"KolAnalytics/internal/model"
	"fmt"
	log "log/slog"
	"strconv"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

// 请求：角色、资源类型、动作、操作者、资源创建者、资源归属账号
// 策略的 scope 决定是否需要校验归属：any 不校验，own 校验创建者，account 校验归属账号
const modelText = `
[request_definition]
r = sub, obj, act, uid, owner, account

[policy_definition]
p = sub, obj, act, scope

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act && (p.scope == "any" || (p.scope == "own" && r.uid == r.owner) || (p.scope == "account" && r.uid == r.account))
`

// 商务：管理自己创建的达人、素材，只读自己达人下的推广数据，可新建标签
// 投手：只读全部达人、素材，管理自己创建的推广数据
const policyText = `
p, business, influencer, create, any
p, business, influencer, read, own
p, business, influencer, update, own
p, business, influencer, delete, own
p, business, material, create, any
p, business, material, read, own
p, business, material, update, own
p, business, material, delete, own
p, business, promotion, read, account
p, business, tag, create, any
p, pitcher, influencer, read, any
p, pitcher, material, read, any
p, pitcher, promotion, read, any
p, pitcher, promotion, create, any
p, pitcher, promotion, update, own
p, pitcher, promotion, delete, own
`

// AccessPolicy 行级权限判定，纯函数，无 I/O
type AccessPolicy interface {
	// Can 判断 actor 能否对资源执行 action，拒绝或内部异常时均返回 false
	Can(actor *model.Actor, res model.Resource, action model.Action) bool
}

type casbinPolicy struct {
	enforcer *casbin.Enforcer
}

// NewAccessPolicy 使用内置模型与策略构建判定器
func NewAccessPolicy() (AccessPolicy, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: load model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(policyText))
	if err != nil {
		return nil, fmt.Errorf("authz: create enforcer: %w", err)
	}
	return &casbinPolicy{enforcer: enforcer}, nil
}

// MustNewAccessPolicy 内置策略无法加载时直接 panic
func MustNewAccessPolicy() AccessPolicy {
	p, err := NewAccessPolicy()
	if err != nil {
		panic(err)
	}
	return p
}

func (s *casbinPolicy) Can(actor *model.Actor, res model.Resource, action model.Action) bool {
	if actor == nil || actor.ID == 0 || !actor.Role.Valid() {
		return false
	}
	ok, err := s.enforcer.Enforce(
		string(actor.Role),
		string(res.Kind),
		string(action),
		strconv.FormatUint(actor.ID, 10),
		strconv.FormatUint(res.OwnerID, 10),
		strconv.FormatUint(res.AccountID, 10),
	)
	if err != nil {
		log.Error("authz enforce error", "role", actor.Role, "kind", res.Kind, "action", action, "err", err)
		return false
	}
	return ok
}
