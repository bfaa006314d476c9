package authz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	userSubjectFmt  = "user:%d"
	rolePrefix      = "role:"
)

// 会话角色与员工角色共用一张策略表：
// role:<name> 由种子表维护，user:<id> 只允许挂员工角色
const canteenRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var (
	// ErrUnavailable 授权服务未初始化
	ErrUnavailable = errors.New("authz service unavailable")
	// ErrUnknownRole 角色不在预置表中
	ErrUnknownRole = errors.New("unknown role")
	// ErrRoleNotAssignable 角色不能直接分配给用户
	ErrRoleNotAssignable = errors.New("role is not assignable")
	// ErrUserRequired 缺少用户 ID
	ErrUserRequired = errors.New("user id is required")
)

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service 食堂角色授权
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务，策略存放在 casbin_rule 表
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}
	m, err := model.NewModelFromString(canteenRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

// Authorize 判定会话能否访问路由
// 先看会话角色（来自后端），再看管理员为该用户分配的员工角色
func (s *Service) Authorize(userID uint, sessionRole, route, method string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, ErrUnavailable
	}
	object := NormalizeObject(route)
	action := NormalizeAction(method)

	if seed, ok := lookupSeed(sessionRole); ok {
		allow, err := s.enforcer.Enforce(roleSubject(seed.Role), object, action)
		if err != nil || allow {
			return allow, err
		}
	}
	if userID == 0 {
		return false, nil
	}
	return s.enforcer.Enforce(SubjectForUser(userID), object, action)
}

// StaffRoles 用户被分配的员工角色
func (s *Service) StaffRoles(userID uint) ([]string, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	if s == nil || s.enforcer == nil {
		return nil, ErrUnavailable
	}
	linked, err := s.enforcer.GetRolesForUser(SubjectForUser(userID))
	if err != nil {
		return nil, fmt.Errorf("get staff roles failed: %w", err)
	}
	roles := make([]string, 0, len(linked))
	for _, subject := range linked {
		if name, ok := strings.CutPrefix(subject, rolePrefix); ok {
			roles = append(roles, name)
		}
	}
	sort.Strings(roles)
	return roles, nil
}

// AssignStaffRoles 覆盖用户的员工角色，空列表表示收回全部
func (s *Service) AssignStaffRoles(userID uint, roles []string) ([]string, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	if s == nil || s.enforcer == nil {
		return nil, ErrUnavailable
	}

	wanted := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))
	for _, raw := range roles {
		seed, ok := lookupSeed(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRole, strings.TrimSpace(raw))
		}
		if !seed.Assignable {
			return nil, fmt.Errorf("%w: %s", ErrRoleNotAssignable, seed.Role)
		}
		if _, dup := seen[seed.Role]; dup {
			continue
		}
		seen[seed.Role] = struct{}{}
		wanted = append(wanted, seed.Role)
	}
	sort.Strings(wanted)

	subject := SubjectForUser(userID)
	if _, err := s.enforcer.RemoveFilteredGroupingPolicy(0, subject); err != nil {
		return nil, fmt.Errorf("clear staff roles failed: %w", err)
	}
	for _, role := range wanted {
		if _, err := s.enforcer.AddGroupingPolicy(subject, roleSubject(role)); err != nil {
			return nil, fmt.Errorf("assign staff role failed: %w", err)
		}
	}
	return wanted, nil
}

// EffectivePolicies 会话角色与员工角色合并后的可用策略
func (s *Service) EffectivePolicies(userID uint, sessionRole string) ([]Policy, error) {
	if s == nil || s.enforcer == nil {
		return nil, ErrUnavailable
	}
	subjects := make([]string, 0, 2)
	if seed, ok := lookupSeed(sessionRole); ok {
		subjects = append(subjects, roleSubject(seed.Role))
	}
	if userID != 0 {
		subjects = append(subjects, SubjectForUser(userID))
	}

	merged := map[Policy]struct{}{}
	for _, subject := range subjects {
		rules, err := s.enforcer.GetImplicitPermissionsForUser(subject)
		if err != nil {
			return nil, fmt.Errorf("get implicit policies failed: %w", err)
		}
		for _, rule := range rules {
			if len(rule) < 3 {
				continue
			}
			merged[Policy{
				Subject: strings.TrimSpace(rule[0]),
				Object:  NormalizeObject(rule[1]),
				Action:  NormalizeAction(rule[2]),
			}] = struct{}{}
		}
	}

	policies := make([]Policy, 0, len(merged))
	for policy := range merged {
		policies = append(policies, policy)
	}
	sort.Slice(policies, func(i, j int) bool {
		a, b := policies[i], policies[j]
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		if a.Action != b.Action {
			return a.Action < b.Action
		}
		return a.Subject < b.Subject
	})
	return policies, nil
}

// SubjectForUser 用户主体
func SubjectForUser(userID uint) string {
	return fmt.Sprintf(userSubjectFmt, userID)
}

func roleSubject(role string) string {
	return rolePrefix + role
}

// NormalizeObject 去掉 /api/v1 前缀，策略按相对路由书写
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	switch {
	case normalized == apiV1Prefix:
		return "/"
	case strings.HasPrefix(normalized, apiV1Prefix+"/"):
		return strings.TrimPrefix(normalized, apiV1Prefix)
	}
	return normalized
}

// NormalizeAction HTTP 方法统一大写
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
