package authz

import (
	"fmt"
	"strings"

	"github.com/kantin-next/internal/constants"
)

// RoleSeed 预置角色
// Assignable 为 true 的角色可由管理员分配给用户；其余只来自后端会话
type RoleSeed struct {
	Role       string   `json:"role"`
	Inherits   []string `json:"inherits"`
	Policies   []Policy `json:"policies"`
	Assignable bool     `json:"assignable"`
}

// RoleSeeds 食堂角色阶梯：customer < canteen_viewer < canteen_staff < admin
func RoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleCustomer,
			Policies: []Policy{
				{Object: "/orders/history", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleCanteenViewer,
			Inherits: []string{constants.RoleCustomer},
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
			Assignable: true,
		},
		{
			Role:     constants.RoleCanteenStaff,
			Inherits: []string{constants.RoleCanteenViewer},
			Policies: []Policy{
				{Object: "/admin/orders/:id/status", Action: "PUT"},
				{Object: "/admin/menu", Action: "POST"},
				{Object: "/admin/menu/:id", Action: "PUT"},
			},
			Assignable: true,
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleCanteenStaff},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
			Assignable: true,
		},
	}
}

func lookupSeed(role string) (RoleSeed, bool) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(role)), rolePrefix)
	if name == "" {
		return RoleSeed{}, false
	}
	for _, seed := range RoleSeeds() {
		if seed.Role == name {
			return seed, true
		}
	}
	return RoleSeed{}, false
}

// SyncRoles 让库里的角色策略与种子表一致
// 种子表里删掉的策略或继承关系会在启动时一并清理；用户的员工角色分配保持不动
func (s *Service) SyncRoles() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	for _, seed := range RoleSeeds() {
		subject := roleSubject(seed.Role)

		if _, err := s.enforcer.RemoveFilteredPolicy(0, subject); err != nil {
			return fmt.Errorf("reset policies of %s failed: %w", seed.Role, err)
		}
		for _, policy := range seed.Policies {
			if _, err := s.enforcer.AddPolicy(subject, NormalizeObject(policy.Object), NormalizeAction(policy.Action)); err != nil {
				return fmt.Errorf("add policy of %s failed: %w", seed.Role, err)
			}
		}

		if _, err := s.enforcer.RemoveFilteredGroupingPolicy(0, subject); err != nil {
			return fmt.Errorf("reset inheritance of %s failed: %w", seed.Role, err)
		}
		for _, parent := range seed.Inherits {
			if _, err := s.enforcer.AddGroupingPolicy(subject, roleSubject(parent)); err != nil {
				return fmt.Errorf("link %s to %s failed: %w", seed.Role, parent, err)
			}
		}
	}
	return nil
}
