package cache

import (
	"context"
	"time"

	"github.com/vms-next/internal/models"
)

const authStateTTL = 10 * time.Minute

// AdminAuthState 鉴权所需的账号快照，JWT 中间件优先读它而不是回表
type AdminAuthState struct {
	AdminID   uint   `json:"admin_id"`
	Username  string `json:"username"`
	CompanyID uint   `json:"company_id"`
	IsSuper   bool   `json:"is_super"`
	// TokenInvalidBefore Unix 秒，0 表示未设置
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	CachedAt           int64  `json:"cached_at"`
}

// Accepts 判断 token 是否仍有效：版本一致且签发不早于失效时间点
func (s *AdminAuthState) Accepts(tokenVersion uint64, issuedAt *time.Time) bool {
	if s == nil || tokenVersion != s.TokenVersion {
		return false
	}
	if s.TokenInvalidBefore <= 0 {
		return true
	}
	return issuedAt != nil && issuedAt.Unix() >= s.TokenInvalidBefore
}

// BuildAdminAuthState 由账号构建快照
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	state := &AdminAuthState{
		AdminID:      admin.ID,
		Username:     admin.Username,
		IsSuper:      admin.IsSuper,
		TokenVersion: admin.TokenVersion,
		CachedAt:     time.Now().Unix(),
	}
	if admin.CompanyID != nil {
		state.CompanyID = *admin.CompanyID
	}
	if admin.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = admin.TokenInvalidBefore.Unix()
	}
	return state
}

func authStateKey(adminID uint) string {
	return Key("auth", "admin", adminID)
}

// GetAdminAuthState 读取快照，未启用或未命中时 hit=false
func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	if adminID == 0 {
		return nil, false, nil
	}
	state := &AdminAuthState{}
	hit, err := GetJSON(ctx, authStateKey(adminID), state)
	if err != nil || !hit {
		return nil, false, err
	}
	return state, true, nil
}

// SetAdminAuthState 账号变更后刷新快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey(state.AdminID), state, authStateTTL)
}

// DelAdminAuthState 删除账号后立即失效
func DelAdminAuthState(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return Del(ctx, authStateKey(adminID))
}
