package store

import (
	"errors"
	"strings"
)

// 存储层统一错误，调用方用 errors.Is 区分“不存在”“重复”“凭证错误”与底层 IO 错误
var (
	// ErrNotFound 目标记录不存在（或更新影响了 0 行）
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicate 唯一约束冲突（用户名、同一用户下的分类名/目标名）
	ErrDuplicate = errors.New("记录已存在")
	// ErrInvalidCredentials 用户名或密码错误，二者不做区分
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrInvalidToken 重置令牌无效、已使用或已过期
	ErrInvalidToken = errors.New("令牌无效或已过期")
	// ErrUnsupportedCurrency 货币代码不在支持列表内
	ErrUnsupportedCurrency = errors.New("不支持的货币代码")
)

// isUniqueViolation 识别 SQLite 唯一约束冲突
// 先查后插之间仍有竞争窗口，插入本身报出的约束冲突也要归入 ErrDuplicate
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
