package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"accountit/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 重置令牌有效期
const resetTokenTTL = 30 * time.Minute

// UserStore 用户存储：注册、登录、安全问题找回、货币偏好
type UserStore struct {
	db *gorm.DB
}

// NewUserStore 创建用户存储
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Register 注册新用户
// 用户行与零值预算行在同一事务中创建，要么全部成功要么全部回滚
func (s *UserStore) Register(username, password, securityQuestion, securityAnswer string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("用户名 %s: %w", username, ErrDuplicate)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := models.User{
		Username:         username,
		Password:         string(hashed),
		SecurityQuestion: securityQuestion,
		SecurityAnswer:   securityAnswer,
		Currency:         models.DefaultCurrency,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		// 预算行随用户一起建好，后续读取无需再自愈
		return tx.Create(&models.Budget{UserID: user.ID}).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("用户名 %s: %w", username, ErrDuplicate)
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return &user, nil
}

// Authenticate 校验用户名和密码
// 用户不存在与密码错误对调用方不可区分，统一返回 ErrInvalidCredentials
func (s *UserStore) Authenticate(username, password string) (uint, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidCredentials
		}
		return 0, fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}

	return user.ID, nil
}

// GetByID 按 ID 获取用户
func (s *UserStore) GetByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// GetSecurityQuestion 获取用户的安全问题
func (s *UserStore) GetSecurityQuestion(username string) (string, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("查询用户失败: %w", err)
	}
	return user.SecurityQuestion, nil
}

// VerifySecurityAnswer 校验安全问题答案（不区分大小写）
// 校验通过签发一次性重置令牌，绝不返回存储的凭证本身
func (s *UserStore) VerifySecurityAnswer(username, answer string) (*models.PasswordReset, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if !strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(user.SecurityAnswer)) {
		return nil, ErrInvalidCredentials
	}

	token, err := models.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("生成令牌失败: %w", err)
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.db.Create(&reset).Error; err != nil {
		return nil, fmt.Errorf("创建重置令牌失败: %w", err)
	}

	return &reset, nil
}

// ResetPassword 使用重置令牌设置新密码
// 成功后令该用户所有未使用的令牌失效
func (s *UserStore) ResetPassword(token, newPassword string) error {
	var reset models.PasswordReset
	if err := s.db.Where("token = ?", token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("查询重置令牌失败: %w", err)
	}

	if !reset.IsValid() {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password", string(hashed)).Error; err != nil {
			return fmt.Errorf("更新密码失败: %w", err)
		}
		return tx.Model(&models.PasswordReset{}).
			Where("user_id = ? AND used = ?", reset.UserID, false).
			Update("used", true).Error
	})
}

// ChangePassword 校验旧密码后更新为新密码
func (s *UserStore) ChangePassword(userID uint, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}

	return s.db.Model(&user).Update("password", string(hashed)).Error
}

// GetCurrency 获取用户的货币代码
func (s *UserStore) GetCurrency(userID uint) (string, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user.Currency == "" {
		return models.DefaultCurrency, nil
	}
	return user.Currency, nil
}

// GetCurrencySymbol 获取用户货币的显示符号
func (s *UserStore) GetCurrencySymbol(userID uint) (string, error) {
	code, err := s.GetCurrency(userID)
	if err != nil {
		return "", err
	}
	symbol, ok := models.CurrencySymbol(code)
	if !ok {
		return "", fmt.Errorf("%s: %w", code, ErrUnsupportedCurrency)
	}
	return symbol, nil
}

// UpdateCurrency 更新用户的货币偏好
func (s *UserStore) UpdateCurrency(userID uint, code string) error {
	if !models.IsSupportedCurrency(code) {
		return fmt.Errorf("%s: %w", code, ErrUnsupportedCurrency)
	}
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("currency", code)
	if res.Error != nil {
		return fmt.Errorf("更新货币失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
