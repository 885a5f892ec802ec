package service

import (
	"github.com/petmart-next/internal/constants"
	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/repository"
)

// UserService 用户管理服务（后台）
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户管理服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List 用户列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// GetByID 用户详情
func (s *UserService) GetByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrInvalidParams
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidParams
	}
	return user, nil
}

// SetStatus 启用/禁用用户
func (s *UserService) SetStatus(id uint, status string) (*models.User, error) {
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return nil, ErrInvalidParams
	}
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateStatus(user.ID, status); err != nil {
		return nil, err
	}
	user.Status = status
	return user, nil
}
