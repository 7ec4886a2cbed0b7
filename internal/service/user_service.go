package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 处理用户资料相关的业务逻辑
type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

// UpdateProfileRequest 更新资料的请求结构
type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Language string `json:"language" binding:"max=10"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Language != "" {
		user.Language = req.Language
	}
	user.UpdatedAt = time.Now()

	return user, s.UserRepo.Update(user)
}

// UploadAvatar 存储头像并更新用户记录
func (s *UserService) UploadAvatar(userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("avatars/%d_%s%s", userID, model.GenerateUUID(), filepath.Ext(file.Filename))
	url, err := s.Storage.UploadMultipart(filename, file)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

// AddXP 给用户累加经验值
func (s *UserService) AddXP(userID uint, delta int) error {
	if _, err := s.GetProfile(userID); err != nil {
		return err
	}
	return s.UserRepo.UpdateXP(userID, delta)
}
