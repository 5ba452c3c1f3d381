package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

const defaultProfilePic = "default.jpg"

type UserService struct {
	repo repository.AccountsRepositoryI
}

func NewUserService(accountsRepo repository.AccountsRepositoryI) *UserService {
	return &UserService{
		repo: accountsRepo,
	}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.Account, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	err = us.repo.Create(ctx, &entity.Account{
		Username:     req.Username,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(passwordHash),
		ProfilePic:   defaultProfilePic,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			return nil, err
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	acc, err := us.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return acc, nil
}

func (us *UserService) Login(ctx context.Context, username, password string) (*entity.Account, error) {
	acc, err := us.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			// same answer as a wrong password, no account probing
			return nil, errorvalues.ErrWrongCredentials
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, errorvalues.ErrWrongCredentials
	}
	return acc, nil
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	acc, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return acc, nil
}

func (us *UserService) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	acc, err := us.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return acc, nil
}

type usernameChange struct {
	Username string `validate:"required,alphanum_underscore,min=3,max=100"`
}

func (us *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*entity.Account, error) {
	acc, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != "" && username != acc.Username {
			if err = validateStruct(usernameChange{Username: username}); err != nil {
				return nil, err
			}
			// best-effort pre-check, the unique index still decides on a race
			taken, err := us.repo.UsernameTaken(ctx, username, acc.ID)
			if err != nil {
				return nil, errors.New("repository searching error: " + err.Error())
			}
			if taken {
				return nil, errorvalues.ErrUserExists
			}
			acc.Username = username
		}
	}
	if req.FullName != nil {
		acc.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.ProfilePic != nil {
		acc.ProfilePic = strings.TrimSpace(*req.ProfilePic)
	}
	err = us.repo.UpdateProfile(ctx, acc)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) || errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository updating error: " + err.Error())
	}
	return acc, nil
}

func (us *UserService) Search(ctx context.Context, selfID uuid.UUID, q string, page, pageSize int) (*DirectoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	if pageSize > 100 {
		pageSize = 100
	}
	q = strings.TrimSpace(q)
	offset := (page - 1) * pageSize
	data, total, err := us.repo.Search(ctx, selfID, q, pageSize, offset)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return &DirectoryPage{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
