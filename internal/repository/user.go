package repository

import (
	"github.com/splatbuilds/backend/internal/entity"
	"github.com/splatbuilds/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx xcontext.Context, data *entity.User) error
	GetByID(ctx xcontext.Context, id string) (*entity.User, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx xcontext.Context, data *entity.User) error {
	return ctx.DB().Create(data).Error
}

func (r *userRepository) GetByID(ctx xcontext.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := ctx.DB().Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}
