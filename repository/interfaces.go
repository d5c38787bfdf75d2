package repository

import (
	"context"

	"userDirectory/models"
)

// UserRepositoryI defines operations on User entities. Every error it returns
// is a *Failure.
type UserRepositoryI interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, u *models.User) error
}

var _ UserRepositoryI = (*UserRepository)(nil)
