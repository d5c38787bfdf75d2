package repository

import (
	"context"

	"gorm.io/gorm"

	"userDirectory/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns every user in primary key order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fail("list users", err)
	}
	return out, nil
}

// GetByID loads one user. A miss is a KindNotFound failure.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, fail("get user", err)
	}
	return &u, nil
}

// Create inserts u and sets its generated ID. The insert runs in its own
// transaction, rolled back on any error.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return fail("create user", err)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(u).Error
	})
	return fail("create user", err)
}

// Update writes name, email and role of u over the row with u.ID. u itself is
// left as given whether or not the write lands.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return fail("update user", err)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{ID: u.ID}).Updates(map[string]any{
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("update user")
		}
		return nil
	})
	return fail("update user", err)
}

// Delete removes the row for u.ID.
func (r *UserRepository) Delete(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, u.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("delete user")
		}
		return nil
	})
	return fail("delete user", err)
}
