package repo

import (
	"GophSign/internal/model"
	"context"

	"gorm.io/gorm"
)

// UserRepository — хранилище учётных записей.
// Методы Get* возвращают gorm.ErrRecordNotFound, если записи нет.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// AccountRepository — связи пользователей с внешними провайдерами входа.
type AccountRepository interface {
	GetAccount(ctx context.Context, provider, providerAccountID string) (*model.Account, error)
	// LinkAccount создаёт связь; если user.ID пуст, пользователь создаётся в той же транзакции.
	LinkAccount(ctx context.Context, user *model.User, provider, providerAccountID string) (*model.User, error)
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) GetAccount(ctx context.Context, provider, providerAccountID string) (*model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("provider = ? AND provider_account_id = ?", provider, providerAccountID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepo) LinkAccount(ctx context.Context, user *model.User, provider, providerAccountID string) (*model.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.ID == "" {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
		}
		return tx.Create(&model.Account{
			UserID:            user.ID,
			Provider:          provider,
			ProviderAccountID: providerAccountID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
