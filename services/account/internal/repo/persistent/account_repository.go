package persistent

import (
	"context"

	"snapgram/pkg/models"
	"snapgram/services/account/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByID(ctx context.Context, id string) (*entity.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := ToAccountModel(account)
	if accountModel.ID == "" {
		accountModel.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(accountModel).Error; err != nil {
		return err
	}
	*account = *ToAccountEntity(accountModel)
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountModel models.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&accountModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToAccountEntity(&accountModel), nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var accountModel models.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&accountModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToAccountEntity(&accountModel), nil
}
