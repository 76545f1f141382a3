package persistent

import (
	"snapgram/pkg/models"
	"snapgram/services/account/internal/entity"
)

func ToUserEntity(m *models.User) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		AccountID: m.AccountID,
		Name:      m.Name,
		Email:     m.Email,
		Username:  m.Username,
		ImageURL:  m.ImageURL,
		Bio:       m.Bio,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *models.User {
	if e == nil {
		return nil
	}

	return &models.User{
		ID:        e.ID,
		AccountID: e.AccountID,
		Name:      e.Name,
		Email:     e.Email,
		Username:  e.Username,
		ImageURL:  e.ImageURL,
		Bio:       e.Bio,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToAccountEntity(m *models.Account) *entity.Account {
	if m == nil {
		return nil
	}

	return &entity.Account{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToAccountModel(e *entity.Account) *models.Account {
	if e == nil {
		return nil
	}

	return &models.Account{
		ID:           e.ID,
		Email:        e.Email,
		Name:         e.Name,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
