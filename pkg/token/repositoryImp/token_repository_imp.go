package repositoryImp

import (
	"gorm.io/gorm"

	"wellconnect/entities"
	"wellconnect/pkg/token/repository"
)

type tokenRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TokenRepository { return &tokenRepo{db} }

func (r *tokenRepo) Create(t *entities.DeviceToken) error { return r.db.Create(t).Error }

func (r *tokenRepo) Delete(value string) error {
	return r.db.Where("token = ?", value).Delete(&entities.DeviceToken{}).Error
}

func (r *tokenRepo) List() ([]entities.DeviceToken, error) {
	var out []entities.DeviceToken
	if err := r.db.Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
