package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"wellconnect/entities"
	"wellconnect/pkg/session/repository"
)

type profileRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ProfileRepository { return &profileRepo{db} }

func (r *profileRepo) Load() (*entities.UserProfile, error) {
	var p entities.UserProfile
	if err := r.db.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Save(p *entities.UserProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// whole-document semantics: one row, replaced in full
		if err := tx.Where("1 = 1").Delete(&entities.UserProfile{}).Error; err != nil {
			return err
		}
		p.ID = 1
		return tx.Create(p).Error
	})
}

func (r *profileRepo) Clear() error {
	return r.db.Where("1 = 1").Delete(&entities.UserProfile{}).Error
}
