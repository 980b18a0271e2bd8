package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wellconnect/entities"
	"wellconnect/pkg/well/repository"
)

type wellRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.WellRepository { return &wellRepo{db} }

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", repository.ErrStore, op, err)
}

func (r *wellRepo) GetAll() ([]entities.Well, error) {
	var out []entities.Well
	if err := r.db.Order("id asc").Find(&out).Error; err != nil {
		return nil, storeErr("get all", err)
	}
	return out, nil
}

func (r *wellRepo) GetByID(id uint) (*entities.Well, error) {
	var w entities.Well
	if err := r.db.First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("get by id", err)
	}
	return &w, nil
}

func (r *wellRepo) Save(w *entities.Well) error {
	// Single-statement upsert on the primary key, so readers never observe a
	// half-written record. A zero id lets sqlite assign the next one; a
	// caller-chosen id (new drafts are created under a fixed id) inserts or
	// replaces that row.
	if w.ID == 0 {
		if err := r.db.Create(w).Error; err != nil {
			return storeErr("save", err)
		}
		return nil
	}
	if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(w).Error; err != nil {
		return storeErr("save", err)
	}
	return nil
}

func (r *wellRepo) Delete(id uint) error {
	if err := r.db.Delete(&entities.Well{}, id).Error; err != nil {
		return storeErr("delete", err)
	}
	return nil
}

func (r *wellRepo) SwapIDs(a, b uint) error {
	if a == b {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Well{}).Where("id IN ?", []uint{a, b}).Count(&count).Error; err != nil {
			return err
		}
		if count != 2 {
			// either id missing: no-op
			return nil
		}
		// park a on an unused id so the unique PK is never violated mid-swap
		var maxID uint
		if err := tx.Raw(`SELECT COALESCE(MAX(id), 0) FROM wells`).Scan(&maxID).Error; err != nil {
			return err
		}
		park := maxID + 1
		if err := tx.Model(&entities.Well{}).Where("id = ?", a).Update("id", park).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.Well{}).Where("id = ?", b).Update("id", a).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Well{}).Where("id = ?", park).Update("id", b).Error
	})
	if err != nil {
		return storeErr("swap ids", err)
	}
	return nil
}
