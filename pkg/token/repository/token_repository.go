package repository

import "wellconnect/entities"

type TokenRepository interface {
	Create(t *entities.DeviceToken) error
	Delete(value string) error
	List() ([]entities.DeviceToken, error)
}
