package db

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/habitboard/internal/models"
	"github.com/terraincognita07/habitboard/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PersonRepository struct {
	database *gorm.DB
}

func NewPersonRepository(database *gorm.DB) *PersonRepository {
	return &PersonRepository{database: database}
}

func (repo *PersonRepository) List(ctx context.Context) ([]models.Person, error) {
	people := make([]models.Person, 0)
	if err := repo.database.WithContext(ctx).Order("id ASC").Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (repo *PersonRepository) Get(ctx context.Context, id uint) (models.Person, error) {
	var person models.Person
	if err := repo.database.WithContext(ctx).First(&person, id).Error; err != nil {
		return models.Person{}, translateNotFound(err)
	}
	return person, nil
}

func (repo *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	return repo.database.WithContext(ctx).Create(person).Error
}

func (repo *PersonRepository) Update(ctx context.Context, id uint, mutate store.PersonMutation) (models.Person, error) {
	var updated models.Person
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var person models.Person
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&person, id).Error; err != nil {
			return translateNotFound(err)
		}

		createdAt := person.CreatedAt
		if err := mutate(&person); err != nil {
			return err
		}
		person.ID = id
		person.CreatedAt = createdAt
		person.UpdatedAt = time.Now()

		if err := tx.Save(&person).Error; err != nil {
			return err
		}
		updated = person
		return nil
	})
	if err != nil {
		return models.Person{}, err
	}
	return updated, nil
}

func (repo *PersonRepository) Delete(ctx context.Context, id uint) error {
	result := repo.database.WithContext(ctx).Delete(&models.Person{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}
