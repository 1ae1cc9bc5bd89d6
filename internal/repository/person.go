package repository

import (
	"errors"

	"github.com/mmissffitt/CineMax/internal/model"
	"gorm.io/gorm"
)

// ErrPersonNotFound 人物不存在
var ErrPersonNotFound = errors.New("person not found")

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// FindByID 根据 ID 查找人物，带参演作品列表
func (r *PersonRepository) FindByID(id int) (*model.Person, error) {
	var person model.Person
	err := r.db.Preload("Participations.MediaContent").First(&person, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, err
	}

	return &person, nil
}

// ListAll 所有人物，按姓名排序
func (r *PersonRepository) ListAll() ([]*model.Person, error) {
	var persons []*model.Person
	err := r.db.Order("last_name ASC, first_name ASC").Find(&persons).Error
	return persons, err
}
