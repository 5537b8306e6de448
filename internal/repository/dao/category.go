package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;unique;not null"`
	Description string `gorm:"not null"`
	CreatedByID *uint
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time `gorm:"not null"`
}

type CategoryDAO struct {
	db *gorm.DB
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{
		db: db,
	}
}

func categoryUniqueErr(err error) error {
	if _, ok := uniqueViolation(err); ok {
		return ErrCategoryNameExists
	}

	return err
}

func (d *CategoryDAO) Insert(ctx context.Context, category Category) (Category, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&category).Error; err != nil {
		return Category{}, categoryUniqueErr(err)
	}

	return category, nil
}

func (d *CategoryDAO) FindByID(ctx context.Context, id uint) (Category, error) {
	var category Category

	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Category{}, ErrCategoryNotFound
		}

		return Category{}, result.Error
	}

	return category, nil
}

// List filters by case-insensitive name substring and sorts by order, which callers
// must build from a fixed set of columns.
func (d *CategoryDAO) List(ctx context.Context, search, order string, offset, limit int) ([]Category, int64, error) {
	query := d.db.WithContext(ctx).Model(&Category{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", containsPattern(search))
	}
	query = query.Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var categories []Category
	if err := query.Order(order).Order("id").Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, count, nil
}

func (d *CategoryDAO) Update(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).Model(&Category{ID: category.ID}).
		Select("name", "description").
		Updates(&category)
	if result.Error != nil {
		return Category{}, categoryUniqueErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return Category{}, ErrCategoryNotFound
	}

	return d.FindByID(ctx, category.ID)
}

func (d *CategoryDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, compared in lower case.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
