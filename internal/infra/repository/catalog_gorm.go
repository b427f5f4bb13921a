package repository

import (
	"context"
	"errors"

	"tableside/internal/domain/model"
	repo "tableside/internal/repository"

	"gorm.io/gorm"
)

type RestaurantGormRepository struct {
	db *gorm.DB
}

// DI
func NewRestaurantGormRepository(db *gorm.DB) *RestaurantGormRepository {
	return &RestaurantGormRepository{db: db}
}

func (r *RestaurantGormRepository) FindBySlug(ctx context.Context, slug string) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *RestaurantGormRepository) FindByID(ctx context.Context, id int64) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

type DiningTableGormRepository struct {
	db *gorm.DB
}

// DI
func NewDiningTableGormRepository(db *gorm.DB) *DiningTableGormRepository {
	return &DiningTableGormRepository{db: db}
}

// codeは店舗内で一意
func (r *DiningTableGormRepository) FindByRestaurantAndCode(ctx context.Context, restaurantID int64, code string) (model.DiningTable, error) {
	var t model.DiningTable
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND code = ?", restaurantID, code).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DiningTable{}, repo.ErrNotFound
	}
	if err != nil {
		return model.DiningTable{}, err
	}
	return t, nil
}

func (r *DiningTableGormRepository) FindByID(ctx context.Context, id int64) (model.DiningTable, error) {
	var t model.DiningTable
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DiningTable{}, repo.ErrNotFound
	}
	if err != nil {
		return model.DiningTable{}, err
	}
	return t, nil
}

type MenuGormRepository struct {
	db *gorm.DB
}

// DI
func NewMenuGormRepository(db *gorm.DB) *MenuGormRepository {
	return &MenuGormRepository{db: db}
}

// カテゴリをSortOrder昇順で一覧
func (r *MenuGormRepository) ListCategories(ctx context.Context, restaurantID int64) ([]model.MenuCategory, error) {
	var cats []model.MenuCategory
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("sort_order asc, id asc").
		Find(&cats).Error
	if err != nil {
		return []model.MenuCategory{}, err
	}
	return cats, nil
}

// 品目の並び順に意味は無いのでid昇順で返す
func (r *MenuGormRepository) ListItems(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *MenuGormRepository) FindItemByID(ctx context.Context, id int64) (model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MenuItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}
