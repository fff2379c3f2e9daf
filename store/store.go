package store

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/abequinonez/udacity-item-catalog/models"
)

const contextKey = "catalogStore"

// Store wraps the catalog database. Route handlers never touch the shared
// handle directly; they go through a Store bound to the request's own
// transaction (see middleware.Transaction).
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Item{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// New wraps an existing gorm handle, typically a transaction.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for transaction control and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// ToContext attaches a request-scoped store to the gin context.
func ToContext(c *gin.Context, s *Store) {
	c.Set(contextKey, s)
}

// FromContext returns the request-scoped store set by the transaction
// middleware. Panics if the middleware is not installed.
func FromContext(c *gin.Context) *Store {
	return c.MustGet(contextKey).(*Store)
}

// Categories returns every category in id order.
func (s *Store) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("id").Find(&categories).Error
	return categories, err
}

// ResolveCategory maps a path segment to its category by scanning all
// categories for a case-insensitive name match. The full category list is
// returned alongside since every page renders it. The first match in
// iteration order wins; names are expected unique.
func (s *Store) ResolveCategory(segment string) (models.Category, []models.Category, error) {
	categories, err := s.Categories()
	if err != nil {
		return models.Category{}, nil, err
	}
	for _, category := range categories {
		if strings.EqualFold(category.Name, segment) {
			return category, categories, nil
		}
	}
	return models.Category{}, categories, ErrNotFound
}

// CategoryByID looks up a single category.
func (s *Store) CategoryByID(id uint) (models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return category, ErrNotFound
	}
	return category, err
}

// ResolveItem resolves the category segment first, then performs a single
// case-insensitive, category-scoped lookup for the item segment. Zero
// matches yield ErrNotFound; more than one yields ErrAmbiguous rather than
// an arbitrary row.
func (s *Store) ResolveItem(catSegment, itemSegment string) (models.Item, models.Category, error) {
	category, _, err := s.ResolveCategory(catSegment)
	if err != nil {
		return models.Item{}, models.Category{}, err
	}

	var items []models.Item
	err = s.db.Preload("Category").
		Where("cat_id = ? AND LOWER(name) = LOWER(?)", category.ID, itemSegment).
		Find(&items).Error
	if err != nil {
		return models.Item{}, category, err
	}

	switch len(items) {
	case 0:
		return models.Item{}, category, ErrNotFound
	case 1:
		return items[0], category, nil
	default:
		return models.Item{}, category, ErrAmbiguous
	}
}

// RecentItems returns the newest items across all categories, newest first.
func (s *Store) RecentItems(limit int) ([]models.Item, error) {
	var items []models.Item
	err := s.db.Preload("Category").Order("id DESC").Limit(limit).Find(&items).Error
	return items, err
}

// ItemsInCategory returns a category's items, newest first.
func (s *Store) ItemsInCategory(catID uint) ([]models.Item, error) {
	var items []models.Item
	err := s.db.Preload("Category").Where("cat_id = ?", catID).Order("id DESC").Find(&items).Error
	return items, err
}

// ItemsByUser returns the items owned by a user, newest first.
func (s *Store) ItemsByUser(userID uint) ([]models.Item, error) {
	var items []models.Item
	err := s.db.Preload("Category").Where("user_id = ?", userID).Order("id DESC").Find(&items).Error
	return items, err
}

// AllItems returns every item. The API projection filters this set per
// category client-side; there is no store-side join.
func (s *Store) AllItems() ([]models.Item, error) {
	var items []models.Item
	err := s.db.Order("id").Find(&items).Error
	return items, err
}

// CreateItem persists a new item. A name already taken within the target
// category (ignoring case) is rejected with ErrDuplicate.
func (s *Store) CreateItem(item *models.Item) error {
	taken, err := s.nameTaken(item.CatID, item.Name, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicate
	}
	return s.db.Omit("Category", "User").Create(item).Error
}

// UpdateItem saves changes to an existing item, with the same duplicate
// name check as CreateItem (the item itself excluded).
func (s *Store) UpdateItem(item *models.Item) error {
	taken, err := s.nameTaken(item.CatID, item.Name, item.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicate
	}
	return s.db.Omit("Category", "User").Save(item).Error
}

// DeleteItem removes the item's row.
func (s *Store) DeleteItem(item *models.Item) error {
	return s.db.Delete(item).Error
}

func (s *Store) nameTaken(catID uint, name string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Item{}).
		Where("cat_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", catID, name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// UserByEmail looks up a user by email, the key the OAuth commit point
// uses to decide between reuse and creation.
func (s *Store) UserByEmail(email string) (models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrNotFound
	}
	return user, err
}

// CreateUser persists a new user.
func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}
