package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"eats-backend/internal/domain"
)

// PageSize is the fixed page size for every paginated catalog listing.
const PageSize = 25

type CreateRestaurantInput struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	CoverImage   string `json:"cover_image,omitempty"`
	CategoryName string `json:"category_name"`
}

type UpdateRestaurantInput struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name,omitempty"`
	Address      string `json:"address,omitempty"`
	CoverImage   string `json:"cover_image,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

type CreateDishInput struct {
	RestaurantID int                 `json:"restaurant_id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Price        float64             `json:"price"`
	Photo        string              `json:"photo,omitempty"`
	Options      []domain.DishOption `json:"options,omitempty"`
}

type UpdateDishInput struct {
	DishID      int                 `json:"dish_id"`
	Name        string              `json:"name,omitempty"`
	Description string              `json:"description,omitempty"`
	Price       *float64            `json:"price,omitempty"`
	Photo       string              `json:"photo,omitempty"`
	Options     []domain.DishOption `json:"options,omitempty"`
}

type RestaurantPage struct {
	Results      []domain.Restaurant `json:"results"`
	TotalResults int                 `json:"total_results"`
	TotalPages   int                 `json:"total_pages"`
}

type CategoryWithCount struct {
	domain.Category
	RestaurantCount int `json:"restaurant_count"`
}

type CategoryPage struct {
	Category    domain.Category     `json:"category"`
	Restaurants []domain.Restaurant `json:"restaurants"`
	TotalPages  int                 `json:"total_pages"`
}

type CatalogService struct {
	restaurants RestaurantRepository
	dishes      DishRepository
	categories  CategoryRepository
}

func NewCatalogService(restaurants RestaurantRepository, dishes DishRepository, categories CategoryRepository) *CatalogService {
	return &CatalogService{
		restaurants: restaurants,
		dishes:      dishes,
		categories:  categories,
	}
}

// Slugify normalizes a category name: lowercased, trimmed, spaces to hyphens.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func (s *CatalogService) CreateRestaurant(owner *domain.User, input CreateRestaurantInput) error {
	category, err := s.categories.GetOrCreateCategory(strings.TrimSpace(input.CategoryName), Slugify(input.CategoryName))
	if err != nil {
		return fmt.Errorf("category get-or-create: %w", err)
	}

	rest := &domain.Restaurant{
		OwnerID:    owner.ID,
		CategoryID: category.ID,
		Name:       input.Name,
		Address:    input.Address,
		CoverImage: input.CoverImage,
	}
	if err := s.restaurants.CreateRestaurant(rest); err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}
	return nil
}

func (s *CatalogService) UpdateRestaurant(owner *domain.User, input UpdateRestaurantInput) error {
	rest, err := s.restaurants.GetRestaurant(input.RestaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("load restaurant: %w", err)
	}
	if owner.ID != rest.OwnerID {
		return ErrUpdateNotOwned
	}

	if input.Name != "" {
		rest.Name = input.Name
	}
	if input.Address != "" {
		rest.Address = input.Address
	}
	if input.CoverImage != "" {
		rest.CoverImage = input.CoverImage
	}
	if input.CategoryName != "" {
		category, err := s.categories.GetOrCreateCategory(strings.TrimSpace(input.CategoryName), Slugify(input.CategoryName))
		if err != nil {
			return fmt.Errorf("category get-or-create: %w", err)
		}
		rest.CategoryID = category.ID
	}

	if err := s.restaurants.UpdateRestaurant(rest); err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	return nil
}

func (s *CatalogService) DeleteRestaurant(owner *domain.User, restaurantID int) error {
	rest, err := s.restaurants.GetRestaurant(restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("load restaurant: %w", err)
	}
	if owner.ID != rest.OwnerID {
		return ErrDeleteNotOwned
	}
	if _, err := s.restaurants.DeleteRestaurant(restaurantID); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return nil
}

func (s *CatalogService) MyRestaurants(owner *domain.User) ([]domain.Restaurant, error) {
	return s.restaurants.ListRestaurantsByOwner(owner.ID)
}

func (s *CatalogService) Restaurants(page int) (*RestaurantPage, error) {
	if page < 1 {
		page = 1
	}
	results, total, err := s.restaurants.ListRestaurantsPage(page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return &RestaurantPage{
		Results:      results,
		TotalResults: total,
		TotalPages:   totalPages(total),
	}, nil
}

func (s *CatalogService) Restaurant(restaurantID int) (*domain.Restaurant, error) {
	rest, err := s.restaurants.GetRestaurantWithMenu(restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	return rest, nil
}

func (s *CatalogService) SearchRestaurants(query string, page int) (*RestaurantPage, error) {
	if page < 1 {
		page = 1
	}
	results, total, err := s.restaurants.SearchRestaurants(query, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	return &RestaurantPage{
		Results:      results,
		TotalResults: total,
		TotalPages:   totalPages(total),
	}, nil
}

func (s *CatalogService) AllCategories() ([]CategoryWithCount, error) {
	categories, err := s.categories.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	result := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := s.restaurants.CountRestaurantsByCategory(category.ID)
		if err != nil {
			return nil, fmt.Errorf("count restaurants for category %d: %w", category.ID, err)
		}
		result = append(result, CategoryWithCount{Category: category, RestaurantCount: count})
	}
	return result, nil
}

func (s *CatalogService) Category(slug string, page int) (*CategoryPage, error) {
	if page < 1 {
		page = 1
	}
	category, err := s.categories.GetCategoryBySlug(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("load category: %w", err)
	}

	restaurants, err := s.restaurants.ListRestaurantsByCategory(category.ID, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("list restaurants by category: %w", err)
	}
	total, err := s.restaurants.CountRestaurantsByCategory(category.ID)
	if err != nil {
		return nil, fmt.Errorf("count restaurants by category: %w", err)
	}

	return &CategoryPage{
		Category:    *category,
		Restaurants: restaurants,
		TotalPages:  totalPages(total),
	}, nil
}

func (s *CatalogService) CreateDish(owner *domain.User, input CreateDishInput) error {
	rest, err := s.restaurants.GetRestaurant(input.RestaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("load restaurant: %w", err)
	}
	if owner.ID != rest.OwnerID {
		return ErrDishNotOwned
	}

	dish := &domain.Dish{
		RestaurantID: rest.ID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Photo:        input.Photo,
		Options:      input.Options,
	}
	if err := s.dishes.CreateDish(dish); err != nil {
		return fmt.Errorf("create dish: %w", err)
	}
	return nil
}

func (s *CatalogService) UpdateDish(owner *domain.User, input UpdateDishInput) error {
	dish, err := s.checkDishAndOwner(owner.ID, input.DishID)
	if err != nil {
		return err
	}

	if input.Name != "" {
		dish.Name = input.Name
	}
	if input.Description != "" {
		dish.Description = input.Description
	}
	if input.Price != nil {
		dish.Price = *input.Price
	}
	if input.Photo != "" {
		dish.Photo = input.Photo
	}
	if input.Options != nil {
		dish.Options = input.Options
	}

	if err := s.dishes.UpdateDish(dish); err != nil {
		return fmt.Errorf("update dish: %w", err)
	}
	return nil
}

func (s *CatalogService) DeleteDish(owner *domain.User, dishID int) error {
	if _, err := s.checkDishAndOwner(owner.ID, dishID); err != nil {
		return err
	}
	if _, err := s.dishes.DeleteDish(dishID); err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	return nil
}

func (s *CatalogService) checkDishAndOwner(ownerID, dishID int) (*domain.Dish, error) {
	dish, rest, err := s.dishes.GetDishWithRestaurant(dishID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("load dish: %w", err)
	}
	if ownerID != rest.OwnerID {
		return nil, ErrDishNotOwned
	}
	return dish, nil
}

func totalPages(total int) int {
	return int(math.Ceil(float64(total) / float64(PageSize)))
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
