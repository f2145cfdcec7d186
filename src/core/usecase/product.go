package usecase

import (
	"context"
	"log/slog"
	"strings"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
)

// ProductInput carries the mutable attributes of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	ImageURL    *string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name", "cannot be empty")
	}
	if in.Price < 0 {
		return domain.NewValidationError("price", "cannot be negative")
	}
	if in.Quantity < 0 {
		return domain.NewValidationError("quantity", "cannot be negative")
	}
	return nil
}

// ProductService handles catalog listings.
type ProductService struct {
	repo ports.MarketRepository
	log  *slog.Logger
}

func NewProductService(repo ports.MarketRepository, log *slog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

// Create lists a product on a shed the actor owns.
func (s *ProductService) Create(ctx context.Context, actor domain.Actor, shedID int64, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	shed, err := s.repo.GetShed(ctx, shedID)
	if err != nil {
		return nil, err
	}
	if !domain.CanCreateProduct(actor, shed) {
		return nil, domain.NewForbiddenError("only the shed owner can list products")
	}
	return s.repo.CreateProduct(ctx, &domain.Product{
		ShedID:      shed.ID,
		VendorID:    shed.VendorID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		ImageURL:    in.ImageURL,
	})
}

// Update mutates a product owned by the actor.
func (s *ProductService) Update(ctx context.Context, actor domain.Actor, productID int64, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !domain.CanModifyProduct(actor, p) {
		return nil, domain.NewForbiddenError("not the product owner")
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.ImageURL = in.ImageURL
	return s.repo.UpdateProduct(ctx, p)
}

// Delete removes a product owned by the actor.
func (s *ProductService) Delete(ctx context.Context, actor domain.Actor, productID int64) error {
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !domain.CanModifyProduct(actor, p) {
		return domain.NewForbiddenError("not the product owner")
	}
	return s.repo.DeleteProduct(ctx, productID)
}

// Get returns a product by id. Public.
func (s *ProductService) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, productID)
}

// List returns the catalog, filtered. Public.
func (s *ProductService) List(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return nil, domain.NewValidationError("min_price", "cannot be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MaxPrice < *filter.MinPrice {
		return nil, domain.NewValidationError("max_price", "cannot be below min_price")
	}
	return s.repo.ListProducts(ctx, filter)
}
