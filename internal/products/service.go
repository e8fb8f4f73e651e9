package products

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/internal/users"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	"github.com/jkmondal/shopline-backend/pkg/enums"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
)

// Actor identifies the authenticated caller for gated operations.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	ProductRepo *Repository
	UserRepo    *users.Repository
}

// Service exposes catalog and review rules.
type Service interface {
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (ProductDTO, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]ProductDTO, error)
	CreateProduct(ctx context.Context, actor Actor, input CreateProductInput) (ProductDTO, error)
	UpdateProduct(ctx context.Context, actor Actor, productID uuid.UUID, input UpdateProductInput) (ProductDTO, error)
	DeleteProduct(ctx context.Context, actor Actor, productID uuid.UUID) error
	AddComment(ctx context.Context, input CreateCommentInput) (CommentDTO, error)
	ListComments(ctx context.Context, productID uuid.UUID) ([]CommentDTO, error)
}

type service struct {
	productRepo *Repository
	userRepo    *users.Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
	}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toDTOs(rows), nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (ProductDTO, error) {
	if productID == uuid.Nil {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toDTO(product), nil
}

func (s *service) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]ProductDTO, error) {
	if creatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator id is required")
	}
	rows, err := s.productRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products by creator")
	}
	return toDTOs(rows), nil
}

// CreateProduct inserts a listing owned by the calling admin.
func (s *service) CreateProduct(ctx context.Context, actor Actor, input CreateProductInput) (ProductDTO, error) {
	if err := s.ensureAdmin(actor); err != nil {
		return ProductDTO{}, err
	}
	if err := validateCreate(input); err != nil {
		return ProductDTO{}, err
	}

	product := &models.Product{
		Title:       strings.TrimSpace(input.Title),
		Author:      strings.TrimSpace(input.Author),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Stock:       strings.TrimSpace(input.Stock),
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		CreatorID:   actor.UserID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return toDTO(product), nil
}

// UpdateProduct applies mutations when the caller is the admin creator.
func (s *service) UpdateProduct(ctx context.Context, actor Actor, productID uuid.UUID, input UpdateProductInput) (ProductDTO, error) {
	product, err := s.loadOwnedProduct(ctx, actor, productID)
	if err != nil {
		return ProductDTO{}, err
	}

	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		product.Author = strings.TrimSpace(*input.Author)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Stock != nil {
		product.Stock = strings.TrimSpace(*input.Stock)
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.PriceCents = *input.PriceCents
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return toDTO(product), nil
}

// DeleteProduct removes the listing when the caller is the admin creator.
func (s *service) DeleteProduct(ctx context.Context, actor Actor, productID uuid.UUID) error {
	if _, err := s.loadOwnedProduct(ctx, actor, productID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// AddComment attaches a review to an existing listing. Reviews are not
// authorization-gated.
func (s *service) AddComment(ctx context.Context, input CreateCommentInput) (CommentDTO, error) {
	if input.ProductID == uuid.Nil {
		return CommentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return CommentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "title and description are required")
	}

	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	comment := &models.Comment{
		ProductID:    input.ProductID,
		Title:        title,
		Description:  description,
		UserImageURL: input.UserImageURL,
	}
	if err := s.productRepo.CreateComment(ctx, comment); err != nil {
		return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create comment")
	}
	return commentToDTO(comment), nil
}

func (s *service) ListComments(ctx context.Context, productID uuid.UUID) ([]CommentDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	rows, err := s.productRepo.ListCommentsByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}
	out := make([]CommentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, commentToDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) ensureAdmin(actor Actor) error {
	if actor.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if actor.Role != enums.UserRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return nil
}

func (s *service) loadOwnedProduct(ctx context.Context, actor Actor, productID uuid.UUID) (*models.Product, error) {
	if err := s.ensureAdmin(actor); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.CreatorID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another creator")
	}
	return product, nil
}

func validateCreate(input CreateProductInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.PriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}

func toDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out
}
