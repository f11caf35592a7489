package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/listing"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/fekuna/bao-console/internal/product"
	prodUC "github.com/fekuna/bao-console/internal/product/usecase"
	"github.com/fekuna/bao-console/internal/uniform"
	"github.com/fekuna/bao-console/internal/uniform/dto"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type uniformUseCase struct {
	repo     uniform.Repository
	products product.Repository
	cache    *cache.Store
	events   activity.Publisher
	logger   logger.ZapLogger
}

func NewUniformUseCase(repo uniform.Repository, products product.Repository, store *cache.Store, events activity.Publisher, log logger.ZapLogger) uniform.UseCase {
	return &uniformUseCase{
		repo:     repo,
		products: products,
		cache:    store,
		events:   events,
		logger:   log,
	}
}

func (uc *uniformUseCase) ListUniforms(ctx context.Context, filters *dto.UniformFilters) ([]model.UniformVariant, error) {
	all, err := cache.Load(ctx, uc.cache, cache.KeyUniforms, uc.repo.FindAll)
	if err != nil {
		return nil, err
	}
	all = uc.attachProducts(ctx, all)
	if filters == nil {
		return all, nil
	}
	want := filters.Type
	if t, ok := model.ParseUniformType(want); ok {
		want = string(t)
	}
	return listing.Filter(all, filters.Search, want,
		func(v model.UniformVariant) []string {
			return []string{productName(v), string(v.Size), string(v.Type), string(v.Gender)}
		},
		func(v model.UniformVariant) string { return string(v.Type) },
	), nil
}

// attachProducts fills in the parent product for rows the server sent without it.
func (uc *uniformUseCase) attachProducts(ctx context.Context, variants []model.UniformVariant) []model.UniformVariant {
	missing := false
	for _, v := range variants {
		if v.Product == nil {
			missing = true
			break
		}
	}
	if !missing {
		return variants
	}
	products, err := cache.Load(ctx, uc.cache, cache.KeyProducts, uc.products.FindAll)
	if err != nil {
		uc.logger.Warn("could not resolve uniform products", zap.Error(err))
		return variants
	}
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]model.UniformVariant, len(variants))
	for i, v := range variants {
		if v.Product == nil {
			if p, ok := byID[v.ProductID]; ok {
				pc := p
				v.Product = &pc
			}
		}
		out[i] = v
	}
	return out
}

func (uc *uniformUseCase) ListByProduct(ctx context.Context, productID int64) ([]model.UniformVariant, error) {
	variants, err := uc.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.attachProducts(ctx, variants), nil
}

func (uc *uniformUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.UniformVariant, error) {
	if input.ProductID <= 0 {
		return nil, apperrors.NewValidationError("Product is required")
	}
	body, err := newVariantBody(input)
	if err != nil {
		return nil, err
	}

	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Product #%d does not exist", input.ProductID))
		}
		return nil, errors.Wrap(err, "failed to create uniform")
	}
	if !p.IsUniform() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Product %s is not a Uniform", p.Name))
	}

	return uc.create(ctx, p, body)
}

func (uc *uniformUseCase) create(ctx context.Context, p *model.Product, body *dto.VariantBody) (*model.UniformVariant, error) {
	v, err := uc.repo.Create(ctx, body)
	if err != nil {
		uc.logger.Error("failed to create uniform", zap.Int64("product_id", body.ProductID), zap.Error(err))
		return nil, errors.Wrap(err, "failed to create uniform")
	}
	if v.Product == nil {
		pc := *p
		v.Product = &pc
	}
	uc.publish(activity.KindCreated, v.ID, fmt.Sprintf("Uniform %s %s %s created for %s", v.Type, v.Gender, v.Size, p.Name))
	return v, nil
}

func (uc *uniformUseCase) DeleteVariant(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete uniform", zap.Int64("uniform_id", id), zap.Error(err))
		return errors.Wrap(err, "failed to delete uniform")
	}
	uc.publish(activity.KindDeleted, id, fmt.Sprintf("Uniform #%d deleted", id))
	return nil
}

func (uc *uniformUseCase) CreateUniformProduct(ctx context.Context, input *dto.CreateUniformProductInput) (*dto.UniformProductResult, error) {
	input.Product.Category = string(model.CategoryUniform)
	productBody, err := prodUC.NewProductBody(&input.Product)
	if err != nil {
		return nil, err
	}
	if len(input.Variants) == 0 {
		return nil, apperrors.NewValidationError("Add at least one size")
	}
	// validate every variant before the first request
	bodies := make([]*dto.VariantBody, len(input.Variants))
	for i, spec := range input.Variants {
		b, err := newVariantBody(&dto.CreateVariantInput{
			Size:   spec.Size,
			Gender: spec.Gender,
			Type:   spec.Type,
			Piece:  spec.Piece,
		})
		if err != nil {
			return nil, err
		}
		bodies[i] = b
	}

	p, err := uc.products.Create(ctx, productBody)
	if err != nil {
		uc.logger.Error("failed to create product", zap.String("name", productBody.Name), zap.Error(err))
		return nil, errors.Wrap(err, "failed to create product")
	}
	uc.publishProduct(p)

	result := &dto.UniformProductResult{Product: p}
	for _, b := range bodies {
		b.ProductID = p.ID
		v, err := uc.create(ctx, p, b)
		if err != nil {
			return result, err
		}
		result.Variants = append(result.Variants, *v)
	}
	return result, nil
}

func newVariantBody(input *dto.CreateVariantInput) (*dto.VariantBody, error) {
	if err := apperrors.Validate(input); err != nil {
		return nil, err
	}
	size, ok := model.ParseSize(input.Size)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown size %q", input.Size))
	}
	gender, ok := model.ParseGender(input.Gender)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown gender %q", input.Gender))
	}
	typ, ok := model.ParseUniformType(input.Type)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown uniform type %q", input.Type))
	}
	body := &dto.VariantBody{
		ProductID: input.ProductID,
		Size:      size,
		Gender:    gender,
		Type:      typ,
		Buyer:     strings.TrimSpace(input.Buyer),
		Quantity:  input.Quantity,
	}
	if strings.TrimSpace(input.Piece) != "" {
		piece, ok := model.ParsePiece(input.Piece)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown piece %q", input.Piece))
		}
		body.Piece = piece
	}
	if body.Quantity != nil && *body.Quantity < 0 {
		return nil, apperrors.NewValidationError("Quantity must be at least 0")
	}
	return body, nil
}

func (uc *uniformUseCase) publish(kind activity.Kind, id int64, desc string) {
	if uc.events == nil {
		return
	}
	uc.events.Publish(activity.NewEvent(kind, activity.EntityUniform, id, desc))
}

func (uc *uniformUseCase) publishProduct(p *model.Product) {
	if uc.events == nil {
		return
	}
	uc.events.Publish(activity.NewEvent(activity.KindCreated, activity.EntityProduct, p.ID, fmt.Sprintf("Product %s created", p.Name)))
}

func productName(v model.UniformVariant) string {
	if v.Product != nil {
		return v.Product.Name
	}
	return model.UnknownProductName
}
