package usecase

import (
	"context"
	"net/http"

	repo "souk/internal/repository"
)

// CartUsecase handles a user's per-store cart lines.
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

type CartLineResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total int64              `json:"total"`
}

type AddLineInput struct {
	TenantID  int64
	ProductID int64
	Quantity  int64
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64, tenantID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if tenantID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
	}

	return u.buildCartResponse(ctx, userID, tenantID)
}

// AddLine merges onto an existing line for the same product, re-validating
// the merged quantity against stock. At most one line per user+product.
func (u *CartUsecase) AddLine(ctx context.Context, userID int64, in AddLineInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.TenantID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive || p.TenantID != in.TenantID {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	lines, err := u.cartRepo.ListByUserAndTenant(ctx, userID, in.TenantID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var existingQty int64 = 0
	for _, line := range lines {
		if line.ProductID == in.ProductID {
			existingQty = line.Quantity
			break
		}
	}

	if existingQty+in.Quantity > p.StockQuantity {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	if err := u.cartRepo.UpsertLine(ctx, userID, in.TenantID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID, in.TenantID)
}

// UpdateLine sets a line's quantity. Zero or negative means remove.
func (u *CartUsecase) UpdateLine(ctx context.Context, userID int64, lineID int64, quantity int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if lineID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	line, err := u.cartRepo.FindByID(ctx, lineID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if line.UserID != userID {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if quantity <= 0 {
		if err := u.cartRepo.DeleteByID(ctx, lineID); err != nil && err != repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.buildCartResponse(ctx, userID, line.TenantID)
	}

	p, err := u.productRepo.FindByID(ctx, line.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if quantity > p.StockQuantity {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	if err := u.cartRepo.UpdateQuantity(ctx, lineID, quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID, line.TenantID)
}

func (u *CartUsecase) RemoveLine(ctx context.Context, userID int64, lineID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if lineID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	line, err := u.cartRepo.FindByID(ctx, lineID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if line.UserID != userID {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartRepo.DeleteByID(ctx, lineID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID, line.TenantID)
}

func (u *CartUsecase) Clear(ctx context.Context, userID int64, tenantID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if tenantID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
	}

	if err := u.cartRepo.ClearByUserAndTenant(ctx, userID, tenantID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// buildCartResponse joins lines with live product data. Lines whose
// product has gone missing or inactive are skipped in display; checkout
// rejects them properly.
func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64, tenantID int64) (CartResponse, error) {
	lines, err := u.cartRepo.ListByUserAndTenant(ctx, userID, tenantID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartLineResponse, 0, len(lines))
	var total int64 = 0

	for _, line := range lines {
		p, err := u.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			continue
		}
		if !p.IsActive {
			continue
		}

		lineTotal := p.Price * line.Quantity
		respItems = append(respItems, CartLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})

		total += lineTotal
	}

	return CartResponse{Items: respItems, Total: total}, nil
}
