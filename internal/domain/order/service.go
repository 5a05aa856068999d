// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/winston-coffee/ordering-backend/internal/config"
	"github.com/winston-coffee/ordering-backend/internal/domain/cart"
	"github.com/winston-coffee/ordering-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents order list query parameters
type ListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Status Status `form:"status"`
	Table  string `form:"table"`
}

// ListResponse represents orders with pagination
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Submit persists the cart as a new order and returns its ID.
//
// Validation happens before any write: an empty cart and a missing table
// number both fail with a ValidationError. The write is one transaction of
// order plus line snapshots; the total is recomputed from the cart here, so
// it always equals the cart's total at submission time. The cart itself is
// not cleared; that stays the caller's decision.
func (s *Service) Submit(ctx context.Context, crt *cart.Cart, tableNumber, note string, method PaymentMethod) (uint, error) {
	if crt == nil || crt.IsEmpty() {
		return 0, apperrors.Validation("cart is empty")
	}
	if tableNumber == "" {
		return 0, apperrors.Validation("missing table number")
	}
	if method != MethodQRIS && method != MethodCash {
		return 0, apperrors.Validation("unknown payment method")
	}

	ord := Order{
		TableNumber:   tableNumber,
		Note:          note,
		TotalAmount:   crt.Total(),
		PaymentMethod: method,
	}

	// Initial statuses depend on the chosen method
	if method == MethodCash {
		ord.Status = StatusAwaitingProcessing
		ord.PaymentStatus = PaymentStatusCash
	} else {
		ord.Status = StatusAwaitingPayment
		ord.PaymentStatus = PaymentStatusPending
	}

	for _, line := range crt.Lines {
		ord.Items = append(ord.Items, Item{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Variant:    line.Variant,
			Quantity:   line.Quantity,
			Price:      line.Price,
			TotalPrice: int64(line.Quantity) * line.Price,
		})
	}

	if err := s.db.WithContext(ctx).Create(&ord).Error; err != nil {
		return 0, apperrors.Persistence("failed to create order", err)
	}

	return ord.ID, nil
}

// Get retrieves a single order with its items
func (s *Service) Get(ctx context.Context, id uint) (*Order, error) {
	var ord Order
	result := s.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&ord)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, apperrors.Validation("order not found")
		}
		return nil, apperrors.Fetch("failed to retrieve order", result.Error)
	}
	return &ord, nil
}

// List retrieves orders with filtering and pagination for the staff surface
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	var orders []Order
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&Order{}).Preload("Items")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Table != "" {
		query = query.Where("table_number = ?", req.Table)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Fetch("failed to count orders", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, apperrors.Fetch("failed to retrieve orders", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// AttachToken records the gateway token issued for a QRIS order
func (s *Service) AttachToken(ctx context.Context, orderID uint, token string) error {
	result := s.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderID).
		Update("snap_token", token)
	if result.Error != nil {
		return apperrors.Persistence("failed to store gateway token", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Validation("order not found")
	}
	return nil
}

// ConfirmCash finalizes a cash order: pay at the register, kitchen may start
func (s *Service) ConfirmCash(ctx context.Context, orderID uint) error {
	return s.updateStatuses(ctx, orderID, StatusAwaitingProcessing, PaymentStatusCash)
}

// MarkCashPaid records that a cash order's payment was collected at the
// register
func (s *Service) MarkCashPaid(ctx context.Context, orderID uint) error {
	ord, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if ord.PaymentMethod != MethodCash {
		return apperrors.Validation("order is not a cash order")
	}

	result := s.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderID).
		Update("payment_status", PaymentStatusPaid)
	if result.Error != nil {
		return apperrors.Persistence("failed to record cash payment", result.Error)
	}
	return nil
}

// ApplyGatewayResult maps a Midtrans transaction status onto the order.
// Called from the notification webhook after signature verification.
func (s *Service) ApplyGatewayResult(ctx context.Context, orderID uint, transactionStatus, fraudStatus string) error {
	switch transactionStatus {
	case "capture", "settlement":
		if fraudStatus == "challenge" || fraudStatus == "deny" {
			return s.updateStatuses(ctx, orderID, StatusAwaitingPayment, PaymentStatusPending)
		}
		return s.updateStatuses(ctx, orderID, StatusAwaitingProcessing, PaymentStatusPaid)
	case "pending":
		return s.updateStatuses(ctx, orderID, StatusAwaitingPayment, PaymentStatusPending)
	case "deny", "cancel", "expire", "failure":
		return s.updateStatuses(ctx, orderID, StatusCancelled, PaymentStatusFailed)
	default:
		return apperrors.Validation(fmt.Sprintf("unknown transaction status %q", transactionStatus))
	}
}

// UpdateStatus advances the order through the kitchen flow
func (s *Service) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	ord, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if !isValidTransition(ord.Status, status) {
		return apperrors.Validation(fmt.Sprintf("invalid status transition from %s to %s", ord.Status, status))
	}

	result := s.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return apperrors.Persistence("failed to update order status", result.Error)
	}
	return nil
}

func (s *Service) updateStatuses(ctx context.Context, orderID uint, status Status, payment PaymentStatus) error {
	result := s.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":         status,
			"payment_status": payment,
		})
	if result.Error != nil {
		return apperrors.Persistence("failed to update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Validation("order not found")
	}
	return nil
}

func isValidTransition(from, to Status) bool {
	validTransitions := map[Status][]Status{
		StatusAwaitingPayment:    {StatusAwaitingProcessing, StatusCancelled},
		StatusAwaitingProcessing: {StatusProcessing, StatusCancelled},
		StatusProcessing:         {StatusCompleted, StatusCancelled},
	}

	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
