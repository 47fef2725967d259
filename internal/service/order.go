package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/shopnext/backend/internal/events"
	"github.com/shopnext/backend/internal/logging"
	"github.com/shopnext/backend/internal/mail"
	"github.com/shopnext/backend/internal/models"
	"github.com/shopnext/backend/internal/repo"
	"github.com/shopnext/backend/internal/token"
	"github.com/shopnext/backend/internal/transport"
)

// totalTolerance absorbs float rounding between the client's displayed
// total and the server-side recomputation.
const totalTolerance = 0.01

type OrderService struct {
	Repo     *repo.GormRepo
	Tokens   *token.Service
	Producer events.Producer
}

// Submit verifies the caller, recomputes the total from catalog prices and
// persists the order together with its confirmation notification. The
// notification is delivered later by the outbox dispatcher, so mail outages
// never fail or roll back an order.
func (s *OrderService) Submit(ctx context.Context, req transport.PlaceOrderRequest) (*transport.OrderReceipt, error) {
	l := logging.FromContext(ctx).With("svc", "order.submit")

	userID, err := s.Tokens.VerifyUser(req.Token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	var total float64
	items := make([]transport.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		product, err := s.Repo.ProductByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d not found", ErrValidation, it.ProductID)
		}
		// The catalog price is authoritative, not the one the client sent.
		items = append(items, transport.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     product.Price,
		})
		total += float64(it.Quantity) * product.Price
	}

	if math.Abs(total-req.Total) > totalTolerance {
		return nil, fmt.Errorf("%w: total mismatch: got %.2f, expected %.2f", ErrValidation, req.Total, total)
	}

	blob, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	var paymentID *string
	if req.PaymentID != "" {
		paymentID = &req.PaymentID
	}

	order := &models.Order{
		UserID:    userID,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Items:     string(blob),
		Total:     total,
		Status:    StatusPending,
		PaymentID: paymentID,
		CreatedAt: time.Now(),
	}

	msg := &models.OutboxMessage{
		ID:        uuid.NewString(),
		Kind:      "order_confirmation",
		Recipient: user.Email,
		Subject:   mail.SubjectOrderConfirmation,
		Body:      mail.OrderConfirmationBody(total, StatusPending, req.PaymentID, req.Name, req.Phone, req.Address),
		CreatedAt: time.Now(),
	}

	if err := s.Repo.CreateOrder(ctx, order, msg); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":     "order_placed",
		"order_id": order.ID,
		"user_id":  userID,
		"total":    total,
	}, fmt.Sprint(order.ID))

	l.Info("order placed", "order_id", order.ID, "user_id", userID, "total", total)

	return &transport.OrderReceipt{
		OrderID: order.ID,
		Status:  order.Status,
		Message: "Order Placed",
	}, nil
}

func (s *OrderService) ListForUser(ctx context.Context, rawToken string) ([]models.Order, error) {
	userID, err := s.Tokens.VerifyUser(rawToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return s.Repo.OrdersByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]repo.AdminOrderRow, error) {
	return s.Repo.AllOrdersWithOwners(ctx)
}

// UpdateStatus validates the transition and commits the new status and its
// notification in one transaction. A missing owner fails the whole update:
// an order whose user record is gone has nobody to notify.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status", "order_id", orderID)

	order, err := s.Repo.OrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}

	user, err := s.Repo.UserByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	if err := CheckTransition(order.Status, status); err != nil {
		return nil, err
	}

	msg := &models.OutboxMessage{
		ID:        uuid.NewString(),
		Kind:      "status_update",
		Recipient: user.Email,
		Subject:   mail.SubjectStatusUpdate,
		Body:      mail.StatusUpdateBody(user.Name, order.ID, status),
		CreatedAt: time.Now(),
	}

	if err := s.Repo.UpdateOrderStatus(ctx, orderID, status, msg); err != nil {
		return nil, err
	}
	order.Status = status

	s.publish(ctx, map[string]any{
		"type":     "order_status_changed",
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   status,
	}, fmt.Sprint(order.ID))

	l.Info("status updated", "status", status)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event map[string]any, key string) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
