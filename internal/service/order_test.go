package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopnext/backend/internal/hash"
	"github.com/shopnext/backend/internal/models"
	"github.com/shopnext/backend/internal/repo"
	"github.com/shopnext/backend/internal/token"
	"github.com/shopnext/backend/internal/transport"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Product{},
		&models.Order{},
		&models.OutboxMessage{},
		&models.Contact{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func testTokens() *token.Service {
	return &token.Service{
		JWTSecret:      []byte("test-secret"),
		AdminJWTSecret: []byte("test-admin-secret"),
	}
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	pw, err := hash.HashPassword("password")
	require.NoError(t, err)
	u := &models.User{Name: name, Email: email, PasswordHash: pw, CreatedAt: time.Now()}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, title string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{Title: title, Category: "misc", Price: price, CreatedAt: time.Now()}
	require.NoError(t, db.Create(p).Error)
	return p
}

func newOrderService(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db := initTestDB(t)
	return &OrderService{Repo: repo.New(db), Tokens: testTokens()}, db
}

func placeOrderReq(t *testing.T, svc *OrderService, user *models.User, p *models.Product, qty uint) transport.PlaceOrderRequest {
	t.Helper()
	tok, err := svc.Tokens.SignUser(user.ID)
	require.NoError(t, err)
	return transport.PlaceOrderRequest{
		Token:   tok,
		Name:    user.Name,
		Address: "42 Test Street",
		Phone:   "9999999999",
		Items: []transport.OrderItem{
			{ProductID: p.ID, Quantity: qty, Price: p.Price},
		},
		Total: float64(qty) * p.Price,
	}
}

func TestSubmitPersistsPendingOrder(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "Alice", "alice@example.com")
	product := seedProduct(t, db, "Mug", 250)

	receipt, err := svc.Submit(context.Background(), placeOrderReq(t, svc, user, product, 2))
	require.NoError(t, err)
	require.NotZero(t, receipt.OrderID)
	require.Equal(t, StatusPending, receipt.Status)
	require.Equal(t, "Order Placed", receipt.Message)

	var orders []models.Order
	require.NoError(t, db.Find(&orders).Error)
	require.Len(t, orders, 1)
	require.Equal(t, user.ID, orders[0].UserID)
	require.Equal(t, StatusPending, orders[0].Status)
	require.Equal(t, 500.0, orders[0].Total)

	// The confirmation is queued, not sent inline: submit never touches
	// the mail channel, so a dead channel cannot fail the order.
	var msgs []models.OutboxMessage
	require.NoError(t, db.Find(&msgs).Error)
	require.Len(t, msgs, 1)
	require.Equal(t, "order_confirmation", msgs[0].Kind)
	require.Equal(t, user.Email, msgs[0].Recipient)
	require.Nil(t, msgs[0].SentAt)
}

func TestSubmitInvalidTokenPersistsNothing(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "Alice", "alice@example.com")
	product := seedProduct(t, db, "Mug", 250)

	req := placeOrderReq(t, svc, user, product, 1)
	req.Token = "not-a-token"

	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrUnauthorized)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSubmitTotalMismatchRejected(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "Alice", "alice@example.com")
	product := seedProduct(t, db, "Mug", 250)

	req := placeOrderReq(t, svc, user, product, 2)
	req.Total = 1 // client-side tampering

	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSubmitUsesCatalogPriceNotClientPrice(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "Alice", "alice@example.com")
	product := seedProduct(t, db, "Mug", 250)

	req := placeOrderReq(t, svc, user, product, 1)
	req.Items[0].Price = 1 // ignored, catalog price wins
	req.Total = 250

	receipt, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	order, err := svc.Repo.OrderByID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	require.Equal(t, 250.0, order.Total)
}

func TestListForUserScopedAndNewestFirst(t *testing.T) {
	svc, db := newOrderService(t)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	base := time.Now().Add(-time.Hour)
	for i, tc := range []struct {
		user *models.User
		age  time.Duration
	}{
		{alice, 30 * time.Minute},
		{alice, 10 * time.Minute},
		{bob, 20 * time.Minute},
	} {
		order := &models.Order{
			UserID:    tc.user.ID,
			Name:      tc.user.Name,
			Address:   "addr",
			Phone:     "phone",
			Items:     "[]",
			Total:     float64(i + 1),
			Status:    StatusPending,
			CreatedAt: base.Add(tc.age),
		}
		require.NoError(t, db.Create(order).Error)
	}

	tok, err := svc.Tokens.SignUser(alice.ID)
	require.NoError(t, err)

	orders, err := svc.ListForUser(context.Background(), tok)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		require.Equal(t, alice.ID, o.UserID)
	}
	require.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))
}

func TestListForUserInvalidToken(t *testing.T) {
	svc, _ := newOrderService(t)
	_, err := svc.ListForUser(context.Background(), "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestListAllJoinsOwners(t *testing.T) {
	svc, db := newOrderService(t)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	product := seedProduct(t, db, "Mug", 250)

	_, err := svc.Submit(context.Background(), placeOrderReq(t, svc, alice, product, 1))
	require.NoError(t, err)

	rows, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Alice", rows[0].UserName)
	require.Equal(t, "alice@example.com", rows[0].Email)
}

func TestUpdateStatusHappyPath(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "Alice", "alice@example.com")
	product := seedProduct(t, db, "Mug", 250)

	receipt, err := svc.Submit(context.Background(), placeOrderReq(t, svc, user, product, 1))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), receipt.OrderID, StatusShipped)
	require.NoError(t, err)
	require.Equal(t, StatusShipped, updated.Status)

	stored, err := svc.Repo.OrderByID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	require.Equal(t, StatusShipped, stored.Status)

	// One confirmation from submit plus one status notification.
	var msgs []models.OutboxMessage
	require.NoError(t, db.Order("created_at ASC").Find(&msgs).Error)
	require.Len(t, msgs, 2)
	require.Equal(t, "status_update", msgs[1].Kind)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, db := newOrderService(t)

	_, err := svc.UpdateStatus(context.Background(), 12345, StatusShipped)
	require.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.OutboxMessage{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateStatusOrphanedOwner(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "Alice", "alice@example.com")
	product := seedProduct(t, db, "Mug", 250)

	receipt, err := svc.Submit(context.Background(), placeOrderReq(t, svc, user, product, 1))
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	_, err = svc.UpdateStatus(context.Background(), receipt.OrderID, StatusShipped)
	require.ErrorIs(t, err, ErrNotFound)

	stored, err := svc.Repo.OrderByID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	require.Equal(t, StatusPending, stored.Status)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "Alice", "alice@example.com")
	product := seedProduct(t, db, "Mug", 250)

	receipt, err := svc.Submit(context.Background(), placeOrderReq(t, svc, user, product, 1))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), receipt.OrderID, StatusDelivered)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(context.Background(), receipt.OrderID, "Teleported")
	require.ErrorIs(t, err, ErrValidation)

	stored, err := svc.Repo.OrderByID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	require.Equal(t, StatusPending, stored.Status)
}

func TestStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusShipped, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tc := range cases {
		err := CheckTransition(tc.from, tc.to)
		if tc.ok {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			require.Error(t, err, "%s -> %s", tc.from, tc.to)
		}
	}
}
