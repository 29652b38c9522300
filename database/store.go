package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrAlreadyExists = errors.New("record already exists")
	ErrNotFound      = errors.New("record not found")
)

// Store wraps the gorm handle with the typed operations the bot needs.
// All writes are single-row inserts; listings come back oldest-first.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, telegramID int64, phone, fullName string) (*User, error) {
	existing, err := s.FindUser(ctx, telegramID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	user := &User{TelegramID: telegramID, Phone: phone, FullName: fullName}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Store) FindUser(ctx context.Context, telegramID int64) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *Store) CreateOrder(ctx context.Context, telegramID int64, product, quantity, address string) (*Order, error) {
	order := &Order{
		TelegramID: telegramID,
		Product:    product,
		Quantity:   quantity,
		Address:    address,
		Status:     StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (s *Store) OrdersFor(ctx context.Context, telegramID int64) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).Order("id").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Store) AllOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

func (s *Store) CreateInquiry(ctx context.Context, telegramID int64, topic, message string) (*Inquiry, error) {
	inquiry := &Inquiry{
		TelegramID: telegramID,
		Topic:      topic,
		Message:    message,
		Status:     StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return inquiry, nil
}

func (s *Store) InquiriesFor(ctx context.Context, telegramID int64) ([]Inquiry, error) {
	var inquiries []Inquiry
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).Order("id").Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return inquiries, nil
}

func (s *Store) AllInquiries(ctx context.Context) ([]Inquiry, error) {
	var inquiries []Inquiry
	if err := s.db.WithContext(ctx).Order("id").Find(&inquiries).Error; err != nil {
		return nil, fmt.Errorf("list all inquiries: %w", err)
	}
	return inquiries, nil
}

func (s *Store) FindInquiry(ctx context.Context, id uint) (*Inquiry, error) {
	var inquiry Inquiry
	err := s.db.WithContext(ctx).First(&inquiry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find inquiry: %w", err)
	}
	return &inquiry, nil
}
