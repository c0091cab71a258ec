package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// PhotoStorage is a mock photo storage
type PhotoStorage struct {
	mock.Mock
}

func (m *PhotoStorage) Store(ctx context.Context, name string, reader io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, name, reader, contentType)
	return args.String(0), args.Error(1)
}

func (m *PhotoStorage) Delete(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

// Gateway is a mock payment gateway
type Gateway struct {
	mock.Mock
}

func (m *Gateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	args := m.Called(ctx, amount, currency)
	return args.String(0), args.Error(1)
}

// EventPublisher is a mock event publisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, event interfaces.Event) error {
	return m.Called(ctx, event).Error(0)
}
