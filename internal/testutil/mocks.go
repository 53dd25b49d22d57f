package testutil

import (
	"context"
	"sync"

	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/client/catalogref"
)

// --- Catalog API Mock ---

// MockCatalogAPI is a mock implementation of the catalog client surface used
// by the checks and the enricher.
type MockCatalogAPI struct {
	GetLineItemsFunc       func(ctx context.Context, ticketID int64) ([]catalog.Line, error)
	GetInventoryValuesFunc func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error)
	GetItemFunc            func(ctx context.Context, itemID int64) (*catalog.Item, error)
	UpdateItemFunc         func(ctx context.Context, itemID int64, fields map[string]any) (*catalog.Item, error)
	UpdateItemImageFunc    func(ctx context.Context, itemID int64, imageURL string) error
}

func (m *MockCatalogAPI) GetLineItems(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
	if m.GetLineItemsFunc != nil {
		return m.GetLineItemsFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *MockCatalogAPI) GetInventoryValues(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
	if m.GetInventoryValuesFunc != nil {
		return m.GetInventoryValuesFunc(ctx, itemID)
	}
	return nil, nil
}

func (m *MockCatalogAPI) GetItem(ctx context.Context, itemID int64) (*catalog.Item, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, itemID)
	}
	return &catalog.Item{ID: itemID}, nil
}

func (m *MockCatalogAPI) UpdateItem(ctx context.Context, itemID int64, fields map[string]any) (*catalog.Item, error) {
	if m.UpdateItemFunc != nil {
		return m.UpdateItemFunc(ctx, itemID, fields)
	}
	return &catalog.Item{ID: itemID}, nil
}

func (m *MockCatalogAPI) UpdateItemImage(ctx context.Context, itemID int64, imageURL string) error {
	if m.UpdateItemImageFunc != nil {
		return m.UpdateItemImageFunc(ctx, itemID, imageURL)
	}
	return nil
}

// --- Reference API Mock ---

// MockReferenceAPI is a mock implementation of the catalog-reference lookup.
type MockReferenceAPI struct {
	GetItemFunc func(ctx context.Context, codeType, number string) (*catalogref.RefItem, error)
}

func (m *MockReferenceAPI) GetItem(ctx context.Context, codeType, number string) (*catalogref.RefItem, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, codeType, number)
	}
	return &catalogref.RefItem{}, nil
}

// --- Notifier Mock ---

// RecordingNotifier captures notification messages for assertions.
type RecordingNotifier struct {
	mu       sync.Mutex
	Messages []string
	Sources  []string
}

func (n *RecordingNotifier) Notify(_ context.Context, source, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sources = append(n.Sources, source)
	n.Messages = append(n.Messages, text)
}

// --- Token Source Mock ---

// MockTokenSource returns a canned token or error.
type MockTokenSource struct {
	TokenValue string
	Err        error
	Calls      int
}

func (m *MockTokenSource) Token(ctx context.Context) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.TokenValue, nil
}
