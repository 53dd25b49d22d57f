package check

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
	"github.com/vireolabs/ticketcheck/internal/testutil"
)

func newInventoryStrategy(api CatalogAPI, notifier Notifier, excluded map[int64]struct{}) Strategy {
	return NewInventoryNonNegativeStrategy(api, notifier, "https://pos.example.com", excluded, zerolog.Nop())
}

func TestInventory_Supports(t *testing.T) {
	s := newInventoryStrategy(&testutil.MockCatalogAPI{}, &testutil.RecordingNotifier{}, nil)

	assert.True(t, s.Supports(testutil.SaleTicket(1, 3)))

	ret := testutil.SaleTicket(1, 3)
	ret.Type = transaction.TypeReturn
	assert.True(t, s.Supports(ret))

	noID := testutil.SaleTicket(1, 3)
	noID.ID = nil
	assert.False(t, s.Supports(noID))

	noLoc := testutil.SaleTicket(1, 3)
	noLoc.SourceLocationID = nil
	assert.False(t, s.Supports(noLoc))

	other := testutil.SaleTicket(1, 3)
	other.Type = "gift-card"
	assert.False(t, s.Supports(other))
}

func TestInventory_NegativeQtyAtTransactionLocationFails(t *testing.T) {
	notifier := &testutil.RecordingNotifier{}
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return []catalog.Line{testutil.ItemLine(1, 500), testutil.TaxLine(2)}, nil
		},
		GetInventoryValuesFunc: func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
			return []catalog.InventoryValue{
				testutil.InventoryRow(500, testutil.Int64Ptr(3), "-1"),
			}, nil
		},
		GetItemFunc: func(ctx context.Context, itemID int64) (*catalog.Item, error) {
			return &catalog.Item{ID: itemID, Description: "Blue Widget"}, nil
		},
	}
	s := newInventoryStrategy(api, notifier, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.NoError(t, err)
	assert.False(t, passed)

	require.Len(t, notifier.Messages, 1)
	assert.Contains(t, notifier.Messages[0], "Blue Widget")
	assert.Contains(t, notifier.Messages[0], "https://pos.example.com/items/500")
}

func TestInventory_NegativeQtyAtOtherLocationIsIgnored(t *testing.T) {
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return []catalog.Line{testutil.ItemLine(1, 500)}, nil
		},
		GetInventoryValuesFunc: func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
			return []catalog.InventoryValue{
				testutil.InventoryRow(500, testutil.Int64Ptr(9), "-1"),
				testutil.InventoryRow(500, testutil.Int64Ptr(3), "1"),
			}, nil
		},
	}
	s := newInventoryStrategy(api, &testutil.RecordingNotifier{}, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.NoError(t, err)
	assert.True(t, passed)
}

func TestInventory_RowWithoutLocationIsAlwaysRelevant(t *testing.T) {
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return []catalog.Line{testutil.ItemLine(1, 500)}, nil
		},
		GetInventoryValuesFunc: func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
			return []catalog.InventoryValue{
				testutil.InventoryRow(500, nil, "-2"),
			}, nil
		},
	}
	s := newInventoryStrategy(api, &testutil.RecordingNotifier{}, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestInventory_OnHandFallbackWhenAvailableMissing(t *testing.T) {
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return []catalog.Line{testutil.ItemLine(1, 500)}, nil
		},
		GetInventoryValuesFunc: func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
			return []catalog.InventoryValue{
				{ItemID: 500, LocationID: testutil.Int64Ptr(3), QtyOnHand: testutil.DecPtr("-4")},
			}, nil
		},
	}
	s := newInventoryStrategy(api, &testutil.RecordingNotifier{}, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestInventory_NoQuantitiesMeansZeroWhichPasses(t *testing.T) {
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return []catalog.Line{testutil.ItemLine(1, 500)}, nil
		},
		GetInventoryValuesFunc: func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
			return []catalog.InventoryValue{
				{ItemID: 500, LocationID: testutil.Int64Ptr(3)},
			}, nil
		},
	}
	s := newInventoryStrategy(api, &testutil.RecordingNotifier{}, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.NoError(t, err)
	assert.True(t, passed)
}

func TestInventory_NoMerchandiseLinesPassesTrivially(t *testing.T) {
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return []catalog.Line{testutil.TaxLine(1)}, nil
		},
	}
	s := newInventoryStrategy(api, &testutil.RecordingNotifier{}, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.NoError(t, err)
	assert.True(t, passed)
}

func TestInventory_ExcludedItemsAreNeverChecked(t *testing.T) {
	inventoryCalls := 0
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return []catalog.Line{testutil.ItemLine(1, 500)}, nil
		},
		GetInventoryValuesFunc: func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
			inventoryCalls++
			return []catalog.InventoryValue{testutil.InventoryRow(500, testutil.Int64Ptr(3), "-1")}, nil
		},
	}
	s := newInventoryStrategy(api, &testutil.RecordingNotifier{}, map[int64]struct{}{500: {}})

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.NoError(t, err)
	assert.True(t, passed)
	assert.Zero(t, inventoryCalls)
}

func TestInventory_LineFetchFailureFailsCheck(t *testing.T) {
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return nil, errors.New("api down")
		},
	}
	s := newInventoryStrategy(api, &testutil.RecordingNotifier{}, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.Error(t, err)
	assert.False(t, passed)
}

func TestInventory_InventoryFetchFailureFailsCheck(t *testing.T) {
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return []catalog.Line{testutil.ItemLine(1, 500)}, nil
		},
		GetInventoryValuesFunc: func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
			return nil, errors.New("api down")
		},
	}
	s := newInventoryStrategy(api, &testutil.RecordingNotifier{}, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.Error(t, err)
	assert.False(t, passed)
}

func TestInventory_ItemFetchFailureStillNotifiesWithFallback(t *testing.T) {
	notifier := &testutil.RecordingNotifier{}
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			return []catalog.Line{testutil.ItemLine(1, 500)}, nil
		},
		GetInventoryValuesFunc: func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
			return []catalog.InventoryValue{testutil.InventoryRow(500, testutil.Int64Ptr(3), "-1")}, nil
		},
		GetItemFunc: func(ctx context.Context, itemID int64) (*catalog.Item, error) {
			return nil, errors.New("api down")
		},
	}
	s := newInventoryStrategy(api, notifier, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.NoError(t, err)
	assert.False(t, passed)
	require.Len(t, notifier.Messages, 1)
	assert.Contains(t, notifier.Messages[0], "item 500")
}

func TestInventory_OneMessagePerViolatedItem(t *testing.T) {
	notifier := &testutil.RecordingNotifier{}
	api := &testutil.MockCatalogAPI{
		GetLineItemsFunc: func(ctx context.Context, ticketID int64) ([]catalog.Line, error) {
			// Item 500 appears twice; distinct ids only are checked.
			return []catalog.Line{
				testutil.ItemLine(1, 500),
				testutil.ItemLine(2, 500),
				testutil.ItemLine(3, 600),
			}, nil
		},
		GetInventoryValuesFunc: func(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error) {
			return []catalog.InventoryValue{testutil.InventoryRow(itemID, testutil.Int64Ptr(3), "-1")}, nil
		},
	}
	s := newInventoryStrategy(api, notifier, nil)

	passed, err := s.Evaluate(context.Background(), testutil.SaleTicket(1001, 3))
	require.NoError(t, err)
	assert.False(t, passed)
	assert.Len(t, notifier.Messages, 2)
}
