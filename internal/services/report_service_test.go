package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wmsapi/internal/report"
)

type mockAggregator struct {
	mock.Mock
}

func (m *mockAggregator) AggregateByCarrier(ctx context.Context, filter report.Filter) ([]report.AggregatedRow, error) {
	args := m.Called(ctx, filter)
	if rows := args.Get(0); rows != nil {
		return rows.([]report.AggregatedRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAggregator) AggregateByProduct(ctx context.Context, filter report.Filter) ([]report.AggregatedRow, error) {
	args := m.Called(ctx, filter)
	if rows := args.Get(0); rows != nil {
		return rows.([]report.AggregatedRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func sampleRows() []report.AggregatedRow {
	return []report.AggregatedRow{
		{Carrier: "Delhivery", Product: "Widget", Quantity: decimal.NewFromInt(3)},
		{Carrier: "Ekart", Product: "Gadget", Quantity: decimal.NewFromInt(2)},
		{Carrier: "Ekart", Product: "Widget", Quantity: decimal.NewFromInt(5)},
	}
}

func TestReportService_PickList(t *testing.T) {
	store := new(mockAggregator)
	store.On("AggregateByCarrier", mock.Anything, mock.Anything).Return(sampleRows(), nil)

	svc := NewReportService(store, nil, nil)

	groups, err := svc.PickList(context.Background(), report.Filter{})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Delhivery", groups[0].Carrier)
	assert.Equal(t, "Ekart", groups[1].Carrier)
	assert.Len(t, groups[1].Products, 2)
	store.AssertExpectations(t)
}

func TestReportService_PickList_EmptyResultIsNotAnError(t *testing.T) {
	store := new(mockAggregator)
	store.On("AggregateByCarrier", mock.Anything, mock.Anything).Return([]report.AggregatedRow{}, nil)

	svc := NewReportService(store, nil, nil)

	groups, err := svc.PickList(context.Background(), report.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestReportService_PickList_InvalidFilter(t *testing.T) {
	store := new(mockAggregator)
	svc := NewReportService(store, nil, nil)

	_, err := svc.PickList(context.Background(), report.Filter{DateFrom: "15-01-2024"})

	var ferr *report.FilterError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "date_from", ferr.Field)
	store.AssertNotCalled(t, "AggregateByCarrier", mock.Anything, mock.Anything)
}

func TestReportService_PickList_StoreFailureIsMasked(t *testing.T) {
	store := new(mockAggregator)
	store.On("AggregateByCarrier", mock.Anything, mock.Anything).
		Return(nil, errors.New(`connect to "db.internal:5432" refused`))

	svc := NewReportService(store, nil, nil)

	_, err := svc.PickList(context.Background(), report.Filter{})
	require.ErrorIs(t, err, ErrReportGeneration)
	assert.NotContains(t, err.Error(), "db.internal")
}

func TestReportService_PickListWorkbook(t *testing.T) {
	store := new(mockAggregator)
	store.On("AggregateByProduct", mock.Anything, mock.Anything).Return(sampleRows(), nil)

	svc := NewReportService(store, nil, nil)

	file, err := svc.PickListWorkbook(context.Background(), report.Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, file.Bytes)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)
	assert.Contains(t, file.Filename, "picklist_")
	store.AssertExpectations(t)
}

func TestReportService_PickListWorkbook_StoreFailureIsMasked(t *testing.T) {
	store := new(mockAggregator)
	store.On("AggregateByProduct", mock.Anything, mock.Anything).
		Return(nil, errors.New("relation does not exist"))

	svc := NewReportService(store, nil, nil)

	_, err := svc.PickListWorkbook(context.Background(), report.Filter{})
	require.ErrorIs(t, err, ErrReportGeneration)
}

func TestReportService_PickListWorkbook_FilterPassedThrough(t *testing.T) {
	filter := report.Filter{CourierName: "Ekart", DateTo: "2024-01-15"}

	store := new(mockAggregator)
	store.On("AggregateByProduct", mock.Anything, filter).Return([]report.AggregatedRow{}, nil)

	svc := NewReportService(store, nil, nil)

	_, err := svc.PickListWorkbook(context.Background(), filter)
	require.NoError(t, err)
	store.AssertExpectations(t)
}
