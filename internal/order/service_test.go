package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dmarinho/orderdesk/internal/order"
)

func TestService_List_StatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := order.NewMockRepository(ctrl)
	svc := order.NewService(repo)

	stored := []*order.Order{
		{DisplayID: "ORD-1", RawStatus: "completed"},
		{DisplayID: "ORD-2", RawStatus: "CANCELLED_BY_USER"},
		{DisplayID: "ORD-3", RawStatus: "Done"},
		{DisplayID: "ORD-4", RawStatus: ""},
	}

	repo.EXPECT().
		ListOrders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter order.ListFilter) ([]*order.Order, error) {
			// The normalized-status constraint never reaches the store.
			assert.Nil(t, filter.Status)
			return stored, nil
		})

	completed := order.StatusCompleted

	got, err := svc.List(context.Background(), order.ListFilter{Status: &completed})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ORD-1", got[0].DisplayID)
	assert.Equal(t, "ORD-3", got[1].DisplayID)
}

func TestService_RecordPayment(t *testing.T) {
	type testCase struct {
		name      string
		amount    int64
		setupMock func(m *order.MockRepository)
		wantErr   bool
	}

	id := uuid.New()

	tests := []testCase{
		{
			name:   "Success",
			amount: 50000,
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().
					AddPayment(gomock.Any(), id, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, p *order.Payment) error {
						assert.Equal(t, int64(50000), p.Amount)
						p.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:      "ZeroAmount",
			amount:    0,
			setupMock: func(m *order.MockRepository) {},
			wantErr:   true,
		},
		{
			name:      "NegativeAmount",
			amount:    -100,
			setupMock: func(m *order.MockRepository) {},
			wantErr:   true,
		},
		{
			name:   "RepoError",
			amount: 100,
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().
					AddPayment(gomock.Any(), id, gomock.Any()).
					Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := order.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := order.NewService(repo)

			p, err := svc.RecordPayment(context.Background(), id, tt.amount, "upi", "manager-1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, p.ID)
		})
	}
}

func TestService_IngestBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := order.NewMockRepository(ctrl)
	itx := order.NewMockIngestTx(ctrl)
	svc := order.NewService(repo)

	existingID := uuid.New()

	orders := []*order.Order{
		{SourceID: "doc-1", DisplayID: "ORD-1"},
		{SourceID: "doc-2", DisplayID: "ORD-2"},
		{SourceID: "doc-3", DisplayID: "ORD-3"},
	}

	repo.EXPECT().BeginIngest(gomock.Any()).Return(itx, nil)
	itx.EXPECT().
		FindExisting(gomock.Any(), []string{"doc-1", "doc-2", "doc-3"}).
		Return(map[string]uuid.UUID{"doc-2": existingID}, nil)
	itx.EXPECT().UpsertOrders(gomock.Any(), orders).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.IngestBatch(context.Background(), orders)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Updated)
	// The already-mirrored document keeps its local id.
	assert.Equal(t, existingID, orders[1].ID)
}

func TestService_IngestBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := order.NewMockRepository(ctrl)
	svc := order.NewService(repo)

	result, err := svc.IngestBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
}

func TestService_IngestBatch_MissingSourceID(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := order.NewMockRepository(ctrl)
	svc := order.NewService(repo)

	_, err := svc.IngestBatch(context.Background(), []*order.Order{{DisplayID: "ORD-1"}})
	require.Error(t, err)
}

func TestService_IngestBatch_RollbackOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := order.NewMockRepository(ctrl)
	itx := order.NewMockIngestTx(ctrl)
	svc := order.NewService(repo)

	repo.EXPECT().BeginIngest(gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindExisting(gomock.Any(), gomock.Any()).Return(nil, nil)
	itx.EXPECT().UpsertOrders(gomock.Any(), gomock.Any()).Return(errors.New("constraint violation"))
	itx.EXPECT().Rollback().Return(nil)

	_, err := svc.IngestBatch(context.Background(), []*order.Order{{SourceID: "doc-1"}})
	require.Error(t, err)
}
