package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

func TestService_Search(t *testing.T) {
	type args struct {
		params transaction.SearchParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantPage  *transaction.Page
		wantErr   error
	}

	tests := []testCase{
		{
			name: "ThirdPage",
			args: args{params: transaction.SearchParams{Page: 3, PerPage: 10}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Count(gomock.Any(), transaction.Filter{}).Return(25, nil)
				m.EXPECT().List(gomock.Any(), transaction.Filter{}, 20, 10).
					Return([]*transaction.Transaction{{ID: 21}, {ID: 22}, {ID: 23}, {ID: 24}, {ID: 25}}, nil)
			},
			wantPage: &transaction.Page{
				Transactions: []*transaction.Transaction{{ID: 21}, {ID: 22}, {ID: 23}, {ID: 24}, {ID: 25}},
				CurrentPage:  3,
				PerPage:      10,
				TotalRecords: 25,
				TotalPages:   3,
			},
		},
		{
			name: "SearchAndMonth",
			args: args{params: transaction.SearchParams{Search: "shirt", Month: new(3), Page: 1, PerPage: 5}},
			setupMock: func(m *transaction.MockRepository) {
				filter := transaction.Filter{Search: "shirt", Month: 3}
				m.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
				m.EXPECT().List(gomock.Any(), filter, 0, 5).Return([]*transaction.Transaction{{ID: 7}}, nil)
			},
			wantPage: &transaction.Page{
				Transactions: []*transaction.Transaction{{ID: 7}},
				CurrentPage:  1,
				PerPage:      5,
				TotalRecords: 1,
				TotalPages:   1,
			},
		},
		{
			name: "Empty",
			args: args{params: transaction.SearchParams{Search: "nothing", Page: 1, PerPage: 10}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				m.EXPECT().List(gomock.Any(), gomock.Any(), 0, 10).Return(nil, nil)
			},
			wantPage: &transaction.Page{CurrentPage: 1, PerPage: 10},
		},
		{
			name:    "MonthTooLow",
			args:    args{params: transaction.SearchParams{Month: new(0), Page: 1, PerPage: 10}},
			wantErr: transaction.ErrInvalidMonth,
		},
		{
			name:    "MonthTooHigh",
			args:    args{params: transaction.SearchParams{Month: new(13), Page: 1, PerPage: 10}},
			wantErr: transaction.ErrInvalidMonth,
		},
		{
			name:    "ZeroPerPage",
			args:    args{params: transaction.SearchParams{Page: 1, PerPage: 0}},
			wantErr: transaction.ErrInvalidPage,
		},
		{
			name:    "ZeroPage",
			args:    args{params: transaction.SearchParams{Page: 0, PerPage: 10}},
			wantErr: transaction.ErrInvalidPage,
		},
		{
			name: "CountError",
			args: args{params: transaction.SearchParams{Page: 1, PerPage: 10}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db error"))
			},
			wantErr: errAny,
		},
		{
			name: "ListError",
			args: args{params: transaction.SearchParams{Page: 1, PerPage: 10}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)
				m.EXPECT().List(gomock.Any(), gomock.Any(), 0, 10).Return(nil, errors.New("db error"))
			},
			wantErr: errAny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Search(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if tt.wantErr != errAny {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, got)
		})
	}
}

// errAny marks cases that only expect some error.
var errAny = errors.New("any error")

func TestService_MonthValidation(t *testing.T) {
	months := []int{-1, 0, 13, 100}

	for _, month := range months {
		ctrl := gomock.NewController(t)
		svc := transaction.NewService(transaction.NewMockRepository(ctrl))
		ctx := context.Background()

		_, err := svc.Statistics(ctx, month)
		assert.ErrorIs(t, err, transaction.ErrInvalidMonth, "statistics month=%d", month)

		_, err = svc.BarChart(ctx, month)
		assert.ErrorIs(t, err, transaction.ErrInvalidMonth, "bar chart month=%d", month)

		_, err = svc.PieChart(ctx, month)
		assert.ErrorIs(t, err, transaction.ErrInvalidMonth, "pie chart month=%d", month)

		_, err = svc.Combined(ctx, month)
		assert.ErrorIs(t, err, transaction.ErrInvalidMonth, "combined month=%d", month)

		ctrl.Finish()
	}
}

func TestService_Statistics(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *transaction.MockRepository)
		want      *transaction.Statistics
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "EmptyMonth",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Totals(gomock.Any(), 3).Return(transaction.Totals{}, nil)
			},
			want: &transaction.Statistics{Month: 3},
		},
		{
			name: "RoundsSaleAmount",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Totals(gomock.Any(), 3).
					Return(transaction.Totals{SaleAmount: 0.1 + 0.2, SoldItems: 2, NotSoldItems: 5}, nil)
			},
			want: &transaction.Statistics{
				Month:  3,
				Totals: transaction.Totals{SaleAmount: 0.3, SoldItems: 2, NotSoldItems: 5},
			},
		},
		{
			name: "RepoError",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Totals(gomock.Any(), 3).Return(transaction.Totals{}, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := transaction.NewService(repo).Statistics(context.Background(), 3)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_BarChart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Prices(gomock.Any(), 3).Return([]float64{150, 150, 99.5, 1200}, nil)

	got, err := transaction.NewService(repo).BarChart(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 10)

	assert.Equal(t, transaction.PriceBucket{Range: "0 - 100", Count: 1}, got[0])
	assert.Equal(t, transaction.PriceBucket{Range: "101 - 200", Count: 2}, got[1])
	assert.Equal(t, transaction.PriceBucket{Range: "901 - Above 901", Count: 1}, got[9])
}

func TestService_BarChart_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Prices(gomock.Any(), 7).Return(nil, errors.New("db error"))

	got, err := transaction.NewService(repo).BarChart(context.Background(), 7)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestService_PieChart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	counts := []transaction.CategoryCount{{Category: "electronics", Count: 4}, {Category: "jewelery", Count: 1}}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().CategoryCounts(gomock.Any(), 11).Return(counts, nil)

	got, err := transaction.NewService(repo).PieChart(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, counts, got)
}

func TestService_Combined(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	counts := []transaction.CategoryCount{{Category: "A", Count: 2}}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Totals(gomock.Any(), 3).Return(transaction.Totals{SaleAmount: 150, SoldItems: 1, NotSoldItems: 1}, nil)
	repo.EXPECT().CategoryCounts(gomock.Any(), 3).Return(counts, nil)

	got, err := transaction.NewService(repo).Combined(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, &transaction.Statistics{
		Month:  3,
		Totals: transaction.Totals{SaleAmount: 150, SoldItems: 1, NotSoldItems: 1},
	}, got.Statistics)
	assert.Equal(t, counts, got.Categories)
}

func TestService_Combined_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Totals(gomock.Any(), 3).Return(transaction.Totals{}, nil)
	repo.EXPECT().CategoryCounts(gomock.Any(), 3).Return(nil, errors.New("db error"))

	got, err := transaction.NewService(repo).Combined(context.Background(), 3)
	assert.Error(t, err)
	assert.Nil(t, got)
}
