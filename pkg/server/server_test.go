package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/market-atlas/pkg/financials"
	"github.com/de-tools/market-atlas/pkg/models/api"
	"github.com/de-tools/market-atlas/pkg/models/domain"
	"github.com/de-tools/market-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMarket struct {
	mock.Mock
}

func (m *mockMarket) GetStatement(
	ctx context.Context,
	kind domain.StatementKind,
	symbol string,
	year int,
) (domain.StatementView, error) {
	args := m.Called(ctx, kind, symbol, year)
	return args.Get(0).(domain.StatementView), args.Error(1)
}

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) Suggest(ctx context.Context, query string, limit int) ([]domain.Symbol, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]domain.Symbol), args.Error(1)
}

func (m *mockLookup) Resolve(ctx context.Context, input string) (domain.CompanyProfile, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.CompanyProfile), args.Error(1)
}

func (m *mockLookup) Refresh(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockLookup) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

const sourcesFile = `
[default]
host = https://api.example.com/v1

[backup]
host = https://mirror.example.com
token = abc

[notes]
owner = research
`

func hasSessionToken(token string) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		s, ok := domain.SessionFromContext(ctx)
		return ok && s.Token == token
	})
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	sources, err := config.NewRegistryFromBytes([]byte(sourcesFile))
	require.NoError(t, err)

	marketSvc := new(mockMarket)
	lookupSvc := new(mockLookup)

	cfg := Config{
		Addr:            ":8080",
		ShutdownTimeout: 5 * time.Second,
		Dependencies: Dependencies{
			Market:  marketSvc,
			Lookup:  lookupSvc,
			Sources: sources,
			Logger:  logger,
		},
	}
	router := ConfigureRouter(cfg)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	revenue := 300.0
	view := domain.StatementView{
		Symbol:         "FPT",
		Kind:           domain.StatementIncome,
		Year:           2023,
		AvailableYears: []int{2023, 2022},
		KPIs: []domain.KPI{{
			Label:  "Revenue",
			Field:  "revenue",
			Mode:   domain.ModeAnnual,
			Value:  domain.Cell{Value: &revenue, Display: "$300.00"},
			Change: domain.Cell{Display: "+50.00%"},
		}},
	}

	tests := []struct {
		name           string
		path           string
		token          string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "Health",
			path: "/api/v1/health",
			setupMocks: func() {
				lookupSvc.On("Count", mock.Anything).Return(42, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expected:       api.Health{Status: "ok", Symbols: 42},
			parseResponse:  unmarshalResponse[api.Health](),
		},
		{
			name:           "ListSources",
			path:           "/api/v1/sources",
			setupMocks:     func() {},
			expectedStatus: http.StatusOK,
			expected:       []api.Source{{Name: "backup"}, {Name: "default"}},
			parseResponse:  unmarshalResponse[[]api.Source](),
		},
		{
			name: "SearchSymbols",
			path: "/api/v1/symbols/search?q=fpt",
			setupMocks: func() {
				lookupSvc.On("Suggest", mock.Anything, "fpt", 0).
					Return([]domain.Symbol{{Symbol: "FPT", Name: "FPT Corp"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expected:       []api.Symbol{{Symbol: "FPT", Name: "FPT Corp"}},
			parseResponse:  unmarshalResponse[[]api.Symbol](),
		},
		{
			name: "GetCompany",
			path: "/api/v1/companies/FPT",
			setupMocks: func() {
				lookupSvc.On("Resolve", mock.Anything, "FPT").
					Return(domain.CompanyProfile{Symbol: "FPT", Name: "FPT Corp", Exchange: "HOSE"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expected:       api.CompanyProfile{Symbol: "FPT", Name: "FPT Corp", Exchange: "HOSE"},
			parseResponse:  unmarshalResponse[api.CompanyProfile](),
		},
		{
			name:  "GetStatement_ForwardsSession",
			path:  "/api/v1/companies/FPT/financials/income?year=2023",
			token: "user-token",
			setupMocks: func() {
				marketSvc.On("GetStatement", hasSessionToken("user-token"), domain.StatementIncome, "FPT", 2023).
					Return(view, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expected: api.StatementView{
				Symbol:         "FPT",
				Statement:      "income",
				Year:           2023,
				AvailableYears: []int{2023, 2022},
				Rows:           []api.MetricRow{},
				KPIs: []api.KPI{{
					Label: "Revenue",
					Field: "revenue",
					Mode:  "annual",
					Value: api.Cell{Value: &revenue, Display: "$300.00"},
					YoY:   api.Cell{Display: "+50.00%"},
				}},
			},
			parseResponse: unmarshalResponse[api.StatementView](),
		},
		{
			name: "GetStatement_NoData",
			path: "/api/v1/companies/XYZ/financials/balance-sheet",
			setupMocks: func() {
				marketSvc.On("GetStatement", mock.Anything, domain.StatementBalanceSheet, "XYZ", 0).
					Return(domain.StatementView{}, financials.ErrNoData).Once()
			},
			expectedStatus: http.StatusNotFound,
			expected:       api.Error{Error: financials.ErrNoData.Error()},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name:           "GetStatement_UnknownStatement",
			path:           "/api/v1/companies/FPT/financials/equity",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.Error{Error: `unknown statement: "equity"`},
			parseResponse:  unmarshalResponse[api.Error](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req, err := http.NewRequest(http.MethodGet, testServer.URL+tc.path, nil)
			require.NoError(t, err)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}

	marketSvc.AssertExpectations(t)
	lookupSvc.AssertExpectations(t)
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	sources, err := config.NewRegistryFromBytes([]byte(sourcesFile))
	require.NoError(t, err)

	webAPI := NewWebAPI(zerolog.Nop(), Config{
		Addr: "127.0.0.1:0",
		Dependencies: Dependencies{
			Market:  new(mockMarket),
			Lookup:  new(mockLookup),
			Sources: sources,
		},
	})

	assert.Equal(t, defaultShutdownTimeout, webAPI.shutdownTimeout)
	assert.Equal(t, "127.0.0.1:0", webAPI.server.Addr)
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
