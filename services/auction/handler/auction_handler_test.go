package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pH14/mini-auction/internal/auctionerrors"
	"github.com/pH14/mini-auction/internal/models"
	"github.com/pH14/mini-auction/services/auction/helpers"
)

func setupHandlerTest(t *testing.T) (*MockAuctionServiceInterface, *gin.Engine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions", h.CreateAuctionHandler)
	router.POST("/auctions/close", h.CloseAuctionHandler)
	router.GET("/auctions/state", h.GetAuctionStateHandler)
	router.GET("/auctions/bids", h.ListAuctionBidsHandler)
	router.POST("/bidders", h.RegisterBidderHandler)
	router.GET("/bidders/:name/bids", h.ListBidderBidsHandler)
	router.POST("/bids", h.SubmitBidHandler)
	return mockService, router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestCreateAuctionHandler(t *testing.T) {
	pen := models.Auction{Name: "pen", Description: "blue pen"}

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			requestBody: helpers.AuctionRequest{Name: "pen", Description: "blue pen"},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CreateAuction(gomock.Any(), pen).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "auction created successfully",
		},
		{
			name:        "duplicate_auction",
			requestBody: helpers.AuctionRequest{Name: "pen", Description: "blue pen"},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CreateAuction(gomock.Any(), pen).
					Return(fmt.Errorf("create: %w", auctionerrors.ErrAuctionExists))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction already exists",
		},
		{
			name:           "invalid_json",
			requestBody:    `{not json}`,
			mockSetup:      func(m *MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_description",
			requestBody:    map[string]any{"name": "pen"},
			mockSetup:      func(m *MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService, router := setupHandlerTest(t)
			tc.mockSetup(mockService)

			w, resp := doJSON(t, router, http.MethodPost, "/auctions", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])
		})
	}
}

func TestCloseAuctionHandler(t *testing.T) {
	tests := []struct {
		name           string
		mockErr        error
		expectedStatus int
	}{
		{name: "success", mockErr: nil, expectedStatus: http.StatusOK},
		{name: "not_found", mockErr: auctionerrors.ErrAuctionNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService, router := setupHandlerTest(t)
			mockService.EXPECT().
				CloseAuction(gomock.Any(), models.Auction{Name: "pen", Description: "blue pen"}).
				Return(tc.mockErr)

			w, _ := doJSON(t, router, http.MethodPost, "/auctions/close",
				helpers.AuctionRequest{Name: "pen", Description: "blue pen"})
			require.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestGetAuctionStateHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().
			GetAuctionState(gomock.Any(), models.Auction{Name: "pen", Description: "blue pen"}).
			Return(models.AuctionState{
				Status:        models.AuctionOpen,
				HighestBid:    decimal.RequireFromString("7.5"),
				WinningBidder: "B",
				BidCount:      2,
			}, nil)

		w, resp := doJSON(t, router, http.MethodGet, "/auctions/state?name=pen&description=blue+pen", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		require.Equal(t, "OPEN", data["status"])
		require.Equal(t, "7.5", data["highest_bid"])
		require.Equal(t, "B", data["winning_bidder"])
		require.Equal(t, float64(2), data["bid_count"])
	})

	t.Run("not_found", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().
			GetAuctionState(gomock.Any(), gomock.Any()).
			Return(models.AuctionState{}, fmt.Errorf("state: %w", auctionerrors.ErrAuctionNotFound))

		w, _ := doJSON(t, router, http.MethodGet, "/auctions/state?name=ghost&description=x", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing_name", func(t *testing.T) {
		_, router := setupHandlerTest(t)
		w, _ := doJSON(t, router, http.MethodGet, "/auctions/state", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubmitBidHandler(t *testing.T) {
	body := helpers.SubmitBidRequest{
		AuctionName:        "pen",
		AuctionDescription: "blue pen",
		BidderName:         "B",
		Amount:             decimal.RequireFromString("7.0"),
	}

	tests := []struct {
		name           string
		mockErr        error
		expectedStatus int
		expectedMsg    string
	}{
		{name: "accepted", mockErr: nil, expectedStatus: http.StatusCreated, expectedMsg: "bid accepted"},
		{name: "too_low", mockErr: auctionerrors.ErrBidTooLow, expectedStatus: http.StatusConflict, expectedMsg: "bid amount too low"},
		{name: "closed", mockErr: auctionerrors.ErrAuctionClosed, expectedStatus: http.StatusConflict, expectedMsg: "auction is closed"},
		{name: "already_winning", mockErr: auctionerrors.ErrAlreadyWinning, expectedStatus: http.StatusConflict, expectedMsg: "bidder already holds the winning bid"},
		{name: "auction_missing", mockErr: auctionerrors.ErrAuctionNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "auction not found"},
		{name: "bidder_missing", mockErr: auctionerrors.ErrBidderNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "bidder not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService, router := setupHandlerTest(t)
			mockService.EXPECT().SubmitBid(gomock.Any(), gomock.Any()).Return(tc.mockErr)

			w, resp := doJSON(t, router, http.MethodPost, "/bids", body)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])
		})
	}

	t.Run("missing_amount", func(t *testing.T) {
		_, router := setupHandlerTest(t)
		w, _ := doJSON(t, router, http.MethodPost, "/bids",
			map[string]any{"auction_name": "pen", "auction_description": "blue pen", "bidder_name": "B"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListAuctionBidsHandler(t *testing.T) {
	mockService, router := setupHandlerTest(t)
	pen := models.Auction{Name: "pen", Description: "blue pen"}
	mockService.EXPECT().
		ListBidsForAuction(gomock.Any(), pen).
		Return([]models.Bid{
			{Bidder: models.Bidder{Name: "A"}, Auction: pen, Amount: decimal.RequireFromString("5.0")},
			{Bidder: models.Bidder{Name: "B"}, Auction: pen, Amount: decimal.RequireFromString("7.0")},
		}, nil)

	w, resp := doJSON(t, router, http.MethodGet, "/auctions/bids?name=pen&description=blue+pen", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].([]any)
	require.Len(t, data, 2)
	first := data[0].(map[string]any)
	require.Equal(t, "A", first["bidder_name"])
	require.Equal(t, "5", first["amount"])
}

func TestListBidderBidsHandler(t *testing.T) {
	mockService, router := setupHandlerTest(t)
	mockService.EXPECT().
		ListBidsForBidder(gomock.Any(), models.Bidder{Name: "A"}).
		Return([]models.Bid{}, nil)

	w, resp := doJSON(t, router, http.MethodGet, "/bidders/A/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"])
}

func TestRegisterBidderHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().
			RegisterBidder(gomock.Any(), models.Bidder{Name: "Paul", DisplayName: "Paul"}).
			Return(nil)

		w, _ := doJSON(t, router, http.MethodPost, "/bidders",
			helpers.RegisterBidderRequest{Name: "Paul", DisplayName: "Paul"})
		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().
			RegisterBidder(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("register: %w", auctionerrors.ErrBidderExists))

		w, _ := doJSON(t, router, http.MethodPost, "/bidders",
			helpers.RegisterBidderRequest{Name: "Paul"})
		require.Equal(t, http.StatusConflict, w.Code)
	})
}
