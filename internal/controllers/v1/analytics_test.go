package v1_test

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/analytics"
	"github.com/smart-wallet/core/internal/types"
	"github.com/smart-wallet/core/test"
)

func (suite *TestSuiteStandard) TestGetSummary() {
	userID := uuid.NewString()
	categoryID := uuid.NewString()
	today := types.DateOf(time.Now())

	suite.stub.Seed("categories", map[string]any{"id": categoryID, "user_id": userID, "name": "Dining", "type": "expense"})
	suite.stub.Seed("accounts", map[string]any{"user_id": userID, "name": "Checking", "type": "bank", "balance": 2700, "currency": "USD"})
	suite.stub.Seed("transactions",
		map[string]any{"user_id": userID, "category_id": categoryID, "amount": 300, "type": "expense", "status": "posted", "date": today.String()},
		map[string]any{"user_id": userID, "amount": 3000, "type": "income", "status": "posted", "date": today.AddDays(-1).String()},
		// Void entries never count.
		map[string]any{"user_id": userID, "amount": 5000, "type": "expense", "status": "void", "date": today.String()},
	)

	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/analytics/summary?user_id="+userID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data analytics.Summary `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.Totals.Income.Equal(decimal.NewFromInt(3000)), "income is %s", response.Data.Totals.Income)
	suite.Assert().True(response.Data.Totals.Expense.Equal(decimal.NewFromInt(300)))
	suite.Assert().True(response.Data.Totals.Net.Equal(decimal.NewFromInt(2700)))
	suite.Assert().True(response.Data.SavingRate.Equal(decimal.NewFromInt(90)))
	suite.Assert().True(response.Data.TotalBalance.Equal(decimal.NewFromInt(2700)))

	suite.Require().Len(response.Data.Breakdown, 1)
	suite.Assert().Equal("Dining", response.Data.Breakdown[0].Name)
	suite.Assert().Len(response.Data.Daily, 30)
}

func (suite *TestSuiteStandard) TestGetSummaryValidation() {
	tests := []string{
		"days=400",
		"days=-1",
		"months=100",
		"user_id=not-a-uuid",
	}

	for _, query := range tests {
		suite.Run(query, func() {
			r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/analytics/summary?"+query, nil)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetMonthlyTrend() {
	userID := uuid.NewString()
	today := types.DateOf(time.Now())

	suite.stub.Seed("transactions",
		map[string]any{"user_id": userID, "amount": 100, "type": "expense", "status": "posted", "date": today.String()},
	)

	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/analytics/monthly?user_id="+userID+"&months=6", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data []analytics.MonthPoint `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 6)
	suite.Assert().True(response.Data[5].Expense.Equal(decimal.NewFromInt(100)))
	suite.Assert().True(response.Data[0].Expense.IsZero())
}
