package v1_test

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/analytics"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
	"github.com/smart-wallet/core/test"
)

func (suite *TestSuiteStandard) TestGetBudgets() {
	userID := uuid.NewString()
	suite.stub.Seed("budgets",
		map[string]any{"user_id": userID, "amount": 200, "spent": 0, "period": "monthly", "start_date": "2026-01-01", "currency": "USD"},
		map[string]any{"user_id": userID, "amount": 50, "spent": 0, "period": "weekly", "start_date": "2026-01-01", "currency": "USD"},
	)

	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/budgets?user_id="+userID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data []models.Budget `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
}

func (suite *TestSuiteStandard) TestCreateBudget() {
	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/budgets", models.BudgetCreate{
		Amount:    decimal.NewFromInt(300),
		Period:    models.PeriodMonthly,
		StartDate: types.DateOf(time.Now()),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response struct {
		Data models.Budget `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.PeriodMonthly, response.Data.Period)
}

func (suite *TestSuiteStandard) TestCreateBudgetInvalidPeriod() {
	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/budgets", map[string]any{
		"amount": "100",
		"period": "daily",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	id := uuid.NewString()
	suite.stub.Seed("budgets", map[string]any{"id": id, "amount": 200, "spent": 0, "period": "monthly", "start_date": "2026-01-01", "currency": "USD"})

	r := test.Request(suite.T(), suite.engine, http.MethodDelete, "/v1/budgets/"+id, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	suite.Assert().Empty(suite.stub.Rows("budgets"))
}

func (suite *TestSuiteStandard) TestGetBudgetProgress() {
	userID := uuid.NewString()
	categoryID := uuid.NewString()
	budgetID := uuid.NewString()
	today := types.DateOf(time.Now())

	suite.stub.Seed("budgets", map[string]any{
		"id": budgetID, "user_id": userID, "category_id": categoryID,
		"amount": 200, "spent": 0, "period": "monthly", "start_date": "2026-01-01", "currency": "USD",
	})
	suite.stub.Seed("transactions",
		map[string]any{"user_id": userID, "category_id": categoryID, "amount": 100, "type": "expense", "status": "posted", "date": today.String()},
		map[string]any{"user_id": userID, "category_id": categoryID, "amount": 50, "type": "expense", "status": "posted", "date": today.String()},
		// Spending in other categories does not count against the budget.
		map[string]any{"user_id": userID, "amount": 999, "type": "expense", "status": "posted", "date": today.String()},
		// Neither does spending scheduled for a later day.
		map[string]any{"user_id": userID, "category_id": categoryID, "amount": 50, "type": "expense", "status": "posted", "date": today.AddDays(1).String()},
	)

	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/budgets/"+budgetID+"/progress", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data analytics.Progress `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.Spent.Equal(decimal.NewFromInt(150)), "spent is %s", response.Data.Spent)
	suite.Assert().True(response.Data.Remaining.Equal(decimal.NewFromInt(50)))
	suite.Assert().True(response.Data.Percentage.Equal(decimal.NewFromInt(75)))
	suite.Assert().False(response.Data.IsOverBudget)
}

func (suite *TestSuiteStandard) TestGetBudgetProgressNotFound() {
	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/budgets/"+uuid.NewString()+"/progress", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
