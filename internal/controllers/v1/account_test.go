package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/analytics"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
	"github.com/smart-wallet/core/test"
)

func (suite *TestSuiteStandard) TestGetAccounts() {
	userID := uuid.NewString()
	suite.stub.Seed("accounts",
		map[string]any{"user_id": userID, "name": "Checking", "type": "bank", "balance": 1200.50, "currency": "USD"},
		map[string]any{"user_id": userID, "name": "Wallet", "type": "cash", "balance": 80, "currency": "USD"},
	)

	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/accounts?user_id="+userID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data []models.Account `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
}

func (suite *TestSuiteStandard) TestGetAccountsInvalidQuery() {
	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/accounts?user_id=not-a-uuid", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/accounts?type=paypal", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetAccount() {
	id := uuid.NewString()
	suite.stub.Seed("accounts", map[string]any{"id": id, "name": "Checking", "type": "bank", "balance": 10, "currency": "EUR"})

	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/accounts/"+id, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data models.Account `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Checking", response.Data.Name)
	suite.Assert().True(response.Data.Balance.Equal(decimal.NewFromInt(10)))
}

func (suite *TestSuiteStandard) TestGetAccountNotFound() {
	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/accounts/"+uuid.NewString(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), "there is no")
}

func (suite *TestSuiteStandard) TestGetAccountInvalidID() {
	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/accounts/not-a-uuid", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateAccount() {
	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/accounts", models.AccountCreate{
		Name:    "Savings",
		Type:    models.AccountTypeBank,
		Balance: decimal.NewFromInt(5000),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response struct {
		Data models.Account `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Savings", response.Data.Name)
	suite.Assert().NotEqual(uuid.Nil, response.Data.ID)

	suite.Assert().Len(suite.stub.Rows("accounts"), 1)
}

func (suite *TestSuiteStandard) TestCreateAccountEmptyBody() {
	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateAccount() {
	id := uuid.NewString()
	suite.stub.Seed("accounts", map[string]any{"id": id, "name": "Checking", "type": "bank", "balance": 0, "currency": "USD"})

	r := test.Request(suite.T(), suite.engine, http.MethodPatch, "/v1/accounts/"+id, map[string]string{"name": "Everyday"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data models.Account `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Everyday", response.Data.Name)
}

func (suite *TestSuiteStandard) TestDeleteAccount() {
	id := uuid.NewString()
	suite.stub.Seed("accounts", map[string]any{"id": id, "name": "Checking", "type": "bank", "balance": 0, "currency": "USD"})

	r := test.Request(suite.T(), suite.engine, http.MethodDelete, "/v1/accounts/"+id, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.engine, http.MethodDelete, "/v1/accounts/"+id, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetAccountTrend() {
	id := uuid.NewString()
	today := types.DateOf(time.Now())

	suite.stub.Seed("accounts", map[string]any{"id": id, "name": "Checking", "type": "bank", "balance": 900, "currency": "USD"})
	suite.stub.Seed("transactions",
		map[string]any{"account_id": id, "amount": 100, "type": "expense", "status": "posted", "date": today.String()},
		map[string]any{"account_id": id, "amount": 500, "type": "income", "status": "posted", "date": today.AddDays(-2).String()},
	)

	from := today.AddDays(-6)
	r := test.Request(suite.T(), suite.engine, http.MethodGet,
		fmt.Sprintf("/v1/accounts/%s/trend?from=%s&until=%s", id, from, today), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data []analytics.TrendPoint `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)

	// One point per transaction plus the trailing point pinned to the
	// current balance.
	suite.Require().Len(response.Data, 3)
	suite.Assert().True(response.Data[0].Balance.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(response.Data[1].Balance.Equal(decimal.NewFromInt(900)))
	suite.Assert().True(response.Data[2].Balance.Equal(decimal.NewFromInt(900)))
}

func (suite *TestSuiteStandard) TestGetAccountTrendInvalidWindow() {
	id := uuid.NewString()
	suite.stub.Seed("accounts", map[string]any{"id": id, "name": "Checking", "type": "bank", "balance": 0, "currency": "USD"})

	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/accounts/"+id+"/trend?from=2026-05-10&until=2026-05-01", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
