package v1_test

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
	"github.com/smart-wallet/core/test"
)

func (suite *TestSuiteStandard) TestGetTransactions() {
	userID := uuid.NewString()
	suite.stub.Seed("transactions",
		map[string]any{"user_id": userID, "amount": 12.50, "type": "expense", "status": "posted", "date": "2026-03-10"},
		map[string]any{"user_id": userID, "amount": 3000, "type": "income", "status": "posted", "date": "2026-03-01"},
	)

	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/transactions?user_id="+userID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data []models.Transaction `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
}

func (suite *TestSuiteStandard) TestGetTransactionsFilterValidation() {
	tests := []struct {
		name  string
		query string
	}{
		{"bad from date", "from=yesterday"},
		{"bad until date", "until=2026-13-40"},
		{"bad min amount", "min_amount=lots"},
		{"bad max amount", "max_amount=1.2.3"},
		{"bad account id", "account_id=not-a-uuid"},
		{"unknown type", "type=refund"},
		{"unknown status", "status=archived"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/transactions?"+tt.query, nil)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateTransaction() {
	accountID := uuid.New()

	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/transactions", models.TransactionCreate{
		AccountID: accountID,
		Amount:    decimal.NewFromFloat(42.80),
		Type:      models.TypeExpense,
		Date:      types.DateOf(time.Now()),
		Merchant:  "Corner Store",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response struct {
		Data models.Transaction `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(accountID, response.Data.AccountID)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromFloat(42.80)))
}

func (suite *TestSuiteStandard) TestCreateTransactionNegativeAmount() {
	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/transactions", models.TransactionCreate{
		AccountID: uuid.New(),
		Amount:    decimal.NewFromInt(-5),
		Type:      models.TypeExpense,
		Date:      types.DateOf(time.Now()),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), "must not be negative")
}

func (suite *TestSuiteStandard) TestUpdateTransactionNegativeAmount() {
	id := uuid.NewString()
	suite.stub.Seed("transactions", map[string]any{"id": id, "amount": 10, "type": "expense", "status": "posted", "date": "2026-03-10"})

	r := test.Request(suite.T(), suite.engine, http.MethodPatch, "/v1/transactions/"+id, map[string]any{"amount": "-10"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	id := uuid.NewString()
	suite.stub.Seed("transactions", map[string]any{"id": id, "amount": 10, "type": "expense", "status": "pending", "date": "2026-03-10"})

	r := test.Request(suite.T(), suite.engine, http.MethodPatch, "/v1/transactions/"+id, map[string]any{"status": "void"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data models.Transaction `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.StatusVoid, response.Data.Status)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	id := uuid.NewString()
	suite.stub.Seed("transactions", map[string]any{"id": id, "amount": 10, "type": "expense", "status": "posted", "date": "2026-03-10"})

	r := test.Request(suite.T(), suite.engine, http.MethodDelete, "/v1/transactions/"+id, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	suite.Assert().Empty(suite.stub.Rows("transactions"))
}
