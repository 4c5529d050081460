package v1_test

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/test"
)

func (suite *TestSuiteStandard) TestGetCategories() {
	userID := uuid.NewString()
	suite.stub.Seed("categories",
		map[string]any{"user_id": userID, "name": "Dining", "type": "expense", "icon": "🍽️"},
		map[string]any{"user_id": userID, "name": "Salary", "type": "income", "icon": "💰"},
	)

	r := test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/categories?user_id="+userID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data []models.Category `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
}

func (suite *TestSuiteStandard) TestCreateCategory() {
	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/categories", models.CategoryCreate{
		Name: "Pets",
		Type: models.TypeExpense,
		Icon: "🐕",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response struct {
		Data models.Category `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Pets", response.Data.Name)
}

func (suite *TestSuiteStandard) TestUpdateCategory() {
	id := uuid.NewString()
	suite.stub.Seed("categories", map[string]any{"id": id, "name": "Dining", "type": "expense"})

	r := test.Request(suite.T(), suite.engine, http.MethodPatch, "/v1/categories/"+id, map[string]string{"name": "Eating Out"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data models.Category `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Eating Out", response.Data.Name)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	id := uuid.NewString()
	suite.stub.Seed("categories", map[string]any{"id": id, "name": "Dining", "type": "expense"})

	r := test.Request(suite.T(), suite.engine, http.MethodDelete, "/v1/categories/"+id, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.engine, http.MethodGet, "/v1/categories/"+id, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
