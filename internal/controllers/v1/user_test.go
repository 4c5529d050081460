package v1_test

import (
	"net/http"

	"github.com/google/uuid"

	v1 "github.com/smart-wallet/core/internal/controllers/v1"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/test"
)

func (suite *TestSuiteStandard) TestCreateUser() {
	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/users", models.UserProfileCreate{
		Email: "jamie@example.com",
		Name:  "Jamie",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response struct {
		Data v1.UserCreateResponse `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("jamie@example.com", response.Data.Profile.Email)
	suite.Assert().NotEqual(uuid.Nil, response.Data.Profile.ID)
	suite.Assert().Empty(response.Data.SeedError)

	// Eight expense and four income categories are seeded on signup.
	suite.Require().Len(response.Data.Categories, 12)
	for _, category := range response.Data.Categories {
		suite.Assert().NotNil(category.UserID)
	}

	suite.Assert().Len(suite.stub.Rows("categories"), 12)
}

func (suite *TestSuiteStandard) TestCreateUserDuplicateEmail() {
	suite.stub.Seed("user_profiles", map[string]any{"email": "jamie@example.com", "name": "Jamie"})

	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/users", models.UserProfileCreate{
		Email: "jamie@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), "already exists")
}

func (suite *TestSuiteStandard) TestCreateUserMissingEmail() {
	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/users", models.UserProfileCreate{Name: "Jamie"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
