package v1_test

import (
	"bytes"
	"mime/multipart"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/ai"
	"github.com/smart-wallet/core/internal/storage"
	"github.com/smart-wallet/core/test"
)

func (suite *TestSuiteStandard) TestParseReceipt() {
	suite.stub.AIAnswer = `{"amount": 23.50, "date": "2026-03-10", "merchant": "Corner Store", "category": "Dining"}`

	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/receipts/parse",
		map[string]string{"image_url": "https://files.example/receipt.jpg"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data ai.Receipt `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.Structured())
	suite.Require().NotNil(response.Data.Amount)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromFloat(23.50)))
	suite.Assert().Equal("Corner Store", response.Data.Merchant)
}

func (suite *TestSuiteStandard) TestParseReceiptUnstructuredAnswer() {
	suite.stub.AIAnswer = `Sorry, I cannot read this image.`

	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/receipts/parse",
		map[string]string{"image_url": "https://files.example/receipt.jpg"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data ai.Receipt `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().False(response.Data.Structured())
	suite.Assert().Equal("Sorry, I cannot read this image.", response.Data.Raw)
}

func (suite *TestSuiteStandard) TestParseReceiptMissingImage() {
	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/receipts/parse", map[string]string{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpload() {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "receipt.jpg")
	suite.Require().Nil(err)
	_, err = part.Write([]byte("not really a jpeg"))
	suite.Require().Nil(err)
	suite.Require().Nil(mw.Close())

	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/uploads", body,
		map[string]string{"Content-Type": mw.FormDataContentType()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response struct {
		Data storage.Object `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Regexp(`^receipts/\d+-receipt\.jpg$`, response.Data.Key)
	suite.Assert().Contains(response.Data.URL, response.Data.Key)
}

func (suite *TestSuiteStandard) TestUploadMissingFile() {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	suite.Require().Nil(mw.Close())

	r := test.Request(suite.T(), suite.engine, http.MethodPost, "/v1/uploads", body,
		map[string]string{"Content-Type": mw.FormDataContentType()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
