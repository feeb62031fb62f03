package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/testutil"
)

type ProductServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	service *ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewProductService(suite.db, config.ProductDeleteRetain)
}

func (suite *ProductServiceTestSuite) validRequest() *CreateProductRequest {
	return &CreateProductRequest{
		Name:        "Widget",
		Description: "d",
		Price:       decimal.RequireFromString("10"),
		Image:       "i",
	}
}

func (suite *ProductServiceTestSuite) TestCreateProductAssignsFreshIDs() {
	seen := make(map[uint]bool)
	for _, price := range []string{"10", "0.01", "100.99", "19.95"} {
		req := suite.validRequest()
		req.Price = decimal.RequireFromString(price)

		product, err := suite.service.CreateProduct(suite.ctx, req)
		suite.Require().NoError(err)
		suite.NotZero(product.ID)
		suite.False(seen[product.ID], "id %d reused", product.ID)
		seen[product.ID] = true

		stored, err := suite.service.GetProduct(suite.ctx, product.ID)
		suite.Require().NoError(err)
		suite.True(stored.Price.Equal(req.Price), "stored %s, submitted %s", stored.Price, req.Price)
		suite.False(stored.CreatedAt.IsZero())
		suite.False(stored.UpdatedAt.IsZero())
	}
}

func (suite *ProductServiceTestSuite) TestCreateProductValidation() {
	cases := map[string]func(*CreateProductRequest){
		"missing name":        func(r *CreateProductRequest) { r.Name = "" },
		"missing description": func(r *CreateProductRequest) { r.Description = "" },
		"missing image":       func(r *CreateProductRequest) { r.Image = "" },
		"zero price":          func(r *CreateProductRequest) { r.Price = decimal.Zero },
		"negative price":      func(r *CreateProductRequest) { r.Price = decimal.NewFromInt(-5) },
	}

	for name, mutate := range cases {
		req := suite.validRequest()
		mutate(req)

		_, err := suite.service.CreateProduct(suite.ctx, req)
		suite.ErrorIs(err, ErrValidation, name)
	}

	count, err := suite.service.CountProducts(suite.ctx)
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *ProductServiceTestSuite) TestPriceMustFitTheColumn() {
	for _, price := range []string{"1.005", "0.001", "100000000", "123456789.5"} {
		req := suite.validRequest()
		req.Price = decimal.RequireFromString(price)

		_, err := suite.service.CreateProduct(suite.ctx, req)
		suite.ErrorIs(err, ErrValidation, price)
	}

	req := suite.validRequest()
	req.Price = decimal.RequireFromString("99999999.99")
	product, err := suite.service.CreateProduct(suite.ctx, req)
	suite.Require().NoError(err)

	tooPrecise := decimal.RequireFromString("12.345")
	_, err = suite.service.UpdateProduct(suite.ctx, product.ID, &UpdateProductRequest{Price: &tooPrecise})
	suite.ErrorIs(err, ErrValidation)

	stored, err := suite.service.GetProduct(suite.ctx, product.ID)
	suite.Require().NoError(err)
	suite.True(stored.Price.Equal(req.Price))
}

func (suite *ProductServiceTestSuite) TestGetProductNotFound() {
	_, err := suite.service.GetProduct(suite.ctx, 9999)
	suite.ErrorIs(err, ErrProductNotFound)
}

func (suite *ProductServiceTestSuite) TestListProductsInInsertionOrder() {
	first := testutil.InsertProduct(suite.T(), suite.db, "first", "1")
	second := testutil.InsertProduct(suite.T(), suite.db, "second", "2")

	products, err := suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(products, 2)
	suite.Equal(first.ID, products[0].ID)
	suite.Equal(second.ID, products[1].ID)
}

func (suite *ProductServiceTestSuite) TestListProductsEmpty() {
	products, err := suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	suite.NotNil(products)
	suite.Empty(products)
}

func (suite *ProductServiceTestSuite) TestUpdateProductOnlyTouchesSuppliedFields() {
	product := testutil.InsertProduct(suite.T(), suite.db, "lamp", "12.50")

	newName := "desk lamp"
	updated, err := suite.service.UpdateProduct(suite.ctx, product.ID, &UpdateProductRequest{Name: &newName})
	suite.Require().NoError(err)

	suite.Equal("desk lamp", updated.Name)
	suite.Equal(product.Description, updated.Description)
	suite.Equal(product.Image, updated.Image)
	suite.True(updated.Price.Equal(product.Price))
	suite.False(updated.UpdatedAt.Before(product.UpdatedAt))

	newPrice := decimal.RequireFromString("15")
	updated, err = suite.service.UpdateProduct(suite.ctx, product.ID, &UpdateProductRequest{Price: &newPrice})
	suite.Require().NoError(err)
	suite.Equal("desk lamp", updated.Name)
	suite.True(updated.Price.Equal(newPrice))
}

func (suite *ProductServiceTestSuite) TestUpdateProductErrors() {
	product := testutil.InsertProduct(suite.T(), suite.db, "lamp", "12.50")

	_, err := suite.service.UpdateProduct(suite.ctx, product.ID, &UpdateProductRequest{})
	suite.ErrorIs(err, ErrNoFieldsToUpdate)

	name := "x"
	_, err = suite.service.UpdateProduct(suite.ctx, 9999, &UpdateProductRequest{Name: &name})
	suite.ErrorIs(err, ErrProductNotFound)

	negative := decimal.NewFromInt(-1)
	_, err = suite.service.UpdateProduct(suite.ctx, product.ID, &UpdateProductRequest{Price: &negative})
	suite.ErrorIs(err, ErrValidation)

	empty := ""
	_, err = suite.service.UpdateProduct(suite.ctx, product.ID, &UpdateProductRequest{Name: &empty})
	suite.ErrorIs(err, ErrValidation)
}

func (suite *ProductServiceTestSuite) TestDeleteProductTwice() {
	product := testutil.InsertProduct(suite.T(), suite.db, "mug", "4")

	suite.Require().NoError(suite.service.DeleteProduct(suite.ctx, product.ID))
	suite.ErrorIs(suite.service.DeleteProduct(suite.ctx, product.ID), ErrProductNotFound)
}

func (suite *ProductServiceTestSuite) TestDeleteRetainLeavesOrders() {
	product := testutil.InsertProduct(suite.T(), suite.db, "mug", "4")
	order := testutil.InsertOrderAt(suite.T(), suite.db, product, 2, product.CreatedAt)

	suite.Require().NoError(suite.service.DeleteProduct(suite.ctx, product.ID))

	var stored models.Order
	suite.Require().NoError(suite.db.First(&stored, order.ID).Error)
	suite.Equal(product.ID, stored.ProductID)
}

func (suite *ProductServiceTestSuite) TestDeleteRestrictRefusesReferencedProduct() {
	service := NewProductService(suite.db, config.ProductDeleteRestrict)
	product := testutil.InsertProduct(suite.T(), suite.db, "mug", "4")
	unused := testutil.InsertProduct(suite.T(), suite.db, "plate", "3")
	testutil.InsertOrderAt(suite.T(), suite.db, product, 1, product.CreatedAt)

	suite.ErrorIs(service.DeleteProduct(suite.ctx, product.ID), ErrProductInUse)
	_, err := service.GetProduct(suite.ctx, product.ID)
	suite.NoError(err)

	suite.NoError(service.DeleteProduct(suite.ctx, unused.ID))
}

func (suite *ProductServiceTestSuite) TestDeleteCascadeRemovesOrders() {
	service := NewProductService(suite.db, config.ProductDeleteCascade)
	product := testutil.InsertProduct(suite.T(), suite.db, "mug", "4")
	other := testutil.InsertProduct(suite.T(), suite.db, "plate", "3")
	testutil.InsertOrderAt(suite.T(), suite.db, product, 1, product.CreatedAt)
	testutil.InsertOrderAt(suite.T(), suite.db, product, 2, product.CreatedAt)
	kept := testutil.InsertOrderAt(suite.T(), suite.db, other, 1, other.CreatedAt)

	suite.Require().NoError(service.DeleteProduct(suite.ctx, product.ID))

	var orders []models.Order
	suite.Require().NoError(suite.db.Find(&orders).Error)
	suite.Require().Len(orders, 1)
	suite.Equal(kept.ID, orders[0].ID)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
