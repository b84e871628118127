package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opius2017/Finmfb-sub006/internal/httputil"
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterProductRoutes registers the routes for loan products with the
// RouterGroup that is passed.
func (co Controller) RegisterProductRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetProducts)
		r.POST("", co.CreateProduct)
	}

	// Product with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetProduct)
		r.PATCH("/:id", co.UpdateProduct)
		r.DELETE("/:id", co.DeleteProduct)
	}
}

// LoanProductEditable is the set of product fields create and update accept.
type LoanProductEditable struct {
	Name               string          `json:"name" example:"SME Working Capital"`
	MinAmount          decimal.Decimal `json:"minAmount" example:"100000"`
	MaxAmount          decimal.Decimal `json:"maxAmount" example:"5000000"`
	MinTenorMonths     int             `json:"minTenorMonths" example:"6"`
	MaxTenorMonths     int             `json:"maxTenorMonths" example:"36"`
	AnnualInterestRate decimal.Decimal `json:"annualInterestRate" example:"20"`
	Archived           bool            `json:"archived" example:"false"`
}

func (editable LoanProductEditable) model() models.LoanProduct {
	return models.LoanProduct{
		Name:               editable.Name,
		MinAmount:          editable.MinAmount,
		MaxAmount:          editable.MaxAmount,
		MinTenorMonths:     editable.MinTenorMonths,
		MaxTenorMonths:     editable.MaxTenorMonths,
		AnnualInterestRate: editable.AnnualInterestRate,
		Archived:           editable.Archived,
	}
}

type LoanProductResponse struct {
	Data models.LoanProduct `json:"data"`
}

type LoanProductListResponse struct {
	Data []models.LoanProduct `json:"data"`
}

// @Summary      Create product
// @Description  Creates a new loan product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        product  body      LoanProductEditable  true  "Product"
// @Success      201      {object}  LoanProductResponse
// @Failure      400      {object}  httputil.HTTPError
// @Failure      500      {object}  httputil.HTTPError
// @Router       /v1/products [post]
func (co Controller) CreateProduct(c *gin.Context) {
	var data LoanProductEditable
	if code, err := httputil.BindData(c, &data); err != nil {
		httputil.NewError(c, code, err)
		return
	}

	product := data.model()

	err := models.DB.Create(&product).Error
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, LoanProductResponse{Data: product})
}

// @Summary      List products
// @Description  Returns all loan products
// @Tags         Products
// @Produce      json
// @Success      200  {object}  LoanProductListResponse
// @Failure      500  {object}  httputil.HTTPError
// @Router       /v1/products [get]
func (co Controller) GetProducts(c *gin.Context) {
	var products []models.LoanProduct

	err := models.DB.Order("name ASC").Find(&products).Error
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, LoanProductListResponse{Data: products})
}

// @Summary      Get product
// @Description  Returns a specific loan product
// @Tags         Products
// @Produce      json
// @Param        id   path      string  true  "ID of the product"
// @Success      200  {object}  LoanProductResponse
// @Failure      400  {object}  httputil.HTTPError
// @Failure      404  {object}  httputil.HTTPError
// @Failure      500  {object}  httputil.HTTPError
// @Router       /v1/products/{id} [get]
func (co Controller) GetProduct(c *gin.Context) {
	product, err := getProduct(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, LoanProductResponse{Data: product})
}

// @Summary      Update product
// @Description  Updates a loan product. Zero valued fields are left unchanged
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "ID of the product"
// @Param        product  body      LoanProductEditable  true  "Product"
// @Success      200      {object}  LoanProductResponse
// @Failure      400      {object}  httputil.HTTPError
// @Failure      404      {object}  httputil.HTTPError
// @Failure      500      {object}  httputil.HTTPError
// @Router       /v1/products/{id} [patch]
func (co Controller) UpdateProduct(c *gin.Context) {
	product, err := getProduct(c)
	if err != nil {
		return
	}

	var data LoanProductEditable
	if code, err := httputil.BindData(c, &data); err != nil {
		httputil.NewError(c, code, err)
		return
	}

	err = models.DB.Model(&product).Updates(data.model()).Error
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, LoanProductResponse{Data: product})
}

// @Summary      Delete product
// @Description  Deletes a loan product
// @Tags         Products
// @Param        id  path  string  true  "ID of the product"
// @Success      204
// @Failure      400  {object}  httputil.HTTPError
// @Failure      404  {object}  httputil.HTTPError
// @Failure      500  {object}  httputil.HTTPError
// @Router       /v1/products/{id} [delete]
func (co Controller) DeleteProduct(c *gin.Context) {
	product, err := getProduct(c)
	if err != nil {
		return
	}

	err = models.DB.Delete(&product).Error
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getProduct verifies that the product from the URL parameters exists and
// returns it. The error response is already written on failure.
func getProduct(c *gin.Context) (models.LoanProduct, error) {
	var product models.LoanProduct

	id, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		return models.LoanProduct{}, err
	}

	err = models.DB.First(&product, "id = ?", id).Error
	if err != nil {
		errorHandler(c, err)
		return models.LoanProduct{}, err
	}

	return product, nil
}
