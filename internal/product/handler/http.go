package handler

import (
	"github.com/fekuna/omnipos-catalog-service/internal/httpapi"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
	"github.com/gin-gonic/gin"
)

type HTTPHandler struct {
	uc product.UseCase
}

func NewHTTPHandler(uc product.UseCase) *HTTPHandler {
	return &HTTPHandler{uc: uc}
}

func (h *HTTPHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/products")
	g.GET("", h.List)
	g.GET("/aggregate", h.Aggregate)
	g.POST("/search", h.Search)
	g.GET("/:slug", h.GetBySlug)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List serves GET /products?page&limit&categoryId&minPrice&maxPrice.
func (h *HTTPHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}

	list, err := h.uc.ListProducts(c.Request.Context(), opts)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, list)
}

func listOptions(c *gin.Context) (*dto.ListOptions, error) {
	var (
		opts dto.ListOptions
		err  error
	)
	if opts.Page, err = httpapi.QueryInt(c, "page"); err != nil {
		return nil, err
	}
	if opts.Limit, err = httpapi.QueryInt(c, "limit"); err != nil {
		return nil, err
	}
	if opts.MinPrice, err = httpapi.QueryDecimal(c, "minPrice"); err != nil {
		return nil, err
	}
	if opts.MaxPrice, err = httpapi.QueryDecimal(c, "maxPrice"); err != nil {
		return nil, err
	}
	opts.CategoryID = c.Query("categoryId")
	return &opts, nil
}

// Search runs the advanced filter from a JSON body; an empty body takes every default.
func (h *HTTPHandler) Search(c *gin.Context) {
	var input filter.Input
	if c.Request.ContentLength != 0 {
		if err := httpapi.BindJSON(c, &input); err != nil {
			httpapi.Fail(c, err)
			return
		}
	}

	list, err := h.uc.FilterProducts(c.Request.Context(), &input)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, list)
}

func (h *HTTPHandler) Aggregate(c *gin.Context) {
	input := dto.DefaultAggregateInput()
	if groupBy := c.Query("groupBy"); groupBy != "" {
		input.GroupBy = groupBy
	}
	if metric := c.Query("metric"); metric != "" {
		input.Metric = metric
	}

	agg, err := h.uc.AggregateProducts(c.Request.Context(), input)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, agg)
}

func (h *HTTPHandler) GetBySlug(c *gin.Context) {
	p, err := h.uc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, p)
}

func (h *HTTPHandler) Create(c *gin.Context) {
	var input dto.CreateProductInput
	if err := httpapi.BindJSON(c, &input); err != nil {
		httpapi.Fail(c, err)
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Created(c, p)
}

func (h *HTTPHandler) Update(c *gin.Context) {
	var input dto.UpdateProductInput
	if err := httpapi.BindJSON(c, &input); err != nil {
		httpapi.Fail(c, err)
		return
	}
	input.ID = c.Param("id")

	p, err := h.uc.UpdateProduct(c.Request.Context(), &input)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, p)
}

func (h *HTTPHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Message(c, "Product deleted successfully")
}
