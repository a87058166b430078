package handler

import (
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/httpapi"
	"github.com/gin-gonic/gin"
)

type HTTPHandler struct {
	uc category.UseCase
}

func NewHTTPHandler(uc category.UseCase) *HTTPHandler {
	return &HTTPHandler{uc: uc}
}

func (h *HTTPHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/categories")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *HTTPHandler) List(c *gin.Context) {
	cats, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, cats)
}

func (h *HTTPHandler) Get(c *gin.Context) {
	detail, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, detail)
}

func (h *HTTPHandler) Create(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := httpapi.BindJSON(c, &input); err != nil {
		httpapi.Fail(c, err)
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Created(c, cat)
}

func (h *HTTPHandler) Update(c *gin.Context) {
	var input dto.UpdateCategoryInput
	if err := httpapi.BindJSON(c, &input); err != nil {
		httpapi.Fail(c, err)
		return
	}
	input.ID = c.Param("id")

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &input)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, cat)
}

func (h *HTTPHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Message(c, "Category deleted successfully")
}
