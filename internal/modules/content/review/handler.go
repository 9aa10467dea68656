package review

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/reviews")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

// GET /reviews
func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to fetch reviews")
		return
	}
	response.OK(c, items)
}

// GET /reviews/:id
func (h *Handler) get(c *gin.Context) {
	r, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err, "Failed to fetch review")
		return
	}
	response.OK(c, r)
}

// POST /reviews
func (h *Handler) create(c *gin.Context) {
	var dto CreateReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	r, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err, "Failed to create review")
		return
	}
	response.OK(c, r)
}

// PUT /reviews/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	r, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err, "Failed to update review")
		return
	}
	response.OK(c, r)
}

// DELETE /reviews/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err, "Failed to delete review")
		return
	}
	response.Success(c)
}
