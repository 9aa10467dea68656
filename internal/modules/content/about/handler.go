package about

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/about")
	g.GET("", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("", h.update)
}

// GET /about
func (h *Handler) get(c *gin.Context) {
	about, err := h.svc.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to fetch about data")
		return
	}
	response.OK(c, about)
}

// POST /about
func (h *Handler) create(c *gin.Context) {
	var dto CreateAboutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	about, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err, "Failed to create about data")
		return
	}
	response.OK(c, about)
}

// PUT /about
func (h *Handler) update(c *gin.Context) {
	var dto UpdateAboutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	about, err := h.svc.Update(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err, "Failed to update about data")
		return
	}
	response.OK(c, about)
}
