package hero

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/hero")
	g.GET("", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("", h.update)
}

// GET /hero
func (h *Handler) get(c *gin.Context) {
	hero, err := h.svc.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to fetch hero data")
		return
	}
	response.OK(c, hero)
}

// POST /hero
func (h *Handler) create(c *gin.Context) {
	var dto CreateHeroDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	hero, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err, "Failed to create hero data")
		return
	}
	response.OK(c, hero)
}

// PUT /hero
func (h *Handler) update(c *gin.Context) {
	var dto UpdateHeroDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	hero, err := h.svc.Update(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err, "Failed to update hero data")
		return
	}
	response.OK(c, hero)
}
