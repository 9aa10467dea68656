package project

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/projects")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

// GET /projects?featured=true&published=true
func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{
		FeaturedOnly:  c.Query("featured") == "true",
		PublishedOnly: c.Query("published") == "true",
	}
	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err, "Failed to fetch projects")
		return
	}
	response.OK(c, items)
}

// GET /projects/:id
func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err, "Failed to fetch project")
		return
	}
	response.OK(c, p)
}

// POST /projects
func (h *Handler) create(c *gin.Context) {
	var dto CreateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err, "Failed to create project")
		return
	}
	response.OK(c, p)
}

// PUT /projects/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err, "Failed to update project")
		return
	}
	response.OK(c, p)
}

// DELETE /projects/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err, "Failed to delete project")
		return
	}
	response.Success(c)
}
