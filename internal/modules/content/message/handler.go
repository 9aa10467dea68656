package message

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/pkg/pagination"
	"github.com/mx-space/folio/internal/pkg/response"
	"github.com/mx-space/folio/internal/pkg/richtext"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/messages")
	g.POST("", h.create)

	a := g.Group("", authMW)
	a.GET("", h.list)
	a.GET("/unread", h.unread)
	a.GET("/:id", h.get)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

// GET /messages
func (h *Handler) list(c *gin.Context) {
	f := ListFilter{UnreadOnly: c.Query("unread") == "true"}
	if pagination.Requested(c) {
		items, pag, err := h.svc.ListPage(c.Request.Context(), f, pagination.FromContext(c))
		if err != nil {
			response.Error(c, err, "Failed to fetch messages")
			return
		}
		response.Paged(c, items, pag)
		return
	}
	items, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err, "Failed to fetch messages")
		return
	}
	response.OK(c, items)
}

// GET /messages/unread
func (h *Handler) unread(c *gin.Context) {
	n, err := h.svc.UnreadCount(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to count messages")
		return
	}
	response.OK(c, gin.H{"count": n})
}

// GET /messages/:id
func (h *Handler) get(c *gin.Context) {
	m, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err, "Failed to fetch message")
		return
	}
	html, err := richtext.RenderMarkdown(m.Content)
	if err != nil {
		response.InternalError(c, err, "Failed to render message")
		return
	}
	response.OK(c, Detail{Message: *m, ContentHTML: html})
}

// POST /messages
func (h *Handler) create(c *gin.Context) {
	var dto CreateMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err, "Failed to send message")
		return
	}
	response.OK(c, m)
}

// PUT /messages/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err, "Failed to update message")
		return
	}
	response.OK(c, m)
}

// DELETE /messages/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err, "Failed to delete message")
		return
	}
	response.Success(c)
}
