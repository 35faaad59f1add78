package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tableflip.dev/planner/pkg/model"
)

type labelRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type orderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// ListLabels GET /api/labels
func (h *Handler) ListLabels(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetState().Yearly.Labels)
}

// AddLabel POST /api/labels
func (h *Handler) AddLabel(c *gin.Context) {
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	l := model.Label{}
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Color != nil {
		l.Color = *req.Color
	}
	added, err := h.store.AddLabel(l)
	if err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusCreated, added)
}

// UpdateLabel PATCH /api/labels/:id
func (h *Handler) UpdateLabel(c *gin.Context) {
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	if req.Name != nil {
		if err := h.store.UpdateLabelName(id, *req.Name); err != nil {
			writeError(c, err)
			return
		}
	}
	if req.Color != nil {
		if err := h.store.UpdateLabelColor(id, *req.Color); err != nil {
			writeError(c, err)
			return
		}
	}
	l, _ := h.store.Label(id)
	h.commit(c, http.StatusOK, l)
}

// DeleteLabel DELETE /api/labels/:id
func (h *Handler) DeleteLabel(c *gin.Context) {
	n, err := h.store.DeleteLabelAndAssociatedEvents(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, gin.H{"removedEvents": n})
}

// ReorderLabels PUT /api/labels/order
func (h *Handler) ReorderLabels(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.store.ReorderLabels(req.IDs); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, h.store.GetState().Yearly.Labels)
}

type eventRequest struct {
	LabelID   string `json:"labelId"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate"`
}

// ListEvents GET /api/events, or ?on=date for the events covering a day.
func (h *Handler) ListEvents(c *gin.Context) {
	if on := c.Query("on"); on != "" {
		c.JSON(http.StatusOK, h.store.EventsOn(on))
		return
	}
	c.JSON(http.StatusOK, h.store.GetState().Yearly.Events)
}

// AddEvent POST /api/events
func (h *Handler) AddEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}
	ev, err := h.store.AddEvent(model.ProjectEvent{LabelID: req.LabelID, StartDate: req.StartDate, EndDate: req.EndDate})
	if err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusCreated, ev)
}

// UpdateEvent PATCH /api/events/:id changes the dates of an event.
func (h *Handler) UpdateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}
	if err := h.store.UpdateEventDates(c.Param("id"), req.StartDate, req.EndDate); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusNoContent, nil)
}

// DeleteEvent DELETE /api/events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.store.DeleteEvent(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusNoContent, nil)
}

type backlogRequest struct {
	Text     *string `json:"text"`
	Priority *int    `json:"priority"`
}

// ListBacklog GET /api/backlog
func (h *Handler) ListBacklog(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.BacklogTodos())
}

// AddBacklog POST /api/backlog
func (h *Handler) AddBacklog(c *gin.Context) {
	var req backlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	text, priority := "", 0
	if req.Text != nil {
		text = *req.Text
	}
	if req.Priority != nil {
		priority = *req.Priority
	}
	b, err := h.store.AddBacklogTodo(text, priority)
	if err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusCreated, b)
}

// UpdateBacklog PATCH /api/backlog/:id
func (h *Handler) UpdateBacklog(c *gin.Context) {
	var req backlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	if req.Text != nil {
		if err := h.store.UpdateBacklogTodoText(id, *req.Text); err != nil {
			writeError(c, err)
			return
		}
	}
	if req.Priority != nil {
		if err := h.store.UpdateBacklogTodoPriority(id, *req.Priority); err != nil {
			writeError(c, err)
			return
		}
	}
	h.commit(c, http.StatusOK, h.store.BacklogTodos())
}

// DeleteBacklog DELETE /api/backlog/:id
func (h *Handler) DeleteBacklog(c *gin.Context) {
	if err := h.store.DeleteBacklogTodo(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusNoContent, nil)
}

// ReorderBacklog PUT /api/backlog/order
func (h *Handler) ReorderBacklog(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.store.ReorderBacklogTodos(req.IDs); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, h.store.BacklogTodos())
}

type dateRequest struct {
	Date string `json:"date" binding:"required"`
}

// MoveBacklog POST /api/backlog/:id/move schedules a backlog todo.
func (h *Handler) MoveBacklog(c *gin.Context) {
	var req dateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	t, err := h.store.MoveBacklogTodoToCalendar(c.Param("id"), req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, gin.H{"date": req.Date, "todo": t})
}
