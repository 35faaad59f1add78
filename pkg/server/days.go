package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
)

type todoRequest struct {
	Text string `json:"text"`
}

// AddTodo POST /api/days/:date/todos
func (h *Handler) AddTodo(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	t, err := h.store.AddTodoForDate(c.Param("date"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusCreated, t)
}

// UpdateTodo PATCH /api/days/:date/todos/:id
func (h *Handler) UpdateTodo(c *gin.Context) {
	var req state.TodoUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	date := c.Param("date")
	if err := h.store.UpdateTodoPropertyForDate(date, c.Param("id"), req); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, h.store.GetTodosForDate(date))
}

// DeleteTodo DELETE /api/days/:date/todos/:id
func (h *Handler) DeleteTodo(c *gin.Context) {
	if err := h.store.DeleteTodoForDate(c.Param("date"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusNoContent, nil)
}

// ReorderTodos PUT /api/days/:date/todos/order
func (h *Handler) ReorderTodos(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	date := c.Param("date")
	if err := h.store.ReorderTodosForDate(date, req.IDs); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, h.store.GetTodosForDate(date))
}

type carryRequest struct {
	To string `json:"to" binding:"required"`
}

// CarryOver POST /api/days/:date/carry moves the open todos of a day onto
// another.
func (h *Handler) CarryOver(c *gin.Context) {
	var req carryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	moved, err := h.store.CarryOverTodos(c.Param("date"), req.To)
	if err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, gin.H{"to": req.To, "moved": moved})
}

type markRequest struct {
	Mark string `json:"mark"`
}

// SetMark PUT /api/days/:date/mark; an empty mark clears it.
func (h *Handler) SetMark(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	date := c.Param("date")
	if err := h.store.SetCellMark(date, req.Mark); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, gin.H{"date": date, "mark": h.store.GetCellMark(date)})
}

// UpdateDiary PUT /api/days/:date/diary
func (h *Handler) UpdateDiary(c *gin.Context) {
	var req model.Diary
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	date := c.Param("date")
	if err := h.store.UpdateDiary(date, req); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, h.store.GetDiary(date))
}
