package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
)

// Handler serves the /api routes over one state store.
type Handler struct {
	store *state.Store
	save  func(ctx context.Context) error
}

// NewHandler builds a Handler. A nil save leaves changes in the dirty cache
// until POST /save.
func NewHandler(st *state.Store, save func(ctx context.Context) error) *Handler {
	return &Handler{store: st, save: save}
}

// RegisterRoutes registers every planner route on router.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/state", h.GetState)
	router.POST("/year/:year", h.LoadYear)
	router.POST("/week", h.MoveWeek)
	router.POST("/save", h.Save)

	router.GET("/labels", h.ListLabels)
	router.POST("/labels", h.AddLabel)
	router.PATCH("/labels/:id", h.UpdateLabel)
	router.DELETE("/labels/:id", h.DeleteLabel)
	router.PUT("/labels/order", h.ReorderLabels)

	router.GET("/events", h.ListEvents)
	router.POST("/events", h.AddEvent)
	router.PATCH("/events/:id", h.UpdateEvent)
	router.DELETE("/events/:id", h.DeleteEvent)

	router.GET("/backlog", h.ListBacklog)
	router.POST("/backlog", h.AddBacklog)
	router.PATCH("/backlog/:id", h.UpdateBacklog)
	router.DELETE("/backlog/:id", h.DeleteBacklog)
	router.PUT("/backlog/order", h.ReorderBacklog)
	router.POST("/backlog/:id/move", h.MoveBacklog)

	router.GET("/days/:date", h.GetDay)
	router.POST("/days/:date/todos", h.AddTodo)
	router.PATCH("/days/:date/todos/:id", h.UpdateTodo)
	router.DELETE("/days/:date/todos/:id", h.DeleteTodo)
	router.PUT("/days/:date/todos/order", h.ReorderTodos)
	router.POST("/days/:date/carry", h.CarryOver)
	router.PUT("/days/:date/mark", h.SetMark)
	router.PUT("/days/:date/diary", h.UpdateDiary)

	router.GET("/export/:year", h.Export)
	router.POST("/import", h.Import)
}

// commit saves after a successful mutation and answers with payload.
func (h *Handler) commit(c *gin.Context, status int, payload any) {
	if h.save != nil {
		if err := h.save(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
	}
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

// GetState GET /api/state
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetState())
}

// LoadYear POST /api/year/:year
func (h *Handler) LoadYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "year must be a number")
		return
	}
	if err := h.store.LoadDataForYear(c.Request.Context(), year); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, h.store.GetState())
}

type weekRequest struct {
	Delta int    `json:"delta"`
	Start string `json:"start"`
}

// MoveWeek POST /api/week moves the week cursor by delta weeks, or to the
// week holding start.
func (h *Handler) MoveWeek(c *gin.Context) {
	var req weekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	var start string
	if req.Start != "" {
		t, err := model.ParseDate(req.Start)
		if err != nil {
			writeError(c, err)
			return
		}
		h.store.SetWeeklyViewStart(t)
		start = model.FormatDate(h.store.WeekStart())
	} else {
		start = model.FormatDate(h.store.ShiftWeek(req.Delta))
	}
	c.JSON(http.StatusOK, gin.H{"weekStart": start})
}

// Save POST /api/save
func (h *Handler) Save(c *gin.Context) {
	report, err := h.store.Save(c.Request.Context())
	failed := map[string]string{}
	for name, werr := range report.Failed {
		failed[name] = werr.Error()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"written": report.Written, "failed": failed, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"written": report.Written, "failed": failed})
}

// GetDay GET /api/days/:date
func (h *Handler) GetDay(c *gin.Context) {
	day, err := app.Summarize(h.store, c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}
