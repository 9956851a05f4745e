package resource

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/deenhub/deenhub-backend/pkg/logger"
	"github.com/deenhub/deenhub-backend/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// Handler serves the five CRUD operations for one collection, driven entirely
// by its Schema. All four resources share this code; only the descriptors
// differ.
type Handler struct {
	schema *Schema
	store  Store
}

func NewHandler(s *Schema, st Store) *Handler {
	return &Handler{schema: s, store: st}
}

// Register mounts the resource's routes on the given group (typically /api).
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/"+h.schema.Plural, h.list)
	rg.GET("/"+h.schema.Plural+"/:id", h.get)
	rg.POST("/"+h.schema.Plural, h.create)
	rg.PUT("/"+h.schema.Plural+"/:id", h.update)
	rg.DELETE("/"+h.schema.Plural+"/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	q, err := BuildQuery(h.schema, c.Request.URL.Query())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	docs, err := h.store.FindMany(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	message := h.schema.ListLabel + " retrieved successfully"
	if len(docs) == 0 {
		message = "No " + h.schema.EmptyLabel + " found"
	}
	h.respond(c, "list", http.StatusOK, gin.H{
		"message":       message,
		"count":         len(docs),
		h.schema.Plural: docs,
	})
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.store.FindOne(c.Request.Context(), h.schema.KeyField(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	h.respond(c, "get", http.StatusOK, gin.H{
		"message":         h.schema.Label + " retrieved successfully",
		h.schema.Singular: doc,
	})
}

func (h *Handler) create(c *gin.Context) {
	payload, ok := h.bind(c, "create")
	if !ok {
		return
	}
	doc, err := h.schema.NewDocument(payload)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	if h.schema.IDField != "" {
		id := cast.ToString(doc[h.schema.IDField])
		if err := EnsureNewID(c.Request.Context(), h.store, h.schema, id); err != nil {
			h.fail(c, "create", err)
			return
		}
	}
	created, err := h.store.Insert(c.Request.Context(), doc)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	h.respond(c, "create", http.StatusCreated, gin.H{
		"message":         h.schema.CreatedMsg,
		h.schema.Singular: created,
	})
}

func (h *Handler) update(c *gin.Context) {
	payload, ok := h.bind(c, "update")
	if !ok {
		return
	}
	set, err := MergeUpdate(h.schema, payload)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	doc, err := h.store.FindOneAndUpdate(c.Request.Context(), h.schema.KeyField(), c.Param("id"), set)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	h.respond(c, "update", http.StatusOK, gin.H{
		"message":         h.schema.Label + " updated successfully",
		h.schema.Singular: doc,
	})
}

func (h *Handler) remove(c *gin.Context) {
	doc, err := h.store.FindOneAndDelete(c.Request.Context(), h.schema.KeyField(), c.Param("id"))
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	h.respond(c, "delete", http.StatusOK, gin.H{
		"message":         h.schema.Label + " deleted successfully",
		h.schema.Singular: doc,
	})
}

func (h *Handler) bind(c *gin.Context, op string) (map[string]interface{}, bool) {
	payload := map[string]interface{}{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond(c, op, http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return nil, false
	}
	return payload, true
}

// fail maps engine errors onto the response taxonomy: validation and conflict
// are client errors, absence is 404, anything else is a logged server fault.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		h.respond(c, op, http.StatusBadRequest, gin.H{"error": ve.Reason})
	case errors.Is(err, ErrDuplicateID):
		h.respond(c, op, http.StatusBadRequest, gin.H{"error": h.schema.Label + " with this ID already exists"})
	case errors.Is(err, ErrNotFound):
		h.respond(c, op, http.StatusNotFound, gin.H{"error": h.schema.Label + " not found"})
	default:
		logger.Errorf("%s %s error: %v", op, h.schema.Plural, err)
		h.respond(c, op, http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) respond(c *gin.Context, op string, status int, body gin.H) {
	metrics.RequestsHandled.WithLabelValues(h.schema.Plural, op, strconv.Itoa(status)).Inc()
	c.JSON(status, body)
}
