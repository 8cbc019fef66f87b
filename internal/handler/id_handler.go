package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/atlasid/oid-service/internal/generator"
	"github.com/atlasid/oid-service/pkg/log"
	"github.com/atlasid/oid-service/pkg/response"
)

const maxBatchSize = 1000

// IDHandler serves identifier generation, validation, and parsing over the
// registered scheme strategies.
type IDHandler struct {
	generators map[string]generator.Generator
}

// NewIDHandler creates an IDHandler over the given scheme registry.
func NewIDHandler(generators map[string]generator.Generator) *IDHandler {
	return &IDHandler{generators: generators}
}

// RegisterRoutes registers the identifier routes.
func (h *IDHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/v1")
	api.POST("/ids", h.generate)
	api.POST("/ids/validate", h.validate)
	api.GET("/ids/:id", h.parse)
}

func (h *IDHandler) scheme(name string) (generator.Generator, error) {
	if name == "" {
		name = generator.SchemeObjectID
	}
	gen, ok := h.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme %q", name)
	}
	return gen, nil
}

type generateRequest struct {
	Type  string `json:"type"`
	Count int    `json:"count" binding:"omitempty,min=1,max=1000"`
}

type generateResponse struct {
	Type string   `json:"type"`
	IDs  []string `json:"ids"`
}

func (h *IDHandler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	gen, err := h.scheme(req.Type)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ids, err := gen.GenerateBatch(req.Count)
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Str(log.FieldScheme, schemeName(req.Type)).Msg("generation failed")
		response.InternalError(c, "failed to generate identifiers")
		return
	}

	response.Created(c, generateResponse{
		Type: schemeName(req.Type),
		IDs:  ids,
	})
}

type validateRequest struct {
	Type string `json:"type"`
	ID   string `json:"id" binding:"required"`
}

type validateResponse struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func (h *IDHandler) validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	gen, err := h.scheme(req.Type)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	valid, reason := gen.Validate(req.ID)
	response.Success(c, validateResponse{
		Type:   schemeName(req.Type),
		ID:     req.ID,
		Valid:  valid,
		Reason: reason,
	})
}

type parseResponse struct {
	Type   string            `json:"type"`
	ID     string            `json:"id"`
	Fields *generator.Fields `json:"fields"`
}

func (h *IDHandler) parse(c *gin.Context) {
	scheme := c.Query("type")
	gen, err := h.scheme(scheme)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id := c.Param("id")
	fields, err := gen.Parse(id)
	if err != nil {
		response.Unprocessable(c, err.Error())
		return
	}

	response.Success(c, parseResponse{
		Type:   schemeName(scheme),
		ID:     id,
		Fields: fields,
	})
}

func schemeName(name string) string {
	if name == "" {
		return generator.SchemeObjectID
	}
	return name
}

// bindErrorMessage turns a binding failure into a client-safe message:
// known field violations get a stable wording, everything else (malformed
// JSON, wrong value types) surfaces the decoder's own error.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Count":
			return fmt.Sprintf("count must be between 1 and %d", maxBatchSize)
		case "ID":
			return "id is required"
		}
	}
	return "invalid request body: " + err.Error()
}
