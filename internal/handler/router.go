package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/atlasid/oid-service/internal/generator"
	"github.com/atlasid/oid-service/pkg/log"
	"github.com/atlasid/oid-service/pkg/oid"
	"github.com/atlasid/oid-service/pkg/response"
)

// NewRouter assembles the gin engine: request logging, recovery, the
// identifier routes, and a health probe. The "objectid" validation tag is
// registered on gin's binding engine so request models elsewhere can demand
// an already-constructed ObjectID value.
func NewRouter(logger zerolog.Logger, generators map[string]generator.Generator) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("objectid", oid.ValidatorFunc())
	}

	r := gin.New()
	r.Use(log.GinMiddleware(logger), gin.Recovery())

	NewIDHandler(generators).RegisterRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	return r
}
