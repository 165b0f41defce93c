package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storage-api/internal/application/ports"
	domain "storage-api/internal/domain/position"
	"storage-api/internal/infrastructure/jwt"
	"storage-api/internal/interface/api/rest/dto/position"
	"storage-api/internal/interface/api/rest/middleware"
	"storage-api/internal/interface/api/rest/validator"
)

type PositionController struct {
	positionService ports.PositionService
	logger          *zap.Logger
}

func NewPositionController(
	r *gin.Engine,
	positionService ports.PositionService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *PositionController {
	pc := &PositionController{
		positionService: positionService,
		logger:          logger,
	}

	auth := middleware.AuthMiddleware(jwtService)
	r.GET(RoutePositions, auth, pc.GetPositionsHandler)
	r.POST(RoutePositions, auth, pc.CreatePositionHandler)
	r.GET(RoutePosition, auth, pc.GetPositionHandler)
	r.PATCH(RoutePosition, auth, pc.UpdatePositionHandler)
	r.DELETE(RoutePosition, auth, pc.DeletePositionHandler)

	return pc
}

func (pc *PositionController) GetPositionsHandler(c *gin.Context) {
	ps, err := pc.positionService.FindPositions(c.Request.Context())
	if err != nil {
		respondError(c, pc.logger, "FindPositions()", "failed to get positions", err)
		return
	}

	c.JSON(http.StatusOK, position.ToResponsePositions(ps))
}

func (pc *PositionController) GetPositionHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := pc.positionService.FindPosition(c.Request.Context(), domain.ID(id))
	if err != nil {
		respondError(c, pc.logger, "FindPosition()", "failed to get position", err)
		return
	}

	c.JSON(http.StatusOK, position.ToResponsePosition(*p))
}

func (pc *PositionController) CreatePositionHandler(c *gin.Context) {
	var req position.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := validator.ValidatePositionCreate(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	p, err := pc.positionService.CreatePosition(c.Request.Context(), position.ToDomainPosition(req))
	if err != nil {
		respondError(c, pc.logger, "CreatePosition()", "failed to create position", err)
		return
	}

	c.JSON(http.StatusCreated, position.ToResponsePosition(*p))
}

func (pc *PositionController) UpdatePositionHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req position.PatchRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := validator.ValidatePositionPatch(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	p, err := pc.positionService.UpdatePosition(c.Request.Context(), domain.ID(id), position.ToDomainPatch(req))
	if err != nil {
		respondError(c, pc.logger, "UpdatePosition()", "failed to update position", err)
		return
	}

	c.JSON(http.StatusOK, position.ToResponsePosition(*p))
}

func (pc *PositionController) DeletePositionHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = pc.positionService.DeletePosition(c.Request.Context(), domain.ID(id)); err != nil {
		respondError(c, pc.logger, "DeletePosition()", "failed to delete position", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position deleted successfully"})
}
