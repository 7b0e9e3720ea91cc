// Package position serves the board position catalog.
package position

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"standards-board-backend/internal/model"
	"standards-board-backend/internal/utilities"
)

// PositionController serves the read-only position catalog
type PositionController struct {
	Catalog *model.Catalog
}

// NewPositionController creates a new instance of PositionController
func NewPositionController(catalog *model.Catalog) *PositionController {
	return &PositionController{Catalog: catalog}
}

// ListPositions returns the positions currently open for applications.
// @Summary List open positions
// @Tags Position
// @Produce json
// @Success 200 {object} map[string][]model.Position
// @Router /positions [get]
func (pc *PositionController) ListPositions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"positions": pc.Catalog.Active()})
}

// GetPosition returns one position by id, including inactive ones.
// @Summary Get position
// @Tags Position
// @Produce json
// @Param id path string true "Position id"
// @Success 200 {object} map[string]model.Position
// @Failure 404 {object} utilities.ErrorResponse "Position not found"
// @Router /positions/{id} [get]
func (pc *PositionController) GetPosition(c *gin.Context) {
	pos, ok := pc.Catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Position not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"position": pos})
}
