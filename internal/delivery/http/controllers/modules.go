package controllers

import (
	"net/http"

	"GeniusLabs/internal/catalog"

	"github.com/gin-gonic/gin"
)

type ModulesHandler struct {
	catalog *catalog.Catalog
}

func NewModulesHandler(c *catalog.Catalog) *ModulesHandler {
	return &ModulesHandler{catalog: c}
}

// ListModules returns the module catalog in its configured order.
func (h *ModulesHandler) ListModules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modules": h.catalog.Modules()})
}
