// internal/api/seed_handlers.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/localdash/localdash-api-server/internal/config"
	"github.com/localdash/localdash-api-server/internal/docker"
	"github.com/localdash/localdash-api-server/internal/models"
)

// seedRequest optionally narrows the seed run to one service; the seed
// script itself decides what to do with it.
type seedRequest struct {
	Service string `json:"service"`
}

// @Summary Run the demo seed workload
// @Description Executes the configured seed command to populate LocalStack with sample resources, returning its combined output.
// @Tags Seed
// @Accept json
// @Produce json
// @Success 200 {object} models.SeedRunResponse "Seed completed"
// @Failure 408 {object} models.ErrorResponse "Seed timed out"
// @Failure 500 {object} models.ErrorResponse "Seed failed or not configured"
// @Router /test [post]
func RunSeedHandler(c *gin.Context) {
	var req seedRequest
	// Body is optional; absence means "all services".
	_ = c.ShouldBindJSON(&req)
	service := req.Service
	if service == "" {
		service = "all"
	}

	fields := strings.Fields(config.AppConfig.SeedCommand)
	if len(fields) == 0 {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "No seed command configured (SEED_COMMAND)."})
		return
	}

	log.Infof("Running seed workload for service: %s", service)

	ctx, cancel := context.WithTimeout(context.Background(), config.AppConfig.SeedTimeout)
	defer cancel()

	stdout, stderr, err := docker.RunCommand(ctx, fields[0], fields[1:]...)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Warnf("Seed workload timed out after %s", config.AppConfig.SeedTimeout)
		c.JSON(http.StatusRequestTimeout, models.ErrorResponse{
			Error: fmt.Sprintf("Seed execution timed out after %s", config.AppConfig.SeedTimeout),
		})
		return
	}

	if err != nil {
		log.Errorf("Seed workload failed: %v", err)
		output := fmt.Sprintf("Seed failed!\n\nError:\n%s\n\nOutput:\n%s", stderr, stdout)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: output})
		return
	}

	log.Info("Seed workload completed successfully")

	output := stdout
	if stderr != "" {
		output += "\n\nWarnings:\n" + stderr
	}
	c.JSON(http.StatusOK, models.SeedRunResponse{
		Message: "Seed completed successfully",
		Output:  output,
	})
}
