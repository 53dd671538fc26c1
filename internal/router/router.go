package router

import (
	"net/http"

	"instamailer/internal/handler"

	"github.com/labstack/echo/v4"
)

func SetupRoutes(e *echo.Echo, draftHandler *handler.DraftHandler) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "InstaMailer backend is running",
		})
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	e.POST("/generate", draftHandler.Generate)
	e.POST("/send/:id", draftHandler.Send)
	e.GET("/emails", draftHandler.List)
	e.GET("/stats", draftHandler.Stats)
	e.DELETE("/emails/:id", draftHandler.Delete)
	e.POST("/update_draft/:id", draftHandler.UpdateDraft)
}
