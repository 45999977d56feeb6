package api

import (
	"net/http"

	"github.com/toseg1/promethia-v2-sub001/internal/domain"
	"github.com/toseg1/promethia-v2-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	coachService service.CoachService,
	eventService service.EventService,
	templateService service.TemplateService,
) {
	authHandler := NewAuthHandler(authService)
	coachHandler := NewCoachHandler(coachService)
	eventHandler := NewEventHandler(eventService)
	templateHandler := NewTemplateHandler(templateService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Calendar Events ---
		// Both roles schedule and read events; the service layer enforces
		// per-event ownership (athlete or scheduling coach).
		eventGroup := protected.Group("/events")
		{
			eventGroup.POST("", eventHandler.CreateEvent)
			eventGroup.GET("", eventHandler.ListEvents)
			eventGroup.GET("/:id", eventHandler.GetEvent)
			eventGroup.PUT("/:id", eventHandler.UpdateEvent)
			eventGroup.DELETE("/:id", eventHandler.DeleteEvent)

			// Attachment flow: request presigned URL, PUT directly to
			// storage, then confirm.
			eventGroup.POST("/:id/attachment/upload-url", eventHandler.RequestAttachmentUpload)
			eventGroup.POST("/:id/attachment/confirm", eventHandler.ConfirmAttachment)
			eventGroup.GET("/:id/attachment", eventHandler.GetAttachmentURL)
		}

		// --- Coach-only: athlete roster and reusable plan templates ---
		coachGroup := protected.Group("/coach")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			coachGroup.POST("/athletes", coachHandler.AddAthlete)
			coachGroup.GET("/athletes", coachHandler.ListAthletes)

			coachGroup.POST("/templates", templateHandler.SaveTemplate)
			coachGroup.GET("/templates", templateHandler.ListTemplates)
			coachGroup.GET("/templates/:id", templateHandler.LoadTemplate)
			coachGroup.DELETE("/templates/:id", templateHandler.DeleteTemplate)
		}
	}
}
