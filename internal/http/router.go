package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/schoolauth/internal/http/handlers"
	"github.com/you/schoolauth/internal/http/middleware"
)

func BuildRouter(rh *handlers.ResetHandlers, wh *handlers.WebhookHandlers, uh *handlers.UploadHandlers, adh *handlers.AdminHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/password-reset", rh.RequestReset)
	auth.PUT("/password-reset", rh.ConfirmReset)
	auth.POST("/verify-otp", rh.VerifyOTP)
	auth.POST("/reset-password", rh.ResetPassword)

	r.POST("/webhooks/sms-delivery", wh.SMSDelivery)

	r.POST("/files/photos", uh.UploadPhoto)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/deliveries", adh.ListDeliveries)
	adm.POST("/deliveries/:id/resend", adh.ResendDelivery)

	return r
}
