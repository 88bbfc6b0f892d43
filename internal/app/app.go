package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/schoolauth/domain"
	"github.com/you/schoolauth/internal/config"
	httpx "github.com/you/schoolauth/internal/http"
	"github.com/you/schoolauth/internal/http/handlers"
	"github.com/you/schoolauth/internal/http/middleware"
	"github.com/you/schoolauth/internal/infrastructure/auth"
	"github.com/you/schoolauth/internal/infrastructure/database"
	"github.com/you/schoolauth/internal/infrastructure/notifications"
	"github.com/you/schoolauth/internal/infrastructure/repositories"
	"github.com/you/schoolauth/internal/infrastructure/storage"
	"github.com/you/schoolauth/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	// An empty Redis address selects the in-memory OTP store, which keeps
	// single-node deployments and local development redis-free.
	var otpStore domain.OTPStore
	if cfg.RedisAddr != "" {
		rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(context.Background()); err != nil {
			return err
		}
		otpStore = repositories.NewRedisOTPStore(rdb.Client)
	} else {
		log.Println("redis: no address configured, using in-memory OTP store")
		otpStore = repositories.NewMemoryOTPStore()
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.ResetTokenSecret, cfg.ResetTokenIssuer, cfg.ResetTokenTTL)

	var smsSender domain.SMSSender
	switch cfg.SMSProvider {
	case "twilio":
		smsSender = notifications.NewTwilioService(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber, cfg.SMSCountryCode)
	default:
		smsSender = notifications.NewEgoSMSService(cfg.EgoSMS.APIURL, cfg.EgoSMS.Username, cfg.EgoSMS.Password, cfg.EgoSMS.SenderID, cfg.EgoSMS.Priority, cfg.SMSCountryCode)
	}

	emailSender := notifications.NewSMTPService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	var fileStorage domain.FileStorage
	if cfg.Storage.Endpoint != "" {
		ms, err := storage.NewMinioStorage(storage.MinioOptions{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			PublicURL: cfg.Storage.PublicURL,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return err
		}
		fileStorage = ms
	} else {
		log.Println("storage: no endpoint configured, photo uploads disabled")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	deliveryRepo := repositories.NewDeliveryRepository(gdb)

	// Services
	otpConfig := services.OTPConfig{
		Length:      cfg.OTP_Length,
		TTL:         cfg.OTP_TTL,
		MaxAttempts: cfg.OTP_MaxAttempts,
	}
	otpSvc := services.NewOTPService(otpStore, otpConfig)
	resetSvc := services.NewResetService(userRepo, otpSvc, smsSender, emailSender, deliveryRepo, passwordSvc, tokenSvc, cfg.OTP_TTL)
	deliverySvc := services.NewDeliveryService(deliveryRepo, smsSender)

	// Handlers
	resetH := handlers.NewResetHandlers(resetSvc)
	webhookH := handlers.NewWebhookHandlers(deliverySvc)
	uploadH := handlers.NewUploadHandlers(fileStorage)
	adminH := handlers.NewAdminHandlers(deliverySvc)

	// Middleware
	jwtMW := middleware.NewAuthMW(tokenSvc)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(resetH, webhookH, uploadH, adminH, jwtMW, casbinMW)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST)")
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
