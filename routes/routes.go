package routes

import (
	"net/http"

	"pulsefit/admin"
	"pulsefit/auth"
	"pulsefit/booking"
	"pulsefit/credits"
	"pulsefit/middleware"
	"pulsefit/notify"
	"pulsefit/profile"
	"pulsefit/ratelim"
	"pulsefit/receipts"
	"pulsefit/settings"
	"pulsefit/uploads"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/siteimg/*filepath", http.Dir("static/siteimg"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
	router.GET("/api/auth/me", middleware.Authenticate(auth.Me))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", ratelim.RateLimit(middleware.Authenticate(profile.UpdateProfile)))
}

func AddBookingRoutes(router *httprouter.Router) {
	// availability is public; a token only adds the caller's own
	// booking/waitlist annotations to the view
	router.GET("/api/slots/:date", middleware.OptionalAuth(booking.GetSlotsByDate))
	router.POST("/api/bookings", ratelim.RateLimit(middleware.Authenticate(booking.CreateBooking)))
	router.DELETE("/api/bookings/:id", ratelim.RateLimit(middleware.Authenticate(booking.CancelBooking)))
	router.GET("/api/bookings", middleware.Authenticate(booking.MyBookings))
	router.GET("/api/bookings/:id/pass", ratelim.RateLimit(middleware.Authenticate(receipts.PrintBookingPass)))
}

func AddWaitlistRoutes(router *httprouter.Router) {
	router.POST("/api/waitlist", ratelim.RateLimit(middleware.Authenticate(booking.JoinWaitlistHandler)))
	router.DELETE("/api/waitlist/:id", ratelim.RateLimit(middleware.Authenticate(booking.LeaveWaitlistHandler)))
	router.GET("/api/waitlist", middleware.Authenticate(booking.MyWaitlist))
}

func AddCreditRoutes(router *httprouter.Router) {
	router.GET("/api/credits/packages", credits.ListPackages)
	router.POST("/api/credits/purchase", ratelim.RateLimit(middleware.Authenticate(credits.Purchase)))
	router.GET("/api/credits/transactions", middleware.Authenticate(credits.MyTransactions))
	router.GET("/api/credits/balance", middleware.Authenticate(credits.Balance))
	router.GET("/api/credits/transactions/:id/receipt", ratelim.RateLimit(middleware.Authenticate(receipts.PrintTransactionReceipt)))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/bookings", middleware.AdminOnly(admin.ListBookings))
	router.GET("/api/admin/clients", middleware.AdminOnly(admin.ListClients))
	router.GET("/api/admin/transactions", middleware.AdminOnly(admin.ListTransactions))
	router.POST("/api/admin/transactions/:id/confirm", ratelim.RateLimit(middleware.AdminOnly(admin.ConfirmTransaction)))
	router.POST("/api/admin/clients/:id/make-admin", ratelim.RateLimit(middleware.AdminOnly(admin.MakeAdmin)))
	router.DELETE("/api/admin/bookings/:id", ratelim.RateLimit(middleware.AdminOnly(admin.ForceCancelBooking)))
	router.PUT("/api/admin/settings", ratelim.RateLimit(middleware.AdminOnly(settings.UpdateSiteSettings)))
	router.POST("/api/admin/uploads", ratelim.RateLimit(middleware.AdminOnly(uploads.UploadSiteImage)))
}

func AddSettingsRoutes(router *httprouter.Router) {
	router.GET("/api/settings", settings.GetSiteSettings)
}

func AddNotificationRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/notifications", notify.WebSocketHandler(hub))
	router.GET("/api/notifications", middleware.Authenticate(notify.ListNotifications))
	router.POST("/api/notifications/read", middleware.Authenticate(notify.MarkNotificationsRead))
}
