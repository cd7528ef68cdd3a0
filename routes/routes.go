package routes

import (
	"poolup/activities"
	"poolup/auth"
	"poolup/middleware"
	"poolup/ratelim"
	"poolup/scheduler"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *auth.API) {
	router.POST("/api/auth/login", rl.Limit(api.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(api.Logout))
}

func AddActivityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *activities.API) {
	router.GET("/api/activities", middleware.Authenticate(api.GetActivities))
	router.GET("/api/activities/:activityid", middleware.Authenticate(api.GetActivity))
	router.POST("/api/activities", rl.Limit(middleware.Authenticate(api.CreateActivity)))
}

func AddSchedulerRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *scheduler.API) {
	router.GET("/api/scheduler/:activityid/slots", middleware.Authenticate(api.GetSlots))
	router.GET("/api/scheduler/:activityid/grid", middleware.Authenticate(api.GetGrid))
	router.POST("/api/scheduler/:activityid/select", middleware.Authenticate(api.SelectTime))
	router.POST("/api/scheduler/:activityid/slots", rl.Limit(middleware.Authenticate(api.CreateSlot)))
	router.POST("/api/scheduler/:activityid/slots/:slotid/join", rl.Limit(middleware.Authenticate(api.JoinSlot)))
	router.POST("/api/scheduler/:activityid/slots/:slotid/leave", rl.Limit(middleware.Authenticate(api.LeaveSlot)))
}
