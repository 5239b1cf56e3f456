package main

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-api/internal/handler"
)

func registerRoutes(api *gin.RouterGroup, terms *handler.TermHandler, booking *handler.BookingHandler) {
	api.GET("/terms", terms.List)
	api.GET("/terms/:id", terms.Get)

	calendar := api.Group("/terms/:id/calendar")
	calendar.GET("/disabled-dates", booking.DisabledDates)
	calendar.GET("/days/:date", booking.CalendarDay)
	calendar.POST("/refresh", booking.RefreshCalendar)

	tutors := api.Group("/terms/:id/tutors")
	tutors.GET("", booking.EligibleTutors)
	tutors.GET("/:userId/start-times", booking.StartTimes)
	tutors.GET("/:userId/end-times", booking.EndTimes)
	tutors.GET("/:userId/location", booking.Location)

	appointments := api.Group("/appointments")
	appointments.POST("", booking.Book)
	appointments.POST("/validate", booking.Validate)
	appointments.PUT("/:id", booking.Reschedule)
	appointments.DELETE("/:id", booking.Cancel)

	api.GET("/users/:id/appointments", booking.ListForUser)
}
