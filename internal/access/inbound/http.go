package inbound

import (
	"github.com/Rishu9835/DOORWISE/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Admin session
	r.POST("/api/v1/access/admin/login", end.AdminLogin)
	r.POST("/api/v1/access/admin/logout", end.AdminLogout)

	// Door
	r.POST("/api/v1/access/door/otp", end.DoorOTP) // need authenticated
	r.POST("/api/v1/access/door/unlock", end.DoorUnlock)

	// Members
	r.POST("/api/v1/access/entries", end.LogEntry)
	r.POST("/api/v1/access/password/change", end.PasswordChange)
	r.GET("/api/v1/access/credentials", end.ListCredentials) // need authenticated
}
