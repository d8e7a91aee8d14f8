package http

import (
	"userapp/internal/adapter/http/handler"
	"userapp/internal/core/port"
	"userapp/internal/core/service"
)

type Container struct {
	UserRepo port.UserRepository
	UserSvc  port.UserService

	UserHandler *handler.UserHandler
	DemoHandler *handler.DemoHandler
}

// NewContainer wires the service and handlers over a repository chosen by
// the caller (sqlite or postgres).
func NewContainer(userRepo port.UserRepository, probe port.Telemetry) *Container {
	userSvc := service.NewUserService(userRepo, probe)

	return &Container{
		UserRepo: userRepo,
		UserSvc:  userSvc,

		UserHandler: handler.NewUserHandler(userSvc),
		DemoHandler: handler.NewDemoHandler(),
	}
}
