package container

import (
	app "leafcheck/internal/application"
	"leafcheck/internal/domain/port"
)

type Container struct {
	UserService       *app.UserService
	InspectionService *app.InspectionService
}

func New(userRepo port.UserRepository, inspector port.LeafInspector, describer port.ReportDescriber, reports port.ReportRepository) *Container {
	userService := app.NewUserService(userRepo)
	inspectionService := app.NewInspectionService(userService, inspector, describer, reports)

	return &Container{
		UserService:       userService,
		InspectionService: inspectionService,
	}
}
