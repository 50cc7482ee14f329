package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dashboard.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		// Empty location falls back to the service default.
		resp, err := service.GetDashboard(c.Context(), c.Query("location"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch dashboard data")
		}
		return c.JSON(resp)
	})

	v1.Get("/mode", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"mode": service.Mode()})
	})

	v1.Put("/mode", func(c *fiber.Ctx) error {
		var req modeRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := service.SetMode(dashboard.Mode(req.Mode)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"mode": service.Mode()})
	})

	v1.Put("/location", func(c *fiber.Ctx) error {
		var req locationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := service.SetLocation(req.Name); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"location": service.Location()})
	})
}

// modeRequest selects the dashboard data source.
type modeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=mock live"`
}

// locationRequest changes the default location.
type locationRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}
