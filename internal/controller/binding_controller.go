// FILE: internal/controller/binding_controller.go
package controller

import (
	"clinical-curation-be/internal/dto"
	"clinical-curation-be/internal/pkg/serverutils"
	"clinical-curation-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBindingController interface {
	RegisterRoutes(r fiber.Router)
	Bind(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type bindingController struct {
	bindingService service.IBindingService
}

func NewBindingController(bindingService service.IBindingService) IBindingController {
	return &bindingController{
		bindingService: bindingService,
	}
}

func (c *bindingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/registry/v1")
	h.Post(":id/bindings", c.Bind)
	h.Get(":id/bindings", c.List)
}

func (c *bindingController) Bind(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}

	var req dto.BindConsumerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.bindingService.Bind(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success bind consumer", res))
}

func (c *bindingController) List(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}

	res, err := c.bindingService.BindingsFor(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list bindings", res))
}
