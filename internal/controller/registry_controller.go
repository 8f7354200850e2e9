// FILE: internal/controller/registry_controller.go
package controller

import (
	"encoding/json"

	"clinical-curation-be/internal/dto"
	"clinical-curation-be/internal/pkg/serverutils"
	"clinical-curation-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRegistryController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	RemoveLatest(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ResolveName(ctx *fiber.Ctx) error
	ResolveTable(ctx *fiber.Ctx) error
}

type registryController struct {
	registryService  service.IRegistryService
	publisherService service.IPublisherService
}

func NewRegistryController(
	registryService service.IRegistryService,
	publisherService service.IPublisherService,
) IRegistryController {
	return &registryController{
		registryService:  registryService,
		publisherService: publisherService,
	}
}

func (c *registryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/registry/v1")
	h.Get("resolve/name/:name", c.ResolveName)
	h.Get("resolve/table/:table", c.ResolveTable)
	h.Post("", c.Register)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/latest", c.Latest)
	h.Put(":id", c.Update)
	h.Post(":id/refresh", c.Refresh)
	h.Delete(":id/latest", c.RemoveLatest)
	h.Delete(":id", c.Delete)
}

func (c *registryController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.registryService.RegisterFeature(ctx.Context(), &req)
	if err != nil {
		return err
	}

	if res.Existed {
		return ctx.JSON(serverutils.SuccessResponse("Feature already registered", res))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success register feature", res))
}

func (c *registryController) List(ctx *fiber.Ctx) error {
	res, err := c.registryService.GetAllFeatures(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list features", res))
}

func (c *registryController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}

	res, err := c.registryService.GetFeature(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show feature", res))
}

func (c *registryController) Latest(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}

	res, err := c.registryService.GetLatestVersion(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show latest version", res))
}

func (c *registryController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}

	var req dto.UpdateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.registryService.UpdateFeature(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update feature", res))
}

// Refresh enqueues the rebuild and returns immediately; the worker picks it
// up from the in-process queue.
func (c *registryController) Refresh(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}

	// Existence check up front so the async path still answers 404.
	if _, err := c.registryService.GetLatestVersion(ctx.Context(), id); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.PublishRefreshMessage{FeatureId: id})
	if err != nil {
		return err
	}
	if err := c.publisherService.Publish(ctx.Context(), payload); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any]("Refresh queued", nil))
}

func (c *registryController) RemoveLatest(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}
	force := ctx.QueryBool("force")

	if err := c.registryService.RemoveLatestVersion(ctx.Context(), id, force); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove latest version", nil))
}

func (c *registryController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}
	force := ctx.QueryBool("force")

	if err := c.registryService.DeleteFeature(ctx.Context(), id, force); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete feature", nil))
}

func (c *registryController) ResolveName(ctx *fiber.Ctx) error {
	id, err := c.registryService.ResolveFeatureName(ctx.Context(), ctx.Params("name"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve feature name", fiber.Map{"feature_id": id}))
}

func (c *registryController) ResolveTable(ctx *fiber.Ctx) error {
	res, err := c.registryService.ResolveTableName(ctx.Context(), ctx.Params("table"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve table lineage", res))
}
