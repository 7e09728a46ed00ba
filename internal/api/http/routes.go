package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/incident-map/internal/directory"
	"github.com/i474232898/incident-map/internal/geo"
	"github.com/i474232898/incident-map/internal/incident"
	"github.com/i474232898/incident-map/internal/profile"
	"github.com/i474232898/incident-map/internal/safety"
	"github.com/i474232898/incident-map/internal/submission"
)

var validate = validator.New()

// Services are the handlers' dependencies, built once in main.
type Services struct {
	Incidents   *incident.Service
	Zones       []incident.EmergencyZone
	Directory   *directory.Service
	Submissions *submission.Service
	Profiles    *profile.Service
	Safety      *safety.Service
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc Services) {
	v1 := app.Group("/api/v1")

	v1.Get("/incidents", func(c *fiber.Ctx) error {
		return c.JSON(svc.Incidents.Aggregate(c.UserContext()))
	})

	v1.Get("/incidents/all", func(c *fiber.Ctx) error {
		return c.JSON(svc.Incidents.All(c.UserContext()))
	})

	v1.Get("/incidents/geojson", func(c *fiber.Ctx) error {
		return c.JSON(svc.Incidents.Aggregate(c.UserContext()).FeatureCollection())
	})

	v1.Get("/incidents/:category", func(c *fiber.Ctx) error {
		category, ok := incident.ParseCategory(c.Params("category"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown incident category")
		}
		return c.JSON(svc.Incidents.Fetch(c.UserContext(), category))
	})

	v1.Get("/zones", func(c *fiber.Ctx) error {
		return c.JSON(svc.Zones)
	})

	v1.Get("/zones/geojson", func(c *fiber.Ctx) error {
		return c.JSON(incident.ZonesFeatureCollection(svc.Zones))
	})

	v1.Get("/resources", func(c *fiber.Ctx) error {
		loc, err := parsePointQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(svc.Directory.GetResources(c.UserContext(), loc))
	})

	v1.Get("/campaigns", func(c *fiber.Ctx) error {
		return c.JSON(svc.Directory.GetCampaigns(c.UserContext()))
	})

	v1.Post("/submissions/:kind", func(c *fiber.Ctx) error {
		kind, err := submission.ParseKind(c.Params("kind"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "unknown submission kind")
		}

		var payload submission.Payload
		switch kind {
		case submission.KindResource:
			payload, err = bindBody[submission.ResourcePayload](c)
		case submission.KindCampaign:
			payload, err = bindBody[submission.CampaignPayload](c)
		default:
			payload, err = bindBody[submission.IncidentPayload](c)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := svc.Submissions.SubmitPayload(c.UserContext(), payload)
		if err != nil {
			if errors.Is(err, submission.ErrInvalid) {
				return err
			}
			return fiber.NewError(fiber.StatusBadGateway, "submission could not be delivered")
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	})

	v1.Get("/profile", func(c *fiber.Ctx) error {
		p, err := svc.Profiles.Get(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(p)
	})

	v1.Put("/profile", func(c *fiber.Ctx) error {
		p, err := bindBody[profile.UserProfile](c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		saved, err := svc.Profiles.Update(c.UserContext(), p)
		if err != nil {
			return err
		}
		return c.JSON(saved)
	})

	v1.Delete("/profile", func(c *fiber.Ctx) error {
		if err := svc.Profiles.Reset(c.UserContext()); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/onboarding", func(c *fiber.Ctx) error {
		done, err := svc.Profiles.Onboarded(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"completed": done})
	})

	v1.Post("/onboarding", func(c *fiber.Ctx) error {
		p, err := bindBody[profile.UserProfile](c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		saved, err := svc.Profiles.CompleteOnboarding(c.UserContext(), p)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	v1.Get("/safety-status", func(c *fiber.Ctx) error {
		loc, err := parsePointQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if loc == nil {
			// Fall back to the saved profile's position.
			p, err := svc.Profiles.Get(c.UserContext())
			if err == nil {
				loc = p.Point()
			}
		}
		if loc == nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon are required when no profile location is known")
		}
		return c.JSON(svc.Safety.Status(c.UserContext(), *loc))
	})
}

// parsePointQuery reads optional lat/lon query parameters. Both or neither
// must be present; neither yields a nil point.
func parsePointQuery(c *fiber.Ctx) (*geo.Point, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("lat and lon must be given together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, errors.New("lon must be a number")
	}

	p := geo.Point{Latitude: lat, Longitude: lon}
	if err := validate.Struct(p); err != nil {
		return nil, err
	}
	return &p, nil
}

func bindBody[T any](c *fiber.Ctx) (T, error) {
	var v T
	if err := c.BodyParser(&v); err != nil {
		return v, err
	}
	return v, nil
}
