package handler

import (
	"log/slog"
	"net/http"

	"voyage/internal/delivery/http/response"
	"voyage/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ItineraryHandler exposes the AI trip planning endpoints.
type ItineraryHandler struct {
	svc    service.ItineraryService
	logger *slog.Logger
}

// NewItineraryHandler is the constructor for ItineraryHandler, injected by Fx.
func NewItineraryHandler(svc service.ItineraryService, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{svc: svc, logger: logger}
}

type recommendRequest struct {
	Destination   string `json:"destination"`
	People        string `json:"people"`
	BudgetLevel   string `json:"budgetLevel"`
	DepartureDate string `json:"departureDate"`
	TripNights    string `json:"tripNights"`
}

type cityDetailRequest struct {
	CityName   string `json:"cityName" validate:"required"`
	Country    string `json:"country"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	TripNights string `json:"tripNights"`
}

type modifyItineraryRequest struct {
	CityName         string                 `json:"cityName" validate:"required"`
	CurrentItinerary []service.ItineraryDay `json:"currentItinerary" validate:"required,min=1"`
	UserRequest      string                 `json:"userRequest" validate:"required"`
}

// Recommend proposes one destination for the traveller's constraints.
func (h *ItineraryHandler) Recommend(c echo.Context) error {
	var input recommendRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recommendation input")
	}

	recommendation, err := h.svc.RecommendCity(c.Request().Context(), service.RecommendRequest{
		Destination:   input.Destination,
		People:        input.People,
		BudgetLevel:   input.BudgetLevel,
		DepartureDate: input.DepartureDate,
		TripNights:    input.TripNights,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, recommendation)
}

// CityDetail produces a day-by-day guide for a chosen city.
func (h *ItineraryHandler) CityDetail(c echo.Context) error {
	var input cityDetailRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid city detail input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "City name is required")
	}

	detail, err := h.svc.CityDetail(c.Request().Context(), service.CityDetailRequest{
		CityName:   input.CityName,
		Country:    input.Country,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		TripNights: input.TripNights,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, detail)
}

// ModifyItinerary reworks an existing plan according to a user instruction.
func (h *ItineraryHandler) ModifyItinerary(c echo.Context) error {
	var input modifyItineraryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid itinerary input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "City name, the current itinerary and a request are required")
	}

	itinerary, err := h.svc.ModifyItinerary(c.Request().Context(), service.ModifyItineraryRequest{
		CityName:         input.CityName,
		CurrentItinerary: input.CurrentItinerary,
		UserRequest:      input.UserRequest,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]any{"itinerary": itinerary})
}
