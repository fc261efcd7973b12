package service

import "context"

// RecommendRequest captures the traveller's constraints for a destination
// recommendation. All fields are free-form text from the frontend; empty
// values mean "no preference".
type RecommendRequest struct {
	Destination   string // Preferred keywords or interests, may be empty.
	People        string // Party size description, e.g. "2 adults".
	BudgetLevel   string // Rough budget grade chosen on the frontend.
	DepartureDate string // Planned departure date, free-form.
	TripNights    string // Number of nights as entered, may be empty.
}

// CityRecommendation is the single destination the model proposes.
type CityRecommendation struct {
	CityName    string   `json:"cityName"`
	Country     string   `json:"country"`
	Emoji       string   `json:"emoji"`
	MatchScore  int      `json:"matchScore"`
	Tags        []string `json:"tags"`
	Reason      string   `json:"reason"`
	FlightPrice string   `json:"flightPrice"`
	HotelPrice  string   `json:"hotelPrice"`
	Weather     string   `json:"weather"`
}

// CityDetailRequest asks for a full city guide covering a date range. When
// the dates are missing or inconsistent, TripNights is consulted, and
// failing that a 3-night default applies.
type CityDetailRequest struct {
	CityName   string
	Country    string
	StartDate  string // ISO date, may be empty.
	EndDate    string // ISO date, may be empty.
	TripNights string // Fallback night count as entered, may be empty.
}

// PlaceInfo is a named point of interest or dish with a short description.
type PlaceInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ItineraryDay is one day of a trip plan.
type ItineraryDay struct {
	Day      int      `json:"day"`
	Theme    string   `json:"theme"`
	Schedule []string `json:"schedule"`
}

// CityDetail is the full guide the model produces for one city.
type CityDetail struct {
	Intro      string         `json:"intro"`
	BestSeason string         `json:"bestSeason"`
	Currency   string         `json:"currency"`
	Spots      []PlaceInfo    `json:"spots"`
	Foods      []PlaceInfo    `json:"foods"`
	Itinerary  []ItineraryDay `json:"itinerary"`
}

// ModifyItineraryRequest asks the model to rework an existing plan while
// keeping its day count and structure.
type ModifyItineraryRequest struct {
	CityName         string
	CurrentItinerary []ItineraryDay
	UserRequest      string
}

// ItineraryService generates travel content with a large language model.
// Implementations are expected to tolerate sloppy model output (markdown
// fences, stray prose around the JSON payload).
type ItineraryService interface {
	// RecommendCity proposes exactly one destination for the given constraints.
	RecommendCity(ctx context.Context, req RecommendRequest) (*CityRecommendation, error)

	// CityDetail produces a day-by-day guide for a chosen city.
	CityDetail(ctx context.Context, req CityDetailRequest) (*CityDetail, error)

	// ModifyItinerary revises an existing plan according to a user instruction.
	ModifyItinerary(ctx context.Context, req ModifyItineraryRequest) ([]ItineraryDay, error)
}
