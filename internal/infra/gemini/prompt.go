package gemini

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"voyage/internal/domain/service"
)

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func buildRecommendPrompt(req service.RecommendRequest) string {
	duration := "undecided"
	if strings.TrimSpace(req.TripNights) != "" {
		duration = req.TripNights + " nights"
	}

	return fmt.Sprintf(`You are a trendy travel planner for people in their 20s and 30s.
Pick exactly ONE destination city that best fits the traveller below.

[Traveller]
- Party: %s
- Budget grade: %s
- Trip length: %s
- Departure date: %s
- Keywords / interests: %s

[Instructions]
1. Choose a city that matches the keywords and situation.
2. Estimate realistic lowest per-person flight and hotel prices.
3. Write the reason persuasively, three sentences at most.
4. Answer ONLY with the JSON below. No markdown, no extra text.

[JSON shape]
{
  "cityName": "city name",
  "country": "country name",
  "emoji": "one emoji representing the city",
  "matchScore": 95,
  "tags": ["#tag1", "#tag2", "#tag3"],
  "reason": "why this city fits (max 3 sentences)",
  "flightPrice": "approximate round-trip price",
  "hotelPrice": "approximate price per night",
  "weather": "expected weather for the dates and packing tip"
}`,
		orDefault(req.People, "unspecified"),
		orDefault(req.BudgetLevel, "unspecified"),
		duration,
		orDefault(req.DepartureDate, "undecided"),
		orDefault(req.Destination, "none (pick for me)"),
	)
}

// tripLength derives nights and days from the requested date range, then
// the explicit night count, and finally a 3-night default.
func tripLength(req service.CityDetailRequest) (nights, days int, period string) {
	nights, days = 3, 4

	start, startErr := time.Parse("2006-01-02", req.StartDate)
	end, endErr := time.Parse("2006-01-02", req.EndDate)
	if startErr == nil && endErr == nil && !start.After(end) {
		diff := int(end.Sub(start).Hours() / 24)
		if diff < 0 {
			diff = 0
		}

		return diff, diff + 1, req.StartDate + " ~ " + req.EndDate
	}

	if n, err := strconv.Atoi(strings.TrimSpace(req.TripNights)); err == nil && n >= 0 {
		return n, n + 1, ""
	}

	return nights, days, ""
}

func buildDetailPrompt(req service.CityDetailRequest) string {
	nights, days, period := tripLength(req)

	duration := fmt.Sprintf("%d nights %d days", nights, days)
	periodLine := ""
	if period != "" {
		periodLine = period + ", "
	}

	return fmt.Sprintf(`You are a professional travel planner.
Put together a rich guide for a trip to "%s, %s".
The trip is %s%s in total.

[Must include]
1. City introduction (intro): 2-3 appealing sentences.
2. Best season to visit (bestSeason).
3. Currency information (currency).
4. Top spots (spots): 3 entries with name and description.
5. Recommended food (foods): 3 entries with name and description.
6. A %s itinerary (itinerary): a theme and route for each of Day 1 to Day %d.

Answer with pure JSON only, no markdown:
{
  "intro": "...",
  "bestSeason": "...",
  "currency": "...",
  "spots": [{ "name": "...", "description": "..." }],
  "foods": [{ "name": "...", "description": "..." }],
  "itinerary": [
    { "day": 1, "theme": "...", "schedule": ["place 1", "place 2", "place 3"] }
  ]
}
The itinerary array must cover all %d days.`,
		req.CityName, req.Country, periodLine, duration, duration, days, days)
}

func buildModifyPrompt(req service.ModifyItineraryRequest) string {
	current, _ := json.Marshal(req.CurrentItinerary)

	return fmt.Sprintf(`You are a travel planner.
The current itinerary for "%s" is:
%s

The traveller asks: "%s"

Revise the itinerary accordingly.
- Keep the existing plan as the base; change places, themes or order to satisfy the request.
- Keep the overall number of days (Day N) and the structure.
- Respond with ONLY the JSON itinerary array, no markdown and no explanations.

Example shape:
[
  { "day": 1, "theme": "updated theme", "schedule": ["item 1", "item 2", "item 3"] },
  { "day": 2, "theme": "...", "schedule": ["..."] }
]`,
		req.CityName, string(current), req.UserRequest)
}
