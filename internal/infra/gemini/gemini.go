// Package gemini implements itinerary generation on top of Google's
// Generative AI API.
package gemini

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/fx"
	"google.golang.org/api/option"

	"voyage/config"
	domainerrors "voyage/internal/domain/errors"
	"voyage/internal/domain/service"
	"voyage/internal/errors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// itineraryService generates travel content through the Gemini API,
// walking a configured model fallback chain when a model is overloaded
// or retired.
type itineraryService struct {
	client *genai.Client
	models []string
	logger *slog.Logger
}

// NewItineraryService is the constructor for itineraryService. A missing
// API key is tolerated at boot; every call then fails with a
// configuration error so the rest of the app stays usable.
func NewItineraryService(params Params) (service.ItineraryService, error) {
	svc := &itineraryService{logger: params.Logger}

	if params.Config.GenAI == nil || params.Config.GenAI.APIKey == "" {
		params.Logger.Warn("generative AI key not configured, itinerary endpoints disabled")

		return svc, nil
	}
	svc.models = params.Config.GenAI.Models

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(params.Config.GenAI.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create generative AI client")
	}
	svc.client = client

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return svc, nil
}

// RecommendCity proposes exactly one destination for the given constraints.
func (s *itineraryService) RecommendCity(ctx context.Context, req service.RecommendRequest) (*service.CityRecommendation, error) {
	text, err := s.generateWithFallback(ctx, buildRecommendPrompt(req))
	if err != nil {
		return nil, err
	}

	var out service.CityRecommendation
	if err := decodeObject(text, &out); err != nil {
		s.logger.ErrorContext(ctx, "failed to parse recommendation response",
			slog.String("error", err.Error()))

		return nil, domainerrors.ErrItineraryMalformed
	}

	return &out, nil
}

// CityDetail produces a day-by-day guide for a chosen city.
func (s *itineraryService) CityDetail(ctx context.Context, req service.CityDetailRequest) (*service.CityDetail, error) {
	text, err := s.generateWithFallback(ctx, buildDetailPrompt(req))
	if err != nil {
		return nil, err
	}

	var out service.CityDetail
	if err := decodeObject(text, &out); err != nil {
		s.logger.ErrorContext(ctx, "failed to parse city detail response",
			slog.String("error", err.Error()))

		return nil, domainerrors.ErrItineraryMalformed
	}

	return &out, nil
}

// ModifyItinerary revises an existing plan according to a user instruction.
func (s *itineraryService) ModifyItinerary(ctx context.Context, req service.ModifyItineraryRequest) ([]service.ItineraryDay, error) {
	text, err := s.generateWithFallback(ctx, buildModifyPrompt(req))
	if err != nil {
		return nil, err
	}

	var out []service.ItineraryDay
	if err := decodeArray(text, &out); err != nil {
		s.logger.ErrorContext(ctx, "failed to parse modified itinerary response",
			slog.String("error", err.Error()))

		return nil, domainerrors.ErrItineraryMalformed
	}

	return out, nil
}

// generateWithFallback tries each configured model in order and returns
// the first non-empty response.
func (s *itineraryService) generateWithFallback(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", domainerrors.ErrInternalError.WithDetails("generative AI is not configured")
	}

	var lastErr error
	for _, name := range s.models {
		resp, err := s.client.GenerativeModel(name).GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			s.logger.WarnContext(ctx, "generative model call failed",
				slog.String("model", name),
				slog.String("error", err.Error()),
			)
			lastErr = err

			continue
		}

		if text := responseText(resp); text != "" {
			return text, nil
		}
	}

	if lastErr != nil {
		return "", domainerrors.ErrItineraryUnavailable.WithDetails(lastErr.Error())
	}

	return "", domainerrors.ErrItineraryUnavailable
}

// responseText flattens the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String()
}
