package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dioprayoga/garasi/backend-go/internal/config"
	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
)

// Ranker is the external ranking strategy. It receives a fully built prompt
// and returns the raw model output, expected to be a JSON integer array of
// car ids. Implementations get one shot; the service owns the fallback.
type Ranker interface {
	GenerateRanking(ctx context.Context, prompt string) (string, error)
}

// Preferences is the free-form preference object accepted by the
// recommendation endpoint. Empty fields are simply not filtered on.
type Preferences struct {
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Fuel        string `json:"fuel"`
	Description string `json:"description"`
}

// Recommendation pairs a car with its locally synthesized justification.
type Recommendation struct {
	Car       models.Car `json:"car"`
	Reasoning string     `json:"reasoning"`
}

// RecommendationResult is the endpoint payload: a human summary plus the
// ranked cars. Recommendations is empty (never nil) when nothing matched.
type RecommendationResult struct {
	Message         string           `json:"message"`
	Recommendations []Recommendation `json:"recommendations"`
}

// RecommendationService defines the interface for the recommendation flow
type RecommendationService interface {
	Recommend(ctx context.Context, budget int64, prefs Preferences) (*RecommendationResult, error)
}

type recommendationService struct {
	carRepo      repository.CarRepository
	categoryRepo repository.CategoryRepository
	ranker       Ranker
	cfg          *config.Config
	logger       *slog.Logger
}

// NewRecommendationService creates a new recommendation service instance.
// ranker may be nil (no API key configured); the deterministic fallback then
// ranks every request.
func NewRecommendationService(
	carRepo repository.CarRepository,
	categoryRepo repository.CategoryRepository,
	ranker Ranker,
	cfg *config.Config,
	logger *slog.Logger,
) RecommendationService {
	return &recommendationService{
		carRepo:      carRepo,
		categoryRepo: categoryRepo,
		ranker:       ranker,
		cfg:          cfg,
		logger:       logger,
	}
}

const topN = 3

func (s *recommendationService) Recommend(ctx context.Context, budget int64, prefs Preferences) (*RecommendationResult, error) {
	if budget <= 0 {
		return nil, ErrInvalidBudget
	}

	filter := repository.CandidateFilter{
		MaxPrice: budget,
		Brand:    prefs.Brand,
		Fuel:     prefs.Fuel,
	}

	// A category preference narrows the filter only when it resolves to an
	// existing category; an unknown name is ignored, not an error.
	if prefs.Category != "" {
		category, err := s.categoryRepo.FindByNameLike(prefs.Category)
		if err == nil {
			filter.CategoryID = &category.ID
		} else if !errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, err
		}
	}

	candidates, err := s.carRepo.FindCandidates(filter)
	if err != nil {
		s.logger.Error("❌ [Recommendation] Candidate query failed", "error", err)
		return nil, err
	}

	if len(candidates) == 0 {
		s.logger.Info("🔍 [Recommendation] No candidates under budget", "budget", budget)
		return &RecommendationResult{
			Message:         "Maaf, tidak ada kendaraan yang sesuai dengan kriteria Anda.",
			Recommendations: []Recommendation{},
		}, nil
	}

	ids := s.rankWithFallback(ctx, candidates, budget, prefs)

	chosen, err := s.carRepo.FindByIDs(ids)
	if err != nil {
		s.logger.Error("❌ [Recommendation] Failed to load ranked cars", "error", err)
		return nil, err
	}
	chosen = orderByIDs(chosen, ids)

	recommendations := make([]Recommendation, 0, len(chosen))
	for i := range chosen {
		recommendations = append(recommendations, Recommendation{
			Car:       chosen[i],
			Reasoning: buildReasoning(&chosen[i]),
		})
	}

	message := fmt.Sprintf(
		"Berdasarkan budget Anda sebesar Rp %s dan preferensi yang diberikan, berikut adalah %d rekomendasi kendaraan terbaik untuk Anda:",
		formatRupiah(budget), len(recommendations),
	)

	return &RecommendationResult{Message: message, Recommendations: recommendations}, nil
}

// rankWithFallback asks the external ranker for the top ids and falls back to
// the deterministic price ranking when the call fails, the output does not
// parse, or the model returns nothing. One attempt, no retries: the call is
// advisory and the endpoint must stay usable when it degrades.
func (s *recommendationService) rankWithFallback(ctx context.Context, candidates []models.Car, budget int64, prefs Preferences) []uint {
	if s.ranker == nil {
		return fallbackRanking(candidates)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.AITimeout)*time.Second)
	defer cancel()

	prompt := buildRankingPrompt(candidates, budget, prefs)
	raw, err := s.ranker.GenerateRanking(ctx, prompt)
	if err != nil {
		s.logger.Warn("⚠️ [Recommendation] Ranking call failed, using fallback", "error", err)
		return fallbackRanking(candidates)
	}

	ids, err := parseRanking(raw, candidates)
	if err != nil || len(ids) == 0 {
		s.logger.Warn("⚠️ [Recommendation] Unusable ranking output, using fallback", "error", err, "raw", raw)
		return fallbackRanking(candidates)
	}

	return ids
}

// fallbackRanking is the default strategy: the first topN candidates of the
// price-descending filtered list.
func fallbackRanking(candidates []models.Car) []uint {
	n := topN
	if len(candidates) < n {
		n = len(candidates)
	}
	ids := make([]uint, 0, n)
	for _, car := range candidates[:n] {
		ids = append(ids, car.ID)
	}
	return ids
}

// buildRankingPrompt serializes the candidate set and the stated criteria
// into the instruction sent to the model.
func buildRankingPrompt(candidates []models.Car, budget int64, prefs Preferences) string {
	var b strings.Builder
	b.WriteString("I want you to recommend the user with top 3 cars from the list below:\n")
	for _, car := range candidates {
		fmt.Fprintf(&b, "- %s %s (ID: %d, Price: Rp %s)\n", car.Brand, car.Type, car.ID, formatRupiah(car.Price))
	}
	b.WriteString("based on the following criteria:\n")
	fmt.Fprintf(&b, "- Budget: Rp %s\n", formatRupiah(budget))

	prefsJSON, _ := json.Marshal(prefs)
	fmt.Fprintf(&b, "- Preferences: %s\n", prefsJSON)
	b.WriteString("Response with Array of ID")
	return b.String()
}

// parseRanking decodes the model output as a JSON integer array and keeps
// only ids that actually belong to the candidate set, preserving order.
func parseRanking(raw string, candidates []models.Car) ([]uint, error) {
	var parsed []int64
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("ranking output is not a JSON integer array: %w", err)
	}

	valid := make(map[uint]bool, len(candidates))
	for _, car := range candidates {
		valid[car.ID] = true
	}

	ids := make([]uint, 0, topN)
	for _, id := range parsed {
		if id <= 0 || !valid[uint(id)] {
			continue
		}
		ids = append(ids, uint(id))
		if len(ids) == topN {
			break
		}
	}
	return ids, nil
}

// orderByIDs re-sorts the fetched rows into the ranked id order.
func orderByIDs(cars []models.Car, ids []uint) []models.Car {
	byID := make(map[uint]models.Car, len(cars))
	for _, car := range cars {
		byID[car.ID] = car
	}

	ordered := make([]models.Car, 0, len(ids))
	for _, id := range ids {
		if car, ok := byID[id]; ok {
			ordered = append(ordered, car)
		}
	}
	return ordered
}

// buildReasoning synthesizes the justification from the car's own fields; it
// is never model-generated.
func buildReasoning(car *models.Car) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s adalah pilihan yang bagus karena sesuai dengan budget Anda", car.Brand, car.Type)

	if len(car.Features) > 0 {
		shown := car.Features
		more := false
		if len(shown) > topN {
			shown = shown[:topN]
			more = true
		}
		fmt.Fprintf(&b, " dan memiliki fitur-fitur seperti %s", strings.Join(shown, ", "))
		if more {
			b.WriteString(", dan lainnya")
		}
	}
	b.WriteString(".")
	return b.String()
}

// formatRupiah renders an amount with Indonesian thousand separators
// ("150000000" -> "150.000.000").
func formatRupiah(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// Service errors
var ErrInvalidBudget = errors.New("budget must be a number greater than 0")
