package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"backend/models"
	"backend/utils"
)

const (
	spoonacularBaseURL = "https://api.spoonacular.com"

	// Per-item nutrition detail lookups are abandoned after this long and
	// the item is reported with unknown nutrition; one slow lookup must not
	// block or fail the whole result set.
	defaultDetailTimeout = 4 * time.Second

	searchPageSize = 5
)

// SpoonacularService searches the Spoonacular ingredient database and fans
// out per-result 100g nutrition detail lookups.
type SpoonacularService struct {
	baseURL       string
	apiKey        string
	client        *http.Client
	detailTimeout time.Duration
}

func NewSpoonacularService() *SpoonacularService {
	timeout := defaultDetailTimeout
	if v := os.Getenv("NUTRITION_DETAIL_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}
	return &SpoonacularService{
		baseURL:       spoonacularBaseURL,
		apiKey:        os.Getenv("SPOONACULAR_KEY"),
		client:        &http.Client{Timeout: 10 * time.Second},
		detailTimeout: timeout,
	}
}

// FoodSearchResult mirrors the wire shape the app consumes. Nutrient fields
// are per 100 g and null when the detail lookup failed or the value is
// missing upstream — never estimated.
type FoodSearchResult struct {
	Name           string   `json:"name"`
	ID             int      `json:"fdcId"`
	Calories       *float64 `json:"calories"`
	Fiber          *float64 `json:"fiber"`
	Sugar          *float64 `json:"sugar"`
	Protein        *float64 `json:"protein"`
	Water          *float64 `json:"water"`
	AvailableUnits []string `json:"availableUnits"`
}

// Search queries the ingredient parser, then fetches 100g nutrition for
// each hit concurrently. Detail failures are isolated per item.
func (s *SpoonacularService) Search(ctx context.Context, query string) ([]FoodSearchResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("SPOONACULAR_KEY not configured")
	}

	u := fmt.Sprintf("%s/food/ingredients/search?query=%s&number=%d&apiKey=%s",
		s.baseURL, url.QueryEscape(query), searchPageSize, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: spoonacular search: %v", utils.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: spoonacular search status %d: %s", utils.ErrUpstreamUnavailable, resp.StatusCode, body)
	}

	var parsed struct {
		Results []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	results := make([]FoodSearchResult, len(parsed.Results))
	var wg sync.WaitGroup
	for i, item := range parsed.Results {
		wg.Add(1)
		go func(i, id int, name string) {
			defer wg.Done()
			r := FoodSearchResult{
				Name:           capitalize(name),
				ID:             id,
				AvailableUnits: utils.AvailableUnits(name),
			}
			if n := s.fetchDetail(ctx, id); n != nil {
				r.Calories = n.Calories
				r.Fiber = n.Fiber
				r.Sugar = n.Sugar
				r.Protein = n.Protein
				r.Water = n.Water
			}
			results[i] = r
		}(i, item.ID, item.Name)
	}
	wg.Wait()

	return results, nil
}

// fetchDetail returns the 100g nutrition for one ingredient, or nil on any
// failure. Failures are advisory only.
func (s *SpoonacularService) fetchDetail(ctx context.Context, id int) *models.Nutrition {
	ctx, cancel := context.WithTimeout(ctx, s.detailTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/food/ingredients/%d/information?amount=100&unit=grams&apiKey=%s",
		s.baseURL, id, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("nutrition detail for ingredient %d abandoned: %v", id, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("nutrition detail for ingredient %d returned status %d", id, resp.StatusCode)
		return nil
	}

	var info struct {
		Nutrition struct {
			Nutrients []struct {
				Name   string  `json:"name"`
				Amount float64 `json:"amount"`
			} `json:"nutrients"`
		} `json:"nutrition"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		log.Printf("nutrition detail for ingredient %d unreadable: %v", id, err)
		return nil
	}

	find := func(name string) *float64 {
		for _, n := range info.Nutrition.Nutrients {
			if strings.EqualFold(n.Name, name) {
				v := n.Amount
				return &v
			}
		}
		return nil
	}
	return &models.Nutrition{
		Calories: find("Calories"),
		Fiber:    find("Fiber"),
		Sugar:    find("Sugar"),
		Protein:  find("Protein"),
		Water:    find("Water"),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
