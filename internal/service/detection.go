package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/smartchef/ai-service/internal/types"
)

// DetectionService wraps the YOLO inference endpoint that turns an image
// into raw object detections, and normalizes its labels into the ingredient
// vocabulary the retrieval layer expects.
type DetectionService struct {
	apiURL        string
	confThreshold float64
	labelMap      map[string]string
	client        *http.Client
}

// NewDetectionService creates a new DetectionService instance
func NewDetectionService() (*DetectionService, error) {
	apiURL := os.Getenv("DETECTION_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8082/detect"
	}

	confThreshold := 0.5
	if v := os.Getenv("DETECTION_CONF_THRESHOLD"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DETECTION_CONF_THRESHOLD: %w", err)
		}
		confThreshold = parsed
	}

	labelMap := map[string]string{}
	if path := os.Getenv("DETECTION_LABEL_MAP_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read label map file: %w", err)
		}
		if err := json.Unmarshal(data, &labelMap); err != nil {
			return nil, fmt.Errorf("failed to parse label map file: %w", err)
		}
		log.Printf("[DetectionService] Loaded %d label mappings from %s", len(labelMap), path)
	}

	return &DetectionService{
		apiURL:        apiURL,
		confThreshold: confThreshold,
		labelMap:      labelMap,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type detectResponse struct {
	Detections []types.Detection `json:"detections"`
}

// Detect runs the vision model on the image and returns the deduplicated,
// normalized ingredient names of every detection that clears the confidence
// threshold.
func (s *DetectionService) Detect(ctx context.Context, image []byte) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to create detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detection request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("detection API returned status %d: %s", resp.StatusCode, string(data))
	}

	var result detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode detection response: %w", err)
	}

	return s.normalize(result.Detections), nil
}

// normalize filters by confidence, maps raw model labels through the label
// map and dedupes. Labels without a mapping fall back to their lowercase
// form so a partial map never hides detections.
func (s *DetectionService) normalize(detections []types.Detection) []string {
	seen := make(map[string]struct{})
	ingredients := make([]string, 0, len(detections))
	for _, d := range detections {
		if d.Confidence < s.confThreshold {
			continue
		}
		name, ok := s.labelMap[d.Label]
		if !ok {
			name = strings.ToLower(strings.TrimSpace(d.Label))
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ingredients = append(ingredients, name)
	}
	sort.Strings(ingredients)
	return ingredients
}
