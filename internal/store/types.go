package store

import (
	"fmt"
	"time"

	"github.com/cwbudde/inkshape/internal/classify"
)

// Profile is one saved threshold band set together with the tuning run
// that produced it. Everything is serialized as JSON.
type Profile struct {
	// Name identifies the profile; it doubles as the directory name.
	Name string `json:"name"`

	// Metric names the classifier strategy the bands belong to:
	// "fill" or "compactness".
	Metric string `json:"metric"`

	// Bands are the tuned thresholds.
	Bands classify.Bands `json:"bands"`

	// Tuning provenance.
	Accuracy    float64 `json:"accuracy"`
	InitialCost float64 `json:"initialCost"`
	BestCost    float64 `json:"bestCost"`
	Samples     int     `json:"samples"`
	Iters       int     `json:"iters"`
	PopSize     int     `json:"popSize"`
	Seed        int64   `json:"seed"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the fields the engine depends on.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if p.Metric != "fill" && p.Metric != "compactness" {
		return fmt.Errorf("unknown metric %q", p.Metric)
	}
	if len(p.Bands.Rules) == 0 {
		return fmt.Errorf("profile %s has no band rules", p.Name)
	}
	return nil
}

// ProfileInfo is the listing view of a stored profile.
type ProfileInfo struct {
	Name      string    `json:"name"`
	Metric    string    `json:"metric"`
	Accuracy  float64   `json:"accuracy"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToInfo reduces a profile to its listing metadata.
func (p *Profile) ToInfo() ProfileInfo {
	return ProfileInfo{
		Name:      p.Name,
		Metric:    p.Metric,
		Accuracy:  p.Accuracy,
		CreatedAt: p.CreatedAt,
	}
}

// Classifier materializes the profile as a ready-to-use strategy.
func (p *Profile) Classifier() (*classify.GeomClassifier, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	metric := classify.MetricCompactness
	if p.Metric == "fill" {
		metric = classify.MetricFill
	}
	return &classify.GeomClassifier{Metric: metric, Bands: p.Bands}, nil
}
