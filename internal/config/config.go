// Package config holds the generation parameters: table sizes, the date
// window, and every distribution the generators sample from. The core only
// reads this bundle; nothing mutates it after loading.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/PSavvateev/cs-data-generator/internal/sampling"
)

const dateLayout = "2006-01-02"

// MeanDeviation parameterizes a normal draw whose deviation is interpreted as
// a ~99% band (callers divide by 3 before sampling).
type MeanDeviation struct {
	Mean      float64 `mapstructure:"mean" json:"mean"`
	Deviation float64 `mapstructure:"deviation" json:"deviation"`
}

// AbandonedParams bounds the sampled abandonment rate for one contact table.
type AbandonedParams struct {
	Avg  float64 `mapstructure:"avg" json:"avg"`
	SD   float64 `mapstructure:"sd" json:"sd"`
	Low  float64 `mapstructure:"low" json:"low"`
	High float64 `mapstructure:"high" json:"high"`
}

// WaitParams bounds abandoned-session wait times in seconds.
type WaitParams struct {
	Low  float64 `mapstructure:"low" json:"low"`
	High float64 `mapstructure:"high" json:"high"`
	Avg  float64 `mapstructure:"avg" json:"avg"`
}

// CPCParams parameterizes the contacts-per-case draw for one symptom
// category.
type CPCParams struct {
	Min  int     `mapstructure:"min" json:"min"`
	Max  int     `mapstructure:"max" json:"max"`
	Mean float64 `mapstructure:"mean" json:"mean"`
	Std  float64 `mapstructure:"std" json:"std"`
}

// ResolutionParams parameterizes the resolution-time draw (hours) for one
// symptom category.
type ResolutionParams struct {
	Min  float64 `mapstructure:"min" json:"min"`
	Max  float64 `mapstructure:"max" json:"max"`
	Mean float64 `mapstructure:"mean" json:"mean"`
	Std  float64 `mapstructure:"std" json:"std"`
}

// ActiveHours is the inclusive hour range contacts can occur in.
type ActiveHours struct {
	Start int `mapstructure:"start" json:"start"`
	End   int `mapstructure:"end" json:"end"`
}

// ScoreParams parameterizes the QA score draw.
type ScoreParams struct {
	Mean float64 `mapstructure:"mean" json:"mean"`
	Std  float64 `mapstructure:"std" json:"std"`
	Min  float64 `mapstructure:"min" json:"min"`
	Max  float64 `mapstructure:"max" json:"max"`
}

// QAConfig holds the QA evaluation sampling parameters.
type QAConfig struct {
	SampleSize             float64     `mapstructure:"sample_size" json:"sample_size"`
	Score                  ScoreParams `mapstructure:"score" json:"score"`
	CustomerCriticalProb   float64     `mapstructure:"customer_critical_prob" json:"customer_critical_prob"`
	BusinessCriticalProb   float64     `mapstructure:"business_critical_prob" json:"business_critical_prob"`
	ComplianceCriticalProb float64     `mapstructure:"compliance_critical_prob" json:"compliance_critical_prob"`
}

// WFMConfig holds the workforce-management factor distributions keyed by
// factor name (shrinkage, occupancy, utilization).
type WFMConfig struct {
	Factors map[string]MeanDeviation `mapstructure:"factors" json:"factors"`
}

// ClosureAnchor values for Config.AnchorClosureTo.
const (
	AnchorLastInteraction = "last_interaction"
	AnchorFromCreation    = "from_creation"
)

// Config is the full generation parameter bundle.
type Config struct {
	NumTickets      int   `mapstructure:"num_tickets" json:"num_tickets"`
	UniqueCustomers int   `mapstructure:"unique_customers" json:"unique_customers"`
	UniqueAgents    int   `mapstructure:"unique_agents" json:"unique_agents"`
	RandomSeed      int64 `mapstructure:"random_seed" json:"random_seed"`

	StartDate time.Time `mapstructure:"start_date" json:"start_date"`
	EndDate   time.Time `mapstructure:"end_date" json:"end_date"`

	MaxInteractionSpanHours int     `mapstructure:"max_interaction_span_hours" json:"max_interaction_span_hours"`
	EscalationRate          float64 `mapstructure:"escalation_rate" json:"escalation_rate"`
	AnchorClosureTo         string  `mapstructure:"anchor_closure_to" json:"anchor_closure_to"`

	Channels        map[string]float64 `mapstructure:"channels" json:"channels"`
	Countries       map[string]float64 `mapstructure:"countries" json:"countries"`
	CountryLanguage map[string]string  `mapstructure:"country_language" json:"country_language"`
	Products        map[string]float64 `mapstructure:"products" json:"products"`
	Statuses        map[string]float64 `mapstructure:"statuses" json:"statuses"`

	Symptoms          []sampling.TaxonomyEntry    `mapstructure:"symptoms" json:"symptoms"`
	SymptomFCR        map[string]MeanDeviation    `mapstructure:"symptom_fcr" json:"symptom_fcr"`
	SymptomCPC        map[string]CPCParams        `mapstructure:"symptom_cpc" json:"symptom_cpc"`
	SymptomResolution map[string]ResolutionParams `mapstructure:"symptom_resolution" json:"symptom_resolution"`

	HandleTime          map[string]sampling.ValueParams `mapstructure:"handle_time" json:"handle_time"`
	HandleTimeModifiers map[string]float64              `mapstructure:"handle_time_modifiers" json:"handle_time_modifiers"`
	SpeedAnswer         map[string]sampling.ValueParams `mapstructure:"speed_answer" json:"speed_answer"`

	Abandoned     map[string]AbandonedParams `mapstructure:"abandoned" json:"abandoned"`
	AbandonedWait WaitParams                 `mapstructure:"abandoned_wait" json:"abandoned_wait"`

	Peaks  sampling.PeakDistribution `mapstructure:"peaks" json:"peaks"`
	Active ActiveHours               `mapstructure:"active_hours" json:"active_hours"`

	WFM WFMConfig `mapstructure:"wfm" json:"wfm"`
	QA  QAConfig  `mapstructure:"qa" json:"qa"`
}

// Default returns the full default parameter bundle.
func Default() *Config {
	return &Config{
		NumTickets:      25000,
		UniqueCustomers: 6000,
		UniqueAgents:    12,
		RandomSeed:      42,

		StartDate: time.Date(2023, 9, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC),

		MaxInteractionSpanHours: 6,
		EscalationRate:          0.12,
		AnchorClosureTo:         AnchorLastInteraction,

		Channels: map[string]float64{"email": 0.3, "phone": 0.4, "chat": 0.3},

		Countries: map[string]float64{
			"United Kingdom": 0.30,
			"Germany":        0.18,
			"Austria":        0.12,
			"Netherlands":    0.10,
			"France":         0.15,
			"Belgium":        0.05,
		},

		CountryLanguage: map[string]string{
			"United Kingdom": "english",
			"Netherlands":    "english",
			"France":         "french",
			"Belgium":        "french",
			"Germany":        "german",
			"Austria":        "german",
		},

		Products: map[string]float64{
			"on-ear_headphones":  0.25,
			"eardrop_headphones": 0.30,
			"speaker_20wt":       0.15,
			"speaker_40wt":       0.10,
			"speaker_flagship":   0.03,
			"amplifier":          0.10,
			"turntable":          0.07,
		},

		Statuses: map[string]float64{"new": 0.02, "open": 0.08, "closed": 0.90},

		Symptoms: []sampling.TaxonomyEntry{
			{Category: "troubleshooting", Item: "bluetooth connection", Weight: 0.08},
			{Category: "troubleshooting", Item: "power supply", Weight: 0.14},
			{Category: "troubleshooting", Item: "firmware", Weight: 0.02},
			{Category: "troubleshooting", Item: "sound resolution", Weight: 0.06},
			{Category: "logistics", Item: "status of the order", Weight: 0.15},
			{Category: "logistics", Item: "lost package", Weight: 0.05},
			{Category: "rma", Item: "replacement", Weight: 0.12},
			{Category: "rma", Item: "return", Weight: 0.08},
			{Category: "finance", Item: "unsuccessful payment", Weight: 0.04},
			{Category: "finance", Item: "payment details", Weight: 0.06},
			{Category: "product", Item: "product consulting / information", Weight: 0.10},
			{Category: "complaint", Item: "product complaint", Weight: 0.08},
			{Category: "complaint", Item: "service complaint", Weight: 0.02},
		},

		SymptomFCR: map[string]MeanDeviation{
			"troubleshooting": {Mean: 0.50, Deviation: 0.03},
			"finance":         {Mean: 0.00, Deviation: 0.01},
			"logistics":       {Mean: 0.43, Deviation: 0.04},
			"rma":             {Mean: 0.10, Deviation: 0.12},
			"product":         {Mean: 1.00, Deviation: 0.12},
			"complaint":       {Mean: 0.20, Deviation: 0.12},
		},

		SymptomCPC: map[string]CPCParams{
			"troubleshooting": {Min: 1, Max: 3, Mean: 1.5, Std: 0.5},
			"finance":         {Min: 1, Max: 4, Mean: 2.3, Std: 1.2},
			"logistics":       {Min: 1, Max: 4, Mean: 1.8, Std: 1.1},
			"rma":             {Min: 1, Max: 11, Mean: 4.1, Std: 2.0},
			"product":         {Min: 1, Max: 3, Mean: 1.2, Std: 0.4},
			"complaint":       {Min: 1, Max: 2, Mean: 1.1, Std: 0.1},
		},

		SymptomResolution: map[string]ResolutionParams{
			"troubleshooting": {Min: 4, Max: 52, Mean: 38, Std: 10},
			"finance":         {Min: 3, Max: 72, Mean: 50, Std: 12},
			"logistics":       {Min: 6, Max: 68, Mean: 49, Std: 16},
			"rma":             {Min: 8, Max: 168, Mean: 73, Std: 32},
			"product":         {Min: 2, Max: 34, Mean: 28, Std: 10},
			"complaint":       {Min: 1, Max: 68, Mean: 54, Std: 24},
		},

		HandleTime: map[string]sampling.ValueParams{
			"email": {Low: 0.5, High: 45, Avg: 7},
			"phone": {Low: 0.7, High: 8, Avg: 5.5},
			"chat":  {Low: 1, High: 60, Avg: 13},
		},

		HandleTimeModifiers: map[string]float64{
			"troubleshooting": 1.40,
			"logistics":       1.00,
			"rma":             1.15,
			"finance":         0.80,
			"product":         0.50,
			"complaint":       0.60,
		},

		// Email in hours, phone and chat in seconds.
		SpeedAnswer: map[string]sampling.ValueParams{
			"email": {Low: 0.1, High: 50, Avg: 17},
			"phone": {Low: 3, High: 360, Avg: 60},
			"chat":  {Low: 5, High: 360, Avg: 85},
		},

		Abandoned: map[string]AbandonedParams{
			"calls": {Avg: 0.07, SD: 0.03, Low: 0.0, High: 0.17},
			"chats": {Avg: 0.10, SD: 0.03, Low: 0.0, High: 0.17},
		},

		AbandonedWait: WaitParams{Low: 3, High: 180, Avg: 60},

		Peaks: sampling.PeakDistribution{
			Morning: sampling.PeakWindow{Mean: 9.5, SD: 0.5, Weight: 0.6},
			Evening: sampling.PeakWindow{Mean: 20, SD: 0.7, Weight: 0.4},
		},

		Active: ActiveHours{Start: 8, End: 22},

		WFM: WFMConfig{
			Factors: map[string]MeanDeviation{
				"shrinkage":   {Mean: 0.85, Deviation: 0.10},
				"occupancy":   {Mean: 0.80, Deviation: 0.10},
				"utilization": {Mean: 0.75, Deviation: 0.10},
			},
		},

		QA: QAConfig{
			SampleSize:             0.03,
			Score:                  ScoreParams{Mean: 0.88, Std: 0.08, Min: 0.5, Max: 1.0},
			CustomerCriticalProb:   0.02,
			BusinessCriticalProb:   0.015,
			ComplianceCriticalProb: 0.01,
		},
	}
}

// Load returns the defaults overlaid with the optional YAML file at path and
// CSGEN-prefixed environment variables. An empty path loads pure defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CSGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(dateLayout),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the bundle for values the generators cannot work with.
func (c *Config) Validate() error {
	if c.NumTickets <= 0 {
		return fmt.Errorf("num_tickets must be positive, got %d", c.NumTickets)
	}
	if c.UniqueCustomers <= 0 {
		return fmt.Errorf("unique_customers must be positive, got %d", c.UniqueCustomers)
	}
	if c.UniqueAgents <= 0 {
		return fmt.Errorf("unique_agents must be positive, got %d", c.UniqueAgents)
	}
	if !c.EndDate.After(c.StartDate) {
		return fmt.Errorf("end_date %s must be after start_date %s",
			c.EndDate.Format(dateLayout), c.StartDate.Format(dateLayout))
	}
	if c.EscalationRate < 0 || c.EscalationRate > 1 {
		return fmt.Errorf("escalation_rate must be in [0,1], got %v", c.EscalationRate)
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("channels distribution is empty")
	}
	if len(c.Symptoms) == 0 {
		return fmt.Errorf("symptom taxonomy is empty")
	}
	for country := range c.Countries {
		if _, ok := c.CountryLanguage[country]; !ok {
			return fmt.Errorf("country %q has no language mapping", country)
		}
	}
	if c.QA.SampleSize < 0 || c.QA.SampleSize > 1 {
		return fmt.Errorf("qa.sample_size must be in [0,1], got %v", c.QA.SampleSize)
	}
	return nil
}
