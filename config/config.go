package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Dispatch configuration for partner selection and batch assignment
	Dispatch *DispatchConfig `json:"dispatch" yaml:"dispatch"`

	// Optimizer configuration for the route search solvers
	Optimizer *OptimizerConfig `json:"optimizer" yaml:"optimizer"`

	// Traffic configuration for segment duration lookups
	Traffic *TrafficConfig `json:"traffic" yaml:"traffic"`

	// PubSub configuration for assignment event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// VehicleEnvelope bounds what a vehicle class can carry and how far it ranges.
type VehicleEnvelope struct {
	MaxWeightKg   float64 `json:"maxWeightKg" yaml:"maxWeightKg"`
	MaxDistanceKm float64 `json:"maxDistanceKm" yaml:"maxDistanceKm"`
}

// ConstraintsConfig holds the hard eligibility thresholds.
// The literals are empirical; they are configuration precisely because no
// derivation exists for them.
type ConstraintsConfig struct {
	MinRating             float64                    `json:"minRating" yaml:"minRating"`
	MaxDistanceKm         float64                    `json:"maxDistanceKm" yaml:"maxDistanceKm"`
	HighPriorityMinRating float64                    `json:"highPriorityMinRating" yaml:"highPriorityMinRating"`
	VehicleEnvelopes      map[string]VehicleEnvelope `json:"vehicleEnvelopes" yaml:"vehicleEnvelopes"`
}

// ScoreWeights are the composite weights over the six score components.
// They must sum to 1.0.
type ScoreWeights struct {
	Distance     float64 `json:"distance" yaml:"distance"`
	Rating       float64 `json:"rating" yaml:"rating"`
	Availability float64 `json:"availability" yaml:"availability"`
	Experience   float64 `json:"experience" yaml:"experience"`
	Efficiency   float64 `json:"efficiency" yaml:"efficiency"`
	Reliability  float64 `json:"reliability" yaml:"reliability"`
}

// ScoringConfig parameterizes the partner scorer.
type ScoringConfig struct {
	Weights          ScoreWeights       `json:"weights" yaml:"weights"`
	VehicleSpeedsKmh map[string]float64 `json:"vehicleSpeedsKmh" yaml:"vehicleSpeedsKmh"`
	RushHourFactor   float64            `json:"rushHourFactor" yaml:"rushHourFactor"`
	UrbanFactor      float64            `json:"urbanFactor" yaml:"urbanFactor"`
}

// SelectorConfig parameterizes candidate retrieval and the commit path.
type SelectorConfig struct {
	DefaultRadiusKm     float64 `json:"defaultRadiusKm" yaml:"defaultRadiusKm"`
	UrgentRadiusKm      float64 `json:"urgentRadiusKm" yaml:"urgentRadiusKm"`
	LowPriorityRadiusKm float64 `json:"lowPriorityRadiusKm" yaml:"lowPriorityRadiusKm"`
	MaxCommitRetries    int     `json:"maxCommitRetries" yaml:"maxCommitRetries"`
}

// LoadBalancerConfig parameterizes the fairness pass over the top candidates.
type LoadBalancerConfig struct {
	WindowMinutes    int     `json:"windowMinutes" yaml:"windowMinutes"`
	TopN             int     `json:"topN" yaml:"topN"`
	PenaltyThreshold int     `json:"penaltyThreshold" yaml:"penaltyThreshold"`
	PenaltyPerExtra  float64 `json:"penaltyPerExtra" yaml:"penaltyPerExtra"`
	IdleBonus        float64 `json:"idleBonus" yaml:"idleBonus"`
}

// DispatchConfig groups all partner-selection configuration.
type DispatchConfig struct {
	Constraints  ConstraintsConfig  `json:"constraints" yaml:"constraints"`
	Scoring      ScoringConfig      `json:"scoring" yaml:"scoring"`
	Selector     SelectorConfig     `json:"selector" yaml:"selector"`
	LoadBalancer LoadBalancerConfig `json:"loadBalancer" yaml:"loadBalancer"`
}

// AnnealingConfig parameterizes the simulated annealing solver.
type AnnealingConfig struct {
	InitialTemp float64 `json:"initialTemp" yaml:"initialTemp"`
	Cooling     float64 `json:"cooling" yaml:"cooling"`
	MinTemp     float64 `json:"minTemp" yaml:"minTemp"`
}

// GeneticConfig parameterizes the genetic algorithm solver.
type GeneticConfig struct {
	PopulationSize   int     `json:"populationSize" yaml:"populationSize"`
	MutationRate     float64 `json:"mutationRate" yaml:"mutationRate"`
	EliteFraction    float64 `json:"eliteFraction" yaml:"eliteFraction"`
	TournamentSize   int     `json:"tournamentSize" yaml:"tournamentSize"`
	ConvergenceRatio float64 `json:"convergenceRatio" yaml:"convergenceRatio"`
}

// AntColonyConfig parameterizes the ant colony solver.
type AntColonyConfig struct {
	Iterations    int     `json:"iterations" yaml:"iterations"`
	MaxAnts       int     `json:"maxAnts" yaml:"maxAnts"`
	Evaporation   float64 `json:"evaporation" yaml:"evaporation"`
	Alpha         float64 `json:"alpha" yaml:"alpha"`
	Beta          float64 `json:"beta" yaml:"beta"`
	DepositFactor float64 `json:"depositFactor" yaml:"depositFactor"`
}

// OptimizerConfig groups all route-optimization configuration.
type OptimizerConfig struct {
	// Per-solver wall clock budget; a solver past its budget is dropped,
	// not fatal
	SolverTimeout time.Duration `json:"solverTimeout" yaml:"solverTimeout"`

	// Seed for the solver RNGs; 0 means time-seeded
	Seed int64 `json:"seed" yaml:"seed"`

	// Road factor applied over haversine segment distances
	RoadFactor float64 `json:"roadFactor" yaml:"roadFactor"`

	// Shared iteration budget; the genetic solver derives its generation
	// count from this divided by population size
	MaxIterations int `json:"maxIterations" yaml:"maxIterations"`

	// Dwell times added per stop kind
	PickupDwellMin   float64 `json:"pickupDwellMin" yaml:"pickupDwellMin"`
	DeliveryDwellMin float64 `json:"deliveryDwellMin" yaml:"deliveryDwellMin"`

	Annealing AnnealingConfig `json:"annealing" yaml:"annealing"`
	Genetic   GeneticConfig   `json:"genetic" yaml:"genetic"`
	AntColony AntColonyConfig `json:"antColony" yaml:"antColony"`
}

// TrafficConfig bounds traffic provider lookups.
type TrafficConfig struct {
	Enabled       bool          `json:"enabled" yaml:"enabled"`
	LookupTimeout time.Duration `json:"lookupTimeout" yaml:"lookupTimeout"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// DefaultDispatchConfig returns the dispatch thresholds the engine ships with.
func DefaultDispatchConfig() *DispatchConfig {
	return &DispatchConfig{
		Constraints: ConstraintsConfig{
			MinRating:             3.5,
			MaxDistanceKm:         15,
			HighPriorityMinRating: 4.0,
			VehicleEnvelopes: map[string]VehicleEnvelope{
				"BICYCLE":    {MaxWeightKg: 5, MaxDistanceKm: 8},
				"MOTORCYCLE": {MaxWeightKg: 15, MaxDistanceKm: 25},
				"CAR":        {MaxWeightKg: 50, MaxDistanceKm: 40},
				"SCOOTER":    {MaxWeightKg: 10, MaxDistanceKm: 20},
				"WALKING":    {MaxWeightKg: 2, MaxDistanceKm: 3},
			},
		},
		Scoring: ScoringConfig{
			Weights: ScoreWeights{
				Distance:     0.30,
				Rating:       0.20,
				Availability: 0.15,
				Experience:   0.15,
				Efficiency:   0.10,
				Reliability:  0.10,
			},
			VehicleSpeedsKmh: map[string]float64{
				"BICYCLE":    15,
				"MOTORCYCLE": 30,
				"CAR":        25,
				"SCOOTER":    25,
				"WALKING":    5,
			},
			RushHourFactor: 1.3,
			UrbanFactor:    1.2,
		},
		Selector: SelectorConfig{
			DefaultRadiusKm:     10,
			UrgentRadiusKm:      15,
			LowPriorityRadiusKm: 8,
			MaxCommitRetries:    3,
		},
		LoadBalancer: LoadBalancerConfig{
			WindowMinutes:    60,
			TopN:             5,
			PenaltyThreshold: 3,
			PenaltyPerExtra:  2,
			IdleBonus:        3,
		},
	}
}

// DefaultOptimizerConfig returns the solver parameters the engine ships with.
func DefaultOptimizerConfig() *OptimizerConfig {
	return &OptimizerConfig{
		SolverTimeout:    5 * time.Second,
		RoadFactor:       1.3,
		MaxIterations:    10000,
		PickupDwellMin:   3,
		DeliveryDwellMin: 5,
		Annealing: AnnealingConfig{
			InitialTemp: 1000,
			Cooling:     0.995,
			MinTemp:     1,
		},
		Genetic: GeneticConfig{
			PopulationSize:   100,
			MutationRate:     0.01,
			EliteFraction:    0.10,
			TournamentSize:   3,
			ConvergenceRatio: 0.95,
		},
		AntColony: AntColonyConfig{
			Iterations:    100,
			MaxAnts:       20,
			Evaporation:   0.1,
			Alpha:         1,
			Beta:          2,
			DepositFactor: 100,
		},
	}
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: DISPATCH_SCORING_URBANFACTOR -> dispatch.scoring.urbanFactor
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Dispatch == nil {
		cfg.Dispatch = DefaultDispatchConfig()
	}
	if cfg.Optimizer == nil {
		cfg.Optimizer = DefaultOptimizerConfig()
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
