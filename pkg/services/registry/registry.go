package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/spf13/viper"
)

// ErrUnknownPlatform is returned for platforms with no registered schema.
var ErrUnknownPlatform = errors.New("platform is not registered")

// Registry resolves platform identifiers to their canonical schema.
// Schemas are loaded once at startup; per-request code only reads.
type Registry interface {
	// Schema returns the schema registered for a platform.
	Schema(platform string) (domain.PlatformSchema, error)
	// Platforms returns the registered platform identifiers, sorted.
	Platforms() []string
	// IdentifierFields returns the request-metadata field names the
	// normalizer must drop from every raw table.
	IdentifierFields() map[string]struct{}
}

type registry struct {
	mu          sync.RWMutex
	schemas     map[string]domain.PlatformSchema
	identifiers map[string]struct{}
}

// Identifier-like fields carried by the warehouse exports. These are
// request metadata, not time-series signal.
var defaultIdentifierFields = []string{
	"id", "client_id", "cliente_id", "customer_id", "agency_id", "agencia_id",
}

// Default builds the registry with the built-in platform schemas the
// warehouse ships today.
func Default() (Registry, error) {
	return New([]domain.PlatformSchema{
		{
			Platform: "instagram",
			Table:    "instagram_metrics",
			Fields: map[string]string{
				"alcance":       "reach",
				"visualizacoes": "views",
				"impressoes":    "impressions",
				"seguidores":    "followers",
			},
		},
		{
			Platform: "facebook",
			Table:    "facebook_metrics",
			Fields: map[string]string{
				"alcance":    "reach",
				"impressoes": "impressions",
				"seguidores": "followers",
			},
		},
		{
			Platform: "google_analytics",
			Table:    "google_analytics_metrics",
			Fields: map[string]string{
				"impressoes":             "impressions",
				"trafego_direto":         "traffic_direct",
				"trafego_busca_organica": "traffic_organic_search",
				"trafego_social":         "traffic_organic_social",
				"volume_busca":           "search_volume",
			},
		},
	})
}

// New builds a registry from explicit schemas and validates them.
func New(schemas []domain.PlatformSchema) (Registry, error) {
	r := &registry{
		schemas:     make(map[string]domain.PlatformSchema),
		identifiers: make(map[string]struct{}),
	}
	for _, f := range defaultIdentifierFields {
		r.identifiers[f] = struct{}{}
	}
	for _, s := range schemas {
		if err := r.add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Load reads platform schemas from a viper config file and merges them
// over the built-in defaults. File shape:
//
//	platforms:
//	  tiktok:
//	    table: tiktok_metrics
//	    fields:
//	      alcance: reach
func Load(path string) (Registry, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read platform config: %w", err)
	}

	var cfg struct {
		Platforms map[string]domain.PlatformSchema `mapstructure:"platforms"`
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse platform config: %w", err)
	}

	r := base.(*registry)
	for name, s := range cfg.Platforms {
		s.Platform = name
		r.mu.Lock()
		delete(r.schemas, name)
		r.mu.Unlock()
		if err := r.add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) add(s domain.PlatformSchema) error {
	if s.Platform == "" {
		return fmt.Errorf("platform name cannot be empty")
	}
	if err := validate(s); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[s.Platform]; exists {
		return fmt.Errorf("platform %q is already registered", s.Platform)
	}
	r.schemas[s.Platform] = s
	return nil
}

// validate rejects schemas whose canonical names collide after the
// "{platform}_{base}" prefixing. This is a configuration error and
// must surface at startup, never at request time.
func validate(s domain.PlatformSchema) error {
	seen := make(map[string]string, len(s.Fields))
	for raw, base := range s.Fields {
		if base == "" {
			return fmt.Errorf("platform %q: field %q maps to an empty canonical name", s.Platform, raw)
		}
		prefixed := s.Platform + "_" + base
		if prev, dup := seen[prefixed]; dup {
			return fmt.Errorf("platform %q: fields %q and %q both map to %q", s.Platform, prev, raw, prefixed)
		}
		seen[prefixed] = raw
	}
	return nil
}

func (r *registry) Schema(platform string) (domain.PlatformSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.schemas[platform]
	if !exists {
		return domain.PlatformSchema{}, fmt.Errorf("platform %q: %w", platform, ErrUnknownPlatform)
	}
	return s, nil
}

func (r *registry) Platforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]string, 0, len(r.schemas))
	for p := range r.schemas {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

func (r *registry) IdentifierFields() map[string]struct{} {
	return r.identifiers
}
