// Package profiles resolves backend rendering profiles from an ini file,
// falling back to built-in defaults. Profiles are read-only once loaded.
package profiles

import (
	"context"
	"fmt"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry exposes the backend-profile table shared by the conversion chain.
type Registry interface {
	Names(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (domain.BackendProfile, error)
	All(ctx context.Context) (map[string]domain.BackendProfile, error)
}

func defaults() map[string]domain.BackendProfile {
	return map[string]domain.BackendProfile{
		"chrome": {
			Name:        "chrome",
			PageSize:    "A4",
			Orientation: domain.OrientationPortrait,
			MarginMM:    12,
			DPI:         96,
			Scale:       1.0,
		},
		"wkhtmltopdf": {
			Name:        "wkhtmltopdf",
			PageSize:    "A4",
			Orientation: domain.OrientationPortrait,
			MarginMM:    12,
			DPI:         300,
			Scale:       1.0,
			Binary:      "wkhtmltopdf",
		},
		"fpdf": {
			Name:        "fpdf",
			PageSize:    "A4",
			Orientation: domain.OrientationPortrait,
			MarginMM:    12,
			DPI:         72,
			Scale:       1.0,
		},
	}
}

type iniRegistry struct {
	profiles map[string]domain.BackendProfile
}

// NewDefaultRegistry returns the built-in profile table.
func NewDefaultRegistry() Registry {
	return &iniRegistry{profiles: defaults()}
}

// NewRegistry loads profile overrides from an ini file. Each section names a
// backend; keys override the matching default, so a partial file is fine.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile file: %w", err)
	}

	profiles := defaults()
	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == ini.DefaultSection || len(section.Keys()) == 0 {
			continue
		}
		profile, ok := profiles[name]
		if !ok {
			profile = domain.BackendProfile{Name: name, PageSize: "A4", Orientation: domain.OrientationPortrait, MarginMM: 12, Scale: 1.0}
		}
		if key := section.Key("page_size"); key.String() != "" {
			profile.PageSize = key.String()
		}
		if key := section.Key("orientation"); key.String() != "" {
			profile.Orientation = domain.PageOrientation(key.String())
		}
		if key := section.Key("margin_mm"); key.String() != "" {
			profile.MarginMM = key.MustFloat64(profile.MarginMM)
		}
		if key := section.Key("dpi"); key.String() != "" {
			profile.DPI = key.MustInt(profile.DPI)
		}
		if key := section.Key("scale"); key.String() != "" {
			profile.Scale = key.MustFloat64(profile.Scale)
		}
		if key := section.Key("binary"); key.String() != "" {
			profile.Binary = key.String()
		}
		profiles[name] = profile
	}
	return &iniRegistry{profiles: profiles}, nil
}

func (r *iniRegistry) Names(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	return names, nil
}

func (r *iniRegistry) Get(_ context.Context, name string) (domain.BackendProfile, error) {
	profile, ok := r.profiles[name]
	if !ok {
		return domain.BackendProfile{}, fmt.Errorf("profile %q not found", name)
	}
	return profile, nil
}

func (r *iniRegistry) All(_ context.Context) (map[string]domain.BackendProfile, error) {
	out := make(map[string]domain.BackendProfile, len(r.profiles))
	for name, profile := range r.profiles {
		out[name] = profile
	}
	return out, nil
}
