package domain

import "time"

// PageOrientation of a backend profile.
type PageOrientation string

const (
	OrientationPortrait  PageOrientation = "portrait"
	OrientationLandscape PageOrientation = "landscape"
)

// BackendProfile is the page-geometry and quality configuration for one
// conversion backend. Profiles are read-only after initialization and shared
// across the worker pool without locking.
type BackendProfile struct {
	Name        string
	PageSize    string
	Orientation PageOrientation
	MarginMM    float64
	DPI         int
	Scale       float64
	Binary      string
}

// RunConfig is the configuration surface consumed by the core. Constructed
// once, passed explicitly into the batch coordinator and the conversion
// orchestrator.
type RunConfig struct {
	Mode             BillingMode
	Concurrency      int
	QualityThreshold float64
	AttemptTimeout   time.Duration
	OutputDir        string
	Backends         []string
	Seed             int64
}
