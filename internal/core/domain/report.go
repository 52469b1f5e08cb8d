package domain

import "time"

// ResolutionReport summarizes one installer run.
type ResolutionReport struct {
	Platform       string    `json:"platform,omitzero"`
	Distro         string    `json:"distro,omitzero"`
	Selector       string    `json:"selector,omitzero"`
	Packages       []string  `json:"packages,omitempty"`
	Paths          []string  `json:"paths,omitempty"`
	Keys           []string  `json:"keys,omitempty"`
	SkippedKeys    []string  `json:"skipped_keys,omitempty"`
	UnresolvedKeys []string  `json:"unresolved_keys,omitempty"`
	Digest         string    `json:"digest,omitzero"`
	Steps          []Step    `json:"steps,omitempty"`
	StartedAt      time.Time `json:"started_at,omitzero"`
	FinishedAt     time.Time `json:"finished_at,omitzero"`
}

// Step is the final status of one installer step.
type Step struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
}

// InstallResult is what the dependency database reports back from an install.
type InstallResult struct {
	// UnresolvedKeys are the keys the resolver could not map to a system package.
	// They are reported but do not fail the run.
	UnresolvedKeys []string
}
