package health

import (
	"context"
	"time"
)

const checkTimeout = 2 * time.Second

// SkinTypeCatalog reports whether any skin types are configured.
type SkinTypeCatalog interface {
	IsEmpty(ctx context.Context) (bool, error)
}

// Status is the health payload.
type Status struct {
	OK                  bool   `json:"ok"`
	SkinTypesConfigured bool   `json:"skinTypesConfigured"`
	Error               string `json:"error,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	SkinTypes SkinTypeCatalog
}

// NewService constructs a new health service.
func NewService(skinTypes SkinTypeCatalog) *Service {
	return &Service{SkinTypes: skinTypes}
}

// Status reports OK only when the skin-type catalog can be read and is non-empty,
// since analyses fail with a configuration error otherwise.
func (s *Service) Status(ctx context.Context) Status {
	if s == nil || s.SkinTypes == nil {
		return Status{OK: false, Error: "skin type catalog not wired"}
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	empty, err := s.SkinTypes.IsEmpty(ctx)
	if err != nil {
		return Status{OK: false, Error: "skin type catalog unavailable"}
	}
	return Status{OK: !empty, SkinTypesConfigured: !empty}
}
