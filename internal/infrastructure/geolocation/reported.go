package geolocation

import (
	"context"
	"errors"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
)

// Report is what the host device tells us about its location service when
// it opens a discovery session.
type Report struct {
	Permission domain.PermissionStatus
	Position   *domain.Coordinate
	// Error is the platform's failure text when a fix could not be read.
	Error string
}

type reported struct {
	report Report
}

// NewReported returns a platform that replays the host's report.
func NewReported(report Report) repository.LocationPlatform {
	return &reported{report: report}
}

func (p *reported) RequestPermission(ctx context.Context) (domain.PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.PermissionUndetermined, err
	}
	switch p.report.Permission {
	case domain.PermissionGranted, domain.PermissionDenied:
		return p.report.Permission, nil
	default:
		return domain.PermissionUndetermined, nil
	}
}

func (p *reported) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}
	if p.report.Error != "" {
		return domain.Coordinate{}, errors.New(p.report.Error)
	}
	if p.report.Position == nil {
		return domain.Coordinate{}, errors.New("no position reported")
	}
	return *p.report.Position, nil
}
