package profile

import (
	"context"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/service/statistics"
)

const (
	unassignedDepartment = "Unassigned"
	unassignedManager    = "Not Assigned"
	fallbackName         = "User"
	fallbackInitials     = "U"
)

type ProfileServiceImpl struct {
	snapshots user.SnapshotService
	location  *time.Location
}

func NewProfileService(snapshots user.SnapshotService, location *time.Location) user.ProfileService {
	if location == nil {
		location = time.UTC
	}
	return &ProfileServiceImpl{snapshots: snapshots, location: location}
}

// GetProfile implements user.ProfileService.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context) (user.ProfileResponse, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return s.build(snap.User), nil
}

// Refresh implements user.ProfileService.
func (s *ProfileServiceImpl) Refresh(ctx context.Context) (user.ProfileResponse, error) {
	snap, err := s.snapshots.Refresh(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return s.build(snap.User), nil
}

func (s *ProfileServiceImpl) build(u user.User) user.ProfileResponse {
	return user.ProfileResponse{
		ID:         u.ID,
		UserID:     u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     avatar(u),
		Role:       u.Role,
		Timezone:   u.Location(s.location).String(),
		Meta:       BuildMeta(u),
		Statistics: performance.NewStatisticsResponse(statistics.Resolve(u)),
	}
}

// BuildMeta derives the display fields shown on the profile header.
func BuildMeta(u user.User) user.ProfileMeta {
	meta := user.ProfileMeta{
		Department: unassignedDepartment,
		Manager:    unassignedManager,
		FullName:   fallbackName,
		Initials:   fallbackInitials,
	}
	if u.Name != "" {
		meta.FullName = u.Name
		meta.Initials = initials(strings.Split(u.Name, " ")...)
	}

	emp := u.Employee
	if emp == nil {
		return meta
	}

	meta.Position = emp.Position
	meta.EmployeeCode = emp.EmployeeNumber
	if emp.Department != nil {
		if emp.Department.Name != "" {
			meta.Department = emp.Department.Name
		}
		if emp.Department.Manager != nil && emp.Department.Manager.Name != "" {
			meta.Manager = emp.Department.Manager.Name
		}
	}
	if emp.FirstName != "" && emp.LastName != "" {
		meta.FullName = emp.FirstName + " " + emp.LastName
		meta.Initials = initials(emp.FirstName, emp.LastName)
	}
	return meta
}

// initials takes the first letter of each part, skipping empty parts left
// by repeated spaces.
func initials(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		for _, r := range p {
			b.WriteRune(r)
			break
		}
	}
	if b.Len() == 0 {
		return fallbackInitials
	}
	return strings.ToUpper(b.String())
}

func avatar(u user.User) *string {
	if u.Avatar != nil && *u.Avatar != "" {
		return u.Avatar
	}
	if u.Employee != nil {
		return u.Employee.Avatar
	}
	return nil
}
