package profile

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/project"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshots struct {
	snap      user.Snapshot
	refreshes int
}

func (f *fakeSnapshots) Current(ctx context.Context) (user.Snapshot, error) { return f.snap, nil }

func (f *fakeSnapshots) Refresh(ctx context.Context) (user.Snapshot, error) {
	f.refreshes++
	return f.snap, nil
}

func (f *fakeSnapshots) RefreshAll(ctx context.Context) error { return nil }

func (f *fakeSnapshots) OverrideTaskStatus(ctx context.Context, taskID string, status task.Status) (user.Snapshot, error) {
	return f.snap, nil
}

func TestBuildMeta(t *testing.T) {
	tests := []struct {
		name string
		user user.User
		want user.ProfileMeta
	}{
		{
			name: "no data",
			user: user.User{},
			want: user.ProfileMeta{FullName: "User", Initials: "U", Department: "Unassigned", Manager: "Not Assigned"},
		},
		{
			name: "account name only",
			user: user.User{Name: "thabo  van der merwe"},
			want: user.ProfileMeta{FullName: "thabo  van der merwe", Initials: "TVDM", Department: "Unassigned", Manager: "Not Assigned"},
		},
		{
			name: "employee record",
			user: user.User{
				Name: "tnkosi",
				Employee: &user.Employee{
					FirstName:      "Thabo",
					LastName:       "Nkosi",
					Position:       "Electrician",
					EmployeeNumber: "EMP-042",
					Department:     &user.Department{Name: "Field Services", Manager: &project.Named{Name: "Naledi Dube"}},
				},
			},
			want: user.ProfileMeta{
				FullName:     "Thabo Nkosi",
				Initials:     "TN",
				Position:     "Electrician",
				Department:   "Field Services",
				Manager:      "Naledi Dube",
				EmployeeCode: "EMP-042",
			},
		},
		{
			name: "half a name falls back to account name",
			user: user.User{Name: "Lerato M", Employee: &user.Employee{FirstName: "Lerato"}},
			want: user.ProfileMeta{FullName: "Lerato M", Initials: "LM", Department: "Unassigned", Manager: "Not Assigned"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildMeta(tt.user))
		})
	}
}

func TestGetProfile(t *testing.T) {
	u := user.User{
		ID:       "db-u1",
		UserID:   "u1",
		Name:     "Thabo Nkosi",
		Timezone: "Not/AZone",
		Employee: &user.Employee{FirstName: "Thabo", LastName: "Nkosi", Avatar: ptr("https://cdn.example.com/t.png")},
	}
	svc := NewProfileService(&fakeSnapshots{snap: user.Snapshot{User: u}}, time.UTC)

	p, err := svc.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UTC", p.Timezone)
	assert.Equal(t, "https://cdn.example.com/t.png", *p.Avatar)
	assert.Equal(t, "TN", p.Meta.Initials)
	assert.Equal(t, performance.SourceComputed, p.Statistics.Source)
}

func TestRefresh_UsesServerStatistics(t *testing.T) {
	u := user.User{Statistics: &performance.UpstreamStatistics{Attendance: utils.Number(92), PerformanceScore: utils.Number(81)}}
	snaps := &fakeSnapshots{snap: user.Snapshot{User: u}}
	svc := NewProfileService(snaps, nil)

	p, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snaps.refreshes)
	assert.Equal(t, performance.SourceServer, p.Statistics.Source)
	assert.Equal(t, 81.0, p.Statistics.Stats.PerformanceScore)
}

func ptr[T any](v T) *T { return &v }
