package project

import (
	"sort"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/project"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

const (
	noProjectNumber   = "N/A"
	noDescription     = "No description provided."
	defaultCurrency   = "ZAR"
	unassigned        = "Unassigned"
	summaryClient     = "Internal"
	summaryManager    = "Unassigned Manager"
	detailClient      = "Internal Client"
	detailManager     = "Unknown"
	defaultMemberRole = "Member"
)

// BuildSummaries lists managed projects then team projects, each id once,
// with active projects first.
func BuildSummaries(u user.User) []project.ProjectSummary {
	seen := make(map[string]bool)
	out := make([]project.ProjectSummary, 0)

	for _, p := range u.Projects {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, BuildSummary(p, project.RoleManager))
	}
	for _, pt := range u.ProjectTeams {
		if pt.Project == nil || seen[pt.Project.ID] {
			continue
		}
		seen[pt.Project.ID] = true
		out = append(out, BuildSummary(*pt.Project, project.RoleMember))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Status == project.StatusActive && out[j].Status != project.StatusActive
	})
	return out
}

func BuildSummary(p project.Project, role project.Role) project.ProjectSummary {
	total, completed := taskCounts(p.Tasks)

	description := ""
	if p.Description != nil {
		description = *p.Description
	}

	return project.ProjectSummary{
		ID:            p.ID,
		ProjectNumber: orDefault(p.ProjectNumber, noProjectNumber),
		Title:         p.Title,
		Description:   description,
		Status:        p.Status,
		Priority:      priority(p),
		Progress:      progress(p, total, completed),
		StartDate:     p.StartDate.Ptr(),
		EndDate:       p.EndDate.Ptr(),
		Deadline:      p.Deadline.Ptr(),
		ClientName:    namedOr(p.Client, summaryClient),
		ManagerName:   namedOr(p.Manager, summaryManager),
		Role:          role,
		TaskCount:     project.TaskCount{Total: total, Completed: completed},
	}
}

// BuildDetail aggregates a project's tasks, folders and activity counters.
func BuildDetail(p project.Project) project.ProjectDetail {
	total, completed := taskCounts(p.Tasks)

	var timeLogged float64
	for _, t := range p.Tasks {
		for _, e := range t.TimeEntries {
			timeLogged += e.Hours.Float64()
		}
	}
	for _, e := range p.TimeEntries {
		timeLogged += e.Hours.Float64()
	}

	description := noDescription
	if p.Description != nil && *p.Description != "" {
		description = *p.Description
	}

	members := make([]project.Member, 0, len(p.TeamMembers))
	for _, m := range p.TeamMembers {
		name := ""
		if m.User != nil {
			name = m.User.Name
		}
		members = append(members, project.Member{Name: name, Role: orDefault(m.Role, defaultMemberRole), UserID: m.UserID})
	}

	tasks := make([]project.TaskItem, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		assignee := unassigned
		if len(t.Assignees) > 0 && t.Assignees[0].FirstName != "" {
			assignee = t.Assignees[0].FirstName
		}
		tasks = append(tasks, project.TaskItem{ID: t.ID, Title: t.Title, Status: t.Status, Assignee: assignee, DueDate: t.DueDate.Ptr()})
	}

	files := project.Files{
		Documents:    make([]project.DocumentItem, 0),
		Notes:        make([]project.NoteItem, 0),
		TotalFolders: len(p.Folders),
	}
	for _, f := range p.Folders {
		for _, d := range f.Documents {
			files.Documents = append(files.Documents, project.DocumentItem{ID: d.ID, Name: d.Name, Type: d.Type})
		}
		for _, n := range f.Notes {
			files.Notes = append(files.Notes, project.NoteItem{ID: n.ID, Title: n.Title})
		}
	}

	comments := make([]project.CommentItem, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, project.CommentItem{ID: c.ID, Content: c.Content, CommenterName: c.CommenterName, CreatedAt: c.CreatedAt.Time})
	}

	return project.ProjectDetail{
		ID:            p.ID,
		ProjectNumber: orDefault(p.ProjectNumber, noProjectNumber),
		Title:         p.Title,
		Description:   description,
		Status:        p.Status,
		Priority:      priority(p),
		Progress:      progress(p, total, completed),
		StartDate:     p.StartDate.Ptr(),
		EndDate:       p.EndDate.Ptr(),
		Deadline:      p.Deadline.Ptr(),
		Financial: project.Financial{
			Budget:      p.Budget.Float64(),
			BudgetSpent: p.BudgetSpent.Float64(),
			Currency:    orDefault(p.Currency, defaultCurrency),
			HourlyRate:  p.HourlyRate.Float64(),
			BillingType: p.BillingType,
		},
		Team: project.Team{
			ManagerName: namedOr(p.Manager, detailManager),
			ClientName:  namedOr(p.Client, detailClient),
			Members:     members,
		},
		Tasks: tasks,
		Files: files,
		Logs: project.Logs{
			TotalTasks:      total,
			TasksCompleted:  completed,
			TotalTimeLogged: utils.RoundTo(timeLogged, 1),
			TotalWorkLogs:   len(p.WorkLogs),
			TotalComments:   len(p.Comments),
			TotalTools:      len(p.ToolUses),
		},
		Comments: comments,
	}
}

// progress prefers the stored figure and falls back to the share of
// completed tasks.
func progress(p project.Project, total, completed int) float64 {
	stored := p.Progress.Float64()
	if stored != 0 || total == 0 {
		return stored
	}
	return float64(utils.RoundHalfUp(float64(completed) / float64(total) * 100))
}

func taskCounts(tasks []project.ProjectTask) (total, completed int) {
	for _, t := range tasks {
		total++
		if t.Status == task.StatusCompleted {
			completed++
		}
	}
	return total, completed
}

func priority(p project.Project) task.Priority {
	if p.Priority == "" {
		return task.PriorityMedium
	}
	return p.Priority
}

func namedOr(n *project.Named, fallback string) string {
	if n == nil || n.Name == "" {
		return fallback
	}
	return n.Name
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
