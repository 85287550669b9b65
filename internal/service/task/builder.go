package task

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
)

const (
	unknownProject    = "Unknown Project"
	defaultAssignedBy = "Manager"
	unknownAuthor     = "Unknown"
	noDescription     = "No description provided."
)

var imageURLPattern = regexp.MustCompile(`\.(jpeg|jpg|gif|png)$`)

// BuildSummaries maps assigned tasks to list items, soonest due first with
// undated tasks last. Overrides replace the stored status.
func BuildSummaries(tasks []task.Task, overrides map[string]task.Status) []task.TaskSummary {
	out := make([]task.TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		s := BuildSummary(t)
		if status, ok := overrides[t.ID]; ok {
			s = ApplyOptimisticStatus(s, status)
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a != nil && b != nil:
			return a.Before(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})
	return out
}

func BuildSummary(t task.Task) task.TaskSummary {
	timeLogged := t.TimeLogged()
	estimated := t.EstimatedTime()

	description := ""
	if t.Description != nil {
		description = *t.Description
	}

	return task.TaskSummary{
		ID:            t.ID,
		Title:         t.Title,
		Project:       projectTitle(t),
		ProjectID:     t.ProjectID,
		Status:        t.Status,
		TimeLogged:    timeLogged,
		EstimatedTime: estimated,
		DueDate:       t.DueDate.Ptr(),
		Priority:      t.Priority,
		AssignedBy:    assignedBy(t),
		Description:   description,
		Photos:        photos(t.Documents),
		Progress:      CalculateProgress(timeLogged, estimated, t.Subtasks, t.Status),
	}
}

// BuildDetail maps one task to the detail view. Requirements follow the
// subtask order and comments are newest first.
func BuildDetail(t task.Task, overrides map[string]task.Status) task.TaskDetail {
	timeLogged := t.TimeLogged()
	estimated := t.EstimatedTime()

	description := noDescription
	if t.Description != nil && *t.Description != "" {
		description = *t.Description
	}

	subtasks := slices.Clone(t.Subtasks)
	sort.SliceStable(subtasks, func(i, j int) bool { return subtasks[i].Order < subtasks[j].Order })
	requirements := make([]task.Requirement, 0, len(subtasks))
	for _, st := range subtasks {
		requirements = append(requirements, task.Requirement{ID: st.ID, Title: st.Title, Status: st.Status})
	}

	comments := slices.Clone(t.Comments)
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt.Time) })
	views := make([]task.CommentView, 0, len(comments))
	for _, c := range comments {
		author := c.CommenterName
		if author == "" {
			author = unknownAuthor
		}
		views = append(views, task.CommentView{ID: c.ID, Author: author, Message: c.Content, Timestamp: c.CreatedAt.Time})
	}

	d := task.TaskDetail{
		ID:            t.ID,
		Title:         t.Title,
		Project:       projectTitle(t),
		ProjectID:     t.ProjectID,
		Status:        t.Status,
		TimeLogged:    timeLogged,
		EstimatedTime: estimated,
		DueDate:       t.DueDate.Ptr(),
		Priority:      t.Priority,
		AssignedBy:    assignedBy(t),
		AssignedDate:  t.CreatedAt.Time,
		Description:   description,
		Requirements:  requirements,
		Photos:        photos(t.Documents),
		Comments:      views,
		Progress:      CalculateProgress(timeLogged, estimated, t.Subtasks, t.Status),
	}
	if status, ok := overrides[t.ID]; ok {
		d = applyOptimisticDetail(d, status)
	}
	return d
}

func projectTitle(t task.Task) string {
	if t.Project != nil && t.Project.Title != "" {
		return t.Project.Title
	}
	return unknownProject
}

func assignedBy(t task.Task) string {
	if t.Project != nil && t.Project.Manager != nil && t.Project.Manager.Name != "" {
		return t.Project.Manager.Name
	}
	return defaultAssignedBy
}

// photos keeps documents that are images by mime type or by extension.
func photos(docs []task.Document) []string {
	out := make([]string, 0)
	for _, d := range docs {
		if (d.MimeType != nil && strings.HasPrefix(*d.MimeType, "image/")) || imageURLPattern.MatchString(d.URL) {
			out = append(out, d.URL)
		}
	}
	return out
}
