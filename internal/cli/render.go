package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/fuzumoe/url-insight-dashboard/internal/models"
	"github.com/fuzumoe/url-insight-dashboard/internal/toast"
	"github.com/fuzumoe/url-insight-dashboard/internal/view"
)

// Color functions for terminal output
var (
	colorGreen  = color.New(color.FgGreen).SprintFunc()
	colorRed    = color.New(color.FgRed).SprintFunc()
	colorYellow = color.New(color.FgYellow).SprintFunc()
	colorCyan   = color.New(color.FgCyan).SprintFunc()
	colorFaint  = color.New(color.Faint).SprintFunc()
)

// statusCell renders a job status with its severity color. Every state
// is matched explicitly.
func statusCell(s models.JobStatus) string {
	switch s {
	case models.JobStatusQueued:
		return colorCyan(s.Label())
	case models.JobStatusRunning:
		return colorYellow(s.Label())
	case models.JobStatusDone:
		return colorGreen(s.Label())
	case models.JobStatusError:
		return colorRed(s.Label())
	case models.JobStatusStopped:
		return colorFaint(s.Label())
	default:
		return s.Label()
	}
}

// renderJobs prints the job table followed by a pager line.
func renderJobs(jobs []models.Job, pagination models.Pagination, currentPage int) {
	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"ID", "URL", "Title", "HTML", "Int", "Ext", "Broken", "Login", "Status"})

	for _, job := range jobs {
		login := ""
		if job.HasLoginForm {
			login = "yes"
		}
		t.AppendRow(table.Row{
			job.ID,
			job.URL,
			job.Title,
			job.HTMLVersion,
			job.InternalLinks,
			job.ExternalLinks,
			job.BrokenLinks,
			login,
			statusCell(job.Status),
		})
	}

	t.Render()
	fmt.Println(pagerLine(currentPage, pagination))
}

// pagerLine renders the page-number row, e.g. "1 … 4 [5] 6 … 12".
func pagerLine(currentPage int, pagination models.Pagination) string {
	items := view.PageItems(currentPage, pagination.TotalPages)
	if len(items) == 0 {
		return fmt.Sprintf("%d job(s)", pagination.TotalItems)
	}

	parts := make([]string, 0, len(items)+1)
	for _, item := range items {
		switch {
		case item.Ellipsis:
			parts = append(parts, "…")
		case item.Page == currentPage:
			parts = append(parts, "["+strconv.Itoa(item.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(item.Page))
		}
	}
	parts = append(parts, fmt.Sprintf("(%d jobs)", pagination.TotalItems))

	return strings.Join(parts, " ")
}

// renderBrokenLinks prints the broken-link children of a job.
func renderBrokenLinks(links []models.BrokenLink) {
	if len(links) == 0 {
		fmt.Println("No broken links.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"URL", "Status"})
	for _, link := range links {
		t.AppendRow(table.Row{link.URL, colorRed(strconv.Itoa(link.StatusCode))})
	}
	t.Render()
}

// flushToasts prints and dismisses every pending notification.
func (a *app) flushToasts() {
	for _, n := range a.toasts.Notifications() {
		prefix := ""
		switch n.Severity {
		case toast.SeveritySuccess:
			prefix = colorGreen("✔")
		case toast.SeverityError:
			prefix = colorRed("✘")
		case toast.SeverityWarning:
			prefix = colorYellow("!")
		case toast.SeverityInfo:
			prefix = colorCyan("i")
		default:
			prefix = colorCyan("i")
		}

		if n.Title != "" {
			fmt.Printf("%s %s: %s\n", prefix, n.Title, n.Message)
		} else {
			fmt.Printf("%s %s\n", prefix, n.Message)
		}
		a.toasts.Remove(n.ID)
	}
}
