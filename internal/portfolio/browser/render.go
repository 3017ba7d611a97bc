package browser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gartstein/efportfolio/internal/pkg/utils"
	"github.com/gartstein/efportfolio/internal/portfolio/engine"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
)

const (
	Title             = "Entrepreneur First Companies"
	LoadErrorMessage  = "Error loading companies"
	LoadingMessage    = "Loading companies..."
	FoundersLoading   = "Loading founders..."
	NoFoundersMessage = "No founder information available"
	NoMatchesMessage  = "No companies match the current filters"

	descriptionWidth = 60
)

// Badge renders the status label shown in the table.
func Badge(s models.Status) string {
	switch s {
	case models.Active, models.Inactive, models.Acquired:
		return "[" + s.Label() + "]"
	default:
		return "[?]"
	}
}

// Render writes the full screen: stats, filters, table and detail panel.
func Render(w io.Writer, v View) error {
	fmt.Fprintln(w, Title)
	fmt.Fprintln(w)
	if v.Loading {
		_, err := fmt.Fprintln(w, LoadingMessage)
		return err
	}
	if v.Failed {
		_, err := fmt.Fprintln(w, LoadErrorMessage)
		return err
	}

	if err := RenderStats(w, v.Stats); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, filterLine(v.Query))
	fmt.Fprintln(w)
	if err := renderTable(w, v); err != nil {
		return err
	}
	if v.Detail != nil {
		fmt.Fprintln(w)
		return RenderDetail(w, v.Detail)
	}
	return nil
}

// RenderStats writes the summary block.
func RenderStats(w io.Writer, s engine.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	years := "-"
	if s.HasYears {
		years = strconv.Itoa(s.YearsActive)
	}
	fmt.Fprintf(tw, "Total Companies\t%d\n", s.Total)
	fmt.Fprintf(tw, "Active Companies\t%d\n", s.Active)
	fmt.Fprintf(tw, "Inactive Companies\t%d\n", s.Inactive)
	fmt.Fprintf(tw, "Acquired Companies\t%d\n", s.Acquired)
	fmt.Fprintf(tw, "Unique Industries\t%d\n", s.Industries)
	fmt.Fprintf(tw, "Years Active\t%s\n", years)
	return tw.Flush()
}

// RenderFounderStats writes the founder summary produced by
// engine.SummarizeFounders.
func RenderFounderStats(w io.Writer, s engine.FounderStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Founders\t%d\n", s.Founders)
	if s.HasAgeRange {
		fmt.Fprintf(tw, "Youngest\t%d\n", s.Ages.Youngest)
		fmt.Fprintf(tw, "Oldest\t%d\n", s.Ages.Oldest)
		fmt.Fprintf(tw, "Average\t%.0f\n", s.Ages.Average)
		fmt.Fprintf(tw, "Median\t%d\n", s.Ages.Median)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	writeRanking(w, "Most Common Universities", s.Education)
	writeRanking(w, "Most Common Previous Companies", s.Employers)
	return nil
}

func writeRanking(w io.Writer, title string, counts []engine.Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for i, c := range counts {
		fmt.Fprintf(w, "%2d. %s (%d)\n", i+1, c.Name, c.Count)
	}
}

func filterLine(q engine.Query) string {
	parts := []string{"Filters:"}
	if strings.TrimSpace(q.Text) != "" {
		parts = append(parts, fmt.Sprintf("search=%q", q.Text))
	}
	if q.Status != "" {
		parts = append(parts, "status="+string(q.Status))
	}
	if q.Industry != "" {
		parts = append(parts, "industry="+q.Industry)
	}
	if len(parts) == 1 {
		parts = append(parts, "none")
	}
	if q.Sort.Column != engine.ByNone {
		parts = append(parts, fmt.Sprintf("| sort=%s %s", q.Sort.Column, q.Sort.Direction))
	}
	return strings.Join(parts, " ")
}

func renderTable(w io.Writer, v View) error {
	if len(v.Rows) == 0 {
		_, err := fmt.Fprintln(w, NoMatchesMessage)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tFOUNDED\tINDUSTRIES\tDESCRIPTION")
	for _, c := range v.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			c.Name,
			Badge(c.Status),
			year(c.FoundingYear),
			strings.Join(c.IndustryTags, ", "),
			truncate(utils.Deref(c.Description), descriptionWidth),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d companies\n", len(v.Rows), v.Stats.Total)
	return err
}

// RenderDetail writes the company detail panel and its founders.
func RenderDetail(w io.Writer, d *Detail) error {
	c := d.Company
	fmt.Fprintf(w, "== %s %s ==\n", c.Name, Badge(c.Status))
	if desc := utils.Deref(c.Description); desc != "" {
		fmt.Fprintln(w, desc)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Founded\t%s\n", year(c.FoundingYear))
	fmt.Fprintf(tw, "Industries\t%s\n", strings.Join(c.IndustryTags, ", "))
	if site := utils.Deref(c.WebsiteURL); site != "" {
		fmt.Fprintf(tw, "Website\t%s\n", site)
	}
	fmt.Fprintf(tw, "EF Profile\t%s\n", c.EFWebsiteURL)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Founders")
	switch {
	case d.Loading:
		fmt.Fprintln(w, "  "+FoundersLoading)
	case len(d.Founders) == 0:
		fmt.Fprintln(w, "  "+NoFoundersMessage)
	default:
		for _, f := range d.Founders {
			fmt.Fprintf(w, "  - %s", f.FullName())
			if li := utils.Deref(f.LinkedInURL); li != "" {
				fmt.Fprintf(w, " (%s)", li)
			}
			fmt.Fprintln(w)
			if len(f.Education) > 0 {
				fmt.Fprintf(w, "    Education: %s\n", strings.Join(f.Education, "; "))
			}
			if len(f.Employers) > 0 {
				fmt.Fprintf(w, "    Previously: %s\n", strings.Join(f.Employers, "; "))
			}
		}
	}
	return nil
}

func year(y *int) string {
	if y == nil {
		return "-"
	}
	return strconv.Itoa(*y)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
