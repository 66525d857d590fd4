package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jobtrail/internal/domain"
	"jobtrail/internal/engine"
	"jobtrail/internal/followup"
	"jobtrail/internal/recruiter"
)

func recruiterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recruiter",
		Short: "Recruiter performance",
	}
	cmd.AddCommand(recruiterListCmd())
	cmd.AddCommand(recruiterStatsCmd())
	cmd.AddCommand(recruiterRankingCmd())
	return cmd
}

func recruiterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recruiter companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				items, err := e.ListRecruiters(ctx, owner)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := newTable("ID", "Name", "Location")
				for _, c := range items {
					tw.AppendRow(table.Row{c.ID, c.Name, c.MainLocation})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func recruiterStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <recruiter-id>",
		Short: "Show one recruiter's results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				rep, err := e.RecruiterStats(ctx, owner, args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(rep)
				}
				s := rep.Stats
				fmt.Println(rep.Recruiter.Name)
				tw := newTable("Total", "Interviews", "Offers", "Rejections", "Active", "Conversion")
				tw.AppendRow(table.Row{s.Total, s.Interviews, s.Offers, s.Rejections, s.Active, fmt.Sprintf("%d%%", s.ConversionRate)})
				tw.Render()
				return nil
			})
		},
	}
}

func recruiterRankingCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Rank recruiters by interviews, then mandates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				items, err := e.RecruiterRanking(ctx, owner, limit)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				printRanking(items)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of recruiters (default from config)")
	return cmd
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show overdue and upcoming follow-ups with the recruiter ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				v, err := e.Dashboard(ctx, owner)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(v)
				}
				fmt.Printf("Today: %s\n", v.Today)
				sections := []struct {
					title string
					items []domain.Interaction
				}{
					{"Overdue", v.Overdue},
					{"Approaching", v.Approaching},
					{"Scheduled", v.Scheduled},
					{"Sent this week", v.ThisWeek},
				}
				for _, s := range sections {
					fmt.Printf("\n%s (%d)\n", s.title, len(s.items))
					if len(s.items) == 0 {
						continue
					}
					tw := newTable("ID", "Contact", "Company", "Status", "Sent", "Next")
					for _, i := range s.items {
						tw.AppendRow(table.Row{i.ID, i.ContactName, i.CompanyName, i.Status, deref(i.DateSent), deref(i.NextFollowUpDate)})
					}
					tw.Render()
				}
				fmt.Printf("\nRecruiters (%d active)\n", v.RecruiterCount)
				printRanking(v.Recruiters)
				return nil
			})
		},
	}
}

func printRanking(items []recruiter.Summary) {
	tw := newTable("#", "Recruiter", "Interviews", "Mandates", "Offers")
	for i, s := range items {
		tw.AppendRow(table.Row{i + 1, s.Name, s.Interviews, s.Mandates, s.Offers})
	}
	tw.Render()
}

func printInteractionTree(rows []engine.TreeRow) {
	depths := make([]int, len(rows))
	for i, r := range rows {
		depths[i] = r.Depth
	}
	prefixes := treePrefixes(depths)
	for i, r := range rows {
		line := interactionLabel(r.Interaction)
		if r.DaysSinceSent != nil {
			line += fmt.Sprintf(" (%dd)", *r.DaysSinceSent)
		}
		if r.Overdue {
			line += " OVERDUE"
		}
		if r.CycleBroken {
			line += " (cycle)"
		}
		fmt.Println(prefixes[i] + severityColor(r.Severity).Sprint(line))
	}
}

func severityColor(s followup.Severity) text.Colors {
	switch s {
	case followup.Red:
		return text.Colors{text.FgRed}
	case followup.Orange:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{}
	}
}

// treePrefixes draws box connectors for rows listed depth-first.
func treePrefixes(depths []int) []string {
	out := make([]string, len(depths))
	for i, d := range depths {
		if d == 0 {
			continue
		}
		var b strings.Builder
		for level := 1; level <= d; level++ {
			more := hasLaterSibling(depths, i, level)
			switch {
			case level < d && more:
				b.WriteString("│   ")
			case level < d:
				b.WriteString("    ")
			case more:
				b.WriteString("├── ")
			default:
				b.WriteString("└── ")
			}
		}
		out[i] = b.String()
	}
	return out
}

func hasLaterSibling(depths []int, i, level int) bool {
	for j := i + 1; j < len(depths); j++ {
		if depths[j] < level {
			return false
		}
		if depths[j] == level {
			return true
		}
	}
	return false
}
