package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jobtrail/internal/domain"
	"jobtrail/internal/engine"
	"jobtrail/internal/repo"
)

func companyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage companies",
		Long:  "Companies are the firms you approach. Type Recruiter marks agencies that can be credited on interactions.",
	}
	cmd.AddCommand(companyCreateCmd())
	cmd.AddCommand(companyListCmd())
	cmd.AddCommand(companyShowCmd())
	cmd.AddCommand(companyUpdateCmd())
	cmd.AddCommand(companyDeleteCmd())
	cmd.AddCommand(companyOrgChartCmd())
	return cmd
}

func companyCreateCmd() *cobra.Command {
	var in engine.CompanyInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create company",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				c, err := e.CreateCompany(ctx, owner, in)
				if err != nil {
					return err
				}
				return printJSONOrTable(c)
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "company name")
	cmd.Flags().StringVar(&in.Type, "type", "", "company type (Bank, Hedge Fund, Recruiter, ...)")
	cmd.Flags().StringVar(&in.MainLocation, "location", "", "main location")
	cmd.Flags().StringVar(&in.Website, "website", "", "website")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "notes")
	return cmd
}

func companyListCmd() *cobra.Command {
	var f repo.CompanyFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				f.OwnerID = owner
				items, err := e.Repo.ListCompanies(ctx, f)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := newTable("ID", "Name", "Type", "Location")
				for _, c := range items {
					tw.AppendRow(table.Row{c.ID, c.Name, c.Type, c.MainLocation})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.Type, "type", "", "type filter")
	return cmd
}

func companyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				c, err := e.Repo.GetCompany(ctx, owner, args[0])
				if err != nil {
					return err
				}
				return printJSONOrTable(c)
			})
		},
	}
}

func companyUpdateCmd() *cobra.Command {
	var name, typ, location, website, notes string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := engine.CompanyPatch{
				Name:         changed(cmd, "name", name),
				Type:         changed(cmd, "type", typ),
				MainLocation: changed(cmd, "location", location),
				Website:      changed(cmd, "website", website),
				Notes:        changed(cmd, "notes", notes),
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				c, err := e.UpdateCompany(ctx, owner, args[0], p)
				if err != nil {
					return err
				}
				return printJSONOrTable(c)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "company name")
	cmd.Flags().StringVar(&typ, "type", "", "company type")
	cmd.Flags().StringVar(&location, "location", "", "main location")
	cmd.Flags().StringVar(&website, "website", "", "website")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	return cmd
}

func companyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete company with its contacts, processes and interactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				if err := e.DeleteCompany(ctx, owner, args[0]); err != nil {
					return err
				}
				fmt.Println("deleted", args[0])
				return nil
			})
		},
	}
}

func companyOrgChartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "org-chart <id>",
		Short: "Show a company's reporting lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				entries, err := e.OrgChart(ctx, owner, args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(entries)
				}
				depths := make([]int, len(entries))
				for i, en := range entries {
					depths[i] = en.Depth
				}
				prefixes := treePrefixes(depths)
				for i, en := range entries {
					c := en.Item
					line := c.FullName()
					if c.ExactTitle != "" {
						line += " - " + c.ExactTitle
					}
					if c.Seniority != "" {
						line += " [" + c.Seniority + "]"
					}
					if en.CycleBroken {
						line += " (cycle)"
					}
					fmt.Println(prefixes[i] + line)
				}
				return nil
			})
		},
	}
}

func contactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contacts",
	}
	cmd.AddCommand(contactCreateCmd())
	cmd.AddCommand(contactListCmd())
	cmd.AddCommand(contactShowCmd())
	cmd.AddCommand(contactUpdateCmd())
	cmd.AddCommand(contactDeleteCmd())
	return cmd
}

func contactFlags(cmd *cobra.Command, in *engine.ContactInput) {
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.ExactTitle, "title", "", "exact title")
	cmd.Flags().StringVar(&in.Category, "category", "", "category (Sales, Trading, HR, ...)")
	cmd.Flags().StringVar(&in.Seniority, "seniority", "", "seniority (MD, Director, VP, ...)")
	cmd.Flags().StringVar(&in.Location, "location", "", "location")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone")
	cmd.Flags().StringVar(&in.LinkedInURL, "linkedin", "", "LinkedIn URL")
	cmd.Flags().StringVar(&in.ManagerID, "manager-id", "", "manager contact id")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "notes")
}

func contactCreateCmd() *cobra.Command {
	var in engine.ContactInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				c, err := e.CreateContact(ctx, owner, in)
				if err != nil {
					return err
				}
				return printJSONOrTable(c)
			})
		},
	}
	cmd.Flags().StringVar(&in.CompanyID, "company-id", "", "company id")
	contactFlags(cmd, &in)
	return cmd
}

func contactListCmd() *cobra.Command {
	var f repo.ContactFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				f.OwnerID = owner
				items, err := e.Repo.ListContacts(ctx, f)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := newTable("ID", "Name", "Company", "Title", "Seniority", "Email")
				for _, c := range items {
					tw.AppendRow(table.Row{c.ID, c.FullName(), c.CompanyName, c.ExactTitle, c.Seniority, c.Email})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.CompanyID, "company-id", "", "company filter")
	return cmd
}

func contactShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				c, err := e.Repo.GetContact(ctx, owner, args[0])
				if err != nil {
					return err
				}
				return printJSONOrTable(c)
			})
		},
	}
}

func contactUpdateCmd() *cobra.Command {
	var in engine.ContactInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update contact (empty --manager-id clears the manager)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := engine.ContactPatch{
				FirstName:   changed(cmd, "first-name", in.FirstName),
				LastName:    changed(cmd, "last-name", in.LastName),
				ExactTitle:  changed(cmd, "title", in.ExactTitle),
				Category:    changed(cmd, "category", in.Category),
				Seniority:   changed(cmd, "seniority", in.Seniority),
				Location:    changed(cmd, "location", in.Location),
				Email:       changed(cmd, "email", in.Email),
				Phone:       changed(cmd, "phone", in.Phone),
				LinkedInURL: changed(cmd, "linkedin", in.LinkedInURL),
				ManagerID:   changed(cmd, "manager-id", in.ManagerID),
				Notes:       changed(cmd, "notes", in.Notes),
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				c, err := e.UpdateContact(ctx, owner, args[0], p)
				if err != nil {
					return err
				}
				return printJSONOrTable(c)
			})
		},
	}
	contactFlags(cmd, &in)
	return cmd
}

func contactDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete contact and its interactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				if err := e.DeleteContact(ctx, owner, args[0]); err != nil {
					return err
				}
				fmt.Println("deleted", args[0])
				return nil
			})
		},
	}
}

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Manage hiring processes",
		Long:  "A process follows one role at one company. --source-id links a process to the one it came out of.",
	}
	cmd.AddCommand(processCreateCmd())
	cmd.AddCommand(processListCmd())
	cmd.AddCommand(processShowCmd())
	cmd.AddCommand(processUpdateCmd())
	cmd.AddCommand(processDeleteCmd())
	cmd.AddCommand(processLineageCmd())
	cmd.AddCommand(processNoteCmd())
	return cmd
}

func processCreateCmd() *cobra.Command {
	var in engine.ProcessInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create process",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				p, err := e.CreateProcess(ctx, owner, in)
				if err != nil {
					return err
				}
				return printJSONOrTable(p)
			})
		},
	}
	cmd.Flags().StringVar(&in.CompanyID, "company-id", "", "company id")
	cmd.Flags().StringVar(&in.RoleTitle, "role", "", "role title")
	cmd.Flags().StringVar(&in.Location, "location", "", "location")
	cmd.Flags().StringVar(&in.Status, "status", "", "status (Active, Interviewing, Offer, Rejected, Closed)")
	cmd.Flags().StringVar(&in.SourceProcessID, "source-id", "", "process this one came from")
	return cmd
}

func processListCmd() *cobra.Command {
	var f repo.ProcessFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				f.OwnerID = owner
				items, err := e.Repo.ListProcesses(ctx, f)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := newTable("ID", "Role", "Company", "Status", "Interactions", "Updated")
				for _, p := range items {
					tw.AppendRow(table.Row{p.ID, p.RoleTitle, p.CompanyName, p.Status, p.InteractionCount, p.UpdatedAt})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.CompanyID, "company-id", "", "company filter")
	cmd.Flags().StringVar(&f.Status, "status", "", "status filter")
	return cmd
}

func processShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show process with notes, linked processes and interactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				d, err := e.ProcessDetail(ctx, owner, args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(d)
				}
				p := d.Process
				fmt.Printf("%s @ %s [%s]\n", p.RoleTitle, p.CompanyName, p.Status)
				if d.Source != nil {
					fmt.Printf("Sourced from: %s @ %s (%s)\n", d.Source.RoleTitle, d.Source.CompanyName, d.Source.ID)
				}
				for _, c := range d.Children {
					fmt.Printf("Led to: %s @ %s (%s)\n", c.RoleTitle, c.CompanyName, c.ID)
				}
				if len(d.Notes) > 0 {
					fmt.Println("Notes:")
					for _, n := range d.Notes {
						fmt.Printf("  %s  %s  (%s)\n", n.CreatedAt, n.Content, n.ID)
					}
				}
				if len(d.Interactions) > 0 {
					fmt.Println("Interactions:")
					printInteractionTree(d.Interactions)
				}
				return nil
			})
		},
	}
}

func processUpdateCmd() *cobra.Command {
	var in engine.ProcessInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update process (empty --source-id unlinks)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := engine.ProcessPatch{
				RoleTitle:       changed(cmd, "role", in.RoleTitle),
				Location:        changed(cmd, "location", in.Location),
				Status:          changed(cmd, "status", in.Status),
				SourceProcessID: changed(cmd, "source-id", in.SourceProcessID),
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				out, err := e.UpdateProcess(ctx, owner, args[0], p)
				if err != nil {
					return err
				}
				return printJSONOrTable(out)
			})
		},
	}
	cmd.Flags().StringVar(&in.RoleTitle, "role", "", "role title")
	cmd.Flags().StringVar(&in.Location, "location", "", "location")
	cmd.Flags().StringVar(&in.Status, "status", "", "status")
	cmd.Flags().StringVar(&in.SourceProcessID, "source-id", "", "process this one came from")
	return cmd
}

func processDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				if err := e.DeleteProcess(ctx, owner, args[0]); err != nil {
					return err
				}
				fmt.Println("deleted", args[0])
				return nil
			})
		},
	}
}

func processLineageCmd() *cobra.Command {
	var f repo.ProcessFilters
	cmd := &cobra.Command{
		Use:   "lineage",
		Short: "Show processes threaded by source",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				f.OwnerID = owner
				entries, err := e.ProcessLineage(ctx, f)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(entries)
				}
				depths := make([]int, len(entries))
				for i, en := range entries {
					depths[i] = en.Depth
				}
				prefixes := treePrefixes(depths)
				for i, en := range entries {
					fmt.Printf("%s%s @ %s [%s]\n", prefixes[i], en.Item.RoleTitle, en.Item.CompanyName, en.Item.Status)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.CompanyID, "company-id", "", "company filter")
	cmd.Flags().StringVar(&f.Status, "status", "", "status filter")
	return cmd
}

func processNoteCmd() *cobra.Command {
	note := &cobra.Command{
		Use:   "note",
		Short: "Process notes",
	}
	note.AddCommand(&cobra.Command{
		Use:   "add <process-id> <content>",
		Short: "Add a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args[1:], " ")
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				n, err := e.AddProcessNote(ctx, owner, args[0], content)
				if err != nil {
					return err
				}
				return printJSONOrTable(n)
			})
		},
	})
	note.AddCommand(&cobra.Command{
		Use:   "delete <process-id> <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				if err := e.DeleteProcessNote(ctx, owner, args[0], args[1]); err != nil {
					return err
				}
				fmt.Println("deleted", args[1])
				return nil
			})
		},
	})
	return note
}

func interactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interaction",
		Short: "Manage interactions",
		Long:  "Messages, calls and interviews. --parent-id threads a follow-up under the interaction it answers.",
	}
	cmd.AddCommand(interactionCreateCmd())
	cmd.AddCommand(interactionListCmd())
	cmd.AddCommand(interactionShowCmd())
	cmd.AddCommand(interactionUpdateCmd())
	cmd.AddCommand(interactionDeleteCmd())
	return cmd
}

func interactionFlags(cmd *cobra.Command, in *engine.InteractionInput) {
	cmd.Flags().StringVar(&in.ContactID, "contact-id", "", "contact id")
	cmd.Flags().StringVar(&in.RecruiterID, "recruiter-id", "", "recruiter company id (Via Recruiter only)")
	cmd.Flags().StringVar(&in.ProcessID, "process-id", "", "hiring process id")
	cmd.Flags().StringVar(&in.ParentInteractionID, "parent-id", "", "interaction this follows up on")
	cmd.Flags().StringVar(&in.DateSent, "date-sent", "", "date sent (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.NextFollowUpDate, "next-follow-up", "", "next follow-up date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.LastUpdate, "last-update", "", "last update date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Status, "status", "", "status (Sent, Waiting, Follow-up, ...)")
	cmd.Flags().StringVar(&in.Priority, "priority", "", "priority (Low, Medium, High)")
	cmd.Flags().StringVar(&in.GlobalCategory, "category", "", "global category")
	cmd.Flags().StringVar(&in.Type, "type", "", "interaction type (Email, LinkedIn, Call, ...)")
	cmd.Flags().StringVar(&in.Stage, "stage", "", "stage")
	cmd.Flags().StringVar(&in.Outcome, "outcome", "", "outcome")
	cmd.Flags().StringVar(&in.SourceType, "source", "", "source (Direct, Via Recruiter)")
	cmd.Flags().BoolVar(&in.Completed, "completed", false, "mark completed")
	cmd.Flags().StringVar(&in.RoleTitle, "role", "", "role title")
	cmd.Flags().StringVar(&in.Comment, "comment", "", "comment")
}

func interactionCreateCmd() *cobra.Command {
	var in engine.InteractionInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record an interaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				i, err := e.CreateInteraction(ctx, owner, in)
				if err != nil {
					return err
				}
				return printJSONOrTable(i)
			})
		},
	}
	cmd.Flags().StringVar(&in.CompanyID, "company-id", "", "company id")
	interactionFlags(cmd, &in)
	return cmd
}

func interactionListCmd() *cobra.Command {
	var f repo.InteractionFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List interactions as follow-up threads",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				f.OwnerID = owner
				rows, err := e.InteractionTree(ctx, f)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(rows)
				}
				printInteractionTree(rows)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.CompanyID, "company-id", "", "company filter")
	cmd.Flags().StringVar(&f.ContactID, "contact-id", "", "contact filter")
	cmd.Flags().StringVar(&f.ProcessID, "process-id", "", "process filter")
	cmd.Flags().StringVar(&f.RecruiterID, "recruiter-id", "", "recruiter filter")
	cmd.Flags().StringVar(&f.Status, "status", "", "status filter")
	cmd.Flags().StringVar(&f.SourceType, "source", "", "source filter")
	return cmd
}

func interactionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show interaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				i, err := e.Repo.GetInteraction(ctx, owner, args[0])
				if err != nil {
					return err
				}
				return printJSONOrTable(i)
			})
		},
	}
}

func interactionUpdateCmd() *cobra.Command {
	var in engine.InteractionInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update interaction (empty id flags clear the link)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := engine.InteractionPatch{
				ContactID:           changed(cmd, "contact-id", in.ContactID),
				RecruiterID:         changed(cmd, "recruiter-id", in.RecruiterID),
				ProcessID:           changed(cmd, "process-id", in.ProcessID),
				ParentInteractionID: changed(cmd, "parent-id", in.ParentInteractionID),
				DateSent:            changed(cmd, "date-sent", in.DateSent),
				NextFollowUpDate:    changed(cmd, "next-follow-up", in.NextFollowUpDate),
				LastUpdate:          changed(cmd, "last-update", in.LastUpdate),
				Status:              changed(cmd, "status", in.Status),
				Priority:            changed(cmd, "priority", in.Priority),
				GlobalCategory:      changed(cmd, "category", in.GlobalCategory),
				Type:                changed(cmd, "type", in.Type),
				Stage:               changed(cmd, "stage", in.Stage),
				Outcome:             changed(cmd, "outcome", in.Outcome),
				SourceType:          changed(cmd, "source", in.SourceType),
				RoleTitle:           changed(cmd, "role", in.RoleTitle),
				Comment:             changed(cmd, "comment", in.Comment),
			}
			if cmd.Flags().Changed("completed") {
				completed := in.Completed
				p.Completed = &completed
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				i, err := e.UpdateInteraction(ctx, owner, args[0], p)
				if err != nil {
					return err
				}
				return printJSONOrTable(i)
			})
		},
	}
	interactionFlags(cmd, &in)
	return cmd
}

func interactionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete interaction (follow-ups are kept and become top level)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, owner string) error {
				if err := e.DeleteInteraction(ctx, owner, args[0]); err != nil {
					return err
				}
				fmt.Println("deleted", args[0])
				return nil
			})
		},
	}
}

func interactionLabel(i domain.Interaction) string {
	who := i.ContactName
	if i.CompanyName != "" {
		who += " @ " + i.CompanyName
	}
	parts := []string{who, "[" + i.Status + "]"}
	if i.Type != "" {
		parts = append(parts, i.Type)
	}
	if i.RecruiterName != "" {
		parts = append(parts, "via "+i.RecruiterName)
	}
	if d := deref(i.DateSent); d != "" {
		parts = append(parts, "sent "+d)
	}
	if d := deref(i.NextFollowUpDate); d != "" {
		parts = append(parts, "next "+d)
	}
	return strings.Join(parts, " ")
}
