// Package complaints holds the CLI commands browsing the complaint
// collection through the backend API.
package complaints

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hyun7520/RAG-Complaint-2nd/cmd/cli/session"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/format"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/listquery"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/thread"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "complaints",
	Title: "Complaint operations",
}

func init() {
	List.Flags().String("keyword", "", "filter by title or id keyword")
	List.Flags().String("from", "", "earliest submission date (inclusive, YYYY-MM-DD)")
	List.Flags().String("to", "", "latest submission date (inclusive, YYYY-MM-DD)")
	List.Flags().String("sort", string(listquery.SortDateDesc), "sort key: date-desc, date-asc, status, title")
	List.Flags().Int("page", 1, "page number")
}

var List = &cobra.Command{
	Use:     "list",
	GroupID: "complaints",
	Short:   "List complaints",
	Long:    "Fetches the agent complaint collection and renders one page of it.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := session.Logger()
		client := backend.NewClient(session.BackendURL(), logger)

		all, err := client.AgentComplaints(ctx, session.Credentials(ctx))
		if err != nil {
			return err
		}

		state := listquery.NewState()
		keyword, _ := cmd.Flags().GetString("keyword")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		state.EditKeyword(keyword)
		state.EditDateRange(from, to)
		state.Search()
		sortKey, _ := cmd.Flags().GetString("sort")
		state.SetSort(listquery.ParseSortKey(sortKey))
		page, _ := cmd.Flags().GetInt("page")
		state.GoToPage(page)

		result := listquery.Apply(all, state)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tCATEGORY\tDEPARTMENT\tSUBMITTED")
		for _, c := range result.Items {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				c.ID, c.Title, format.StatusLabel(c.Status),
				format.Fallback(format.FieldCategory, c.Category),
				format.Fallback(format.FieldDepartment, c.Department),
				c.SubmittedDate)
		}
		if err = w.Flush(); err != nil {
			return err
		}
		fmt.Printf("page %d/%d, %d of %d complaints\n",
			result.Page, result.TotalPages, result.FilteredCount, result.TotalCount)
		return nil
	},
}

var Show = &cobra.Command{
	Use:     "show [id]",
	GroupID: "complaints",
	Short:   "Show one complaint",
	Long:    "Fetches one complaint with its normalization results and conversation.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := session.Logger()
		client := backend.NewClient(session.BackendURL(), logger)

		key, err := backend.NumericID(args[0])
		if err != nil {
			return err
		}

		detail, err := client.ComplaintDetail(ctx, session.Credentials(ctx), "agent", key)
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s [%s]\n", detail.ID, detail.Title, format.StatusLabel(detail.Status))
		fmt.Printf("category: %s\n", format.Fallback(format.FieldCategory, detail.Category))
		fmt.Printf("department: %s\n", format.Fallback(format.FieldDepartment, detail.Department))
		fmt.Printf("assigned to: %s\n", format.Fallback(format.FieldAssignedTo, detail.AssignedTo))
		fmt.Printf("submitted: %s\n", format.Date(detail.SubmittedAt))
		if detail.NeutralSummary != "" {
			fmt.Printf("summary: %s\n", detail.NeutralSummary)
		}
		if detail.HasIncident() {
			fmt.Printf("incident: %s (%s, %d complaints)\n",
				detail.IncidentTitle, detail.IncidentStatus, detail.IncidentComplaintCount)
		}
		fmt.Println()
		for _, message := range thread.Assemble(detail) {
			fmt.Printf("[%s] %s\n%s\n\n", format.Date(message.Timestamp), message.SenderName, message.Content)
		}
		return nil
	},
}
