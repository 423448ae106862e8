package commands

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// NewCoursesCommand creates the courses command group.
func NewCoursesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage courses",
		Long:  "List, inspect, create, and delete Canvas courses",
	}

	cmd.AddCommand(newCoursesListCommand())
	cmd.AddCommand(newCoursesShowCommand())
	cmd.AddCommand(newCoursesCreateCommand())
	cmd.AddCommand(newCoursesDeleteCommand())

	return cmd
}

func newCoursesListCommand() *cobra.Command {
	var (
		allPages       bool
		perPage        int
		enrollmentType string
		state          string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		Long:  "List the courses of the configured account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			query := url.Values{}
			if perPage > 0 {
				query.Set("per_page", strconv.Itoa(perPage))
			}

			if enrollmentType != "" {
				query.Set("enrollment_type", enrollmentType)
			}

			if state != "" {
				query.Add("state[]", state)
			}

			ctx := cmdContext()

			var courses []canvas.Course

			if allPages {
				courses, err = client.Courses().All(ctx, query)
			} else {
				var page *canvas.Page[canvas.Course]

				page, err = client.Courses().List(ctx, query)
				if page != nil {
					courses = page.Items
				}
			}

			if err != nil {
				return fmt.Errorf("listing courses: %w", err)
			}

			return renderOutput(courses, func() error {
				return renderCoursesTable(courses)
			})
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")
	cmd.Flags().StringVar(&enrollmentType, "enrollment-type", "", "filter by enrollment type")
	cmd.Flags().StringVar(&state, "state", "", "filter by workflow state")

	return cmd
}

func newCoursesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show COURSE_ID",
		Short: "Show a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0], "course ID")
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			course, err := client.Courses().Find(cmdContext(), courseID)
			if err != nil {
				return fmt.Errorf("finding course: %w", err)
			}

			return renderOutput(course, func() error {
				return renderCoursesTable([]canvas.Course{*course})
			})
		},
	}
}

func newCoursesCreateCommand() *cobra.Command {
	var (
		name       string
		courseCode string
		publish    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		Long:  "Create a course under the configured account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			request := &canvas.CourseCreateRequest{}
			if name != "" {
				request.Name = &name
			}

			if courseCode != "" {
				request.CourseCode = &courseCode
			}

			if publish {
				request.Offer = &publish
			}

			course, err := client.Courses().Create(cmdContext(), request)
			if err != nil {
				return fmt.Errorf("creating course: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Created course '%s' (ID %d)\n", course.Name, course.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "course name")
	cmd.Flags().StringVar(&courseCode, "code", "", "course code")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish the course immediately")

	return cmd
}

func newCoursesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete COURSE_ID",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0], "course ID")
			if err != nil {
				return err
			}

			if !force {
				fmt.Fprintf(os.Stdout, "Delete course %d? This cannot be undone. (y/N): ", courseID)

				var response string
				_, _ = fmt.Scanln(&response)

				if response != "y" && response != "Y" {
					fmt.Fprintln(os.Stdout, "Cancelled")

					return nil
				}
			}

			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			if err := client.Courses().Delete(cmdContext(), courseID); err != nil {
				return fmt.Errorf("deleting course: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Deleted course %d\n", courseID)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func renderCoursesTable(courses []canvas.Course) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Code", "State", "Start", "End")

	for _, course := range courses {
		_ = table.Append(
			strconv.Itoa(course.ID),
			course.Name,
			course.CourseCode,
			course.WorkflowState,
			formatTime(course.StartAt),
			formatTime(course.EndAt),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
