package main

import (
	"fmt"
	"strconv"
	"time"

	"course-catalog-go/internal/auth"
	"course-catalog-go/internal/model"
	"github.com/spf13/cobra"
)

func parseCourseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid course id: %q", arg)
	}
	return id, nil
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := opts.svc.FindAllCourses(cmd.Context())
			if err != nil {
				return err
			}

			if category == "" {
				return printJSON(cmd, all)
			}

			want := model.Category(category)
			if !want.Valid() {
				return fmt.Errorf("unknown category: %q", category)
			}
			filtered := []model.Course{}
			for _, c := range all {
				if c.Category == want {
					filtered = append(filtered, c)
				}
			}
			return printJSON(cmd, filtered)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show BEGINNER or ADVANCED courses")

	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCourseID(args[0])
			if err != nil {
				return err
			}

			course, err := opts.svc.FindCourseByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, course)
		},
	}
}

func newSaveCmd(opts *rootOptions) *cobra.Command {
	var (
		description     string
		longDescription string
		iconURL         string
		category        string
	)

	cmd := &cobra.Command{
		Use:   "save <id>",
		Short: "Update some fields of a course",
		Long: `Sends only the fields given as flags. Titles are replaced as a whole, so
when just one of --description and --long-description is set the other one
is read from the current course first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCourseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var changes model.CoursePatch

			if flags.Changed("description") || flags.Changed("long-description") {
				titles := model.Titles{Description: description, LongDescription: longDescription}
				if !flags.Changed("description") || !flags.Changed("long-description") {
					current, err := opts.svc.FindCourseByID(cmd.Context(), id)
					if err != nil {
						return err
					}
					if !flags.Changed("description") {
						titles.Description = current.Titles.Description
					}
					if !flags.Changed("long-description") {
						titles.LongDescription = current.Titles.LongDescription
					}
				}
				changes.Titles = &titles
			}
			if flags.Changed("icon-url") {
				changes.IconURL = &iconURL
			}
			if flags.Changed("category") {
				c := model.Category(category)
				if !c.Valid() {
					return fmt.Errorf("unknown category: %q", category)
				}
				changes.Category = &c
			}

			if changes.IsEmpty() {
				return fmt.Errorf("nothing to save: set at least one field flag")
			}

			course, err := opts.svc.SaveCourse(cmd.Context(), id, changes)
			if err != nil {
				return err
			}
			return printJSON(cmd, course)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "course title")
	cmd.Flags().StringVar(&longDescription, "long-description", "", "course summary")
	cmd.Flags().StringVar(&iconURL, "icon-url", "", "course image URL")
	cmd.Flags().StringVar(&category, "category", "", "BEGINNER or ADVANCED")

	return cmd
}

func newLessonsCmd(opts *rootOptions) *cobra.Command {
	var (
		filter    string
		sortOrder string
		page      int
		size      int
	)

	cmd := &cobra.Command{
		Use:   "lessons <courseId>",
		Short: "Search one page of a course's lessons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCourseID(args[0])
			if err != nil {
				return err
			}

			lessons, err := opts.svc.FindLessons(cmd.Context(), id, filter, sortOrder, page, size)
			if err != nil {
				return err
			}
			return printJSON(cmd, lessons)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "only lessons whose description contains this text")
	cmd.Flags().StringVar(&sortOrder, "sort", model.SortAsc, "asc or desc by sequence number")
	cmd.Flags().IntVar(&page, "page", 0, "zero based page number")
	cmd.Flags().IntVar(&size, "size", model.DefaultPageSize, "lessons per page")

	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		key     string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for course updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				return fmt.Errorf("--key is required")
			}

			token, err := auth.IssueToken(key, subject, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "HS256 key shared with the API (JWT_KEY)")
	cmd.Flags().StringVar(&subject, "subject", "coursectl", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	return cmd
}
