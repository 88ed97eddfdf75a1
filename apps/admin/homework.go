package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/trezcool/homework/core"
	"github.com/trezcool/homework/core/homework"
)

func (cli *commandLine) styles() (header, label lipgloss.Style) {
	r := lipgloss.NewRenderer(cli.out)
	return r.NewStyle().Bold(true).Underline(true), r.NewStyle().Bold(true)
}

func (cli *commandLine) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List the subjects that have homework",
		Args:    cobra.NoArgs,
		PreRunE: cli.openStore,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subjects, err := cli.svc.ListSubjects(cmd.Context())
			if err != nil {
				return err
			}
			header, _ := cli.styles()
			fmt.Fprintln(cli.out, header.Render("Subjects"))
			for _, s := range subjects {
				fmt.Fprintln(cli.out, s)
			}
			return nil
		},
	}
}

func (cli *commandLine) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show SUBJECT",
		Short:   "Show the homework of a subject",
		Args:    cobra.ExactArgs(1),
		PreRunE: cli.openStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := cli.svc.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cli.printRecord(rec)
			return nil
		},
	}
}

func (cli *commandLine) printRecord(rec homework.Record) {
	header, label := cli.styles()
	fmt.Fprintln(cli.out, header.Render(rec.Subject))
	fmt.Fprintf(cli.out, "%s %s\n", label.Render("Due Date:"), rec.DueDateString())
	fmt.Fprintf(cli.out, "%s %s\n", label.Render("Details:"), rec.Details)
}

func (cli *commandLine) addCmd() *cobra.Command {
	var form homework.Form

	cmd := &cobra.Command{
		Use:     "add SUBJECT",
		Short:   "Create or overwrite the homework of a subject",
		Args:    cobra.ExactArgs(1),
		PreRunE: cli.openStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Subject = args[0]
			if err := form.Validate(cli.validate); err != nil {
				return core.TranslateValidationErrors(err, cli.translator)
			}
			rec := form.Record()
			if err := cli.svc.Upsert(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "saved homework for %q\n", rec.Subject)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.DueDate, "due", "", "due date, YYYY-MM-DD or DD/MM/YYYY")
	cmd.Flags().StringVar(&form.Details, "details", "", "free-text details")
	return cmd
}

func (cli *commandLine) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete SUBJECT",
		Short:   "Delete the homework of a subject",
		Args:    cobra.ExactArgs(1),
		PreRunE: cli.openStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.svc.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "deleted homework for %q\n", args[0])
			return nil
		},
	}
}
