package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Kerhoff/GymMembers/internal/models"
	"github.com/Kerhoff/GymMembers/internal/roster"
)

// errNotInteractive is returned by delete without --yes when stdin is not a terminal
var errNotInteractive = errors.New("refusing to delete without confirmation: pass --yes when not running interactively")

// memberFlags binds the editable member fields to command flags
type memberFlags struct {
	name, email, membershipType, joinDate, status string
}

func (f *memberFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "member name")
	cmd.Flags().StringVar(&f.email, "email", "", "member email")
	cmd.Flags().StringVar(&f.membershipType, "type", "", "membership type (Basic, Premium, VIP, Family)")
	cmd.Flags().StringVar(&f.joinDate, "join-date", "", "join date as YYYY-MM-DD")
	cmd.Flags().StringVar(&f.status, "status", "", "status (Active, Inactive, Expired)")
}

// apply copies only the flags the operator actually set onto the form
func (f *memberFlags) apply(cmd *cobra.Command, fields *roster.FormFields) {
	changed := cmd.Flags().Changed
	if changed("name") {
		fields.Name = f.name
	}
	if changed("email") {
		fields.Email = f.email
	}
	if changed("type") {
		fields.MembershipType = models.MembershipType(f.membershipType)
	}
	if changed("join-date") {
		fields.JoinDate = f.joinDate
	}
	if changed("status") {
		fields.Status = models.MemberStatus(f.status)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid member id %q", arg)
	}
	return id, nil
}

func (a *App) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all members by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.reconciler()
			if err := r.Refresh(cmd.Context()); err != nil {
				return err
			}
			a.printMembers(r.State().Members)
			return nil
		},
	}
}

func (a *App) newAddCommand() *cobra.Command {
	var flags memberFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.reconciler()
			if err := r.Refresh(cmd.Context()); err != nil {
				return err
			}
			r.SetForm(func(fields *roster.FormFields) { flags.apply(cmd, fields) })
			if err := r.Submit(cmd.Context()); err != nil {
				return err
			}
			a.printf("Member added.\n")
			a.printMembers(r.State().Members)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *App) newEditCommand() *cobra.Command {
	var flags memberFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a member; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			r := a.reconciler()
			if err := r.Refresh(cmd.Context()); err != nil {
				return err
			}
			if err := r.BeginEdit(id); err != nil {
				return err
			}
			r.SetForm(func(fields *roster.FormFields) { flags.apply(cmd, fields) })
			if err := r.Submit(cmd.Context()); err != nil {
				return err
			}

			a.printf("Member %d updated.\n", id)
			a.printMembers(r.State().Members)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *App) newDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a member after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && (a.IsTerminal == nil || !a.IsTerminal()) {
				return errNotInteractive
			}

			r := a.reconciler()
			if err := r.Refresh(cmd.Context()); err != nil {
				return err
			}

			confirm := a.prompt
			if yes {
				confirm = func(models.Member) bool { return true }
			}
			deleted, err := r.Delete(cmd.Context(), id, confirm)
			if err != nil {
				return err
			}
			if !deleted {
				a.printf("Cancelled.\n")
				return nil
			}
			a.printf("Member %d deleted.\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// prompt asks the operator to confirm deleting m
func (a *App) prompt(m models.Member) bool {
	a.printf("Delete %s <%s>? [y/N]: ", m.Name, m.Email)
	sc := bufio.NewScanner(a.In)
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}

func (a *App) printMembers(members []models.Member) {
	if len(members) == 0 {
		a.printf("No members found.\n")
		return
	}
	tw := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tTYPE\tJOINED\tSTATUS")
	for _, m := range members {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, m.MembershipType, m.JoinDate, m.Status)
	}
	tw.Flush()
}
