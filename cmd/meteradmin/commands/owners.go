package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"meteradmin/internal/domain"
	"meteradmin/internal/export"
)

// ownersCmd builds the officers or users command group.
func ownersCmd(role domain.Role) *cobra.Command {
	cmd := &cobra.Command{
		Use:   role.String() + "s",
		Short: "Manage " + role.String() + "s",
	}
	cmd.AddCommand(
		listCmd(role),
		addCmd(role),
		editCmd(role),
		deleteCmd(role),
		exportCmd(role),
	)
	return cmd
}

func queryFlags(cmd *cobra.Command, q *domain.ListQuery) {
	cmd.Flags().StringVarP(&q.Search, "query", "q", "", "search text")
	cmd.Flags().StringVar((*string)(&q.Mode), "mode", "", "search mode: contains or fuzzy")
	cmd.Flags().StringVar(&q.SortBy, "sort", "", "sort column (name, email, phoneNumber, id, street, city, province, country, createdAt)")
	cmd.Flags().StringVar((*string)(&q.Order), "order", "", "ascend or descend")
}

func listCmd(role domain.Role) *cobra.Command {
	var q domain.ListQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + role.String() + "s",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := appCtx.Authed()
			if err != nil {
				return err
			}
			res, err := c.ListOwners(cmd.Context(), role, q)
			if err != nil {
				return err
			}
			printOwners(role, res)
			return nil
		},
	}
	queryFlags(cmd, &q)
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.PageSize, "page-size", 10, "rows per page")
	return cmd
}

func printOwners(role domain.Role, res domain.ListResult) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if role == domain.RoleOfficer {
		fmt.Fprintln(tw, "NO.\tUID\tID OFFICER\tNAME\tEMAIL\tPHONE")
	} else {
		fmt.Fprintln(tw, "NO.\tUID\tNAME\tEMAIL\tPHONE\tCITY\tMETERS")
	}
	for i, o := range res.Owners {
		no := strconv.Itoa(res.Offset() + i + 1)
		if role == domain.RoleOfficer {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", no, o.ID, o.OfficerID, o.Name, o.Email, o.PhoneNumber)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n", no, o.ID, o.Name, o.Email, o.PhoneNumber, o.City, len(o.Meters))
		}
	}
	_ = tw.Flush()
	pages := (res.Total + res.PageSize - 1) / max(res.PageSize, 1)
	fmt.Printf("page %d of %d, %d %ss\n", res.Page, max(pages, 1), res.Total, role)
}

func addCmd(role domain.Role) *cobra.Command {
	var officer domain.OfficerInput
	var user domain.UserInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new " + role.String(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := appCtx.Authed()
			if err != nil {
				return err
			}
			var o domain.Owner
			if role == domain.RoleOfficer {
				o, err = c.RegisterOfficer(cmd.Context(), officer)
			} else {
				o, err = c.RegisterUser(cmd.Context(), user)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s %s (%s)\n", role, o.Name, o.ID)
			return nil
		},
	}
	f := cmd.Flags()
	if role == domain.RoleOfficer {
		f.StringVar(&officer.OfficerID, "id", "", "officer id")
		f.StringVar(&officer.Name, "name", "", "full name")
		f.StringVar(&officer.Email, "email", "", "e-mail")
		f.StringVar(&officer.PhoneNumber, "phone", "", "phone number")
		return cmd
	}
	f.StringVar(&user.Name, "name", "", "full name")
	f.StringVar(&user.Email, "email", "", "e-mail")
	f.StringVar(&user.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&user.Street, "street", "", "street")
	f.StringVar(&user.City, "city", "", "city")
	f.StringVar(&user.Province, "province", "", "province")
	f.StringVar(&user.Country, "country", "", "country")
	f.StringVar(&user.WaterMeter1.ID, "meter-id", "", "first water meter id")
	f.StringVar(&user.WaterMeter1.Address, "meter-address", "", "first water meter address")
	return cmd
}

func editCmd(role domain.Role) *cobra.Command {
	var name, officerID, phone, street, city, province, country string
	cmd := &cobra.Command{
		Use:   "edit <uid>",
		Short: "Edit a " + role.String() + "; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := appCtx.Authed()
			if err != nil {
				return err
			}
			id := domain.OwnerID(args[0])
			cur, err := c.GetOwner(cmd.Context(), id)
			if err != nil {
				return err
			}
			pick := func(flag, value, current string) string {
				if cmd.Flags().Changed(flag) {
					return value
				}
				return current
			}
			if role == domain.RoleOfficer {
				err = c.EditOfficer(cmd.Context(), id, domain.OfficerEdit{
					Name:        pick("name", name, cur.Name),
					OfficerID:   pick("id", officerID, cur.OfficerID),
					PhoneNumber: pick("phone", phone, cur.PhoneNumber),
				})
			} else {
				err = c.EditUser(cmd.Context(), id, domain.UserEdit{
					Name:        pick("name", name, cur.Name),
					PhoneNumber: pick("phone", phone, cur.PhoneNumber),
					Street:      pick("street", street, cur.Street),
					City:        pick("city", city, cur.City),
					Province:    pick("province", province, cur.Province),
					Country:     pick("country", country, cur.Country),
				})
			}
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s %s\n", role, id)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "full name")
	f.StringVar(&phone, "phone", "", "phone number")
	if role == domain.RoleOfficer {
		f.StringVar(&officerID, "id", "", "officer id")
		return cmd
	}
	f.StringVar(&street, "street", "", "street")
	f.StringVar(&city, "city", "", "city")
	f.StringVar(&province, "province", "", "province")
	f.StringVar(&country, "country", "", "country")
	return cmd
}

func deleteCmd(role domain.Role) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <uid>...",
		Short: "Delete " + role.String() + "s and their accounts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := appCtx.Authed()
			if err != nil {
				return err
			}
			ids := make([]domain.OwnerID, len(args))
			for i, a := range args {
				ids[i] = domain.OwnerID(a)
			}
			n, err := c.DeleteOwners(cmd.Context(), role, ids)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d %s(s)\n", n, role)
			return nil
		},
	}
}

func exportCmd(role domain.Role) *cobra.Command {
	var q domain.ListQuery
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export " + role.String() + "s to an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := appCtx.Authed()
			if err != nil {
				return err
			}
			if out == "" {
				out = export.UsersFilename
				if role == domain.RoleOfficer {
					out = export.OfficersFilename
				}
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if _, err := c.Export(cmd.Context(), role, q, f); err != nil {
				_ = f.Close()
				_ = os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}
	queryFlags(cmd, &q)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default officer_data.xlsx or user_data.xlsx)")
	return cmd
}
