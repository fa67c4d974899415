package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"meteradmin/internal/domain"
	"meteradmin/internal/meter"
)

func metersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meters",
		Short: "Show or edit a user's water meters",
	}
	cmd.AddCommand(metersShowCmd(), metersEditCmd())
	return cmd
}

func metersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <uid>",
		Short: "List a user's water meters by slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := appCtx.Authed()
			if err != nil {
				return err
			}
			o, err := c.GetOwner(cmd.Context(), domain.OwnerID(args[0]))
			if err != nil {
				return err
			}
			printMeters(o.Name, meter.Load(o.Meters))
			return nil
		},
	}
}

func printMeters(name string, coll *meter.Collection) {
	fmt.Printf("%s: %d meter(s)\n", name, coll.Len())
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tID\tADDRESS")
	for _, slot := range coll.Slots() {
		rec, _ := coll.Get(slot)
		fmt.Fprintf(tw, "%d\t%s\t%s\n", slot, rec.ID, rec.Address)
	}
	_ = tw.Flush()
}

func metersEditCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "edit <uid> <op>...",
		Short: "Apply add/set/remove ops to a user's meters and save them",
		Long: `Apply edits to a user's water meters, then save the whole collection in
one request. Meters are renumbered 1..N on save.

Ops:
  add:ID|ADDRESS          append a meter
  set:SLOT:id=VALUE       change a meter's id
  set:SLOT:address=VALUE  change a meter's address
  remove:SLOT             drop a meter

Example:
  meteradmin meters edit 01J... remove:2 "add:WM-9|Jalan Mawar 3"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := make([]meterOp, 0, len(args)-1)
			for _, a := range args[1:] {
				op, err := parseMeterOp(a)
				if err != nil {
					return err
				}
				ops = append(ops, op)
			}

			c, _, err := appCtx.Authed()
			if err != nil {
				return err
			}
			o, err := c.GetOwner(cmd.Context(), domain.OwnerID(args[0]))
			if err != nil {
				return err
			}
			ed := meter.NewEditor(o.ID, o.Meters, c)
			for _, op := range ops {
				if err := op(ed.Collection()); err != nil {
					return err
				}
			}
			if dryRun {
				printMeters(o.Name, meter.Load(ed.Collection().FinalizeMap()))
				return nil
			}
			saved, err := ed.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("saved meters for %s\n", ed.Owner())
			printMeters(o.Name, meter.Load(saved))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the result without saving")
	return cmd
}
