package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/pantry/internal/foodgroup"
	"github.com/dukerupert/pantry/internal/model"
	"github.com/dukerupert/pantry/internal/tag"
	"github.com/dukerupert/pantry/internal/validate"
)

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"i"},
		Short:   "Manage items in a container",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list CONTAINER",
		Short: "List a container's items after refreshing freshness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			c, err := svc.OpenContainer(args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), c.Items())
			}
			if err := printItems(cmd.OutOrStdout(), c.Items()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d items in %s\n", c.Len(), c.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "List items in every container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			items, err := svc.AllItems()
			if err != nil {
				return err
			}
			if a.jsonOut {
				if items == nil {
					items = []model.ContainerItem{}
				}
				return printJSON(cmd.OutOrStdout(), items)
			}
			return printContainerItems(cmd.OutOrStdout(), items)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "add CONTAINER NAME QUANTITY EXPIRY",
		Short:   "Add an item; EXPIRY is day-month-year, e.g. 2-Oct-2026",
		Example: "  pantry item add Fridge Milk 2 14-Feb-2026",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			item, added, err := svc.CreateItem(args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "%q is already in %q; nothing changed\n", item.Name, args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s to %q (suggested group: %s)\n",
				item.Quantity, item.Name, args[0], foodgroup.Suggest(item.Name))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "qty CONTAINER ITEM QUANTITY",
		Short: "Change an item's quantity; 0 removes it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			edit, err := svc.EditQuantity(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if edit.Action == validate.QuantityDelete {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[1])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q now has quantity %d\n", args[1], edit.Quantity)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "group CONTAINER ITEM GROUP",
		Short: "Set an item's food group",
		Long:  "Set an item's food group. GROUP is one of the names shown by 'pantry item groups'.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := tag.FromDisplayName(model.FoodGroups, args[2])
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			if _, err := svc.UpdateFoodGroupTag(args[0], args[1], group); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q is now %s\n", args[1], group)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "groups",
		Short: "List food groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), model.FoodGroups.Names())
			}
			for _, name := range model.FoodGroups.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "suggest NAME",
		Short: "Suggest a food group for an item name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), foodgroup.Suggest(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "note CONTAINER ITEM NOTE",
		Short: "Attach a free-form note to an item; an empty note clears it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.SetCustomTag(args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note on %q\n", args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "remove CONTAINER ITEM",
		Aliases: []string{"rm"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.RemoveItem(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[1])
			return nil
		},
	})

	return cmd
}
