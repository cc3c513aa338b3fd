package cmds

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"restmvc/internal/domain"
)

func GetCustomerCommand(root *Root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer [id]",
		Short: "List customers or show one customer",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cli := root.Client()

			if len(args) > 0 {
				res, err := cli.GetCustomer(root.Context(), args[0])
				if err != nil {
					logrus.Fatal(err.Error())
				}

				root.Print(res)
				return
			}

			res, err := cli.ListCustomers(root.Context())
			if err != nil {
				logrus.Fatal(err.Error())
			}

			root.Print(res)
		},
	}

	cmd.AddCommand(
		CreateCustomerCommand(root),
		UpdateCustomerCommand(root),
		PatchCustomerCommand(root),
		DeleteCustomerCommand(root),
	)

	return cmd
}

func CreateCustomerCommand(root *Root) *cobra.Command {
	var customer domain.Customer

	cmd := &cobra.Command{
		Use: "create",
		Run: func(cmd *cobra.Command, args []string) {
			id, err := root.Client().CreateCustomer(root.Context(), customer)
			if err != nil {
				logrus.Fatal(err.Error())
			}

			root.Print(map[string]string{"id": id.String()})
		},
	}

	cmd.Flags().StringVar(&customer.Name, "name", "", "The customer name")

	return cmd
}

func UpdateCustomerCommand(root *Root) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:  "update [id]",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			err := root.Client().UpdateCustomer(root.Context(), args[0], domain.Customer{Name: name})
			if err != nil {
				logrus.Fatal(err.Error())
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "The new name; empty clears it")

	return cmd
}

func PatchCustomerCommand(root *Root) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:  "patch [id]",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var patch domain.CustomerPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}

			if err := root.Client().PatchCustomer(root.Context(), args[0], patch); err != nil {
				logrus.Fatal(err.Error())
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "The new name; omit to keep it")

	return cmd
}

func DeleteCustomerCommand(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:  "delete [id]",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := root.Client().DeleteCustomer(root.Context(), args[0]); err != nil {
				logrus.Fatal(err)
			}
		},
	}
}
