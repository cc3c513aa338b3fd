package cmds

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"restmvc/internal/domain"
)

func GetBeerCommand(root *Root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beer [id]",
		Short: "List beers or show one beer",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cli := root.Client()

			if len(args) > 0 {
				res, err := cli.GetBeer(root.Context(), args[0])
				if err != nil {
					logrus.Fatal(err.Error())
				}

				root.Print(res)
				return
			}

			res, err := cli.ListBeers(root.Context())
			if err != nil {
				logrus.Fatal(err.Error())
			}

			root.Print(res)
		},
	}

	cmd.AddCommand(
		CreateBeerCommand(root),
		UpdateBeerCommand(root),
		PatchBeerCommand(root),
		DeleteBeerCommand(root),
	)

	return cmd
}

func CreateBeerCommand(root *Root) *cobra.Command {
	var (
		beer  domain.Beer
		style string
		price string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a beer from flags",
		Run: func(cmd *cobra.Command, args []string) {
			if style != "" {
				s, err := domain.ParseBeerStyle(style)
				if err != nil {
					logrus.Fatal(err.Error())
				}
				beer.BeerStyle = s
			}
			if price != "" {
				readJSON(price, &beer.Price)
			}

			id, err := root.Client().CreateBeer(root.Context(), beer)
			if err != nil {
				logrus.Fatal(err.Error())
			}

			root.Print(map[string]string{"id": id.String()})
		},
	}

	f := cmd.Flags()
	{
		f.StringVar(&beer.BeerName, "name", "", "The name of the beer")
		f.StringVar(&style, "style", "", "One of LAGER, PILSNER, STOUT, GOSE, PORTER, ALE, WHEAT, IPA, PALE_ALE, SAISON")
		f.StringVar(&beer.Upc, "upc", "", "The UPC code")
		f.StringVar(&price, "price", "", "The price, e.g. 12.99")
		f.IntVar(&beer.QuantityOnHand, "quantity", 0, "Units on hand")
	}

	return cmd
}

func UpdateBeerCommand(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:   "update [id] [json|-]",
		Short: "Replace every field of a beer",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			var beer domain.Beer
			readJSON(args[1], &beer)

			if err := root.Client().UpdateBeer(root.Context(), args[0], beer); err != nil {
				logrus.Fatal(err.Error())
			}
		},
	}
}

func PatchBeerCommand(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:   "patch [id] [json|-]",
		Short: "Change only the given fields of a beer",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			var patch domain.BeerPatch
			readJSON(args[1], &patch)

			if err := root.Client().PatchBeer(root.Context(), args[0], patch); err != nil {
				logrus.Fatal(err.Error())
			}
		},
	}
}

func DeleteBeerCommand(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:  "delete [id]",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := root.Client().DeleteBeer(root.Context(), args[0]); err != nil {
				logrus.Fatal(err)
			}
		},
	}
}
