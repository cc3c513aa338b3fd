package main

import (
	"github.com/sirupsen/logrus"

	"restmvc/cmd/restctl/cmds"
)

func main() {
	root := cmds.New("restctl")

	root.AddCommand(
		cmds.GetBeerCommand(root),
		cmds.GetCustomerCommand(root),
	)

	if err := root.Execute(); err != nil {
		logrus.Fatal(err.Error())
	}
}
