package cmds

import (
	"context"
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"restmvc/internal/client"
)

// Root is the top-level command and the state shared by its children.
type Root struct {
	cobra.Command

	server string
}

func New(name string) *Root {
	root := &Root{
		Command: cobra.Command{
			Use:          name,
			Short:        "Command line client for the beer and customer API",
			SilenceUsage: true,
		},
	}

	root.PersistentFlags().StringVar(&root.server, "server", "http://localhost:8080", "Base URL of the API server")

	return root
}

func (r *Root) Client() *client.Client {
	return client.New(r.server)
}

func (r *Root) Context() context.Context {
	if ctx := r.Command.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Print writes v to stdout as indented JSON.
func (r *Root) Print(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logrus.Fatal(err.Error())
	}
}

// readJSON decodes a JSON object passed on the command line or "-" for stdin.
func readJSON(arg string, dst interface{}) {
	var err error
	if arg == "-" {
		err = json.NewDecoder(os.Stdin).Decode(dst)
	} else {
		err = json.Unmarshal([]byte(arg), dst)
	}
	if err != nil {
		logrus.Fatalf("invalid JSON: %s", err)
	}
}
