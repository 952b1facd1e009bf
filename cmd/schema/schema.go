package schema

import (
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"strings"

	"github.com/kfsoftware/hlf-console/gql"
	"github.com/kfsoftware/hlf-console/gql/client"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const schemaExample = `  hlf-console schema > schema.graphqls
  hlf-console schema --documents
  hlf-console schema --validate ./query.graphql`

type schemaCmd struct {
	documents bool
	validate  string
}

func (c *schemaCmd) run(out io.Writer) error {
	if c.validate != "" {
		return validateFile(out, c.validate)
	}
	if c.documents {
		return writeDocuments(out)
	}
	_, err := io.WriteString(out, gql.SDL())
	return err
}

func writeDocuments(out io.Writer) error {
	names := make([]string, 0, len(client.Documents))
	for name := range client.Documents {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(out, "# %s\n%s\n", name, strings.TrimSpace(client.Documents[name])); err != nil {
			return err
		}
	}
	return nil
}

func validateFile(out io.Writer, path string) error {
	contents, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	doc, err := gql.ValidateDocument(string(contents))
	if err != nil {
		return errors.Wrapf(err, "%s is not valid", path)
	}
	for _, op := range doc.Operations {
		fmt.Fprintf(out, "%s %s: ok\n", op.Operation, op.Name)
	}
	return nil
}

func NewSchemaCmd() *cobra.Command {
	c := &schemaCmd{}
	cmd := &cobra.Command{
		Use:     "schema",
		Short:   "Print the console API schema or check documents against it",
		Example: schemaExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.BoolVar(&c.documents, "documents", false, "print the documents sent by the client")
	f.StringVar(&c.validate, "validate", "", "validate the operations of a GraphQL file")
	return cmd
}
