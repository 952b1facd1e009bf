package node

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/kfsoftware/hlf-console/cmd/cmdutil"
	"github.com/kfsoftware/hlf-console/config"
	"github.com/kfsoftware/hlf-console/gql/models"
	"github.com/kfsoftware/hlf-console/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewPeerCmd() *cobra.Command {
	return newResourceCmd(peerResource)
}

func NewOrdererCmd() *cobra.Command {
	return newResourceCmd(ordererResource)
}

func NewCACmd() *cobra.Command {
	return newResourceCmd(caResource)
}

func newResourceCmd(r resource) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.name,
		Short: fmt.Sprintf("Manage %s resources", r.kind),
	}
	cmd.AddCommand(
		newListCmd(r),
		newGetCmd(r),
		newCreateCmd(r),
		newUpdateCmd(r),
	)
	return cmd
}

type listCmd struct {
	resource  resource
	output    string
	outputDir string
}

func (c *listCmd) validate() error {
	return cmdutil.ValidateFormat(c.output)
}

// fileName is the slugged file a listed item is written to.
func fileName(i item) string {
	return slug.Make(fmt.Sprintf("%s-%s", i.Namespace, i.Name)) + ".yaml"
}

func (c *listCmd) run(ctx context.Context, out io.Writer) error {
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	items, err := c.resource.list(ctx, gqlClient)
	if err != nil {
		return err
	}
	if c.outputDir != "" {
		dir := config.ExpandPath(c.outputDir)
		if err := cmdutil.EnsureDirs(dir); err != nil {
			return err
		}
		for _, i := range items {
			path := filepath.Join(dir, fileName(i))
			if err := ioutil.WriteFile(path, []byte(i.YAML), 0644); err != nil {
				return errors.Wrapf(err, "failed to write %s", path)
			}
			log.Infof("%s %s written to %s", c.resource.name, i.key(), path)
		}
		return nil
	}
	if c.output != cmdutil.FormatTable {
		if items == nil {
			items = []item{}
		}
		return cmdutil.PrintObject(out, c.output, items)
	}
	table := cmdutil.NewTable("NAME", "NAMESPACE")
	for _, i := range items {
		table.Row(i.Name, i.Namespace)
	}
	return table.Write(out)
}

func newListCmd(r resource) *cobra.Command {
	c := &listCmd{resource: r}
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s resources in every namespace", r.kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&c.output, "output", "o", cmdutil.FormatTable, "output format: table, yaml or json")
	f.StringVar(&c.outputDir, "output-dir", "", "write the manifest of each resource to this directory")
	return cmd
}

type getCmd struct {
	resource  resource
	name      string
	namespace string
}

func (c *getCmd) validate() error {
	if c.name == "" {
		return errors.New("--name is required")
	}
	if c.namespace == "" {
		return errors.New("--namespace is required")
	}
	return nil
}

func (c *getCmd) run(ctx context.Context, out io.Writer) error {
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	key := models.NameAndNamespace{Name: c.name, Namespace: c.namespace}
	i, err := c.resource.get(ctx, gqlClient, key)
	if err != nil {
		return err
	}
	if i == nil {
		return errors.Errorf("%s %s not found", c.resource.name, key)
	}
	_, err = io.WriteString(out, i.YAML)
	return err
}

func newGetCmd(r resource) *cobra.Command {
	c := &getCmd{resource: r}
	cmd := &cobra.Command{
		Use:   "get",
		Short: fmt.Sprintf("Print the manifest of a %s", r.kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.name, "name", "", "name of the resource")
	f.StringVarP(&c.namespace, "namespace", "n", "default", "namespace of the resource")
	return cmd
}

type createCmd struct {
	resource resource
	file     string
}

func (c *createCmd) validate() error {
	if c.file == "" {
		return errors.New("--file is required")
	}
	return nil
}

func (c *createCmd) run(ctx context.Context, out io.Writer) error {
	manifest, err := cmdutil.ReadManifest(c.file, c.resource.kind)
	if err != nil {
		return err
	}
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	i, err := c.resource.create(ctx, gqlClient, manifest.YAML)
	if err != nil {
		return err
	}
	if i == nil {
		return errors.Errorf("%s %s was not created", c.resource.name, manifest.Key())
	}
	_, err = fmt.Fprintf(out, "%s %s created\n", c.resource.name, i.key())
	return err
}

func newCreateCmd(r resource) *cobra.Command {
	c := &createCmd{resource: r}
	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s from a manifest", r.kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&c.file, "file", "f", "", "manifest file")
	return cmd
}

type updateCmd struct {
	resource  resource
	file      string
	name      string
	namespace string
}

func (c *updateCmd) validate() error {
	if c.file == "" {
		return errors.New("--file is required")
	}
	return nil
}

// key returns the identity from the flags, falling back to the manifest
// metadata for the parts that were not given.
func (c *updateCmd) key(manifest *cmdutil.Manifest) (models.NameAndNamespace, error) {
	key := manifest.Key()
	if c.name != "" {
		key.Name = c.name
	}
	if c.namespace != "" {
		key.Namespace = c.namespace
	}
	if key.Name == "" {
		return key, errors.New("--name is required when the manifest has no metadata.name")
	}
	if key.Namespace == "" {
		key.Namespace = "default"
	}
	return key, nil
}

func (c *updateCmd) run(ctx context.Context, out io.Writer) error {
	manifest, err := cmdutil.ReadManifest(c.file, c.resource.kind)
	if err != nil {
		return err
	}
	key, err := c.key(manifest)
	if err != nil {
		return err
	}
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	i, err := c.resource.update(ctx, gqlClient, key, manifest.YAML)
	if err != nil {
		return err
	}
	if i == nil {
		return errors.Errorf("%s %s not found", c.resource.name, key)
	}
	_, err = fmt.Fprintf(out, "%s %s updated\n", c.resource.name, i.key())
	return err
}

func newUpdateCmd(r resource) *cobra.Command {
	c := &updateCmd{resource: r}
	cmd := &cobra.Command{
		Use:   "update",
		Short: fmt.Sprintf("Replace the manifest of a %s", r.kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&c.file, "file", "f", "", "manifest file")
	f.StringVar(&c.name, "name", "", "name of the resource, defaults to metadata.name")
	f.StringVarP(&c.namespace, "namespace", "n", "", "namespace of the resource, defaults to metadata.namespace")
	return cmd
}
