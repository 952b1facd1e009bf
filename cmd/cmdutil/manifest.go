package cmdutil

import (
	"io/ioutil"
	"strings"

	"github.com/kfsoftware/hlf-console/config"
	"github.com/kfsoftware/hlf-console/gql/models"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

// Manifest is a resource manifest as sent to the console API.
type Manifest struct {
	YAML   string
	Object *unstructured.Unstructured
}

// Key is the (name, namespace) identity declared in the manifest metadata.
func (m *Manifest) Key() models.NameAndNamespace {
	return models.NameAndNamespace{Name: m.Object.GetName(), Namespace: m.Object.GetNamespace()}
}

// ParseManifest checks that contents is a single Kubernetes object and,
// when kind is not empty, that it has that kind.
func ParseManifest(contents []byte, kind string) (*Manifest, error) {
	if strings.TrimSpace(string(contents)) == "" {
		return nil, errors.New("manifest is empty")
	}
	jsonBytes, err := yaml.YAMLToJSON(contents)
	if err != nil {
		return nil, errors.Wrap(err, "manifest is not valid YAML")
	}
	obj := &unstructured.Unstructured{}
	if err := obj.UnmarshalJSON(jsonBytes); err != nil {
		return nil, errors.Wrap(err, "manifest is not a Kubernetes object")
	}
	if kind != "" && obj.GetKind() != kind {
		return nil, errors.Errorf("manifest has kind %q, expected %q", obj.GetKind(), kind)
	}
	return &Manifest{YAML: string(contents), Object: obj}, nil
}

func ReadManifest(file, kind string) (*Manifest, error) {
	contents, err := ioutil.ReadFile(config.ExpandPath(file))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", file)
	}
	m, err := ParseManifest(contents, kind)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid manifest %s", file)
	}
	return m, nil
}
