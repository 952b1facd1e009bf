package config

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"k8s.io/client-go/util/homedir"
)

const (
	contextsDir    = "contexts"
	currentContext = "current"
)

var (
	configDirs = configdir.New("kfs", "hlf-console")

	ErrNoContext = errors.New("no context selected, run 'hlf-console context set' first")
)

// Context is a named console API endpoint.
type Context struct {
	Name    string            `json:"name"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

func (c Context) validate() error {
	if c.Name == "" {
		return errors.New("context name is required")
	}
	if c.URL == "" {
		return errors.Errorf("context %s has no url", c.Name)
	}
	return nil
}

// ContextStore keeps contexts as JSON files under the user config folder.
type ContextStore struct {
	folder *configdir.Config
}

func NewContextStore() (*ContextStore, error) {
	folders := configDirs.QueryFolders(configdir.Global)
	if len(folders) == 0 {
		return nil, errors.New("no user config folder available")
	}
	return &ContextStore{folder: folders[0]}, nil
}

// NewContextStoreAt stores contexts under dir instead of the user config
// folder.
func NewContextStoreAt(dir string) *ContextStore {
	return &ContextStore{folder: &configdir.Config{Path: dir, Type: configdir.Local}}
}

func contextFile(name string) string {
	hash := sha256.Sum256([]byte(name))
	return fmt.Sprintf("%s/%x", contextsDir, hash)
}

func (s *ContextStore) Get(name string) (*Context, error) {
	contentBytes, err := s.folder.ReadFile(contextFile(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("context %s not found", name)
		}
		return nil, errors.Wrapf(err, "failed to read context %s", name)
	}
	item := &Context{}
	if err := json.Unmarshal(contentBytes, item); err != nil {
		return nil, errors.Wrapf(err, "context %s is corrupt", name)
	}
	return item, nil
}

// Add creates or replaces a context.
func (s *ContextStore) Add(ctx Context) error {
	if err := ctx.validate(); err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(ctx)
	if err != nil {
		return err
	}
	if err := s.folder.WriteFile(contextFile(ctx.Name), jsonBytes); err != nil {
		return errors.Wrapf(err, "failed to write context %s", ctx.Name)
	}
	return nil
}

func (s *ContextStore) List() ([]*Context, error) {
	entries, err := os.ReadDir(filepath.Join(s.folder.Path, contextsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var contexts []*Context
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		contentBytes, err := s.folder.ReadFile(filepath.Join(contextsDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		item := &Context{}
		if err := json.Unmarshal(contentBytes, item); err != nil {
			return nil, errors.Wrapf(err, "context file %s is corrupt", entry.Name())
		}
		contexts = append(contexts, item)
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i].Name < contexts[j].Name })
	return contexts, nil
}

// Use makes name the current context.
func (s *ContextStore) Use(name string) error {
	if _, err := s.Get(name); err != nil {
		return err
	}
	return s.folder.WriteFile(currentContext, []byte(name))
}

func (s *ContextStore) Current() (*Context, error) {
	name, err := s.folder.ReadFile(currentContext)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoContext
		}
		return nil, err
	}
	return s.Get(strings.TrimSpace(string(name)))
}

// ExpandPath resolves a leading ~ to the home directory.
func ExpandPath(path string) string {
	if path == "~" {
		return homedir.HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homedir.HomeDir(), path[2:])
	}
	return path
}
