// Package loam loads named parameter scenarios from a Loam document
// repository (Markdown with frontmatter, JSON or YAML files).
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/epigraph/pkg/params"
	"github.com/aretw0/loam"
)

// Scenario is a decoded scenario document.
type Scenario struct {
	Name        string
	Description string
	Tags        []string
	// Notes is the document body (Markdown), if any.
	Notes      string
	Parameters params.Parameters
}

// Loader resolves scenarios by name.
type Loader struct {
	Repo *loam.TypedRepository[ScenarioMetadata]
	// Base is the parameter set scenario overrides apply to.
	Base params.Parameters
}

// New creates a loader over repo using the default parameters as base.
func New(repo *loam.TypedRepository[ScenarioMetadata]) *Loader {
	return &Loader{Repo: repo, Base: params.Default()}
}

// Open initializes an unversioned Loam repository rooted at dir.
func Open(dir string) (*Loader, error) {
	repo, err := loam.Init(dir, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario repository %q: %w", dir, err)
	}
	return New(loam.NewTypedRepository[ScenarioMetadata](repo)), nil
}

// Load fetches and decodes the scenario called name.
func (l *Loader) Load(ctx context.Context, name string) (Scenario, error) {
	doc, err := l.Repo.Get(ctx, name)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %q: %w", name, err)
	}

	p, err := params.Decode(l.Base, doc.Data.Parameters)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %q: %w", name, err)
	}

	id := doc.Data.ID
	if id == "" {
		id = doc.ID
	}
	return Scenario{
		Name:        trimExtension(id),
		Description: doc.Data.Description,
		Tags:        doc.Data.Tags,
		Notes:       strings.TrimSpace(doc.Content),
		Parameters:  p,
	}, nil
}

// List returns the sorted scenario names in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		name := trimExtension(rawID)

		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: scenario '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
