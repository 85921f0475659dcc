package catalog

import (
	"fmt"

	"GeniusLabs/internal/app_errors"

	"github.com/ilyakaznacheev/cleanenv"
)

// Module is one catalog entry: a named collection of lessons. The catalog is
// owned by the content collaborator; this service only reads lesson counts
// from it when recomputing progress percentages.
type Module struct {
	ID      string   `yaml:"id" json:"id"`
	Title   string   `yaml:"title" json:"title"`
	Lessons []string `yaml:"lessons" json:"lessons"`
	Quizzes []string `yaml:"quizzes" json:"quizzes"`
}

type Catalog struct {
	modules map[string]Module
	order   []string
}

type catalogFile struct {
	Modules []Module `yaml:"modules"`
}

func Load(path string) (*Catalog, error) {
	var file catalogFile
	if err := cleanenv.ReadConfig(path, &file); err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return New(file.Modules)
}

func New(modules []Module) (*Catalog, error) {
	c := &Catalog{modules: make(map[string]Module, len(modules))}
	for _, m := range modules {
		if m.ID == "" {
			return nil, fmt.Errorf("catalog module without id")
		}
		if _, ok := c.modules[m.ID]; ok {
			return nil, fmt.Errorf("duplicate catalog module %q", m.ID)
		}
		c.modules[m.ID] = m
		c.order = append(c.order, m.ID)
	}
	return c, nil
}

func (c *Catalog) Module(id string) (Module, error) {
	m, ok := c.modules[id]
	if !ok {
		return Module{}, app_errors.ErrUnknownModule
	}
	return m, nil
}

// LessonCount returns the number of lessons in a module, used as the
// denominator of the completion percentage.
func (c *Catalog) LessonCount(moduleID string) (int, error) {
	m, err := c.Module(moduleID)
	if err != nil {
		return 0, err
	}
	return len(m.Lessons), nil
}

func (c *Catalog) Modules() []Module {
	out := make([]Module, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.modules[id])
	}
	return out
}
