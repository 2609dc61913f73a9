package agent

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

type Prompt struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`

	tmpl *template.Template
}

// PromptData is the union of the values referenced by the prompt templates.
type PromptData struct {
	Title    string
	URL      string
	Content  string
	Summary  string
	Critique string
}

type Catalog struct {
	Summarize Prompt `yaml:"summarize"`
	Critique  Prompt `yaml:"critique"`
	Validate  Prompt `yaml:"validate"`
	Refine    Prompt `yaml:"refine"`
	Headline  Prompt `yaml:"headline"`
}

type PromptLoader struct {
	reader io.Reader
}

func NewPromptLoader(reader io.Reader) *PromptLoader {
	return &PromptLoader{
		reader: reader,
	}
}

func (pl *PromptLoader) Load() (*Catalog, error) {
	decoder := yaml.NewDecoder(pl.reader)
	var catalog Catalog
	if err := decoder.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode prompts: %w", err)
	}
	if err := catalog.compile(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// DefaultCatalog returns the embedded prompt catalog.
func DefaultCatalog() *Catalog {
	catalog, err := NewPromptLoader(bytes.NewReader(defaultPrompts)).Load()
	if err != nil {
		panic(fmt.Sprintf("embedded prompts are invalid: %v", err))
	}
	return catalog
}

// LoadCatalog reads the catalog from path, or returns the embedded one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewPromptLoader(f).Load()
}

func (c *Catalog) compile() error {
	prompts := map[string]*Prompt{
		"summarize": &c.Summarize,
		"critique":  &c.Critique,
		"validate":  &c.Validate,
		"refine":    &c.Refine,
		"headline":  &c.Headline,
	}
	for name, p := range prompts {
		if strings.TrimSpace(p.User) == "" {
			return fmt.Errorf("prompt %q: missing user template", name)
		}
		tmpl, err := template.New(name).Option("missingkey=error").Parse(p.User)
		if err != nil {
			return fmt.Errorf("prompt %q: %w", name, err)
		}
		p.tmpl = tmpl
	}
	return nil
}

func (p Prompt) Render(data PromptData) (string, error) {
	if p.tmpl == nil {
		return "", fmt.Errorf("prompt is not compiled")
	}
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
