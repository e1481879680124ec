package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/hnzhou16/project-cocraft-redesign/internal/design"
	"github.com/hnzhou16/project-cocraft-redesign/internal/storage"
)

const (
	Home        = "home.html"
	Create      = "create.html"
	Results     = "results.html"
	NotFound    = "not_found.html"
	ServerError = "server_error.html"
)

//go:embed templates
var FS embed.FS

var pages = []string{Home, Create, Results, NotFound, ServerError}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

type StyleOption struct {
	Value string
	Label string
}

type CreateParams struct {
	Styles     []StyleOption
	Variations int
}

type ResultsParams struct {
	ID        string
	Style     string
	InputURL  template.URL
	Outputs   []string
	CreatedAt time.Time
	Email     string
}

func NewCreateParams() CreateParams {
	return CreateParams{
		Styles: lo.Map(design.Styles, func(s design.Style, _ int) StyleOption {
			return StyleOption{Value: string(s), Label: s.Label()}
		}),
		Variations: design.Variations,
	}
}

func NewResultsParams(gen *storage.Generation) ResultsParams {
	params := ResultsParams{
		ID:        gen.ID,
		Style:     gen.Style,
		Outputs:   gen.Outputs,
		CreatedAt: gen.CreatedAt,
		Email:     lo.FromPtr(gen.UserEmail),
	}
	// only our own image data URIs are trusted as src values
	if strings.HasPrefix(gen.InputURL, "data:image/") {
		params.InputURL = template.URL(gen.InputURL)
	}
	return params
}

type Templator struct {
	tmpls map[string]*template.Template
	err   error
	once  sync.Once
}

func (t *Templator) load() {
	t.tmpls = make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(FS, "templates/layout.html", "templates/"+name)
		if err != nil {
			t.err = fmt.Errorf("failed to parse %s: %w", name, err)
			return
		}
		t.tmpls[name] = tmpl
	}
}

// Render executes the named page inside the shared layout.
func (t *Templator) Render(name string, params any) ([]byte, error) {
	t.once.Do(t.load)
	if t.err != nil {
		return nil, t.err
	}

	tmpl, ok := t.tmpls[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %s", name)
	}

	var data bytes.Buffer
	if err := tmpl.ExecuteTemplate(&data, "layout", params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}
