package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/pkgscope/frontier/pkg/frontier"
)

// reportTemplate renders the frontier as a nested ordered list, one item
// per dependency source with its crossings underneath.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>{{.Title}}</title>
  </head>
  <body>
    <h1 id="heading" class="title">{{.Title}}</h1>
    <p>Each entry below is a dependency edge where provenance crosses the workspace boundary.</p>
    <ol id="main">
{{- range .Sources}}
      <li class="item">package <code>{{.Name}}</code> introduces transitive dependencies on <code>{{$.Target}}</code> via:
        <ol class="nested">
{{- range .Dependencies}}
          <li class="nested-item">dependency: <code>{{.}}</code></li>
{{- end}}
        </ol>
      </li>
{{- end}}
    </ol>
  </body>
</html>
`))

type htmlSource struct {
	Name         string
	Dependencies []string
}

type htmlReport struct {
	Title   string
	Target  string
	Sources []htmlSource
}

func writeHTML(r *frontier.Report, w io.Writer) error {
	data := htmlReport{
		Title:  fmt.Sprintf("workspace frontier for transitive dependencies on %s", r.TargetDependency),
		Target: r.TargetDependency,
	}
	for _, source := range r.Sources() {
		data.Sources = append(data.Sources, htmlSource{
			Name:         source,
			Dependencies: r.Frontier[source],
		})
	}
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
