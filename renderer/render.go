package renderer

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/navigation"
	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/erraggy/oasdocs/selection"
)

//go:embed templates/page.html.tmpl templates/style.css
var templateFS embed.FS

var (
	pageTemplate = template.Must(template.New("oasdocs").Funcs(template.FuncMap{
		"endpointData":  endpointData,
		"componentData": componentData,
	}).ParseFS(templateFS, "templates/page.html.tmpl"))

	stylesheet = template.CSS(mustReadFile("templates/style.css"))
)

func mustReadFile(name string) string {
	data, err := templateFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Stylesheet returns the CSS embedded in standalone pages, for callers that
// serve it separately alongside WithStandalone(false) pages.
func Stylesheet() string {
	return string(stylesheet)
}

type endpointTemplateData struct {
	C endpointClasses
	E endpointView
}

func endpointData(p *pageView, e endpointView) endpointTemplateData {
	return endpointTemplateData{C: p.C.E, E: e}
}

type componentTemplateData struct {
	C    componentClasses
	Comp componentView
}

func componentData(p *pageView, c componentView) componentTemplateData {
	return componentTemplateData{C: p.C.Comp, Comp: c}
}

// Render renders the documentation page of doc.
//
// model may be nil, in which case it is built from doc. state marks the
// active sidebar entry; a state naming an unknown anchor marks nothing. An
// empty document renders the "No API spec loaded." page.
func Render(doc *document.Document, model *navigation.Model, state selection.State, opts ...Option) (*Page, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	if doc.IsEmpty() {
		return renderMessage(cfg, EmptyMessage, "oas-empty")
	}
	if model == nil {
		model = navigation.Build(doc)
	}

	view, err := buildView(doc, model, state, cfg)
	if err != nil {
		return nil, err
	}
	return execute("page", view)
}

// RenderError writes the page shown for a document that could not be
// loaded: a single "Invalid OpenAPI/Swagger spec: <message>" block and
// nothing else. For parse errors the message omits the source name.
func RenderError(w io.Writer, loadErr error, opts ...Option) error {
	page, err := ErrorPage(loadErr, opts...)
	if err != nil {
		return err
	}
	_, err = page.WriteTo(w)
	return err
}

// ErrorPage is RenderError returning the committed page.
func ErrorPage(loadErr error, opts ...Option) (*Page, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return renderMessage(cfg, ErrorPrefix+ErrorMessage(loadErr), "oas-error")
}

// RenderEmpty writes the "No API spec loaded." page.
func RenderEmpty(w io.Writer, opts ...Option) error {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return err
	}
	page, err := renderMessage(cfg, EmptyMessage, "oas-empty")
	if err != nil {
		return err
	}
	_, err = page.WriteTo(w)
	return err
}

// ErrorMessage returns the user-facing text of a load error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var pe *oaserrors.ParseError
	if errors.As(err, &pe) {
		return pe.Detail()
	}
	return err.Error()
}

func renderMessage(cfg *renderConfig, msg, class string) (*Page, error) {
	view := &pageView{
		Standalone:   cfg.standalone,
		Title:        navigation.DefaultTitle,
		Stylesheet:   stylesheet,
		Message:      msg,
		MessageClass: classes(class, cfg.classNames.Root),
	}
	return execute("message", view)
}

func execute(name string, view *pageView) (*Page, error) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, name, view); err != nil {
		return nil, &oaserrors.RenderError{Template: name, Message: "template execution failed", Cause: err}
	}
	return newPage(buf.Bytes()), nil
}

func dumpError(what string, err error) error {
	return &oaserrors.RenderError{Template: "page", Message: "failed to encode " + what, Cause: err}
}
