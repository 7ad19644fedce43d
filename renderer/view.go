package renderer

import (
	"cmp"
	"html/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/navigation"
	"github.com/erraggy/oasdocs/selection"
)

const (
	// EmptyMessage is shown when there is no document to render.
	EmptyMessage = "No API spec loaded."
	// ErrorPrefix starts the message shown for a document that failed to parse.
	ErrorPrefix = "Invalid OpenAPI/Swagger spec: "
)

var methodCaser = cases.Upper(language.Und)

type pageView struct {
	Standalone  bool
	Expanded    bool
	Title       string
	Description string
	Stylesheet  template.CSS

	Sidebar    *sidebarView
	Paths      []pathView
	Components []componentView

	Message      string
	MessageClass string

	C pageClasses
}

type pageClasses struct {
	Root, Sidebar, Main, Header, Title, Description, Section string
	Path, PathHeading, Endpoints, EndpointWrap               string
	ComponentsSection, ComponentsTitle, ComponentsList        string

	E    endpointClasses
	Comp componentClasses
	S    sidebarClasses
}

type endpointClasses struct {
	Root, Header, Path, Summary, Description     string
	Parameters, RequestBody, Responses, Callbacks string
	Label, Table, Th, ThLast, Td, TdCode, TdLast  string
	Dump, Required, Muted, Deprecated             string
}

type componentClasses struct {
	Root, Header, Name, Description, Table string
	Th, ThLast, Td, TdCode, TdLast, Dump   string
	Required, Muted                        string
}

type sidebarClasses struct {
	Root, SectionTitle, TagList, Tag, TagTitle, EndpointList, EndpointItem string
	Method, Path, Summary                                                  string
	ComponentsSectionTitle, ComponentsList, ComponentItem                  string
	ComponentName, ComponentDescription                                    string
}

type sidebarView struct {
	Groups     []groupView
	Components []linkView
}

type groupView struct {
	Name        string
	Description string
	Endpoints   []linkView
}

type linkView struct {
	Href   string
	Class  string
	Active bool
	Anchor string

	Method      string
	MethodLabel string
	Path        string
	Summary     string

	Name        string
	Description string
}

type pathView struct {
	Path      string
	Endpoints []endpointView
}

type endpointView struct {
	Anchor      string
	Method      string
	MethodLabel string
	MethodClass string
	Path        string
	Summary     string
	Description string
	Deprecated  bool

	Parameters   []parameterView
	RequestBody  string
	HasResponses bool
	Responses    []responseView
	Callbacks    string
}

type parameterView struct {
	Name        string
	In          string
	Type        string
	Required    bool
	Description string
}

type responseView struct {
	Code        string
	Description string
}

type componentView struct {
	Name          string
	ElementID     string
	Description   string
	HasProperties bool
	Properties    []propertyView
	Dump          string
}

type propertyView struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

func newClasses(cfg *renderConfig) pageClasses {
	cn := cfg.classNames
	x := cfg.expanded
	e := cn.Endpoint
	cp := cn.ComponentParts
	s := cn.SidebarParts

	return pageClasses{
		Root:        classes("oas-root", when(x, "oas-root--expanded"), when(!x, "oas-root--compact"), cn.Root),
		Sidebar:     classes("oas-sidebar", cn.Sidebar),
		Main:        classes("oas-main", cn.Main),
		Header:      classes("oas-header", cn.Header),
		Title:       classes("oas-title", cn.Title),
		Description: classes("oas-description", cn.Description),
		Section:     classes("oas-section", cn.Section),
		Path:        classes("oas-path", cn.Path),
		PathHeading: classes("oas-path-heading", cn.Path),
		Endpoints:   "oas-endpoints",

		EndpointWrap:      classes("oas-endpoint-wrap", cn.EndpointSection),
		ComponentsSection: classes("oas-components", cn.ComponentsSection),
		ComponentsTitle:   classes("oas-components-title", cn.ComponentsTitle),
		ComponentsList:    classes("oas-components-list", cn.ComponentsList),

		E: endpointClasses{
			Root:        classes("oas-endpoint", cn.EndpointSection, e.Root),
			Header:      classes("oas-endpoint-header", e.Header),
			Path:        classes("oas-endpoint-path", e.Path),
			Summary:     classes("oas-endpoint-summary", e.Summary),
			Description: classes("oas-endpoint-description", e.Description),
			Parameters:  classes("oas-block", e.Parameters),
			RequestBody: classes("oas-block", e.RequestBody),
			Responses:   classes("oas-block", e.Responses),
			Callbacks:   classes("oas-block", e.Callbacks),
			Label:       "oas-label",
			Table:       classes("oas-table", e.Table),
			Th:          classes("oas-cell", e.Th),
			ThLast:      e.Th,
			Td:          classes("oas-cell", e.Td),
			TdCode:      classes("oas-cell", "oas-code", e.Td),
			TdLast:      e.Td,
			Dump:        "oas-dump",
			Required:    "oas-required",
			Muted:       "oas-muted",
			Deprecated:  "oas-deprecated",
		},
		Comp: componentClasses{
			Root:        classes("oas-component", cn.Component, cp.Root),
			Header:      classes("oas-component-header", cp.Header),
			Name:        classes("oas-component-name", cp.Name),
			Description: classes("oas-component-description", cp.Description),
			Table:       classes("oas-table", cp.Table),
			Th:          classes("oas-cell", cp.Th),
			ThLast:      cp.Th,
			Td:          classes("oas-cell", cp.Td),
			TdCode:      classes("oas-cell", "oas-code", cp.Td),
			TdLast:      cp.Td,
			Dump:        "oas-dump",
			Required:    "oas-required",
			Muted:       "oas-muted",
		},
		S: sidebarClasses{
			Root:                   classes("oas-nav", cn.Sidebar, s.Root),
			SectionTitle:           classes("oas-nav-title", s.SectionTitle),
			TagList:                classes("oas-nav-tags", s.EndpointList),
			Tag:                    s.Tag,
			TagTitle:               classes("oas-nav-tag", s.Tag),
			EndpointList:           classes("oas-nav-list", s.EndpointList),
			EndpointItem:           s.EndpointItem,
			Method:                 classes("oas-nav-method", s.Method),
			Path:                   s.Path,
			Summary:                classes("oas-nav-summary", s.Summary),
			ComponentsSectionTitle: classes("oas-nav-title", "oas-nav-title--components", s.ComponentsSectionTitle),
			ComponentsList:         classes("oas-nav-list", s.ComponentsList),
			ComponentItem:          s.ComponentItem,
			ComponentName:          s.ComponentName,
			ComponentDescription:   classes("oas-nav-summary", s.ComponentDescription),
		},
	}
}

// buildView maps a document, its navigation model and the selection onto the
// template's view model.
func buildView(doc *document.Document, model *navigation.Model, state selection.State, cfg *renderConfig) (*pageView, error) {
	info := doc.Info()
	v := &pageView{
		Standalone:  cfg.standalone,
		Expanded:    cfg.expanded,
		Title:       cmp.Or(info.Title, navigation.DefaultTitle),
		Description: info.Description,
		Stylesheet:  stylesheet,
		C:           newClasses(cfg),
	}

	if cfg.expanded {
		v.Sidebar = buildSidebar(model, state, cfg)
	}

	for _, item := range doc.Paths() {
		pv := pathView{Path: item.Path}
		for _, op := range item.Operations() {
			ev, err := buildEndpoint(op, cfg)
			if err != nil {
				return nil, err
			}
			pv.Endpoints = append(pv.Endpoints, ev)
		}
		v.Paths = append(v.Paths, pv)
	}

	for _, s := range doc.Schemas() {
		cv, err := buildComponent(s)
		if err != nil {
			return nil, err
		}
		v.Components = append(v.Components, cv)
	}
	return v, nil
}

func buildSidebar(model *navigation.Model, state selection.State, cfg *renderConfig) *sidebarView {
	s := cfg.classNames.SidebarParts
	sv := &sidebarView{}

	for _, g := range model.Tags {
		gv := groupView{Name: g.Name, Description: g.Description}
		for _, ep := range g.Endpoints {
			active := state.IsEndpoint(ep.Anchor)
			gv.Endpoints = append(gv.Endpoints, linkView{
				Href:        cfg.basePath + selection.Href(cfg.query, selection.SelectEndpoint(ep.Anchor)),
				Class:       classes("oas-nav-link", when(active, "oas-nav-link--active"), s.EndpointLink, activeClass(active, s.EndpointLink)),
				Active:      active,
				Anchor:      ep.Anchor,
				Method:      ep.Method,
				MethodLabel: methodCaser.String(ep.Method),
				Path:        ep.Path,
				Summary:     ep.Summary,
			})
		}
		sv.Groups = append(sv.Groups, gv)
	}

	for _, c := range model.Components {
		active := state.IsComponent(c.Anchor)
		sv.Components = append(sv.Components, linkView{
			Href:        cfg.basePath + selection.Href(cfg.query, selection.SelectComponent(c.Anchor)),
			Class:       classes("oas-nav-link", when(active, "oas-nav-link--active"), s.ComponentLink, activeClass(active, s.ComponentLink)),
			Active:      active,
			Anchor:      c.Anchor,
			Name:        c.Name,
			Description: c.Description,
		})
	}
	return sv
}

func buildEndpoint(op document.Operation, cfg *renderConfig) (endpointView, error) {
	ev := endpointView{
		Anchor:       navigation.EndpointAnchor(op.Method, op.Path),
		Method:       op.Method,
		MethodLabel:  methodCaser.String(op.Method),
		MethodClass:  classes("oas-method", "oas-method--"+op.Method, cfg.classNames.Endpoint.Method),
		Path:         op.Path,
		Summary:      op.Summary(),
		Description:  op.Description(),
		Deprecated:   op.Deprecated(),
		HasResponses: op.Node().Get("responses").Truthy(),
	}

	for _, p := range op.Parameters() {
		ev.Parameters = append(ev.Parameters, parameterView{
			Name:        p.Name(),
			In:          p.In(),
			Type:        cmp.Or(p.Type(), "-"),
			Required:    p.Required(),
			Description: p.Description(),
		})
	}

	for _, r := range op.Responses() {
		ev.Responses = append(ev.Responses, responseView{
			Code:        r.Code,
			Description: cmp.Or(r.Description, "No description"),
		})
	}

	var err error
	if ev.RequestBody, err = dump(op.RequestBody(), "request body of "+ev.Anchor); err != nil {
		return ev, err
	}
	if ev.Callbacks, err = dump(op.Callbacks(), "callbacks of "+ev.Anchor); err != nil {
		return ev, err
	}
	return ev, nil
}

func buildComponent(s document.Schema) (componentView, error) {
	cv := componentView{
		Name:        s.Name,
		ElementID:   navigation.ComponentElementID(s.Name),
		Description: s.Description(),
	}
	if s.HasProperties() {
		cv.HasProperties = true
		for _, p := range s.Properties() {
			cv.Properties = append(cv.Properties, propertyView{
				Name:        p.Name,
				Type:        cmp.Or(p.Type, "-"),
				Required:    p.Required,
				Description: p.Description,
			})
		}
		return cv, nil
	}

	out, err := s.Node().MarshalJSONIndent()
	if err != nil {
		return cv, dumpError("schema "+s.Name, err)
	}
	cv.Dump = string(out)
	return cv, nil
}

// dump returns the indented JSON of n, or "" when n is absent.
func dump(n *document.Node, what string) (string, error) {
	if n == nil {
		return "", nil
	}
	out, err := n.MarshalJSONIndent()
	if err != nil {
		return "", dumpError(what, err)
	}
	return string(out), nil
}
