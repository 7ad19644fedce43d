package renderer

import "strings"

// ClassNames holds extra CSS classes appended to the built-in classes of each
// part of the page. Empty fields add nothing.
type ClassNames struct {
	Root              string `toml:"root" json:"root,omitempty"`
	Sidebar           string `toml:"sidebar" json:"sidebar,omitempty"`
	Main              string `toml:"main" json:"main,omitempty"`
	Header            string `toml:"header" json:"header,omitempty"`
	Title             string `toml:"title" json:"title,omitempty"`
	Description       string `toml:"description" json:"description,omitempty"`
	Section           string `toml:"section" json:"section,omitempty"`
	Path              string `toml:"path" json:"path,omitempty"`
	EndpointSection   string `toml:"endpoint_section" json:"endpointSection,omitempty"`
	ComponentsSection string `toml:"components_section" json:"componentsSection,omitempty"`
	ComponentsTitle   string `toml:"components_title" json:"componentsTitle,omitempty"`
	ComponentsList    string `toml:"components_list" json:"componentsList,omitempty"`
	Component         string `toml:"component" json:"component,omitempty"`

	Endpoint       EndpointClassNames  `toml:"endpoint" json:"endpoint"`
	ComponentParts ComponentClassNames `toml:"component_parts" json:"componentParts"`
	SidebarParts   SidebarClassNames   `toml:"sidebar_parts" json:"sidebarParts"`
}

// EndpointClassNames styles the parts of one endpoint block.
type EndpointClassNames struct {
	Root        string `toml:"root" json:"root,omitempty"`
	Header      string `toml:"header" json:"header,omitempty"`
	Method      string `toml:"method" json:"method,omitempty"`
	Path        string `toml:"path" json:"path,omitempty"`
	Summary     string `toml:"summary" json:"summary,omitempty"`
	Description string `toml:"description" json:"description,omitempty"`
	Parameters  string `toml:"parameters" json:"parameters,omitempty"`
	RequestBody string `toml:"request_body" json:"requestBody,omitempty"`
	Responses   string `toml:"responses" json:"responses,omitempty"`
	Callbacks   string `toml:"callbacks" json:"callbacks,omitempty"`
	Table       string `toml:"table" json:"table,omitempty"`
	Th          string `toml:"th" json:"th,omitempty"`
	Td          string `toml:"td" json:"td,omitempty"`
}

// ComponentClassNames styles the parts of one component block.
type ComponentClassNames struct {
	Root        string `toml:"root" json:"root,omitempty"`
	Header      string `toml:"header" json:"header,omitempty"`
	Name        string `toml:"name" json:"name,omitempty"`
	Table       string `toml:"table" json:"table,omitempty"`
	Th          string `toml:"th" json:"th,omitempty"`
	Td          string `toml:"td" json:"td,omitempty"`
	Description string `toml:"description" json:"description,omitempty"`
}

// SidebarClassNames styles the parts of the sidebar. When EndpointLink or
// ComponentLink is set, the active link also gets that class with an
// "-active" suffix.
type SidebarClassNames struct {
	Root                   string `toml:"root" json:"root,omitempty"`
	SectionTitle           string `toml:"section_title" json:"sectionTitle,omitempty"`
	Tag                    string `toml:"tag" json:"tag,omitempty"`
	EndpointList           string `toml:"endpoint_list" json:"endpointList,omitempty"`
	EndpointItem           string `toml:"endpoint_item" json:"endpointItem,omitempty"`
	EndpointLink           string `toml:"endpoint_link" json:"endpointLink,omitempty"`
	Method                 string `toml:"method" json:"method,omitempty"`
	Path                   string `toml:"path" json:"path,omitempty"`
	Summary                string `toml:"summary" json:"summary,omitempty"`
	ComponentsSectionTitle string `toml:"components_section_title" json:"componentsSectionTitle,omitempty"`
	ComponentsList         string `toml:"components_list" json:"componentsList,omitempty"`
	ComponentItem          string `toml:"component_item" json:"componentItem,omitempty"`
	ComponentLink          string `toml:"component_link" json:"componentLink,omitempty"`
	ComponentName          string `toml:"component_name" json:"componentName,omitempty"`
	ComponentDescription   string `toml:"component_description" json:"componentDescription,omitempty"`
}

// classes joins the non-empty class lists, dropping repeated classes.
func classes(parts ...string) string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range parts {
		for _, c := range strings.Fields(p) {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return strings.Join(out, " ")
}

// when returns c if cond holds, otherwise "".
func when(cond bool, c string) string {
	if cond {
		return c
	}
	return ""
}

// activeClass returns base+"-active" for an active link with a custom class.
func activeClass(active bool, base string) string {
	if !active || base == "" {
		return ""
	}
	return base + "-active"
}
