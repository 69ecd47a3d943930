package docs

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/jsonschema-go/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rhobs/mcp-docs/pkg/extractor"
)

const (
	listOperationID     = "list_all_mcp_tools"
	listOperationTag    = "MCP Tools"
	defaultToolTag      = "Tools"
	toolOperationPrefix = "get_tool_"
	jsonContentType     = "application/json"
)

// Document is an OpenAPI 3.1 document describing the documentation API.
type Document struct {
	OpenAPI    string                                   `json:"openapi"`
	Info       Info                                     `json:"info"`
	Servers    []Server                                 `json:"servers"`
	Tags       []Tag                                    `json:"tags"`
	Paths      *orderedmap.OrderedMap[string, PathItem] `json:"paths"`
	Components Components                               `json:"components"`
}

// Info carries the title, description and version of the documented API.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// Tag groups operations; one is emitted per distinct tool tag.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PathItem holds the operations of one path. Only GET is documented.
type PathItem struct {
	Get *Operation `json:"get,omitempty"`
}

// Operation describes a single documented route.
type Operation struct {
	Summary     string              `json:"summary"`
	Description string              `json:"description"`
	OperationID string              `json:"operationId"`
	Tags        []string            `json:"tags"`
	Responses   map[string]Response `json:"responses"`
}

// Response is keyed by status code in Operation.Responses.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType holds the schema of a response body.
type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

// Components holds the per-tool parameter schemas, keyed <name>_parameters.
type Components struct {
	Schemas map[string]*jsonschema.Schema `json:"schemas"`
}

// BuildOpenAPI describes the listing route and one detail path per tool.
// Tool paths are emitted in name order.
func BuildOpenAPI(cfg Config, tools map[string]extractor.ToolRecord) *Document {
	doc := &Document{
		OpenAPI: cfg.OpenAPIVersion,
		Info: Info{
			Title:       cfg.Title,
			Description: cfg.Description,
			Version:     cfg.Version,
		},
		Servers:    slices.Clone(cfg.OpenAPIServers),
		Tags:       tagDefinitions(tools),
		Paths:      orderedmap.New[string, PathItem](),
		Components: Components{Schemas: make(map[string]*jsonschema.Schema, len(tools))},
	}
	if doc.Servers == nil {
		doc.Servers = []Server{}
	}

	doc.Paths.Set(cfg.APIToolsRoute, PathItem{Get: &Operation{
		Summary:     "List all MCP tools",
		Description: "Get a comprehensive list of all MCP tools with their schemas",
		OperationID: listOperationID,
		Tags:        []string{listOperationTag},
		Responses: map[string]Response{
			"200": jsonResponse("Successful response", &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"server":      {Type: "string"},
					"total_tools": {Type: "integer"},
					"tools":       {Type: "object"},
				},
			}),
		},
	}})

	for _, name := range slices.Sorted(maps.Keys(tools)) {
		tool := tools[name]
		tags := tool.Tags
		if len(tags) == 0 {
			tags = []string{defaultToolTag}
		}
		summary := tool.Title
		if summary == "" {
			summary = "Get " + name + " tool info"
		}

		doc.Paths.Set(cfg.detailPath(name), PathItem{Get: &Operation{
			Summary:     summary,
			Description: tool.Description,
			OperationID: toolOperationPrefix + name,
			Tags:        slices.Clone(tags),
			Responses: map[string]Response{
				"200": jsonResponse("Tool information", toolRecordSchema()),
				"404": jsonResponse("Tool not found", &jsonschema.Schema{
					Type:       "object",
					Properties: map[string]*jsonschema.Schema{"error": {Type: "string"}},
				}),
			},
		}})
		doc.Components.Schemas[name+"_parameters"] = parametersSchema(tool)
	}

	return doc
}

func jsonResponse(description string, schema *jsonschema.Schema) Response {
	return Response{
		Description: description,
		Content:     map[string]MediaType{jsonContentType: {Schema: schema}},
	}
}

func toolRecordSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":        {Type: "string"},
			"title":       {Type: "string"},
			"description": {Type: "string"},
			"parameters":  {Type: "object"},
			"tags":        {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
	}
}

// tagDefinitions returns the sorted set of every tag used by a tool.
func tagDefinitions(tools map[string]extractor.ToolRecord) []Tag {
	seen := make(map[string]struct{})
	for _, tool := range tools {
		for _, tag := range tool.Tags {
			seen[tag] = struct{}{}
		}
	}

	defs := make([]Tag, 0, len(seen))
	for _, tag := range slices.Sorted(maps.Keys(seen)) {
		defs = append(defs, Tag{
			Name:        tag,
			Description: capitalize(tag) + " related tools",
		})
	}
	return defs
}

// parametersSchema rebuilds an object schema from a tool's parameter records.
func parametersSchema(tool extractor.ToolRecord) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Title:      tool.Title,
		Properties: make(map[string]*jsonschema.Schema),
	}
	if tool.Parameters == nil {
		return schema
	}

	for pair := tool.Parameters.Oldest(); pair != nil; pair = pair.Next() {
		param := pair.Value
		prop := &jsonschema.Schema{Description: param.Description}
		if param.Type != extractor.ParamTypeAny {
			prop.Type = string(param.Type)
		}
		if param.Default != nil {
			prop.Default = defaultValue(param.Type, *param.Default)
		}
		schema.Properties[pair.Key] = prop
		if param.Required {
			schema.Required = append(schema.Required, pair.Key)
		}
	}
	return schema
}

// defaultValue turns a stringified default back into JSON. Non-string
// parameters keep their literal when it is valid JSON.
func defaultValue(t extractor.ParamType, def string) json.RawMessage {
	if t != extractor.ParamTypeString && json.Valid([]byte(def)) {
		return json.RawMessage(def)
	}
	// marshaling a string cannot fail
	data, _ := json.Marshal(def)
	return data
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
