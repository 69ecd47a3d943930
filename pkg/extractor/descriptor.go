package extractor

import (
	"context"
)

// Registry is the host capability the extractor reads tools from.
type Registry interface {
	// ListToolNames returns the names of every registered tool, in host order.
	ListToolNames(ctx context.Context) ([]string, error)
	// GetTool returns the descriptor of the named tool.
	GetTool(ctx context.Context, name string) (Descriptor, error)
}

// Descriptor is a host-defined tool object. Its capabilities are discovered
// by probing for the optional interfaces below.
type Descriptor any

// Describer is implemented by descriptors that carry a description.
type Describer interface {
	Description() string
}

// Tagger is implemented by descriptors that carry category tags.
type Tagger interface {
	Tags() []string
}

// Annotations holds the display hints a tool may declare.
type Annotations struct {
	Title string
}

// Annotated is implemented by descriptors that carry annotations.
type Annotated interface {
	Annotations() *Annotations
}

// InputSchemaProvider is implemented by descriptors that declare an input
// schema. A nil schema means none is declared.
type InputSchemaProvider interface {
	InputSchema() (*InputSchema, error)
}

// ParameterSchemaProvider is the alternative accessor for a declared schema,
// consulted when InputSchema declares none.
type ParameterSchemaProvider interface {
	ParameterSchema() (*InputSchema, error)
}

// The underlying callable is looked up through these accessors, in order.
type (
	FnProvider interface {
		Fn() any
	}
	FuncProvider interface {
		Func() any
	}
	TypedHandlerProvider interface {
		TypedHandler() any
	}
)
