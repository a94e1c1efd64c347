package notifications

import (
	"fmt"
	"strings"
	"text/template"
)

// Definition holds the four compiled templates for one notification type:
// email subject, email body, in-app short text and in-app deep-link path.
// Definitions are immutable after registry construction and safe for
// concurrent use. Rendering is a pure function of the Context.
type Definition struct {
	Type Type

	subject *template.Template
	body    *template.Template
	text    *template.Template
	path    *template.Template
}

// Subject renders the email subject line.
func (d *Definition) Subject(c Context) (string, error) {
	return render(d.subject, c)
}

// Body renders the email body.
func (d *Definition) Body(c Context) (string, error) {
	return render(d.body, c)
}

// Text renders the in-app short text.
func (d *Definition) Text(c Context) (string, error) {
	return render(d.text, c)
}

// Path renders the in-app deep-link path.
func (d *Definition) Path(c Context) (string, error) {
	return render(d.path, c)
}

func render(t *template.Template, c Context) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, map[string]any(c)); err != nil {
		return "", fmt.Errorf("render template %q: %w", t.Name(), err)
	}
	return sb.String(), nil
}

// definitionSpec is the authoring form of a Definition: raw template text
// declared against the type it serves.
type definitionSpec struct {
	forType Type
	subject string
	body    string
	text    string
	path    string
}

// Registry resolves a notification type to its template definition.
// Built once at process start; read-only afterwards.
type Registry struct {
	definitions map[Type]*Definition
}

// NewRegistry compiles the built-in definition set. A type that fails to
// compile, is declared twice, or carries a malformed identifier is a
// configuration error surfaced at construction, not at dispatch time.
func NewRegistry() (*Registry, error) {
	return newRegistry(defaultDefinitions)
}

// MustNewRegistry panics on registry construction failure. The definition
// set ships with the binary, so a failure here is always a programming
// error worth failing startup for.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

func newRegistry(specs []definitionSpec) (*Registry, error) {
	r := &Registry{definitions: make(map[Type]*Definition, len(specs))}

	for _, spec := range specs {
		if !spec.forType.Valid() {
			return nil, fmt.Errorf("invalid notification type %q", spec.forType)
		}
		if _, exists := r.definitions[spec.forType]; exists {
			return nil, fmt.Errorf("duplicate definition for type %q", spec.forType)
		}

		def := &Definition{Type: spec.forType}
		var err error
		if def.subject, err = compile(spec.forType, "subject", spec.subject); err != nil {
			return nil, err
		}
		if def.body, err = compile(spec.forType, "body", spec.body); err != nil {
			return nil, err
		}
		if def.text, err = compile(spec.forType, "text", spec.text); err != nil {
			return nil, err
		}
		if def.path, err = compile(spec.forType, "path", spec.path); err != nil {
			return nil, err
		}

		r.definitions[spec.forType] = def
	}

	return r, nil
}

// compile parses one template with missingkey=error so a context missing a
// referenced key fails the render instead of emitting "<no value>".
func compile(t Type, part, text string) (*template.Template, error) {
	if text == "" {
		return nil, fmt.Errorf("empty %s template for type %q", part, t)
	}
	tmpl, err := template.New(string(t) + ":" + part).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s template for type %q: %w", part, t, err)
	}
	return tmpl, nil
}

// Resolve returns the definition for a notification type. Absence, or a
// definition whose declared type does not match the requested one, is a
// registry authoring error.
func (r *Registry) Resolve(t Type) (*Definition, error) {
	def, ok := r.definitions[t]
	if !ok || def == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingDefinition, t)
	}
	if def.Type != t {
		return nil, fmt.Errorf("%w: definition for %q declares type %q", ErrMissingDefinition, t, def.Type)
	}
	return def, nil
}

// Types returns every type the registry has a definition for.
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.definitions))
	for t := range r.definitions {
		types = append(types, t)
	}
	return types
}
