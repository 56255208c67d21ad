package tui

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed todo.yaml
var defaultDescription []byte

// DefaultDescription returns the built-in UI description.
func DefaultDescription() []byte {
	return bytes.Clone(defaultDescription)
}

// Description is the declarative form of a view, as written in YAML.
type Description struct {
	Component  string         `yaml:"component"`
	Title      string         `yaml:"title"`
	Properties []PropertyDecl `yaml:"properties"`
	Callbacks  []CallbackDecl `yaml:"callbacks"`
	List       ListDecl       `yaml:"list"`
	Input      InputDecl      `yaml:"input"`
	Actions    []ActionDecl   `yaml:"actions"`
	Keys       KeysDecl       `yaml:"keys"`
}

type PropertyDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type CallbackDecl struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args"`
}

// ListDecl binds the rendered list to a model property.
type ListDecl struct {
	Model    string `yaml:"model"`
	OnToggle string `yaml:"on-toggle"`
}

// InputDecl describes the inline text field used to add entries.
type InputDecl struct {
	Placeholder string `yaml:"placeholder"`
	CharLimit   int    `yaml:"char-limit"`
	OnAccepted  string `yaml:"on-accepted"`
}

// ActionDecl binds a key to an argument-less callback.
type ActionDecl struct {
	Key      string `yaml:"key"`
	Help     string `yaml:"help"`
	Callback string `yaml:"callback"`
}

type KeysDecl struct {
	Add    []string `yaml:"add"`
	Toggle []string `yaml:"toggle"`
	Quit   []string `yaml:"quit"`
}

// Property and argument types a description may use.
const (
	TypeTodoModel = "[TodoItem]"
	TypeString    = "string"
	TypeInt       = "int"
	TypeBool      = "bool"
)

// Severity grades a Diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a problem found while compiling a description.
type Diagnostic struct {
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string { return d.Severity.String() + ": " + d.Message }

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// PrintDiagnostics writes one line per diagnostic.
func PrintDiagnostics(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String())
	}
}

// Definition is a compiled description, ready to create instances from.
type Definition struct {
	desc       Description
	properties map[string]string
	callbacks  map[string][]string
}

// Title returns the component title.
func (d *Definition) Title() string { return d.desc.Title }

// Callbacks returns the declared callback names in declaration order.
func (d *Definition) Callbacks() []string {
	out := make([]string, 0, len(d.desc.Callbacks))
	for _, c := range d.desc.Callbacks {
		out = append(out, c.Name)
	}
	return out
}

// Properties returns the declared property names in declaration order.
func (d *Definition) Properties() []string {
	out := make([]string, 0, len(d.desc.Properties))
	for _, p := range d.desc.Properties {
		out = append(out, p.Name)
	}
	return out
}

// CompileFile compiles the description at path.
func CompileFile(path string) (*Definition, []Diagnostic) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, []Diagnostic{{SeverityError, fmt.Sprintf("read %s: %v", path, err)}}
	}
	return Compile(b)
}

// Compile parses and checks a YAML description. The definition is nil
// whenever an error diagnostic is returned.
func Compile(src []byte) (*Definition, []Diagnostic) {
	var desc Description
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty description")
		}
		return nil, []Diagnostic{{SeverityError, "parse: " + err.Error()}}
	}

	c := compiler{
		def: &Definition{
			desc:       desc,
			properties: make(map[string]string),
			callbacks:  make(map[string][]string),
		},
	}
	c.check()
	if HasErrors(c.diags) {
		return nil, c.diags
	}
	return c.def, c.diags
}

type compiler struct {
	def   *Definition
	diags []Diagnostic
}

func (c *compiler) errorf(format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{SeverityError, fmt.Sprintf(format, args...)})
}

func (c *compiler) warnf(format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{SeverityWarning, fmt.Sprintf(format, args...)})
}

func (c *compiler) check() {
	d := &c.def.desc
	if strings.TrimSpace(d.Component) == "" {
		c.errorf("component name is required")
	}
	if d.Title == "" {
		d.Title = d.Component
	}

	for _, p := range d.Properties {
		switch {
		case p.Name == "":
			c.errorf("property without a name")
		case c.def.properties[p.Name] != "":
			c.errorf("property %q declared twice", p.Name)
		case p.Type != TypeTodoModel:
			c.errorf("property %q: unsupported type %q", p.Name, p.Type)
		default:
			c.def.properties[p.Name] = p.Type
		}
	}

	for _, cb := range d.Callbacks {
		if cb.Name == "" {
			c.errorf("callback without a name")
			continue
		}
		if _, dup := c.def.callbacks[cb.Name]; dup {
			c.errorf("callback %q declared twice", cb.Name)
			continue
		}
		for _, a := range cb.Args {
			if a != TypeString && a != TypeInt && a != TypeBool {
				c.errorf("callback %q: unsupported argument type %q", cb.Name, a)
			}
		}
		c.def.callbacks[cb.Name] = cb.Args
	}

	if d.List.Model == "" {
		c.errorf("list.model is required")
	} else if _, ok := c.def.properties[d.List.Model]; !ok {
		c.errorf("list.model: unknown property %q", d.List.Model)
	}
	c.checkRef("list.on-toggle", d.List.OnToggle, TypeInt)
	c.checkRef("input.on-accepted", d.Input.OnAccepted, TypeString)

	seen := map[string]string{}
	for _, a := range d.Actions {
		if a.Key == "" {
			c.errorf("action %q has no key", a.Callback)
			continue
		}
		if a.Callback == "" {
			c.errorf("action %q has no callback", a.Key)
			continue
		}
		if other, dup := seen[a.Key]; dup {
			c.errorf("action %q: key already bound by %s", a.Key, other)
		}
		c.checkRef("action "+a.Key, a.Callback)
		seen[a.Key] = "action " + a.Key
	}

	if d.Input.CharLimit < 0 {
		c.errorf("input.char-limit must not be negative")
	}

	if len(d.Keys.Add) == 0 {
		c.warnf("keys.add not set, using %q", "a")
		d.Keys.Add = []string{"a"}
	}
	if len(d.Keys.Toggle) == 0 {
		c.warnf("keys.toggle not set, using %q", "space")
		d.Keys.Toggle = []string{" "}
	}
	if len(d.Keys.Quit) == 0 {
		c.warnf("keys.quit not set, using %q", "q")
		d.Keys.Quit = []string{"q"}
	}
	bindings := []struct {
		name string
		keys []string
	}{
		{"keys.add", d.Keys.Add},
		{"keys.toggle", d.Keys.Toggle},
		{"keys.quit", d.Keys.Quit},
	}
	for _, b := range bindings {
		for _, k := range b.keys {
			if other, dup := seen[k]; dup {
				c.errorf("%s: key %q already bound by %s", b.name, k, other)
			}
			seen[k] = b.name
		}
	}
	for _, name := range c.def.Callbacks() {
		if !c.referenced(name) {
			c.warnf("callback %q is never triggered by the view", name)
		}
	}
}

// checkRef verifies that a view event names a declared callback whose
// arguments match want. An empty reference is allowed.
func (c *compiler) checkRef(where, name string, want ...string) {
	if name == "" {
		return
	}
	args, ok := c.def.callbacks[name]
	if !ok {
		c.errorf("%s: unknown callback %q", where, name)
		return
	}
	if !slices.Equal(args, want) {
		c.errorf("%s: callback %q takes (%s), view passes (%s)",
			where, name, strings.Join(args, ", "), strings.Join(want, ", "))
	}
}

func (c *compiler) referenced(name string) bool {
	d := c.def.desc
	if d.List.OnToggle == name || d.Input.OnAccepted == name {
		return true
	}
	for _, a := range d.Actions {
		if a.Callback == name {
			return true
		}
	}
	return false
}
