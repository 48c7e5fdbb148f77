package extract

import "errors"

// ErrParse is returned when a source file is not syntactically valid Python.
// Extraction is all-or-nothing: no partial FileModel accompanies this error.
var ErrParse = errors.New("python source failed to parse")

// ElementKind identifies the kind of code element a question can target.
type ElementKind string

const (
	ElementFile     ElementKind = "file"
	ElementClass    ElementKind = "class"
	ElementFunction ElementKind = "function"
	ElementMethod   ElementKind = "method"
)

// ClassDef is a class definition extracted from a source file.
type ClassDef struct {
	Name          string   `yaml:"name"`
	QualifiedName string   `yaml:"qualified_name"`
	Bases         []string `yaml:"bases,omitempty"`
	Methods       []string `yaml:"methods,omitempty"` // qualified names, source order
	Docstring     string   `yaml:"docstring,omitempty"`
	Code          string   `yaml:"-"`
	StartLine     int      `yaml:"start_line"`
	EndLine       int      `yaml:"end_line"`
}

// FunctionDef is a function, method, or nested function definition.
// Methods carry the bare name of their owning class in ClassName.
type FunctionDef struct {
	Name          string   `yaml:"name"`
	QualifiedName string   `yaml:"qualified_name"`
	ClassName     string   `yaml:"class,omitempty"`
	Signature     string   `yaml:"signature"`
	Parameters    []string `yaml:"parameters,omitempty"`
	Returns       []string `yaml:"returns,omitempty"`
	Docstring     string   `yaml:"docstring,omitempty"`
	Code          string   `yaml:"-"`
	StartLine     int      `yaml:"start_line"`
	EndLine       int      `yaml:"end_line"`
}

// IsMethod reports whether the function is owned by a class.
func (f *FunctionDef) IsMethod() bool { return f.ClassName != "" }

// OwnerQualifiedName returns the qualified name of the scope that defines
// this function (the class for methods, the enclosing function for nested
// definitions, the module otherwise).
func (f *FunctionDef) OwnerQualifiedName() string {
	if len(f.QualifiedName) > len(f.Name)+1 {
		return f.QualifiedName[:len(f.QualifiedName)-len(f.Name)-1]
	}
	return ""
}

// ImportRef is one imported binding.
type ImportRef struct {
	Module string `yaml:"module"`         // dotted module path
	Name   string `yaml:"name,omitempty"` // imported name for "from" imports
	Alias  string `yaml:"alias"`          // local binding name
	Line   int    `yaml:"line"`
}

// LiteralRef is a module-level constant or string assignment.
type LiteralRef struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Line  int    `yaml:"line"`
}

// FileModel is the full static model of one Python source file. Element
// lists mirror source appearance order; that order is load-bearing for
// deterministic dataset output downstream.
type FileModel struct {
	Path      string
	Module    string // file base name without extension
	Source    string
	Classes   []ClassDef
	Functions []FunctionDef // includes methods and nested functions
	Imports   []ImportRef
	Literals  []LiteralRef
	Graph     *CallGraph
}

// ClassByName returns the class with the given bare name, or nil.
func (m *FileModel) ClassByName(name string) *ClassDef {
	for i := range m.Classes {
		if m.Classes[i].Name == name {
			return &m.Classes[i]
		}
	}
	return nil
}

// HasQualifiedName reports whether the qualified name identifies a class,
// function, or method defined in this file.
func (m *FileModel) HasQualifiedName(qname string) bool {
	for i := range m.Classes {
		if m.Classes[i].QualifiedName == qname {
			return true
		}
	}
	for i := range m.Functions {
		if m.Functions[i].QualifiedName == qname {
			return true
		}
	}
	return false
}

// ImportedModules returns the sorted, de-duplicated set of imported module
// paths.
func (m *FileModel) ImportedModules() []string {
	modules := make([]string, 0, len(m.Imports))
	for _, imp := range m.Imports {
		modules = append(modules, imp.Module)
	}
	return sortedUnique(modules)
}
