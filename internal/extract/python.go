package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Extractor parses Python source files into FileModels.
type Extractor struct {
	language *sitter.Language
}

// NewExtractor creates a new Python extractor.
func NewExtractor() *Extractor {
	return &Extractor{language: sitter.NewLanguage(python.Language())}
}

// Extract parses one source file and walks it into a FileModel. It fails
// with ErrParse when the text is not valid Python; no partially populated
// model is ever returned alongside an error.
func (e *Extractor) Extract(path string, source []byte) (*FileModel, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(e.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: %s", ErrParse, path)
	}

	module := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	model := &FileModel{
		Path:   path,
		Module: module,
		Source: string(source),
		Graph:  NewCallGraph(),
	}

	w := &fileWalker{
		model:  model,
		source: source,
		lines:  strings.Split(string(source), "\n"),
	}
	w.collectModule(root, module)
	w.resolveCalls()

	return model, nil
}

// fileWalker carries the state of a single extraction traversal.
type fileWalker struct {
	model  *FileModel
	source []byte
	lines  []string

	// bodies[i] is the body node of model.Functions[i], kept for the call
	// resolution pass while the tree is still alive.
	bodies []*sitter.Node
}

// collectModule walks the module's statements in source order, collecting
// imports, literals, and class/function definitions. Compound statements
// (if/try/with/for) are descended through, so conditionally defined names
// still register as module-level elements; definitions own their bodies.
func (w *fileWalker) collectModule(root *sitter.Node, module string) {
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		switch n.Kind() {
		case "import_statement", "import_from_statement":
			w.collectImport(n)
			return
		case "class_definition":
			w.collectClass(n, module)
			return
		case "function_definition":
			w.collectFunction(n, module, "")
			return
		case "decorated_definition":
			if def := n.ChildByFieldName("definition"); def != nil {
				switch def.Kind() {
				case "class_definition":
					w.collectClass(def, module)
				case "function_definition":
					w.collectFunction(def, module, "")
				}
			}
			return
		case "expression_statement":
			w.collectLiteral(n)
			return
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			visit(n.NamedChild(i))
		}
	}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		visit(root.NamedChild(i))
	}
}

// collectImport records the bindings introduced by one import statement.
func (w *fileWalker) collectImport(stmt *sitter.Node) {
	line := int(stmt.StartPosition().Row) + 1

	if stmt.Kind() == "import_statement" {
		for i := uint(0); i < stmt.NamedChildCount(); i++ {
			child := stmt.NamedChild(i)
			switch child.Kind() {
			case "dotted_name":
				module := w.text(child)
				// "import a.b" binds the top-level name "a".
				alias := strings.SplitN(module, ".", 2)[0]
				w.model.Imports = append(w.model.Imports, ImportRef{Module: module, Alias: alias, Line: line})
			case "aliased_import":
				module := w.text(child.ChildByFieldName("name"))
				alias := w.text(child.ChildByFieldName("alias"))
				w.model.Imports = append(w.model.Imports, ImportRef{Module: module, Alias: alias, Line: line})
			}
		}
		return
	}

	// from X import a, b as c
	moduleNode := stmt.ChildByFieldName("module_name")
	module := w.text(moduleNode)
	for i := uint(0); i < stmt.NamedChildCount(); i++ {
		child := stmt.NamedChild(i)
		if moduleNode != nil && child.Id() == moduleNode.Id() {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			name := w.text(child)
			w.model.Imports = append(w.model.Imports, ImportRef{Module: module, Name: name, Alias: name, Line: line})
		case "aliased_import":
			name := w.text(child.ChildByFieldName("name"))
			alias := w.text(child.ChildByFieldName("alias"))
			w.model.Imports = append(w.model.Imports, ImportRef{Module: module, Name: name, Alias: alias, Line: line})
		case "wildcard_import":
			w.model.Imports = append(w.model.Imports, ImportRef{Module: module, Name: "*", Alias: "*", Line: line})
		}
	}
}

// collectLiteral records a module-level constant or string assignment.
func (w *fileWalker) collectLiteral(stmt *sitter.Node) {
	assign := stmt.NamedChild(0)
	if assign == nil || assign.Kind() != "assignment" {
		return
	}
	left := assign.ChildByFieldName("left")
	right := assign.ChildByFieldName("right")
	if left == nil || right == nil || left.Kind() != "identifier" {
		return
	}
	name := w.text(left)
	if !isConstantName(name) && right.Kind() != "string" {
		return
	}
	w.model.Literals = append(w.model.Literals, LiteralRef{
		Name:  name,
		Value: w.text(right),
		Line:  int(assign.StartPosition().Row) + 1,
	})
}

// collectClass records a class definition, its methods, and any nested
// classes, depth-first in source order.
func (w *fileWalker) collectClass(node *sitter.Node, prefix string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := w.text(nameNode)
	qname := prefix + "." + name
	startLine := int(node.StartPosition().Row) + 1
	endLine := int(node.EndPosition().Row) + 1

	class := ClassDef{
		Name:          name,
		QualifiedName: qname,
		Code:          extractLines(w.lines, startLine, endLine),
		StartLine:     startLine,
		EndLine:       endLine,
	}
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.NamedChildCount(); i++ {
			class.Bases = append(class.Bases, w.text(supers.NamedChild(i)))
		}
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		class.Docstring = w.docstring(body)
	}

	// Reserve the slot before walking the body so the class sorts ahead of
	// its own methods in the element list. A redefinition at the same scope
	// replaces the earlier class and everything defined under it, matching
	// runtime semantics (last definition wins).
	idx := -1
	for i := range w.model.Classes {
		if w.model.Classes[i].QualifiedName == qname {
			idx = i
			break
		}
	}
	if idx >= 0 {
		w.model.Classes[idx] = class
		w.removeScope(qname + ".")
	} else {
		w.model.Classes = append(w.model.Classes, class)
		idx = len(w.model.Classes) - 1
	}

	if body == nil {
		return
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		if child.Kind() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		switch child.Kind() {
		case "function_definition":
			methodName := w.text(child.ChildByFieldName("name"))
			if methodName == "" {
				continue
			}
			w.collectFunction(child, qname, name)
			w.model.Classes[idx].Methods = appendUniqueName(w.model.Classes[idx].Methods, qname+"."+methodName)
		case "class_definition":
			w.collectClass(child, qname)
		}
	}
}

// collectFunction records a function, method, or nested function definition.
// Nested definitions are their own qualified elements; their bodies are
// walked recursively so calls attribute to the innermost definition.
func (w *fileWalker) collectFunction(node *sitter.Node, prefix, className string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := w.text(nameNode)
	qname := prefix + "." + name
	startLine := int(node.StartPosition().Row) + 1
	endLine := int(node.EndPosition().Row) + 1

	fn := FunctionDef{
		Name:          name,
		QualifiedName: qname,
		ClassName:     className,
		Signature:     w.buildSignature(node, className),
		Parameters:    w.parameterNames(node),
		Code:          extractLines(w.lines, startLine, endLine),
		StartLine:     startLine,
		EndLine:       endLine,
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		fn.Docstring = w.docstring(body)
		fn.Returns = w.returnExpressions(body)
	}

	// Last definition wins on redefinition at the same scope; bodies stay
	// index-aligned with Functions for the call resolution pass.
	replaced := false
	for i := range w.model.Functions {
		if w.model.Functions[i].QualifiedName == qname {
			w.model.Functions[i] = fn
			w.bodies[i] = body
			replaced = true
			break
		}
	}
	if replaced {
		w.removeScope(qname + ".")
	} else {
		w.model.Functions = append(w.model.Functions, fn)
		w.bodies = append(w.bodies, body)
	}

	if body == nil {
		return
	}
	// Nested definitions inside this body.
	walkStoppingAtDefinitions(body, func(n *sitter.Node) {
		switch n.Kind() {
		case "function_definition":
			w.collectFunction(n, qname, "")
		case "class_definition":
			w.collectClass(n, qname)
		}
	})
}

// removeScope drops every collected definition whose qualified name lives
// under the given prefix. Used when a redefinition replaces a class or
// function, invalidating the methods and nested definitions of the earlier
// one.
func (w *fileWalker) removeScope(prefix string) {
	funcs := w.model.Functions[:0]
	bodies := w.bodies[:0]
	for i := range w.model.Functions {
		if strings.HasPrefix(w.model.Functions[i].QualifiedName, prefix) {
			continue
		}
		funcs = append(funcs, w.model.Functions[i])
		bodies = append(bodies, w.bodies[i])
	}
	w.model.Functions = funcs
	w.bodies = bodies

	classes := w.model.Classes[:0]
	for i := range w.model.Classes {
		if strings.HasPrefix(w.model.Classes[i].QualifiedName, prefix) {
			continue
		}
		classes = append(classes, w.model.Classes[i])
	}
	w.model.Classes = classes
}

// appendUniqueName appends a name unless it is already present, keeping
// first-occurrence order.
func appendUniqueName(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

// resolveCalls performs the second pass: for every collected definition,
// walk its body for call expressions and classify each edge.
func (w *fileWalker) resolveCalls() {
	defined := make(map[string]string) // bare name -> qualified, first definition wins
	for i := range w.model.Classes {
		c := &w.model.Classes[i]
		if _, ok := defined[c.Name]; !ok {
			defined[c.Name] = c.QualifiedName
		}
	}
	for i := range w.model.Functions {
		f := &w.model.Functions[i]
		if f.IsMethod() {
			continue // methods resolve via self/class attribute access only
		}
		if _, ok := defined[f.Name]; !ok {
			defined[f.Name] = f.QualifiedName
		}
	}

	for i := range w.model.Functions {
		body := w.bodies[i]
		if body == nil {
			continue
		}
		fn := &w.model.Functions[i]
		w.walkCalls(body, fn, defined)
	}
}

// walkCalls visits every call expression directly inside body (not crossing
// into nested definitions, which own their calls) and records an edge.
func (w *fileWalker) walkCalls(body *sitter.Node, fn *FunctionDef, defined map[string]string) {
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		kind := n.Kind()
		if kind == "function_definition" || kind == "class_definition" {
			return
		}
		if kind == "call" {
			if chain, ok := w.calleeChain(n.ChildByFieldName("function")); ok {
				callee, edgeKind := w.classifyCallee(chain, fn, defined)
				w.model.Graph.Add(fn.QualifiedName, callee, edgeKind)
			}
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			visit(n.NamedChild(i))
		}
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		visit(body.NamedChild(i))
	}
}

// calleeChain flattens a call target into dotted text. Only plain
// identifier/attribute chains are kept; computed targets (subscripts,
// call results, lambdas) are given up on, mirroring the limits of
// syntactic resolution.
func (w *fileWalker) calleeChain(n *sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind() {
	case "identifier":
		return w.text(n), true
	case "attribute":
		obj, ok := w.calleeChain(n.ChildByFieldName("object"))
		if !ok {
			return "", false
		}
		return obj + "." + w.text(n.ChildByFieldName("attribute")), true
	default:
		return "", false
	}
}

// classifyCallee resolves a dotted callee chain against the names defined
// in this file. Unresolved chains stay external under their literal text;
// this is a documented best-effort approximation, not a resolution
// guarantee.
func (w *fileWalker) classifyCallee(chain string, fn *FunctionDef, defined map[string]string) (string, EdgeKind) {
	if !strings.Contains(chain, ".") {
		if qname, ok := defined[chain]; ok {
			return qname, EdgeInternal
		}
		return chain, EdgeExternal
	}

	parts := strings.Split(chain, ".")
	if len(parts) == 2 {
		// self.method / cls.method inside a class body.
		if (parts[0] == "self" || parts[0] == "cls") && fn.IsMethod() {
			qname := fn.OwnerQualifiedName() + "." + parts[1]
			if w.model.HasQualifiedName(qname) {
				return qname, EdgeInternal
			}
		}
		// ClassName.method on a class defined in this file.
		if classQName, ok := defined[parts[0]]; ok {
			qname := classQName + "." + parts[1]
			if w.model.HasQualifiedName(qname) {
				return qname, EdgeInternal
			}
		}
	}
	return chain, EdgeExternal
}

// buildSignature builds a display signature, prefixed with the class name
// for methods.
func (w *fileWalker) buildSignature(node *sitter.Node, className string) string {
	name := w.text(node.ChildByFieldName("name"))

	sig := name
	if className != "" {
		sig = className + "." + name
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig += w.text(params)
	} else {
		sig += "()"
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig += " -> " + w.text(ret)
	}
	return sig
}

// parameterNames extracts the bare parameter names of a definition.
func (w *fileWalker) parameterNames(node *sitter.Node) []string {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < params.NamedChildCount(); i++ {
		p := params.NamedChild(i)
		switch p.Kind() {
		case "identifier":
			names = append(names, w.text(p))
		case "typed_parameter", "list_splat_pattern", "dictionary_splat_pattern":
			if id := findDescendantIdentifier(p); id != nil {
				names = append(names, w.text(id))
			}
		case "default_parameter", "typed_default_parameter":
			if nameNode := p.ChildByFieldName("name"); nameNode != nil {
				names = append(names, w.text(nameNode))
			}
		}
	}
	return names
}

// returnExpressions collects the textual form of every return value inside
// a body, without descending into nested definitions.
func (w *fileWalker) returnExpressions(body *sitter.Node) []string {
	var returns []string
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		kind := n.Kind()
		if kind == "function_definition" || kind == "class_definition" {
			return
		}
		if kind == "return_statement" && n.NamedChildCount() > 0 {
			returns = append(returns, w.text(n.NamedChild(0)))
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			visit(n.NamedChild(i))
		}
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		visit(body.NamedChild(i))
	}
	return returns
}

// docstring returns the docstring of a definition body, if present.
func (w *fileWalker) docstring(body *sitter.Node) string {
	first := body.NamedChild(0)
	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}
	str := first.NamedChild(0)
	if str == nil || str.Kind() != "string" {
		return ""
	}
	return trimStringQuotes(w.text(str))
}

// text extracts the source text of a node.
func (w *fileWalker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(w.source[n.StartByte():n.EndByte()])
}

// walkStoppingAtDefinitions calls fn for each function/class definition
// directly nested under body, without descending into those definitions.
func walkStoppingAtDefinitions(body *sitter.Node, fn func(*sitter.Node)) {
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		kind := n.Kind()
		if kind == "function_definition" || kind == "class_definition" {
			fn(n)
			return
		}
		if kind == "decorated_definition" {
			if def := n.ChildByFieldName("definition"); def != nil {
				fn(def)
			}
			return
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			visit(n.NamedChild(i))
		}
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		visit(body.NamedChild(i))
	}
}

// findDescendantIdentifier finds the first identifier beneath a node.
func findDescendantIdentifier(n *sitter.Node) *sitter.Node {
	if n.Kind() == "identifier" {
		return n
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if id := findDescendantIdentifier(n.NamedChild(i)); id != nil {
			return id
		}
	}
	return nil
}

// extractLines extracts source lines from startLine to endLine (1-indexed).
func extractLines(lines []string, startLine, endLine int) string {
	if startLine < 1 || endLine < 1 || startLine > len(lines) {
		return ""
	}
	end := endLine
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[startLine-1:end], "\n")
}

// trimStringQuotes strips Python string quoting (including triple quotes
// and prefixes like r/b/f) from a literal and trims surrounding whitespace.
func trimStringQuotes(s string) string {
	s = strings.TrimLeft(s, "rRbBuUfF")
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return strings.TrimSpace(s[len(q) : len(s)-len(q)])
		}
	}
	return strings.TrimSpace(s)
}

// isConstantName reports whether a name follows the Python ALL_CAPS
// constant convention.
func isConstantName(name string) bool {
	if name == "" {
		return false
	}
	for _, ch := range name {
		if ch >= 'a' && ch <= 'z' {
			return false
		}
	}
	return true
}
