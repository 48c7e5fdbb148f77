package dataset

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/mvp-joe/py2dataset/internal/extract"
	"github.com/mvp-joe/py2dataset/internal/oracle"
	"github.com/mvp-joe/py2dataset/internal/questions"
)

// Resolver answers questions about a FileModel. Structural questions are
// pure functions of the model; model-backed questions go through the
// Oracle and degrade to oracle.StubAnswer when it is absent or failing.
type Resolver struct {
	oracle oracle.Oracle // nil disables the model path
}

// NewResolver creates a resolver. A nil oracle disables the model path;
// model-backed questions then always answer with the fixed placeholder.
func NewResolver(o oracle.Oracle) *Resolver {
	return &Resolver{oracle: o}
}

// Resolve produces one Answer per (question, applicable element) pair.
// Emission order is element appearance order in the FileModel (the file
// itself first), then question list order within each element. This
// ordering is load-bearing: the corpus inherits it unchanged.
func (r *Resolver) Resolve(ctx context.Context, m *extract.FileModel, baseName string, qs []questions.Question) []Answer {
	var answers []Answer
	for _, elem := range elements(m, baseName) {
		for _, q := range qs {
			if q.Kind != elem.kind {
				continue
			}
			answers = append(answers, r.answer(ctx, m, elem, q))
		}
	}
	return answers
}

// element is one question target within a file.
type element struct {
	kind      extract.ElementKind
	target    string
	input     string
	replacer  *strings.Replacer
	class     *extract.ClassDef
	fn        *extract.FunctionDef
	startLine int
}

// elements lists the file's question targets: the file itself, then every
// class, method, and function in source order.
func elements(m *extract.FileModel, baseName string) []element {
	elems := []element{{
		kind:     extract.ElementFile,
		target:   baseName,
		input:    m.Source,
		replacer: strings.NewReplacer("{filename}", baseName),
	}}

	for i := range m.Classes {
		c := &m.Classes[i]
		elems = append(elems, element{
			kind:      extract.ElementClass,
			target:    c.QualifiedName,
			input:     c.Code,
			replacer:  strings.NewReplacer("{filename}", baseName, "{class_name}", c.Name),
			class:     c,
			startLine: c.StartLine,
		})
	}
	for i := range m.Functions {
		f := &m.Functions[i]
		kind := extract.ElementFunction
		replacer := strings.NewReplacer("{filename}", baseName, "{function_name}", f.Name)
		if f.IsMethod() {
			kind = extract.ElementMethod
			replacer = strings.NewReplacer("{filename}", baseName, "{class_name}", f.ClassName, "{method_name}", f.Name)
		}
		elems = append(elems, element{
			kind:      kind,
			target:    f.QualifiedName,
			input:     f.Code,
			replacer:  replacer,
			fn:        f,
			startLine: f.StartLine,
		})
	}

	// Merge classes and functions back into source appearance order; the
	// file element stays first (startLine 0).
	sort.SliceStable(elems, func(i, j int) bool {
		return elems[i].startLine < elems[j].startLine
	})
	return elems
}

func (r *Resolver) answer(ctx context.Context, m *extract.FileModel, elem element, q questions.Question) Answer {
	instruction := elem.replacer.Replace(q.Text)
	var output string
	if q.RequiresModel {
		output = r.completeWithFallback(ctx, m, elem, q, instruction)
	} else {
		output = structuralAnswer(m, elem, q.ID)
	}
	return Answer{
		QuestionID:  q.ID,
		Target:      elem.target,
		Kind:        elem.kind,
		Instruction: instruction,
		Input:       elem.input,
		Output:      output,
	}
}

// completeWithFallback renders a prompt and asks the oracle. Any failure
// degrades to the fixed placeholder answer; model unavailability must
// never block a file.
func (r *Resolver) completeWithFallback(ctx context.Context, m *extract.FileModel, elem element, q questions.Question, instruction string) string {
	if r.oracle == nil {
		return oracle.StubAnswer
	}
	prompt := renderPrompt(m, elem, instruction)
	text, err := r.oracle.Complete(ctx, prompt)
	if err != nil {
		log.Printf("oracle answer unavailable for %s/%s: %v", elem.target, q.ID, err)
		return oracle.StubAnswer
	}
	return text
}

// renderPrompt embeds the instruction and the element's source snippet.
// File-level prompts additionally carry the call-graph summary.
func renderPrompt(m *extract.FileModel, elem element, instruction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Instruction: %s\n\nContext:\n%s\n", instruction, elem.input)
	if elem.kind == extract.ElementFile {
		fmt.Fprintf(&b, "\nCall graph:\n%s\n", m.Graph.Summary())
	}
	b.WriteString("\nAnswer the instruction using only the provided context.")
	return b.String()
}

// structuralAnswer computes the deterministic answer for a question id.
// Every structural question yields an answer for every applicable element;
// empty results answer "None" rather than dropping the pair.
func structuralAnswer(m *extract.FileModel, elem element, questionID string) string {
	switch trimKindPrefix(questionID) {
	case "dependencies":
		return joinOrNone(m.ImportedModules())
	case "classes":
		var names []string
		for i := range m.Classes {
			names = append(names, m.Classes[i].Name)
		}
		return joinOrNone(names)
	case "functions":
		var names []string
		for i := range m.Functions {
			if !m.Functions[i].IsMethod() {
				names = append(names, m.Functions[i].Name)
			}
		}
		return joinOrNone(names)
	case "internal_code_graph":
		return RenderCallGraph(m.Graph, true)
	case "entire_code_graph":
		return RenderCallGraph(m.Graph, false)
	case "methods":
		var names []string
		if elem.class != nil {
			for i := range m.Functions {
				if m.Functions[i].ClassName == elem.class.Name {
					names = append(names, m.Functions[i].Name)
				}
			}
		}
		return joinOrNone(names)
	case "bases":
		if elem.class != nil {
			return joinOrNone(elem.class.Bases)
		}
		return "None"
	case "inputs":
		if elem.fn != nil {
			return joinOrNone(elem.fn.Parameters)
		}
		return "None"
	case "returns":
		if elem.fn != nil {
			return joinOrNone(elem.fn.Returns)
		}
		return "None"
	case "calls":
		return joinOrNone(m.Graph.AllCallees(elem.target))
	case "external_calls":
		return joinOrNone(m.Graph.Callees(elem.target, extract.EdgeExternal))
	default:
		return "None"
	}
}

// RenderCallGraph serializes a call graph as one edge per line, in
// insertion (source) order.
func RenderCallGraph(g *extract.CallGraph, internalOnly bool) string {
	var lines []string
	for _, e := range g.Edges() {
		if internalOnly && e.Kind != extract.EdgeInternal {
			continue
		}
		if internalOnly {
			lines = append(lines, fmt.Sprintf("%s -> %s", e.Caller, e.Callee))
		} else {
			lines = append(lines, fmt.Sprintf("%s -> %s [%s]", e.Caller, e.Callee, e.Kind))
		}
	}
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}

// trimKindPrefix strips the element-kind prefix from a question id, so
// function_calls and method_calls share one formatting rule.
func trimKindPrefix(id string) string {
	for _, prefix := range []string{"file_", "class_", "method_", "function_"} {
		if strings.HasPrefix(id, prefix) {
			return strings.TrimPrefix(id, prefix)
		}
	}
	return id
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
