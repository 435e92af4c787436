package blocks

import (
	"encoding/json"
	"strings"
)

// Arg is one entry of a block's message arguments: a field or an input socket.
type Arg struct {
	Type    string      `json:"type"`
	Name    string      `json:"name,omitempty"`
	Text    string      `json:"text,omitempty"`
	Check   string      `json:"check,omitempty"`
	Options [][2]string `json:"options,omitempty"`
}

// Definition describes a block type for the editor: its fields, sockets,
// connections and tooltip. Mutable lists the sockets a block adds through
// its extraState; a mutable socket named VAR also covers VAR0, VAR1, ...
type Definition struct {
	Kind     Kind
	Type     string
	Message  string
	Args     []Arg
	Mutable  []Arg
	Output   bool
	Previous bool
	Next     bool
	Colour   int
	Tooltip  string
}

// MarshalJSON renders the definition in the editor's JSON block format.
// Connection keys are present with a null check when the connection exists.
func (d Definition) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":     d.Type,
		"message0": d.Message,
		"colour":   d.Colour,
		"tooltip":  d.Tooltip,
	}
	if len(d.Args) > 0 {
		m["args0"] = d.Args
	}
	if d.Output {
		m["output"] = nil
	}
	if d.Previous {
		m["previousStatement"] = nil
	}
	if d.Next {
		m["nextStatement"] = nil
	}
	return json.Marshal(m)
}

const (
	colourLibrary   = 210
	colourText      = 160
	colourMath      = 230
	colourLogic     = 120
	colourVariables = 330
	colourStructure = 65
	colourTime      = 20
	colourControl   = 290
)

// CTypeOptions are the declared types offered by declaration blocks.
var CTypeOptions = [][2]string{
	{"int", "int"},
	{"unsigned int", "unsigned int"},
	{"short", "short"},
	{"long", "long"},
	{"unsigned long", "unsigned long"},
	{"long long", "long long"},
	{"float", "float"},
	{"double", "double"},
	{"char", "char"},
	{"char *", "char*"},
}

func value(name string) Arg     { return Arg{Type: "input_value", Name: name} }
func statement(name string) Arg { return Arg{Type: "input_statement", Name: name} }
func text(name, def string) Arg { return Arg{Type: "field_input", Name: name, Text: def} }
func dropdown(name string, opts ...[2]string) Arg {
	return Arg{Type: "field_dropdown", Name: name, Options: opts}
}

var definitions = []Definition{
	{
		Kind: KindMain, Type: "main_block", Message: "main %1",
		Args:   []Arg{statement("STACK")},
		Colour: colourControl, Tooltip: "Program entry point.",
	},
	{
		Kind: KindProcedureDef, Type: "procedures_defnoreturn", Message: "void %1 %2",
		Args:   []Arg{text("NAME", "procedure"), statement("STACK")},
		Colour: colourControl, Tooltip: "Defines a function without a return value.",
	},
	{
		Kind: KindProcedureDefReturn, Type: "procedures_defreturn", Message: "%1 %2 %3 return %4",
		Args:   []Arg{dropdown("TYPE", CTypeOptions...), text("NAME", "procedure"), statement("STACK"), value("RETURN")},
		Colour: colourControl, Tooltip: "Defines a function that returns a value.",
	},
	{
		Kind: KindProcedureCall, Type: "procedures_callnoreturn", Message: "call %1",
		Args:     []Arg{text("NAME", "procedure")},
		Mutable:  []Arg{value("ARG")},
		Previous: true, Next: true,
		Colour: colourControl, Tooltip: "Calls a function and discards its result.",
	},
	{
		Kind: KindProcedureCallReturn, Type: "procedures_callreturn", Message: "call %1",
		Args:    []Arg{text("NAME", "procedure")},
		Mutable: []Arg{value("ARG")},
		Output:  true,
		Colour: colourControl, Tooltip: "Calls a function and uses its result.",
	},
	{
		Kind: KindProcedureReturn, Type: "procedures_return", Message: "return %1",
		Args:     []Arg{value("VALUE")},
		Previous: true,
		Colour:   colourControl, Tooltip: "Returns from the enclosing function.",
	},
	{
		Kind: KindText, Type: "text", Message: "\" %1 \"",
		Args:   []Arg{text("TEXT", "")},
		Output: true,
		Colour: colourText, Tooltip: "A string literal.",
	},
	{
		Kind: KindNewline, Type: "text_newline", Message: "\\n",
		Output: true,
		Colour: colourText, Tooltip: "A newline escape.",
	},
	{
		Kind: KindNumber, Type: "math_number", Message: "%1",
		Args:   []Arg{{Type: "field_number", Name: "NUM", Text: "0"}},
		Output: true,
		Colour: colourMath, Tooltip: "A number literal.",
	},
	{
		Kind: KindArithmetic, Type: "math_arithmetic", Message: "%1 %2 %3",
		Args: []Arg{
			value("A"),
			dropdown("OP", [2]string{"+", "ADD"}, [2]string{"-", "MINUS"}, [2]string{"*", "MULTIPLY"}, [2]string{"/", "DIVIDE"}, [2]string{"%", "MODULO"}),
			value("B"),
		},
		Output: true,
		Colour: colourMath, Tooltip: "Arithmetic on two numbers.",
	},
	{
		Kind: KindBoolean, Type: "logic_boolean", Message: "%1",
		Args:   []Arg{dropdown("BOOL", [2]string{"true", "TRUE"}, [2]string{"false", "FALSE"})},
		Output: true,
		Colour: colourLogic, Tooltip: "A truth value.",
	},
	{
		Kind: KindCompare, Type: "logic_compare", Message: "%1 %2 %3",
		Args: []Arg{
			value("A"),
			dropdown("OP", [2]string{"==", "EQ"}, [2]string{"!=", "NEQ"}, [2]string{"<", "LT"}, [2]string{"<=", "LTE"}, [2]string{">", "GT"}, [2]string{">=", "GTE"}),
			value("B"),
		},
		Output: true,
		Colour: colourLogic, Tooltip: "Compares two values.",
	},
	{
		Kind: KindLogicOperation, Type: "logic_operation", Message: "%1 %2 %3",
		Args:   []Arg{value("A"), dropdown("OP", [2]string{"and", "AND"}, [2]string{"or", "OR"}), value("B")},
		Output: true,
		Colour: colourLogic, Tooltip: "Logical and/or.",
	},
	{
		Kind: KindNegate, Type: "logic_negate", Message: "not %1",
		Args:   []Arg{value("BOOL")},
		Output: true,
		Colour: colourLogic, Tooltip: "Logical not.",
	},
	{
		Kind: KindVariableGet, Type: "variables_get", Message: "%1",
		Args:   []Arg{{Type: "field_variable", Name: "VAR"}},
		Output: true,
		Colour: colourVariables, Tooltip: "Reads a variable.",
	},
	{
		Kind: KindVariableSet, Type: "variables_set", Message: "set %1 to %2",
		Args:     []Arg{{Type: "field_variable", Name: "VAR"}, value("VALUE")},
		Previous: true, Next: true,
		Colour: colourVariables, Tooltip: "Assigns a variable.",
	},
	{
		Kind: KindVariableDeclare, Type: "variables_declare", Message: "declare %1 %2 = %3",
		Args:     []Arg{dropdown("TYPE", CTypeOptions...), {Type: "field_variable", Name: "VAR"}, value("VALUE")},
		Previous: true, Next: true,
		Colour: colourVariables, Tooltip: "Declares a variable, optionally initialised.",
	},
	{
		Kind: KindConvert, Type: "library_stdlib_convert", Message: "convert %1 to %2",
		Args:   []Arg{value("VAR"), dropdown("OPERATORS", [2]string{"int", "INT"}, [2]string{"double", "DOUBLE"})},
		Output: true,
		Colour: colourLibrary, Tooltip: "Converts a string to a number with atoi or atof.",
	},
	{
		Kind: KindStrlen, Type: "library_string_strlen", Message: "length of %1",
		Args:   []Arg{value("VAR")},
		Output: true,
		Colour: colourLibrary, Tooltip: "Length of a string.",
	},
	{
		Kind: KindRand, Type: "library_stdlib_rand", Message: "random number below %1",
		Args:   []Arg{value("VAR")},
		Output: true,
		Colour: colourLibrary, Tooltip: "A pseudo-random number, optionally bounded.",
	},
	{
		Kind: KindMalloc, Type: "library_stdlib_malloc", Message: "allocate %1 bytes",
		Args:   []Arg{value("VAR")},
		Output: true,
		Colour: colourLibrary, Tooltip: "Allocates memory on the heap.",
	},
	{
		Kind: KindSrand, Type: "library_stdlib_srand", Message: "seed random with %1",
		Args:     []Arg{value("VAR")},
		Previous: true, Next: true,
		Colour: colourLibrary, Tooltip: "Seeds the pseudo-random generator.",
	},
	{
		Kind: KindFree, Type: "library_stdlib_free", Message: "free %1",
		Args:     []Arg{value("VAR")},
		Previous: true, Next: true,
		Colour: colourLibrary, Tooltip: "Releases heap memory.",
	},
	{
		Kind: KindExit, Type: "library_stdlib_exit", Message: "exit with %1",
		Args:     []Arg{dropdown("OPERATORS", [2]string{"success", "SUCCESS"}, [2]string{"failure", "FAILURE"})},
		Previous: true,
		Colour:   colourLibrary, Tooltip: "Terminates the program.",
	},
	{
		Kind: KindPrintf, Type: "library_stdio_printf", Message: "print",
		Mutable:  []Arg{value("VAR")},
		Previous: true, Next: true,
		Colour: colourLibrary, Tooltip: "Prints its inputs; variables are formatted by their declared type.",
	},
	{
		Kind: KindScanf, Type: "library_stdio_scanf", Message: "read %1",
		Args:     []Arg{value("VAR")},
		Previous: true, Next: true,
		Colour: colourLibrary, Tooltip: "Reads formatted input.",
	},
	{
		Kind: KindStructDefine, Type: "structure_define", Message: "struct %1",
		Args:     []Arg{text("NAME", "Struct")},
		Previous: true, Next: true,
		Colour: colourStructure, Tooltip: "Defines a struct type from its members.",
	},
	{
		Kind: KindStructDeclare, Type: "structure_declare", Message: "%1 %2",
		Args:     []Arg{text("TYPE", "int"), text("NAME", "name")},
		Previous: true, Next: true,
		Colour: colourStructure, Tooltip: "Declares a variable of any type.",
	},
	{
		Kind: KindTimeCurrent, Type: "time_current", Message: "print current time",
		Previous: true, Next: true,
		Colour: colourTime, Tooltip: "Prints the local time as YYYY-MM-DD HH:MM:SS.",
	},
	{
		Kind: KindTimeElapsed, Type: "time_elapsed", Message: "measure %1 into %2",
		Args:     []Arg{statement("DO"), value("VAR")},
		Previous: true, Next: true,
		Colour: colourTime, Tooltip: "Stores the seconds spent running the enclosed blocks.",
	},
	{
		Kind: KindIf, Type: "controls_if", Message: "if %1 do %2",
		Args:     []Arg{value("IF0"), statement("DO0")},
		Mutable:  []Arg{value("IF"), statement("DO"), statement("ELSE")},
		Previous: true, Next: true,
		Colour: colourControl, Tooltip: "Runs blocks when a condition holds.",
	},
	{
		Kind: KindWhileUntil, Type: "controls_whileUntil", Message: "repeat %1 %2 %3",
		Args:     []Arg{dropdown("MODE", [2]string{"while", "WHILE"}, [2]string{"until", "UNTIL"}), value("BOOL"), statement("DO")},
		Previous: true, Next: true,
		Colour: colourControl, Tooltip: "Repeats blocks while or until a condition holds.",
	},
	{
		Kind: KindFor, Type: "controls_for", Message: "count with %1 from %2 to %3 by %4 %5",
		Args:     []Arg{{Type: "field_variable", Name: "VAR"}, value("FROM"), value("TO"), value("BY"), statement("DO")},
		Previous: true, Next: true,
		Colour: colourControl, Tooltip: "Counts a variable through a range.",
	},
	{
		Kind: KindFlow, Type: "controls_flow_statements", Message: "%1 of loop",
		Args:     []Arg{dropdown("FLOW", [2]string{"break out", "BREAK"}, [2]string{"continue with next iteration", "CONTINUE"})},
		Previous: true,
		Colour:   colourControl, Tooltip: "Leaves or restarts the enclosing loop.",
	},
}

// socket returns the input type ("input_value" or "input_statement")
// declared for a socket name.
func (d Definition) socket(name string) (string, bool) {
	for _, a := range d.Args {
		if a.Name == name && isInput(a) {
			return a.Type, true
		}
	}
	prefix := strings.TrimRight(name, "0123456789")
	for _, a := range d.Mutable {
		if a.Name == name || a.Name == prefix {
			return a.Type, true
		}
	}
	return "", false
}

func isInput(a Arg) bool {
	return a.Type == "input_value" || a.Type == "input_statement"
}

func definitionFor(k Kind) (Definition, bool) {
	for _, d := range definitions {
		if d.Kind == k {
			return d, true
		}
	}
	return Definition{}, false
}

// Definitions returns every known block definition in a stable order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition registered for a block type tag.
func Lookup(typ string) (Definition, bool) {
	return definitionFor(KindOf(typ))
}
