package cgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cra16/cake-core-sub001/pkg/blocks"
)

// cNumber matches a decimal C integer or floating literal, optionally negated.
var cNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// emptyString is the default for string-typed sockets left unconnected.
const emptyString = `""`

var arithmeticOps = map[string]struct {
	op    string
	order Order
}{
	"ADD":      {"+", OrderAdditive},
	"MINUS":    {"-", OrderAdditive},
	"MULTIPLY": {"*", OrderMultiplicative},
	"DIVIDE":   {"/", OrderMultiplicative},
	"MODULO":   {"%", OrderMultiplicative},
}

var compareOps = map[string]struct {
	op    string
	order Order
}{
	"EQ":  {"==", OrderEquality},
	"NEQ": {"!=", OrderEquality},
	"LT":  {"<", OrderRelational},
	"LTE": {"<=", OrderRelational},
	"GT":  {">", OrderRelational},
	"GTE": {">=", OrderRelational},
}

// expr emits a value block as a code fragment and its precedence.
func (g *genContext) expr(b *blocks.Block) (string, Order, error) {
	switch b.Kind {
	case blocks.KindText:
		return quoteC(b.Field("TEXT")), OrderAtomic, nil
	case blocks.KindNewline:
		return `\n`, OrderNone, nil
	case blocks.KindNumber:
		return g.number(b)
	case blocks.KindBoolean:
		switch b.Field("BOOL") {
		case "TRUE":
			return "1", OrderAtomic, nil
		case "FALSE":
			return "0", OrderAtomic, nil
		}
		return "", 0, unknownOperator(b, "BOOL")
	case blocks.KindArithmetic:
		op, ok := arithmeticOps[b.Field("OP")]
		if !ok {
			return "", 0, unknownOperator(b, "OP")
		}
		return g.binary(b, op.op, op.order, "0")
	case blocks.KindCompare:
		op, ok := compareOps[b.Field("OP")]
		if !ok {
			return "", 0, unknownOperator(b, "OP")
		}
		return g.binary(b, op.op, op.order, "0")
	case blocks.KindLogicOperation:
		switch b.Field("OP") {
		case "AND":
			return g.binary(b, "&&", OrderLogicalAnd, "0")
		case "OR":
			return g.binary(b, "||", OrderLogicalOr, "0")
		}
		return "", 0, unknownOperator(b, "OP")
	case blocks.KindNegate:
		arg, err := g.valueToCode(b, "BOOL", OrderUnary, "1")
		if err != nil {
			return "", 0, err
		}
		return "!" + arg, OrderUnary, nil
	case blocks.KindVariableGet:
		return b.Field("VAR"), OrderAtomic, nil
	case blocks.KindConvert:
		var fn string
		switch b.Field("OPERATORS") {
		case "INT":
			fn = "atoi"
		case "DOUBLE":
			fn = "atof"
		default:
			return "", 0, unknownOperator(b, "OPERATORS")
		}
		g.requireHeader("stdlib")
		return g.call(b, fn, "VAR", emptyString)
	case blocks.KindStrlen:
		g.requireHeader("string")
		return g.call(b, "strlen", "VAR", emptyString)
	case blocks.KindMalloc:
		g.requireHeader("stdlib")
		return g.call(b, "malloc", "VAR", "0")
	case blocks.KindRand:
		g.requireHeader("stdlib")
		if b.Value("VAR") == nil {
			return "rand()", OrderFunctionCall, nil
		}
		bound, err := g.valueToCode(b, "VAR", OrderMultiplicative, "")
		if err != nil {
			return "", 0, err
		}
		return "rand() % " + bound, OrderMultiplicative, nil
	case blocks.KindProcedureCallReturn:
		code, err := g.procedureCall(b)
		return code, OrderFunctionCall, err
	}
	if !b.Kind.IsValue() {
		return "", 0, fmt.Errorf("%s%s: %w", b.Type, blockRef(b), ErrNotValue)
	}
	return "", 0, fmt.Errorf("%s%s: no value emitter", b.Type, blockRef(b))
}

// call emits fn(arg) for a single-argument library call.
func (g *genContext) call(b *blocks.Block, fn, socket, def string) (string, Order, error) {
	arg, err := g.valueToCode(b, socket, OrderNone, def)
	if err != nil {
		return "", 0, err
	}
	return fn + "(" + arg + ")", OrderFunctionCall, nil
}

func (g *genContext) binary(b *blocks.Block, op string, order Order, def string) (string, Order, error) {
	lhs, err := g.valueToCode(b, "A", order, def)
	if err != nil {
		return "", 0, err
	}
	rhs, err := g.valueToCode(b, "B", order, def)
	if err != nil {
		return "", 0, err
	}
	return lhs + " " + op + " " + rhs, order, nil
}

func (g *genContext) number(b *blocks.Block) (string, Order, error) {
	num := strings.TrimSpace(b.Field("NUM"))
	if num == "" {
		return "0", OrderAtomic, nil
	}
	if !cNumber.MatchString(num) {
		return "", 0, fmt.Errorf("%s%s: invalid number %q", b.Type, blockRef(b), num)
	}
	if strings.HasPrefix(num, "-") {
		return num, OrderUnary, nil
	}
	return num, OrderAtomic, nil
}

// procedureCall emits name(arg0, arg1, ...) with one argument per recorded
// parameter.
func (g *genContext) procedureCall(b *blocks.Block) (string, error) {
	args := make([]string, 0, len(b.Extra.Params))
	for i := range b.Extra.Params {
		arg, err := g.valueToCode(b, fmt.Sprintf("ARG%d", i), OrderComma, "0")
		if err != nil {
			return "", err
		}
		args = append(args, arg)
	}
	return procedureName(b) + "(" + strings.Join(args, ", ") + ")", nil
}

var cEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quoteC renders s as a C string literal.
func quoteC(s string) string {
	return `"` + cEscaper.Replace(s) + `"`
}

func unknownOperator(b *blocks.Block, field string) error {
	return &OperatorError{BlockType: b.Type, BlockID: b.ID, Field: field, Value: b.Field(field)}
}
