package cgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cra16/cake-core-sub001/pkg/blocks"
)

const (
	currentTimeDecl = "struct tm *t;\ntime_t timer;"
	elapsedTimeDecl = "time_t start, end;"

	currentTimeFormat = `"%04d-%02d-%02d %02d:%02d:%02d\n"`
)

// stmt emits one statement block as newline-terminated C text.
func (g *genContext) stmt(b *blocks.Block) (string, error) {
	var sb strings.Builder
	switch b.Kind {
	case blocks.KindPrintf:
		return g.printf(b)
	case blocks.KindScanf:
		g.requireHeader("stdio")
		return g.callStatement(b, "scanf", emptyString)
	case blocks.KindSrand:
		g.requireHeader("stdlib")
		return g.callStatement(b, "srand", "0")
	case blocks.KindFree:
		g.requireHeader("stdlib")
		return g.callStatement(b, "free", "NULL")
	case blocks.KindExit:
		var status string
		switch b.Field("OPERATORS") {
		case "SUCCESS":
			status = "0"
		case "FAILURE":
			status = "1"
		default:
			return "", unknownOperator(b, "OPERATORS")
		}
		g.requireHeader("stdlib")
		return "exit(" + status + ");\n", nil
	case blocks.KindStructDefine:
		return g.structDefine(b), nil
	case blocks.KindStructDeclare:
		return declare(b.Field("TYPE"), b.Field("NAME"), ""), nil
	case blocks.KindVariableDeclare:
		initial, err := g.valueToCode(b, "VALUE", OrderAssignment, "")
		if err != nil {
			return "", err
		}
		return declare(b.Field("TYPE"), b.Field("VAR"), initial), nil
	case blocks.KindVariableSet:
		v, err := g.valueToCode(b, "VALUE", OrderAssignment, "0")
		if err != nil {
			return "", err
		}
		return b.Field("VAR") + " = " + v + ";\n", nil
	case blocks.KindTimeCurrent:
		return g.currentTime(b)
	case blocks.KindTimeElapsed:
		return g.elapsedTime(b)
	case blocks.KindIf:
		return g.ifStatement(b)
	case blocks.KindWhileUntil:
		var cond string
		var err error
		switch b.Field("MODE") {
		case "WHILE":
			cond, err = g.valueToCode(b, "BOOL", OrderNone, "0")
		case "UNTIL":
			cond, err = g.valueToCode(b, "BOOL", OrderUnary, "0")
			cond = "!" + cond
		default:
			return "", unknownOperator(b, "MODE")
		}
		if err != nil {
			return "", err
		}
		body, err := g.statementToCode(b, "DO")
		if err != nil {
			return "", err
		}
		writeLine(&sb, "", "while ("+cond+") {")
		sb.WriteString(body)
		writeLine(&sb, "", "}")
		return sb.String(), nil
	case blocks.KindFor:
		return g.forStatement(b)
	case blocks.KindFlow:
		switch b.Field("FLOW") {
		case "BREAK":
			return "break;\n", nil
		case "CONTINUE":
			return "continue;\n", nil
		}
		return "", unknownOperator(b, "FLOW")
	case blocks.KindProcedureCall:
		code, err := g.procedureCall(b)
		if err != nil {
			return "", err
		}
		return code + ";\n", nil
	case blocks.KindProcedureReturn:
		if b.Value("VALUE") == nil {
			return "return;\n", nil
		}
		v, err := g.valueToCode(b, "VALUE", OrderNone, "")
		if err != nil {
			return "", err
		}
		return "return " + v + ";\n", nil
	}
	return "", fmt.Errorf("%s%s: %w", b.Type, blockRef(b), ErrNotStatement)
}

func (g *genContext) callStatement(b *blocks.Block, fn, def string) (string, error) {
	arg, err := g.valueToCode(b, "VAR", OrderNone, def)
	if err != nil {
		return "", err
	}
	return fn + "(" + arg + ");\n", nil
}

// printf builds one format string from the block's arguments. Arguments
// naming a declared variable become a conversion plus a call argument;
// anything else is spliced into the format text as is.
func (g *genContext) printf(b *blocks.Block) (string, error) {
	g.requireHeader("stdio")
	var format strings.Builder
	var args []string
	n := socketCount(b, b.Extra.ArgCount, "VAR")
	for i := 0; i < n; i++ {
		child := b.Value(fmt.Sprintf("VAR%d", i))
		if child == nil {
			continue
		}
		code, _, err := g.expr(child)
		if err != nil {
			return "", err
		}
		typ, ok := g.symbols.lookup(code)
		if !ok {
			format.WriteString(unquote(code))
			continue
		}
		ct, ok := lookupCType(typ)
		if !ok {
			return "", fmt.Errorf("%s%s: variable %s of type %q: %w", b.Type, blockRef(b), code, typ, ErrNoConversion)
		}
		format.WriteString(ct.Conversion)
		args = append(args, code)
	}
	var sb strings.Builder
	sb.WriteString(`printf("`)
	sb.WriteString(format.String())
	sb.WriteByte('"')
	for _, a := range args {
		sb.WriteString(", ")
		sb.WriteString(a)
	}
	sb.WriteString(");\n")
	return sb.String(), nil
}

// structDefine emits a typedef with one line per member, in the order the
// block stores them.
func (g *genContext) structDefine(b *blocks.Block) string {
	var sb strings.Builder
	writeLine(&sb, "", "typedef struct {")
	for _, m := range b.Extra.Members {
		sb.WriteString(g.opts.indent())
		sb.WriteString(declare(m.Type, m.Name, ""))
	}
	writeLine(&sb, "", "} "+identifier(b.Field("NAME"))+";")
	return sb.String()
}

func (g *genContext) currentTime(b *blocks.Block) (string, error) {
	if err := g.hoist(b, "time_currentTime", currentTimeDecl); err != nil {
		return "", err
	}
	g.requireHeader("time")
	g.requireHeader("stdio")
	var sb strings.Builder
	writeLine(&sb, "", "timer = time(NULL);")
	writeLine(&sb, "", "t = localtime(&timer);")
	writeLine(&sb, "", "printf("+currentTimeFormat+", t->tm_year + 1900, t->tm_mon + 1, t->tm_mday, t->tm_hour, t->tm_min, t->tm_sec);")
	return sb.String(), nil
}

// elapsedTime wraps the DO chain between two clock reads and stores the
// difference in the VAR target.
func (g *genContext) elapsedTime(b *blocks.Block) (string, error) {
	if err := g.hoist(b, "time_elapsedTime", elapsedTimeDecl); err != nil {
		return "", err
	}
	g.requireHeader("time")
	body, err := g.chain(b.Statement("DO"))
	if err != nil {
		return "", err
	}
	target, err := g.valueToCode(b, "VAR", OrderAssignment, "")
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	writeLine(&sb, "", "start = time(NULL);")
	sb.WriteString(body)
	writeLine(&sb, "", "end = time(NULL);")
	if target == "" {
		writeLine(&sb, "", "(void)difftime(end, start);")
	} else {
		writeLine(&sb, "", target+" = difftime(end, start);")
	}
	return sb.String(), nil
}

func (g *genContext) ifStatement(b *blocks.Block) (string, error) {
	var sb strings.Builder
	n := max(socketCount(b, b.Extra.ElseIfCount+1, "IF"), socketCount(b, 0, "DO"))
	for i := 0; i < n; i++ {
		cond, err := g.valueToCode(b, fmt.Sprintf("IF%d", i), OrderNone, "0")
		if err != nil {
			return "", err
		}
		body, err := g.statementToCode(b, fmt.Sprintf("DO%d", i))
		if err != nil {
			return "", err
		}
		if i == 0 {
			writeLine(&sb, "", "if ("+cond+") {")
		} else {
			writeLine(&sb, "", "} else if ("+cond+") {")
		}
		sb.WriteString(body)
	}
	if b.Extra.HasElse || b.Statement("ELSE") != nil {
		body, err := g.statementToCode(b, "ELSE")
		if err != nil {
			return "", err
		}
		writeLine(&sb, "", "} else {")
		sb.WriteString(body)
	}
	writeLine(&sb, "", "}")
	return sb.String(), nil
}

// forStatement counts VAR from FROM to TO by BY. Literal bounds that run
// downwards produce a decrementing loop.
func (g *genContext) forStatement(b *blocks.Block) (string, error) {
	v := b.Field("VAR")
	from, err := g.valueToCode(b, "FROM", OrderAssignment, "0")
	if err != nil {
		return "", err
	}
	to, err := g.valueToCode(b, "TO", OrderRelational, "0")
	if err != nil {
		return "", err
	}
	by, err := g.valueToCode(b, "BY", OrderAssignment, "1")
	if err != nil {
		return "", err
	}
	body, err := g.statementToCode(b, "DO")
	if err != nil {
		return "", err
	}
	cmp, step := "<=", "+="
	if lo, err1 := strconv.ParseFloat(from, 64); err1 == nil {
		if hi, err2 := strconv.ParseFloat(to, 64); err2 == nil && lo > hi {
			cmp, step = ">=", "-="
		}
	}
	var sb strings.Builder
	writeLine(&sb, "", fmt.Sprintf("for (%s = %s; %s %s %s; %s %s %s) {", v, from, v, cmp, to, v, step, by))
	sb.WriteString(body)
	writeLine(&sb, "", "}")
	return sb.String(), nil
}

// declare renders "type name;" or "type name = init;".
func declare(typ, name, initial string) string {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		typ = "int"
	}
	if initial == "" {
		return typ + " " + name + ";\n"
	}
	return typ + " " + name + " = " + initial + ";\n"
}

// socketCount returns the number of numbered sockets prefix0..prefixN-1,
// at least least, extended while the block has a further connected socket.
func socketCount(b *blocks.Block, least int, prefix string) int {
	n := least
	for {
		name := fmt.Sprintf("%s%d", prefix, n)
		if b.Values[name] == nil && b.Statements[name] == nil {
			return n
		}
		n++
	}
}

func unquote(code string) string {
	if len(code) >= 2 && code[0] == '"' && code[len(code)-1] == '"' {
		return code[1 : len(code)-1]
	}
	return code
}
