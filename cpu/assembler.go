// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	COMMENT_MARKER = ';' // Starts a comment, to the end of the line.
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":  "0",
	"DATA":    fmt.Sprintf("%d", OP_DATA),
	"REG_ACC": fmt.Sprintf("%d", REG_ACC),
	"REG_CIR": fmt.Sprintf("%d", REG_CIR),
	"REG_IX":  fmt.Sprintf("%d", REG_IX),
	"REG_MAR": fmt.Sprintf("%d", REG_MAR),
	"REG_MDR": fmt.Sprintf("%d", REG_MDR),
	"REG_PC":  fmt.Sprintf("%d", REG_PC),
}

// TokenLine is the (label, opcode, operand) split of a source line.
// Missing slots are empty strings.
type TokenLine [3]string

// SourceLine is a preprocessed line of source text.
type SourceLine struct {
	LineNo int       // 1-based line number in the source text.
	Text   string    // Comment stripped, whitespace collapsed text.
	Tokens TokenLine // Tokens of the text.
}

// Operand is an intermediate operand: a number, or a label to resolve.
type Operand struct {
	Value uint64
	Label string
}

// Intermediate is an instruction with its opcode and operand still
// in text form. An empty Opcode marks a raw data value.
type Intermediate struct {
	LineNo  int
	Line    string
	Label   string
	Opcode  string
	Operand Operand
}

// Assembler is a two pass assembler for the accumulator machine.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses, from the last Parse.
	Equate    map[string]string // Map of equates usable in $() expressions.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var (
	labelRegexp      = regexp.MustCompile(`^[a-zA-Z]+:$`)
	binaryRegexp     = regexp.MustCompile(`^B[01]*$`)
	expressionRegexp = regexp.MustCompile(`\$\([^\$]*\)`)
)

// isLabel returns true if the token declares a label.
func isLabel(token string) bool {
	return labelRegexp.MatchString(token)
}

// isValue returns true if the token is a numeric literal.
// A leading 'B' only marks a binary literal when nothing but binary digits follow,
// so that labels such as 'Begin' stay labels.
func isValue(token string) bool {
	if len(token) == 0 {
		return false
	}
	if token[0] == 'B' {
		return binaryRegexp.MatchString(token)
	}
	return strings.ContainsRune("#&", rune(token[0]))
}

// Tokenize splits a comment free line into exactly three tokens.
func Tokenize(line string) (tokens TokenLine) {
	copy(tokens[:], strings.Fields(line))
	return
}

// Preprocess strips comments, blank lines and excess whitespace from the
// source, and tokenizes each remaining line.
func Preprocess(source string) (lines []SourceLine) {
	for n, text := range strings.Split(source, "\n") {
		text, _, _ = strings.Cut(text, string(COMMENT_MARKER))
		text = strings.Join(strings.Fields(text), " ")
		if len(text) == 0 {
			continue
		}
		lines = append(lines, SourceLine{
			LineNo: n + 1,
			Text:   text,
			Tokens: Tokenize(text),
		})
	}

	return
}

// ExtractLabels returns the declared labels, in declaration order.
// Duplicate declarations are kept.
func ExtractLabels(lines []SourceLine) (labels []string) {
	for _, line := range lines {
		if isLabel(line.Tokens[0]) {
			labels = append(labels, strings.TrimSuffix(line.Tokens[0], ":"))
		}
	}

	return
}

// resolveOpcode expands abbreviated mnemonics by their operand form.
func resolveOpcode(opcode string, operand string) string {
	if opcode == "LDR" && operand == "ACC" {
		return OP_LDR_ACC.String()
	}

	switch opcode {
	case "CMP", "ADD", "SUB", "AND", "OR", "XOR":
		if isValue(operand) {
			return opcode + "_IMMEDIATE"
		}
		return opcode + "_ADDRESS"
	}

	return opcode
}

// parseOperand converts an operand to a register id, a number, or a label.
func parseOperand(word string) (operand Operand, err error) {
	if reg, ok := LookupRegister(word); ok {
		operand.Value = uint64(reg)
		return
	}

	if len(word) == 0 {
		return
	}

	if !isValue(word) {
		operand.Label = word
		return
	}

	var base int
	switch word[0] {
	case '#':
		base = 10
	case '&':
		base = 16
	case 'B':
		base = 2
	}

	digits := word[1:]
	if len(digits) == 0 {
		return
	}

	if base == 10 {
		var value int64
		value, err = strconv.ParseInt(digits, base, 64)
		operand.Value = uint64(value)
	} else {
		operand.Value, err = strconv.ParseUint(digits, base, 64)
	}
	if err != nil {
		err = ErrParseNumber(word)
	}

	return
}

// BuildIntermediate converts preprocessed lines into intermediate code.
func BuildIntermediate(lines []SourceLine) (code []Intermediate, err error) {
	haveEnd := false

	for _, line := range lines {
		var label, opcode, operand string

		tokens := line.Tokens
		if isLabel(tokens[0]) {
			label = strings.TrimSuffix(tokens[0], ":")
			opcode, operand = tokens[1], tokens[2]
		} else {
			opcode, operand = tokens[0], tokens[1]
		}

		// Values appearing alone are data.
		if isValue(opcode) {
			operand = opcode
			opcode = ""
		}

		ic := Intermediate{
			LineNo: line.LineNo,
			Line:   line.Text,
			Label:  label,
			Opcode: resolveOpcode(opcode, operand),
		}
		ic.Operand, err = parseOperand(operand)
		if err != nil {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}

		code = append(code, ic)

		if opcode == OP_END.String() {
			haveEnd = true
		}
	}

	if !haveEnd {
		code = nil
		err = ErrEndMissing
		return
	}

	return
}

// ResolveLabels assigns each label the address of its declaring line.
// Data lines occupy one address, instructions two. When a label is declared
// more than once, the first declaration wins.
func ResolveLabels(code []Intermediate) (table map[string]int) {
	table = make(map[string]int, len(code))

	address := 0
	for _, ic := range code {
		if len(ic.Label) != 0 {
			if _, ok := table[ic.Label]; !ok {
				table[ic.Label] = address
			}
		}
		if len(ic.Opcode) == 0 {
			address += 1
		} else {
			address += 2
		}
	}

	return
}

// Generate maps intermediate code to machine instructions.
func Generate(code []Intermediate, table map[string]int) (insts []Instruction, err error) {
	insts = make([]Instruction, 0, len(code))

	for _, ic := range code {
		inst := Instruction{Opcode: OP_DATA, Operand: ic.Operand.Value}

		if len(ic.Opcode) != 0 {
			op, ok := LookupMnemonic(ic.Opcode)
			if !ok {
				err = &ErrSyntax{LineNo: ic.LineNo, Line: ic.Line, Err: ErrMnemonicInvalid}
				insts = nil
				return
			}
			inst.Opcode = op
		}

		if len(ic.Operand.Label) != 0 {
			address, ok := table[ic.Operand.Label]
			if !ok {
				err = &ErrSyntax{LineNo: ic.LineNo, Line: ic.Line, Err: ErrLabelMissing(ic.Operand.Label)}
				insts = nil
				return
			}
			inst.Operand = uint64(address)
		}

		insts = append(insts, inst)
	}

	return
}

// valueOf returns the integer value of an equate, if it has one.
func valueOf(word string) (value int64, ok bool) {
	value, err := strconv.ParseInt(word, 0, 64)
	ok = err == nil
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v, ok := valueOf(str)
		if !ok {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expand replaces the $() expressions of a source line by their values.
func (asm *Assembler) expand(text string, lineno int) (line string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = expressionRegexp.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	asm.Label = nil
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	source := strings.ReplaceAll(string(data), "\r", "")

	// Expand expressions before the whitespace is collapsed.
	text := strings.Split(source, "\n")
	for n := range text {
		if !strings.Contains(text[n], "$(") {
			continue
		}
		body, comment, found := strings.Cut(text[n], string(COMMENT_MARKER))
		body, err = asm.expand(body, n+1)
		if err != nil {
			err = &ErrSyntax{LineNo: n + 1, Line: strings.TrimSpace(text[n]), Err: err}
			return
		}
		if found {
			body += string(COMMENT_MARKER) + comment
		}
		text[n] = body
	}

	lines := Preprocess(strings.Join(text, "\n"))
	labels := ExtractLabels(lines)

	if asm.Verbose {
		for _, line := range lines {
			log.Printf("%v: %v\n", line.LineNo, line.Text)
		}
		log.Printf("labels: %v", labels)
	}

	code, err := BuildIntermediate(lines)
	if err != nil {
		return
	}

	table := ResolveLabels(code)

	insts, err := Generate(code, table)
	if err != nil {
		return
	}

	asm.Label = table

	prog = &Program{}
	address := 0
	for n, inst := range insts {
		ic := &code[n]
		line := lines[n]
		var words []string
		for _, word := range line.Tokens {
			if len(word) != 0 {
				words = append(words, word)
			}
		}
		prog.Lines = append(prog.Lines, Line{
			LineNo:      ic.LineNo,
			Address:     address,
			Words:       words,
			Label:       ic.Label,
			Instruction: inst,
		})
		address += inst.Size()
	}

	if asm.Verbose {
		for _, line := range prog.Lines {
			log.Printf("%04x: %v", line.Address, line.Instruction)
		}
	}

	return
}

// Assemble translates source text into machine instructions.
func Assemble(source string) (insts []Instruction, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	insts = prog.Instructions()

	return
}
