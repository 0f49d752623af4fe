// Package cpu implements the accumulator machine and its assembler.
//
// The CPU has six registers (ACC, CIR, IX, MAR, MDR, PC) of a common word
// width, a word addressable memory arena, and four status flags (carry,
// negative, overflow, zero). Instructions occupy two addresses, an opcode
// followed by its operand; raw data words occupy one.
//
// The assembler translates source text in two passes: labels are resolved
// to addresses, then mnemonics are mapped to opcodes. Operands may be
// written as #decimal, &hex, Bbinary, a register name, a label, or a
// compile-time $(expression).
//
// Number literals are strict: every character after the prefix must be a
// digit of the base, so #12abc is a syntax error rather than 12. A token
// starting with B that is not all binary digits, such as B12 or Begin, is
// taken as a label.
package cpu
