// Package calculator implements a floating-point calculator for arithmetic
// expressions.
//
// An expression is made of numbers, the binary operators ^ * / % + -,
// negation, and parentheses. "2(3+1)" and "(1)(2)" are multiplications. ^
// binds tightest, then * / % and then + -, and each applies left to right,
// so "2^3^2" is 64. Runs of - cancel in pairs: "5--3" is 8 and "--5" is 5.
// A sign belongs to the number or group it precedes, so "-2^2" is 4.
// Whitespace is ignored everywhere, even between digits.
//
// Input is checked completely before anything is computed. Every invalid
// input gives an error implementing InputError that unwraps to a Kind.
package calculator
