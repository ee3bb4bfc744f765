// YALisp (Yet Another Lisp): a one-line S-expression interpreter
//
// a line of input holds a single expression. Parse turns it into a tree of
// Nodes and Eval reduces the tree to a Value using a closed set of builtin
// operators:
//
//   (+ 1 2 3)              => 6
//   (- 10 1 2)             => 7
//   (concat "a" "b" "c")   => "abc"
//   (+ (+ 1 2) (- 5 1))    => 7
//
// scanning is byte-oriented ASCII. only the first byte of a token selects its
// kind; the rest of the token is consumed verbatim.
//
// BNF:
//  <expr>            :: <whitespace>* ( <list> | <integer> | <string> | <symbol> ) ;
//
//  <list>            :: "(" <expr>* <whitespace>* ")" ;
//
//  <integer>         :: <decimal-digit>+ ;
//  <decimal-digit>   :: "0" | ... | "9" ;
//
//  <string>          :: "\"" <any byte except "\"">* "\"" ;
//
//  <symbol>          :: <symbol-start> <symbol-char>* ;
//  <symbol-start>    :: <any byte except whitespace, "(", "\"", decimal-digit> ;
//  <symbol-char>     :: <any byte except whitespace, ")"> ;
//
//  <whitespace>      :: " " | "\t" | "\n" ;
//
// limitations:
//   1. integers are 32-bit and wrap silently on overflow.
//   2. strings have no escape sequences, and rendering a string value does not
//      escape embedded quotes.

package yalisp
