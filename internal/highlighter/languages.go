// internal/highlighter/languages.go
package highlighter

import (
	"sync"

	"github.com/kgilper/kpad/internal/highlighter/lang"
	"github.com/kgilper/kpad/internal/logger"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
)

const goQuery = `
(comment) @comment
(interpreted_string_literal) @string
(raw_string_literal) @string
(rune_literal) @string
(int_literal) @number
(float_literal) @number
[(true) (false) (nil) (iota)] @constant
(type_identifier) @type
(function_declaration name: (identifier) @function)
(method_declaration name: (field_identifier) @function)
(call_expression function: (identifier) @function)
[
  "break" "case" "chan" "const" "continue" "default" "defer" "else"
  "for" "func" "go" "goto" "if" "import" "interface" "map" "package"
  "range" "return" "select" "struct" "switch" "type" "var"
] @keyword
`

const pythonQuery = `
(comment) @comment
(string) @string
(integer) @number
(float) @number
[(true) (false) (none)] @constant
(function_definition name: (identifier) @function)
(class_definition name: (identifier) @type)
[
  "and" "as" "break" "class" "continue" "def" "elif" "else" "except"
  "finally" "for" "from" "if" "import" "in" "lambda" "not" "or" "pass"
  "raise" "return" "try" "while" "with" "yield"
] @keyword
`

const javascriptQuery = `
(comment) @comment
(string) @string
(template_string) @string
(number) @number
[(true) (false) (null)] @constant
(function_declaration name: (identifier) @function)
(class_declaration name: (identifier) @type)
[
  "async" "await" "break" "case" "catch" "class" "const" "continue"
  "default" "else" "export" "for" "function" "if" "import" "let" "new"
  "return" "switch" "throw" "try" "var" "while"
] @keyword
`

const rustQuery = `
(line_comment) @comment
(block_comment) @comment
(string_literal) @string
(char_literal) @string
(integer_literal) @number
(float_literal) @number
(boolean_literal) @constant
(type_identifier) @type
(primitive_type) @type
(function_item name: (identifier) @function)
[
  "as" "break" "const" "continue" "else" "enum" "fn" "for" "if" "impl"
  "in" "let" "loop" "match" "mod" "pub" "return" "static" "struct"
  "trait" "use" "where" "while"
] @keyword
`

var registerOnce sync.Once

// RegisterLanguages registers the built-in grammars. It is safe to call
// more than once.
func RegisterLanguages() {
	registerOnce.Do(func() {
		lang.Register(&lang.Language{
			Name:           "Go",
			TreeSitterLang: gosrc.GetLanguage(),
			Extensions:     []string{".go"},
			Query:          goQuery,
		})
		lang.Register(&lang.Language{
			Name:           "Python",
			TreeSitterLang: pythonsrc.GetLanguage(),
			Extensions:     []string{".py", ".pyw"},
			Query:          pythonQuery,
		})
		lang.Register(&lang.Language{
			Name:           "JavaScript",
			TreeSitterLang: jssrc.GetLanguage(),
			Extensions:     []string{".js", ".mjs", ".cjs"},
			Query:          javascriptQuery,
		})
		lang.Register(&lang.Language{
			Name:           "Rust",
			TreeSitterLang: rustsrc.GetLanguage(),
			Extensions:     []string{".rs"},
			Query:          rustQuery,
		})
		logger.Debugf("highlighter: registered %d languages", len(lang.GetAll()))
	})
}
