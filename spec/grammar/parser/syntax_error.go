package parser

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

var (
	// lexical errors
	synErrInvalidToken = newSyntaxError("invalid token")

	// syntax errors
	synErrNoTokensSection       = newSyntaxError("grammar file malformed; the first section must be %Tokens")
	synErrNoNonTerminalsSection = newSyntaxError("grammar file malformed; %Tokens must be followed by %Non-terminals")
	synErrNoStartSection        = newSyntaxError("grammar file malformed; %Non-terminals must be followed by %Start")
	synErrNoRulesSection        = newSyntaxError("grammar file malformed; %Start must be followed by %Rules")
	synErrNoStartSymbol         = newSyntaxError("grammar file malformed; %Start needs a symbol")
	synErrMultipleStartSymbols  = newSyntaxError("grammar file malformed; %Start takes just one symbol")
	synErrSectionNoNewline      = newSyntaxError("grammar file malformed; a section must end with a newline")
	synErrNoProductionName      = newSyntaxError("a production name is missing")
	synErrNoColon               = newSyntaxError("the colon must precede alternatives")
	synErrRuleNoNewline         = newSyntaxError("a rule must end with a newline")
	synErrMisplacedSection      = newSyntaxError("grammar file malformed; sections must appear in the order %Tokens, %Non-terminals, %Start, and %Rules")
)
