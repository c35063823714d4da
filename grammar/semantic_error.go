package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoTerminal          = newSemanticError("a grammar needs at least one terminal")
	semErrNoNonTerminal       = newSemanticError("a grammar needs at least one non-terminal")
	semErrNoStartSymbol       = newSemanticError("a grammar needs a start symbol")
	semErrStartNotNonTerminal = newSemanticError("the start symbol must be a declared non-terminal")
	semErrNoProduction        = newSemanticError("a non-terminal needs at least one production")
	semErrUndefinedSym        = newSemanticError("undefined symbol")
	semErrUndefinedLHS        = newSemanticError("the left-hand side of a production must be a declared non-terminal")
	semErrDuplicateName       = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrReservedName        = newSemanticError("a reserved name cannot be declared")
	semErrEOFInProduction     = newSemanticError("the end-of-input marker cannot appear in a production")
)
