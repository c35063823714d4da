package grammar

type Terminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type NonTerminal struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	First    []int  `json:"first"`
	Nullable bool   `json:"nullable"`
	Follow   []int  `json:"follow"`
}

type Production struct {
	Number int   `json:"number"`
	LHS    int   `json:"lhs"`
	RHS    []int `json:"rhs"`

	// Predict is the set of terminals whose column the production occupies in its LHS row.
	Predict []int `json:"predict"`
}

type Conflict struct {
	NonTerminal int `json:"non_terminal"`
	Terminal    int `json:"terminal"`
	Production1 int `json:"production_1"`
	Production2 int `json:"production_2"`
}

// Report describes the analysis of a grammar. Symbol numbers follow the encoding of SyntacticSpec.
type Report struct {
	Terminals    []*Terminal    `json:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals"`
	Productions  []*Production  `json:"productions"`
	Conflicts    []*Conflict    `json:"conflicts"`
}
