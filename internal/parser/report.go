package parser

import "github.com/jromang/picochess/internal/tree"

// Outcome records what happened to one move token.
type Outcome struct {
	Token string
	Line  int

	// Node is the node created for the token, a placeholder when Err is set.
	Node tree.NodeID

	// FEN is the position the token was played against.
	FEN string

	Err error
}

// OK reports whether the move was resolved.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Report collects the outcome of every move token of one import.
type Report struct {
	Outcomes []Outcome

	// SetupErr is set when the FEN header could not be used.
	SetupErr error
}

// Unparsed returns the outcomes of rejected move tokens.
func (r *Report) Unparsed() []Outcome {
	var bad []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			bad = append(bad, o)
		}
	}
	return bad
}

// Clean reports whether every move resolved and the setup was usable.
func (r *Report) Clean() bool {
	return r.SetupErr == nil && len(r.Unparsed()) == 0
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}
