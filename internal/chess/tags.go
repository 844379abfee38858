package chess

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	"Event",
	"Site",
	"Date",
	"Round",
	"White",
	"Black",
	"Result",
}

// Tags consulted when a game is loaded.
const (
	FENTag     = "FEN"
	SetupTag   = "SetUp"
	VariantTag = "Variant"
	ResultTag  = "Result"
)

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// IsResult reports whether s is one of the four PGN game termination markers.
func IsResult(s string) bool {
	switch s {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return false
}
