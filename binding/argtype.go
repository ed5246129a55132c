package binding

// ArgType is the type bucket the host format understands.
type ArgType uint8

const (
	Number ArgType = iota
	Text
)

// Host type codes. Dictated by the descriptor format.
const (
	CodeText   = 1
	CodeNumber = 2
)

var argTypeNames = [...]string{
	Number: "number",
	Text:   "text",
}

func (t ArgType) String() string {
	if int(t) < len(argTypeNames) {
		return argTypeNames[t]
	}
	return "unknown"
}

// Code returns the host type code: Text is 1, Number is 2.
func (t ArgType) Code() int {
	if t == Text {
		return CodeText
	}
	return CodeNumber
}
