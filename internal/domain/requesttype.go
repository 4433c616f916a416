package domain

// RequestType is one entry of the fixed purpose lookup table.
type RequestType struct {
	Type string `json:"type" dynamodbav:"type"`
}

// DefaultRequestTypes is the seed set for the purpose lookup table.
var DefaultRequestTypes = []RequestType{
	{Type: "Quick question"},
	{Type: "Need a decision"},
	{Type: "Schedule time"},
	{Type: "FYI / info"},
	{Type: "Emergency"},
}

var typeColors = map[string]string{
	"Quick question":  "purple",
	"Need a decision": "orange",
	"Schedule time":   "green",
	"FYI / info":      "purple",
	"Emergency":       "orange",
}

// ColorFor returns the display color for a purpose label. Colors are derived
// at presentation time and never stored.
func ColorFor(typeLabel string) string {
	if c, ok := typeColors[typeLabel]; ok {
		return c
	}
	return "purple"
}
