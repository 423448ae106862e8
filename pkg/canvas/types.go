package canvas

// Logger is the logging interface consumed by the transport and interceptors.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// PageLinks holds the pagination cursors parsed from a Link response header.
type PageLinks struct {
	Current string `json:"current,omitempty" yaml:"current,omitempty"`
	Next    string `json:"next,omitempty"    yaml:"next,omitempty"`
	Prev    string `json:"prev,omitempty"    yaml:"prev,omitempty"`
	First   string `json:"first,omitempty"   yaml:"first,omitempty"`
	Last    string `json:"last,omitempty"    yaml:"last,omitempty"`
}

// HasNext reports whether another page exists.
func (l PageLinks) HasNext() bool {
	return l.Next != ""
}

// Page is one page of a paginated list response.
type Page[T any] struct {
	Items []T
	Links PageLinks
}
