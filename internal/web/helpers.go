package web

import (
	"encoding/json"
	"html"
	"strconv"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

func escape(value string) string {
	return html.EscapeString(value)
}

// jsString renders a value as a quoted JavaScript string literal.
func jsString(value string) string {
	data, err := json.Marshal(value)
	if err != nil {
		return `""`
	}
	return string(data)
}
