package utils

import (
	"fmt"
	"log"
	"strings"
)

// LogEvent prints one `[MODULE] action=... request_id=... msg=...` line.
// Messages may carry user text, so line breaks are flattened.
func LogEvent(requestID, module, action, message string) {
	log.Print(FormatEvent(requestID, module, action, message))
}

// FormatEvent builds the line LogEvent prints.
func FormatEvent(requestID, module, action, message string) string {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	return fmt.Sprintf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, flattenLine(message))
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func flattenLine(s string) string {
	return lineBreaks.Replace(s)
}
