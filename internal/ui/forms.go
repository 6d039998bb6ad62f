package ui

import (
	"strconv"
	"strings"
)

// maxUploadBytes caps multipart parsing; the only upload is the hoja de
// vida PDF.
const maxUploadBytes = 10 << 20

func formString(values map[string][]string, key string) string {
	if values == nil {
		return ""
	}
	return strings.TrimSpace(first(values[key]))
}

func formOptionalString(values map[string][]string, key string) *string {
	v := formString(values, key)
	if v == "" {
		return nil
	}
	return &v
}

func formInt(values map[string][]string, key string) int {
	n, err := strconv.Atoi(formString(values, key))
	if err != nil {
		return 0
	}
	return n
}

func formOptionalInt(values map[string][]string, key string) *int {
	v := formString(values, key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func formBool(values map[string][]string, key string) bool {
	v := strings.ToLower(formString(values, key))
	return v == "true" || v == "1" || v == "on" || v == "yes"
}

// formCSV splits a comma-separated field into trimmed non-empty values.
// Used for especialidades.
func formCSV(values map[string][]string, key string) []string {
	raw := formString(values, key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
