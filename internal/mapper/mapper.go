// Package mapper converts between the camelCase field names used on the API
// surface and the snake_case column names used by the store. Every dynamic
// update clause passes through it.
package mapper

import "strings"

// CamelToSnake converts a camelCase key to its snake_case column name.
// Each camelCase key maps to exactly one snake_case key and back.
func CamelToSnake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(byte(r - 'A' + 'a'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SnakeToCamel converts a snake_case column name back to its camelCase key.
func SnakeToCamel(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	upper := false
	for _, r := range key {
		if r == '_' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			b.WriteByte(byte(r - 'a' + 'A'))
			upper = false
			continue
		}
		upper = false
		b.WriteRune(r)
	}
	return b.String()
}

// Columns builds a column→value map from an API-shaped update payload,
// keeping only keys present in the allow-list. Nil values pass through so
// callers can clear nullable columns explicitly.
func Columns(updates map[string]any, allowed map[string]bool) map[string]any {
	cols := make(map[string]any, len(updates))
	for key, value := range updates {
		if !allowed[key] {
			continue
		}
		cols[CamelToSnake(key)] = value
	}
	return cols
}
