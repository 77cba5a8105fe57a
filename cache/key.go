package cache

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// BuildKey derives a deterministic cache key from the request's method,
// path and query parameters. Parameter pairs are sorted so reordered
// requests share one entry.
func BuildKey(method, path string, query url.Values) string {
	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		values := append([]string(nil), query[name]...)
		sort.Strings(values)
		for _, value := range values {
			pairs = append(pairs, name+"="+value)
		}
	}

	return "cache:" + strings.ToUpper(method) + ":" + path + ":" + strings.Join(pairs, "&")
}

// SchoolStatementPrefix covers every cached variant of one school's
// statement path.
func SchoolStatementPrefix(schoolId int) string {
	return "cache:GET:/api/v1/schools/" + strconv.Itoa(schoolId) + "/statement"
}

// StudentStatementPrefix covers every cached variant of one student's
// statement path.
func StudentStatementPrefix(studentId int) string {
	return "cache:GET:/api/v1/students/" + strconv.Itoa(studentId) + "/statement"
}
