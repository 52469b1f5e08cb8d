package logger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const (
	mainIndent  = "       "
	causeIndent = "      "
)

func formatErrorEntries(entries []ErrorEntry) string {
	lines := make([]string, 0, len(entries)*2)

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		prefix, indent := "Error: ", mainIndent
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			prefix, indent = "    → ", causeIndent
		}

		lines = append(lines, prefix+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, line := range formatMetadata(entry.Metadata) {
			lines = append(lines, indent+line)
		}
	}

	return strings.Join(lines, "\n")
}

func formatMetadata(md map[string]any) []string {
	keys := lo.Keys(md)
	slices.Sort(keys)
	return lo.Map(keys, func(k string, _ int) string {
		return fmt.Sprintf("%s: %v", k, md[k])
	})
}
