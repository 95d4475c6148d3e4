package transfer

import (
	"encoding/json"
	"strings"
)

// diffDocuments renders a line-based patch between two pretty-printed JSON
// documents. Publishing is strictly additive, so the patch is dominated by
// "+" lines; it exists for human review, not for machine application.
func diffDocuments(before, after map[string]any) string {
	beforeLines := jsonLines(before)
	afterLines := jsonLines(after)
	var builder strings.Builder
	builder.WriteString("--- index.json\n+++ index.json\n")
	for _, line := range diffLines(beforeLines, afterLines) {
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}

func jsonLines(document map[string]any) []string {
	raw, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil
	}
	return strings.Split(string(raw), "\n")
}

// diffLines is a longest-common-subsequence diff; unchanged lines are emitted
// with a leading space so the surrounding context stays readable.
func diffLines(before, after []string) (result []string) {
	lengths := make([][]int, len(before)+1)
	for i := range lengths {
		lengths[i] = make([]int, len(after)+1)
	}
	for i := len(before) - 1; i >= 0; i-- {
		for j := len(after) - 1; j >= 0; j-- {
			if before[i] == after[j] {
				lengths[i][j] = lengths[i+1][j+1] + 1
			} else if lengths[i+1][j] >= lengths[i][j+1] {
				lengths[i][j] = lengths[i+1][j]
			} else {
				lengths[i][j] = lengths[i][j+1]
			}
		}
	}
	i, j := 0, 0
	for i < len(before) && j < len(after) {
		switch {
		case before[i] == after[j]:
			result = append(result, " "+before[i])
			i++
			j++
		case lengths[i+1][j] >= lengths[i][j+1]:
			result = append(result, "-"+before[i])
			i++
		default:
			result = append(result, "+"+after[j])
			j++
		}
	}
	for ; i < len(before); i++ {
		result = append(result, "-"+before[i])
	}
	for ; j < len(after); j++ {
		result = append(result, "+"+after[j])
	}
	return result
}
