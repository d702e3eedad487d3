package catalog

import (
	"fmt"
	"strings"
)

// ValidateUserCategory reports advisory diagnostics for a category's
// user-authored rows: missing or non-positive ids, and id/name collisions
// within the user data itself.
//
// This is editor feedback, never a hard failure: a player is allowed to be
// mid-edit with temporarily invalid rows.
//
// Postcondition: Returns a possibly empty diagnostic list; the input is not
// modified.
func ValidateUserCategory(category string, rows []map[string]any) []Diagnostic {
	var diags []Diagnostic
	seenID := make(map[int]bool, len(rows))
	seenName := make(map[string]bool, len(rows))

	for i, row := range rows {
		name, _ := coerceString(row["name"])

		id, ok := coerceInt(row["id"])
		if !ok || id <= 0 {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarn,
				Code:     CodeInvalidID,
				Category: category,
				Source:   SourceUser,
				RowName:  name,
				Detail:   rowDetail(i, "id is missing or not a positive number"),
			})
		} else if seenID[id] {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarn,
				Code:     CodeDuplicateID,
				Category: category,
				Source:   SourceUser,
				RowID:    id,
				RowName:  name,
				Detail:   rowDetail(i, "id collides with an earlier user row"),
			})
		} else {
			seenID[id] = true
		}

		if strings.TrimSpace(name) == "" {
			continue
		}
		nameKey := strings.ToLower(name)
		if seenName[nameKey] {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarn,
				Code:     CodeDuplicateName,
				Category: category,
				Source:   SourceUser,
				RowID:    id,
				RowName:  name,
				Detail:   rowDetail(i, "name collides with an earlier user row"),
			})
		} else {
			seenName[nameKey] = true
		}
	}
	return diags
}

func rowDetail(index int, msg string) string {
	return fmt.Sprintf("row %d: %s", index, msg)
}
