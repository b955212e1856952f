package wod

import (
	"fmt"
	"strings"

	"server/internal/domain"
	"server/pkg/zip"
)

// ExportArchive renders the given WODs as plain-text files bundled in a zip.
// Entry names are unique; same-title WODs from the same day get a numeric
// suffix so every archive member survives extraction.
func ExportArchive(wods []domain.GeneratedWod) []byte {
	entries := make([]zip.Entry, 0, len(wods))
	seen := make(map[string]int, len(wods))
	for _, w := range wods {
		name := exportFilename(w)
		seen[name]++
		if n := seen[name]; n > 1 {
			base := strings.TrimSuffix(name, ".txt")
			name = fmt.Sprintf("%s-%d.txt", base, n)
		}
		entries = append(entries, zip.Entry{
			Filename: name,
			Data:     []byte(renderWodText(w)),
		})
	}
	return zip.Archive(entries)
}

func exportFilename(w domain.GeneratedWod) string {
	slug := strings.ToLower(strings.TrimSpace(w.Title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "wod"
	}
	return fmt.Sprintf("%s-%s.txt", w.CreatedAt.Format("2006-01-02"), slug)
}

func renderWodText(w domain.GeneratedWod) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "%s\n", w.Title)
	fmt.Fprintf(sb, "Generated %s | %s / %s / %s\n", w.CreatedAt.Format("2006-01-02"), w.Parameters.Location, w.Parameters.Equipment, w.Parameters.Level)
	if w.Parameters.Injury != "" {
		fmt.Fprintf(sb, "Injury considerations: %s\n", w.Parameters.Injury)
	}
	for _, section := range w.Sections {
		fmt.Fprintf(sb, "\n## %s\n", section.Title)
		if section.Duration != "" {
			fmt.Fprintf(sb, "Duration: %s\n", section.Duration)
		}
		if section.Description != "" {
			fmt.Fprintf(sb, "%s\n", section.Description)
		}
		for _, movement := range section.Movements {
			fmt.Fprintf(sb, "- %s\n", movement)
		}
		if section.Notes != "" {
			fmt.Fprintf(sb, "Notes: %s\n", section.Notes)
		}
	}
	return sb.String()
}
