package title

import (
	"strings"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// Checked most specific first
var groupOrder = []model.FileTypeGroup{
	model.GroupFamilyRecord,
	model.GroupMicrofilmSheet,
	model.GroupApplication,
}

// Group returns the coarse file group of a title. Hyphens count as spaces
// and matching ignores case.
func Group(title string) model.FileTypeGroup {
	prefix := strings.ToLower(strings.ReplaceAll(title, "-", " "))
	for _, g := range groupOrder {
		if strings.Contains(prefix, string(g)) {
			return g
		}
	}
	return model.GroupOther
}

// IsApplication reports whether the group holds pension applications
func IsApplication(g model.FileTypeGroup) bool {
	return g == model.GroupApplication
}
