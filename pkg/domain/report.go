package domain

import "time"

// AnalysisReport is the persisted envelope around one analysis pass.
type AnalysisReport struct {
	// ID uniquely identifies this analysis run.
	ID string `json:"id"`
	// RootPath is the file or directory the analysis started from.
	RootPath string `json:"rootPath"`
	// Category is the analyzer category that produced the methods.
	Category Category `json:"category"`
	// GeneratedAt is the report creation timestamp.
	GeneratedAt time.Time `json:"generatedAt"`
	// Methods contains all discovered method metadata.
	Methods []MethodMetadata `json:"methods"`
}

// CountMethods returns the number of discovered methods.
func (r *AnalysisReport) CountMethods() int {
	return len(r.Methods)
}

// ContainingTypes returns the distinct containing-type names in first-seen order.
func (r *AnalysisReport) ContainingTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, m := range r.Methods {
		if !seen[m.ContainingType] {
			seen[m.ContainingType] = true
			types = append(types, m.ContainingType)
		}
	}
	return types
}
