package settings

// legacyGeminiKeys maps flat v1 Gemini settings keys to their nested v2
// location as category and field.
var legacyGeminiKeys = []struct {
	key      string
	category string
	field    string
}{
	{"contextFileName", "context", "fileName"},
	{"bugCommand", "advanced", "bugCommand"},
	{"fileFiltering", "context", "fileFiltering"},
	{"coreTools", "tools", "core"},
	{"excludeTools", "tools", "exclude"},
	{"autoAccept", "tools", "autoAccept"},
	{"theme", "ui", "theme"},
	{"hideTips", "ui", "hideTips"},
	{"sandbox", "tools", "sandbox"},
	{"toolDiscoveryCommand", "tools", "discoveryCommand"},
	{"toolCallCommand", "tools", "callCommand"},
	{"checkpointing", "general", "checkpointing"},
	{"preferredEditor", "general", "preferredEditor"},
	{"usageStatisticsEnabled", "privacy", "usageStatisticsEnabled"},
}

// MigrateLegacyGeminiKeys rewrites flat v1 Gemini settings keys into
// their nested v2 categories in place. A legacy key is left alone when
// the category slot is occupied by a non-object, and never overwrites a
// value already present in the category.
func MigrateLegacyGeminiKeys(m map[string]any) {
	for _, mig := range legacyGeminiKeys {
		value, ok := m[mig.key]
		if !ok {
			continue
		}

		var category map[string]any
		switch existing := m[mig.category].(type) {
		case nil:
			category = make(map[string]any)
			m[mig.category] = category
		case map[string]any:
			category = existing
		default:
			continue
		}

		if _, taken := category[mig.field]; !taken {
			category[mig.field] = value
		}
		delete(m, mig.key)
	}
}
