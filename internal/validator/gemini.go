package validator

// knownGeminiFields is the Gemini CLI v2+ settings schema surface.
var knownGeminiFields = []string{
	"$schema",
	"admin",
	"advanced",
	"context",
	"experimental",
	"extensions",
	"general",
	"hooks",
	"ide",
	"mcp",
	"mcpServers",
	"model",
	"modelConfigs",
	"output",
	"privacy",
	"security",
	"skills",
	"telemetry",
	"tools",
	"ui",
	"useWriteTodos",
}

var knownGeminiServerFields = []string{
	"command",
	"args",
	"env",
	"cwd",
	"url",
	"httpUrl",
	"headers",
	"tcp",
	"type",
	"timeout",
	"trust",
	"description",
	"includeTools",
	"excludeTools",
	"extension",
	"oauth",
	"authProviderType",
	"targetAudience",
	"targetServiceAccount",
}

var knownGeminiTelemetryFields = []string{
	"enabled",
	"target",
	"otlpEndpoint",
	"otlpProtocol",
	"logPrompts",
	"outfile",
	"useCollector",
	"useCliAuth",
}

var knownGeminiTransports = []string{"stdio", "sse", "http"}

// ValidateGeminiSettings returns warnings for unknown fields in a
// Gemini settings value, including per-server and telemetry checks.
func ValidateGeminiSettings(value any) []string {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	var warnings []string
	for _, key := range sortedKeys(obj) {
		if !containsField(knownGeminiFields, key) {
			warnings = append(warnings, "Unknown setting '"+key+"' found in Gemini configuration")
		}

		switch key {
		case "mcpServers":
			warnings = append(warnings, validateGeminiServers(obj[key])...)
		case "telemetry":
			warnings = append(warnings, validateObjectFields(obj[key], knownGeminiTelemetryFields, "telemetry")...)
		}
	}
	return warnings
}

func validateGeminiServers(value any) []string {
	servers, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	var warnings []string
	for _, name := range sortedKeys(servers) {
		server, ok := servers[name].(map[string]any)
		if !ok {
			continue
		}

		for _, key := range sortedKeys(server) {
			if !containsField(knownGeminiServerFields, key) {
				warnings = append(warnings, "Unknown field '"+key+"' in mcpServers."+name)
				continue
			}

			if key == "type" {
				if kind, ok := server[key].(string); ok && !containsField(knownGeminiTransports, kind) {
					warnings = append(warnings,
						"Unknown mcpServers."+name+".type value '"+kind+"' (expected: stdio|sse|http)")
				}
			}
		}
	}
	return warnings
}
