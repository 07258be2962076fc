package config

// Defaults returns the default value for every configuration key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"repo":    ".",
		"output":  "CHANGELOG.md",
		"url":     "",
		"follow":  []string{},
		"verbose": false,
	}
}
