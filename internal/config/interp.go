package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var varToken = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolate replaces every ${VAR} token in raw with the value of the
// corresponding environment variable. Tokens whose variable is unset are
// left untouched and returned in missing.
func interpolate(raw []byte) (out []byte, missing []string) {
	seen := make(map[string]bool)
	out = varToken.ReplaceAllFunc(raw, func(m []byte) []byte {
		name := string(varToken.FindSubmatch(m)[1])
		if val, ok := os.LookupEnv(name); ok {
			return []byte(val)
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return m
	})
	return out, missing
}

func unresolvedVarsError(missing []string) error {
	return fmt.Errorf("unresolved environment variable(s): %s", strings.Join(missing, ", "))
}

// apiKeyEnvVarName scans the raw (pre-interpolation) config text for the
// ai.openai_api_key field and, if its value is a bare ${VAR} token, returns
// the variable name. Used so internal/aiprovider can recognize auth errors
// that mention the configured env var by name.
func apiKeyEnvVarName(raw []byte) string {
	re := regexp.MustCompile(`(?m)^\s*openai_api_key:\s*["']?\$\{([A-Za-z_][A-Za-z0-9_]*)\}["']?\s*$`)
	m := re.FindSubmatch(raw)
	if m == nil {
		return ""
	}
	return string(m[1])
}
