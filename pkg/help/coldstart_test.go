package help

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestColdstartYAMLParses(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(ColdstartYAML), &doc); err != nil {
		t.Fatalf("ColdstartYAML is not valid YAML: %v", err)
	}
	for _, key := range []string{"outcomes", "commands", "error_behavior"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("ColdstartYAML missing %q section", key)
		}
	}
}
