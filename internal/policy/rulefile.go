package policy

import (
	"os"

	"gopkg.in/yaml.v3"
)

// RuleFile is the on-disk shape of a policy rule file.
type RuleFile struct {
	FailFast bool   `yaml:"fail_fast"`
	Rules    []Rule `yaml:"rules"`
}

// LoadRuleFile reads and parses a YAML rule file.
func LoadRuleFile(path string) (RuleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleFile{}, err
	}

	var f RuleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return RuleFile{}, err
	}
	return f, nil
}
