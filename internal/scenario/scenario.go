// Package scenario provides the canned test messages offered on the
// routing test page. Deployments can replace the stock list with a YAML
// file of their own scenarios.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one selectable test message.
type Scenario struct {
	Name    string `yaml:"name"`
	Message string `yaml:"message"`
}

// Builtin returns the stock scenarios, in the order the form offers
// them. The first entry is the form's initial selection.
func Builtin() []Scenario {
	return []Scenario{
		{
			Name:    "🔥 Urgent Sales Lead",
			Message: "Hi, I need a room near TARUC ASAP! Moving in next week, budget around RM800-1200",
		},
		{
			Name:    "😠 Angry Support",
			Message: "This is ridiculous! My air conditioning has been broken for 3 days and nobody is fixing it!",
		},
		{
			Name:    "💼 Premium Lead",
			Message: "I need a luxury studio apartment near KLCC, budget up to RM3000, flexible timing",
		},
		{
			Name:    "❓ General Inquiry",
			Message: "Hello, can you tell me more about your room rental services?",
		},
		{
			Name:    "🏠 Maintenance",
			Message: "Hi, the water heater in my room is not working properly. Can someone check it?",
		},
		{
			Name:    "💰 Budget Query",
			Message: "What are your cheapest rooms available near KL? I'm a student with limited budget",
		},
	}
}

// file is the on-disk scenario document.
type file struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads scenarios from a YAML file. An empty path returns the
// builtin list.
func Load(path string) ([]Scenario, error) {
	if path == "" {
		return Builtin(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios file: %w", err)
	}

	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios file: %w", err)
	}

	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("scenarios file %s defines no scenarios", path)
	}

	seen := make(map[string]bool, len(doc.Scenarios))
	for i, s := range doc.Scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i+1)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
	}

	return doc.Scenarios, nil
}

// Find returns the scenario with the given name.
func Find(list []Scenario, name string) (Scenario, bool) {
	for _, s := range list {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
