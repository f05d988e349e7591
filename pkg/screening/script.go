package screening

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script holds the fixed utterances of the screening flow. The prompts
// for the probe stages are both what the companion says and what the
// assessment asks the model to grade the answer against.
type Script struct {
	Greeting             string `yaml:"greeting"`
	MemoryPrompt         string `yaml:"memoryPrompt"`
	SocialPrompt         string `yaml:"socialPrompt"`
	RecommendationPrompt string `yaml:"recommendationPrompt"`
	FallbackMessage      string `yaml:"fallbackMessage"`
}

// LoadScript loads the screening script from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadScript(path string) (*Script, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file %s: %w", path, err)
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	// Parse YAML
	var script Script
	if err := yaml.Unmarshal([]byte(expanded), &script); err != nil {
		return nil, fmt.Errorf("failed to parse YAML script: %w", err)
	}

	// Validate script
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	return &script, nil
}

// Validate checks that every scripted utterance is present.
func (s *Script) Validate() error {
	if strings.TrimSpace(s.Greeting) == "" {
		return fmt.Errorf("script greeting is empty")
	}
	if strings.TrimSpace(s.MemoryPrompt) == "" {
		return fmt.Errorf("script memoryPrompt is empty")
	}
	if strings.TrimSpace(s.SocialPrompt) == "" {
		return fmt.Errorf("script socialPrompt is empty")
	}
	if strings.TrimSpace(s.RecommendationPrompt) == "" {
		return fmt.Errorf("script recommendationPrompt is empty")
	}
	if strings.TrimSpace(s.FallbackMessage) == "" {
		return fmt.Errorf("script fallbackMessage is empty")
	}
	return nil
}

// DefaultScript returns the built-in screening script used when no
// script file is configured.
func DefaultScript() *Script {
	return &Script{
		Greeting:             "Hello! It's so nice to see you today. How are you feeling?",
		MemoryPrompt:         "I'd love to hear about your day. What did you have for breakfast this morning?",
		SocialPrompt:         "That sounds lovely. Have you had a chance to talk with family or friends recently?",
		RecommendationPrompt: "Thank you for sharing that with me. Would you like to play a quick memory card game together? It's a fun way to keep the mind sharp.",
		FallbackMessage:      "I'm having a little trouble connecting right now, but I'm still here with you. Let's keep chatting.",
	}
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		// Support ${VAR:default} syntax
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
