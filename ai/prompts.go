package ai

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"wellbeing/internal"
)

// SchoolInsightsPrompt is the template used for per-school narratives
const SchoolInsightsPrompt = "school_insights"

//go:embed prompts/*.txt
var builtinPrompts embed.FS

// Global map to track initialized prompt directories (to avoid duplicate logs)
var (
	initializedDirs   = make(map[string]bool)
	initializedDirsMu sync.Mutex
)

// PromptManager loads prompt templates, preferring files in PromptsDir over the built-in set
type PromptManager struct {
	PromptsDir string
	logger     *internal.Logger
}

// NewPromptManager creates a prompt manager. An empty directory uses only built-in prompts.
func NewPromptManager(promptsDir string, logger *internal.Logger) *PromptManager {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	if promptsDir != "" {
		initializedDirsMu.Lock()
		if !initializedDirs[promptsDir] {
			initializedDirs[promptsDir] = true
			logger.Info("[PromptManager] Initialized for directory: %s", promptsDir)
		}
		initializedDirsMu.Unlock()
	}

	return &PromptManager{PromptsDir: promptsDir, logger: logger}
}

// LoadPrompt loads a prompt template by name
func (pm *PromptManager) LoadPrompt(name string) (string, error) {
	if pm.PromptsDir != "" {
		path := filepath.Join(pm.PromptsDir, name+".txt")
		content, err := os.ReadFile(path)
		if err == nil {
			return string(content), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to load prompt %s: %w", name, err)
		}
	}

	content, err := builtinPrompts.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("prompt template not found: %s", name)
	}
	return string(content), nil
}

// RenderPrompt replaces {PLACEHOLDER} with values
func (pm *PromptManager) RenderPrompt(name string, replacements map[string]string) (string, error) {
	template, err := pm.LoadPrompt(name)
	if err != nil {
		return "", err
	}

	result := template
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, "{"+placeholder+"}", value)
	}

	pm.logger.Trace("[PromptManager] Rendered %s (%d chars)", name, len(result))
	return result, nil
}
