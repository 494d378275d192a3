package mcp

import (
	"github.com/josephgoksu/zettelwing/internal/analytics"
	"github.com/josephgoksu/zettelwing/types"
)

// Hooks lets the CLI layer inject runtime dependencies the tool handlers
// need without creating an import cycle.
type Hooks struct {
	GetConfig       func() *types.AppConfig
	LogInfo         func(string)
	LogError        func(error)
	LogToolCall     func(string, interface{})
	RecordExecution func(analytics.Execution)
	GetVersion      func() string
}

var hooks = Hooks{
	GetConfig:       func() *types.AppConfig { return &types.AppConfig{} },
	LogInfo:         func(string) {},
	LogError:        func(error) {},
	LogToolCall:     func(string, interface{}) {},
	RecordExecution: func(analytics.Execution) {},
	GetVersion:      func() string { return "dev" },
}

// ConfigureHooks installs the provided hooks, keeping defaults for any nil
// fields.
func ConfigureHooks(h Hooks) {
	if h.GetConfig != nil {
		hooks.GetConfig = h.GetConfig
	}
	if h.LogInfo != nil {
		hooks.LogInfo = h.LogInfo
	}
	if h.LogError != nil {
		hooks.LogError = h.LogError
	}
	if h.LogToolCall != nil {
		hooks.LogToolCall = h.LogToolCall
	}
	if h.RecordExecution != nil {
		hooks.RecordExecution = h.RecordExecution
	}
	if h.GetVersion != nil {
		hooks.GetVersion = h.GetVersion
	}
}

func logInfo(msg string) {
	if hooks.LogInfo != nil {
		hooks.LogInfo(msg)
	}
}

func logError(err error) {
	if hooks.LogError != nil {
		hooks.LogError(err)
	}
}

func logToolCall(name string, params interface{}) {
	if hooks.LogToolCall != nil {
		hooks.LogToolCall(name, params)
	}
}
