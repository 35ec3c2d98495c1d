// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "fmt"

// DebugMessage is a message delivered by the KHR_debug callback.
type DebugMessage struct {
	Source   Enum
	Type     Enum
	ID       uint
	Severity Enum
	Message  string
}

func (m DebugMessage) String() string {
	return fmt.Sprintf("%s %s (%s): %s", DebugSourceName(m.Source), DebugTypeName(m.Type), DebugSeverityName(m.Severity), m.Message)
}

func DebugSourceName(e Enum) string {
	switch e {
	case DEBUG_SOURCE_API:
		return "api"
	case DEBUG_SOURCE_WINDOW_SYSTEM:
		return "window-system"
	case DEBUG_SOURCE_SHADER_COMPILER:
		return "shader-compiler"
	case DEBUG_SOURCE_THIRD_PARTY:
		return "third-party"
	case DEBUG_SOURCE_APPLICATION:
		return "application"
	default:
		return "other"
	}
}

func DebugTypeName(e Enum) string {
	switch e {
	case DEBUG_TYPE_ERROR:
		return "error"
	case DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecated"
	case DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefined"
	case DEBUG_TYPE_PORTABILITY:
		return "portability"
	case DEBUG_TYPE_PERFORMANCE:
		return "performance"
	case DEBUG_TYPE_MARKER:
		return "marker"
	default:
		return "other"
	}
}

func DebugSeverityName(e Enum) string {
	switch e {
	case DEBUG_SEVERITY_HIGH:
		return "high"
	case DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case DEBUG_SEVERITY_LOW:
		return "low"
	case DEBUG_SEVERITY_NOTIFICATION:
		return "notification"
	default:
		return "unknown"
	}
}
