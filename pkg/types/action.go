package types

import (
	"fmt"
	"strings"
)

// ActionType identifies the kind of link a LinkAction creates. The set is
// closed; every consumer switches over all members.
type ActionType int

const (
	// ActionUnknown marks a manifest type string that matched no known kind.
	ActionUnknown ActionType = iota
	// ActionLinkFile links a single regular file.
	ActionLinkFile
	// ActionLinkIncludeDir links a whole directory.
	ActionLinkIncludeDir
)

// Manifest spellings of the action types.
const (
	LinkFileName       = "link-file"
	LinkIncludeDirName = "link-include-dir"

	// legacyLinkHeaderName is how the first bootstrap script spelled link-file.
	legacyLinkHeaderName = "link-header"
)

// ParseActionType maps a manifest type string onto an ActionType.
func ParseActionType(s string) ActionType {
	switch strings.TrimSpace(s) {
	case LinkFileName, legacyLinkHeaderName:
		return ActionLinkFile
	case LinkIncludeDirName:
		return ActionLinkIncludeDir
	default:
		return ActionUnknown
	}
}

// String returns the manifest spelling of the type
func (t ActionType) String() string {
	switch t {
	case ActionLinkFile:
		return LinkFileName
	case ActionLinkIncludeDir:
		return LinkIncludeDirName
	default:
		return "unknown"
	}
}

// ValidActionTypes lists the accepted manifest spellings, in declaration order.
func ValidActionTypes() []string {
	return []string{LinkFileName, LinkIncludeDirName}
}

// LinkAction is a declarative instruction to link a path inside a
// dependency's checkout to a path inside the project.
type LinkAction struct {
	Type ActionType
	// RawType keeps the type string as written in the manifest so unknown
	// values can be reported verbatim.
	RawType string
	// Src is relative to the dependency's checkout directory.
	Src string
	// Dst is relative to the project root.
	Dst string
}

// TypeName returns the type as written in the manifest, falling back to the
// canonical spelling.
func (a LinkAction) TypeName() string {
	if a.RawType != "" {
		return a.RawType
	}
	return a.Type.String()
}

func (a LinkAction) String() string {
	return fmt.Sprintf("%s %s -> %s", a.TypeName(), a.Src, a.Dst)
}
